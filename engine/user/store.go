package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const table = "sakhi_users"

// ErrNotFound is returned when no profile matches the lookup.
var ErrNotFound = errors.New("user: profile not found")

// DB is the minimal pgx surface the store needs. *pgxpool.Pool satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists user profiles in Postgres.
type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{db: db}
}

var profileColumns = []string{
	"user_id", "phone_number", "name", "gender", "location",
	"preferred_language", "relation_to_patient", "created_at", "updated_at",
}

// CreatePartial inserts a minimal record keyed by phone number so inline
// onboarding can fill the rest in over the next turns.
func (s *Store) CreatePartial(ctx context.Context, phone string) (*Profile, error) {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil, errors.New("user: phone number is required")
	}
	now := time.Now().UTC()
	id := uuid.NewString()
	query, args, err := squirrel.Insert(table).
		Columns("user_id", "phone_number", "created_at").
		Values(id, normalized, now).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("user: build insert: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("user: insert partial profile: %w", err)
	}
	return &Profile{UserID: id, PhoneNumber: &normalized, CreatedAt: now}, nil
}

func (s *Store) GetByID(ctx context.Context, userID string) (*Profile, error) {
	return s.getBy(ctx, squirrel.Eq{"user_id": userID})
}

func (s *Store) GetByPhone(ctx context.Context, phone string) (*Profile, error) {
	normalized := NormalizePhone(phone)
	if normalized == "" {
		return nil, ErrNotFound
	}
	return s.getBy(ctx, squirrel.Eq{"phone_number": normalized})
}

func (s *Store) getBy(ctx context.Context, cond squirrel.Eq) (*Profile, error) {
	query, args, err := squirrel.Select(profileColumns...).
		From(table).
		Where(cond).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("user: build select: %w", err)
	}
	var profile Profile
	if err := pgxscan.Get(ctx, s.db, &profile, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user: scan profile: %w", err)
	}
	return &profile, nil
}

// UpdateFields sets the given columns on a profile. Column names are
// restricted to the known profile fields.
func (s *Store) UpdateFields(ctx context.Context, userID string, fields map[string]string) error {
	if userID == "" {
		return errors.New("user: user id is required")
	}
	if len(fields) == 0 {
		return errors.New("user: no fields to update")
	}
	update := squirrel.Update(table).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)
	for column, value := range fields {
		if !updatableColumn(column) {
			return fmt.Errorf("user: column %q is not updatable", column)
		}
		update = update.Set(column, value)
	}
	query, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("user: build update: %w", err)
	}
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("user: update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateRelation(ctx context.Context, userID, relation string) error {
	if relation == "" {
		return errors.New("user: relation is required")
	}
	return s.UpdateFields(ctx, userID, map[string]string{"relation_to_patient": relation})
}

func (s *Store) UpdatePreferredLanguage(ctx context.Context, userID, language string) error {
	if language == "" {
		return errors.New("user: preferred language is required")
	}
	return s.UpdateFields(ctx, userID, map[string]string{"preferred_language": language})
}

func updatableColumn(name string) bool {
	switch name {
	case "name", "gender", "location", "preferred_language", "relation_to_patient", "phone_number":
		return true
	}
	return false
}
