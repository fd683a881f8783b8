package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const profileTable = "sakhi_parent_profiles"

// ErrProfileNotFound is returned when no parent profile matches the lookup.
var ErrProfileNotFound = errors.New("onboarding: parent profile not found")

// ParentProfile stores a completed (or in-progress) questionnaire for a
// supporter of the patient.
type ParentProfile struct {
	ParentProfileID  string          `db:"parent_profile"`
	UserID           string          `db:"user_id"`
	TargetUserID     *string         `db:"target_user_id"`
	RelationshipType string          `db:"relationship_type"`
	AnswersJSON      json.RawMessage `db:"answers_json"`
	CreatedAt        time.Time       `db:"created_at"`
}

// Answers decodes the stored answers payload.
func (p *ParentProfile) Answers() (map[string]any, error) {
	if len(p.AnswersJSON) == 0 {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal(p.AnswersJSON, &out); err != nil {
		return nil, fmt.Errorf("onboarding: decode answers: %w", err)
	}
	return out, nil
}

// DB is the minimal pgx surface the store needs. *pgxpool.Pool satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists parent profiles in Postgres.
type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, userID string, targetUserID *string, relationshipType string, answers map[string]any) (*ParentProfile, error) {
	if userID == "" {
		return nil, errors.New("onboarding: user id is required")
	}
	if _, err := QuestionsFor(relationshipType); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("onboarding: encode answers: %w", err)
	}
	profile := &ParentProfile{
		ParentProfileID:  uuid.NewString(),
		UserID:           userID,
		TargetUserID:     targetUserID,
		RelationshipType: relationshipType,
		AnswersJSON:      payload,
		CreatedAt:        time.Now().UTC(),
	}
	query, args, err := squirrel.Insert(profileTable).
		Columns("parent_profile", "user_id", "target_user_id", "relationship_type", "answers_json", "created_at").
		Values(profile.ParentProfileID, profile.UserID, profile.TargetUserID,
			profile.RelationshipType, profile.AnswersJSON, profile.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("onboarding: build insert: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("onboarding: insert parent profile: %w", err)
	}
	return profile, nil
}

func (s *Store) UpdateAnswers(ctx context.Context, parentProfileID string, answers map[string]any) error {
	if parentProfileID == "" {
		return errors.New("onboarding: parent profile id is required")
	}
	payload, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("onboarding: encode answers: %w", err)
	}
	query, args, err := squirrel.Update(profileTable).
		Set("answers_json", payload).
		Where(squirrel.Eq{"parent_profile": parentProfileID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("onboarding: build update: %w", err)
	}
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("onboarding: update parent profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, parentProfileID string) (*ParentProfile, error) {
	query, args, err := squirrel.Select("parent_profile", "user_id", "target_user_id", "relationship_type", "answers_json", "created_at").
		From(profileTable).
		Where(squirrel.Eq{"parent_profile": parentProfileID}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("onboarding: build select: %w", err)
	}
	var profile ParentProfile
	if err := pgxscan.Get(ctx, s.db, &profile, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("onboarding: scan parent profile: %w", err)
	}
	return &profile, nil
}
