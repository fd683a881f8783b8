package conversation

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

const table = "sakhi_conversations"

// MessageType distinguishes user turns from assistant turns.
type MessageType string

const (
	MessageUser  MessageType = "user"
	MessageSakhi MessageType = "sakhi"
)

// Message is one stored conversation turn.
type Message struct {
	UserID      string      `db:"user_id"`
	ChatID      *string     `db:"chat_id"`
	MessageText string      `db:"message_text"`
	MessageType MessageType `db:"message_type"`
	Language    string      `db:"language"`
	CreatedAt   time.Time   `db:"created_at"`
}

// DB is the minimal pgx surface the store needs. *pgxpool.Pool satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store persists conversation history in Postgres.
type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{db: db}
}

// SaveUserMessage records an incoming user turn.
func (s *Store) SaveUserMessage(ctx context.Context, userID, text, language string) error {
	return s.save(ctx, userID, text, language, MessageUser, nil)
}

// SaveAssistantMessage records a generated reply. Each assistant turn gets its
// own chat id so clients can reference individual replies.
func (s *Store) SaveAssistantMessage(ctx context.Context, userID, text, language string) error {
	chatID := uuid.NewString()
	return s.save(ctx, userID, text, language, MessageSakhi, &chatID)
}

func (s *Store) save(ctx context.Context, userID, text, language string, msgType MessageType, chatID *string) error {
	if userID == "" {
		return errors.New("conversation: user id is required")
	}
	if language == "" {
		language = "en"
	}
	query, args, err := squirrel.Insert(table).
		Columns("user_id", "chat_id", "message_text", "message_type", "language", "created_at").
		Values(userID, chatID, text, msgType, language, time.Now().UTC()).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("conversation: build insert: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("conversation: insert message: %w", err)
	}
	return nil
}

// LastMessages returns up to limit most recent turns for the user, ordered
// oldest to newest for direct prompt injection.
func (s *Store) LastMessages(ctx context.Context, userID string, limit int) ([]Message, error) {
	if userID == "" {
		return nil, errors.New("conversation: user id is required")
	}
	if limit <= 0 {
		limit = 5
	}
	query, args, err := squirrel.Select("user_id", "chat_id", "message_text", "message_type", "language", "created_at").
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("conversation: build select: %w", err)
	}
	var recent []Message
	if err := pgxscan.Select(ctx, s.db, &recent, query, args...); err != nil {
		return nil, fmt.Errorf("conversation: scan messages: %w", err)
	}
	// Reverse into chronological order.
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	return recent, nil
}
