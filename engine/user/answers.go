package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
)

const answersTable = "sakhi_users_answer"

// Answer is one intake-question response: which question and which options
// the user picked.
type Answer struct {
	QuestionKey     string   `json:"question_key"`
	SelectedOptions []string `json:"selected_options"`
}

// Validate checks the fields the table requires.
func (a Answer) Validate() error {
	if a.QuestionKey == "" {
		return errors.New("user: question_key is required for each answer")
	}
	if len(a.SelectedOptions) == 0 {
		return errors.New("user: selected_options must be non-empty for each answer")
	}
	return nil
}

// SaveAnswers inserts one row per answer for the user in a single statement
// and returns the number of rows written.
func (s *Store) SaveAnswers(ctx context.Context, userID string, answers []Answer) (int, error) {
	if userID == "" {
		return 0, errors.New("user: user id is required")
	}
	if len(answers) == 0 {
		return 0, errors.New("user: answers cannot be empty")
	}
	insert := squirrel.Insert(answersTable).
		Columns("user_id", "question_key", "selected_options").
		PlaceholderFormat(squirrel.Dollar)
	for _, answer := range answers {
		if err := answer.Validate(); err != nil {
			return 0, err
		}
		insert = insert.Values(userID, answer.QuestionKey, answer.SelectedOptions)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("user: build answers insert: %w", err)
	}
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("user: insert answers: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
