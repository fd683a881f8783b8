package user_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janmasethu/sakhi/engine/user"
)

type stubDB struct {
	query string
	args  []any
	tag   pgconn.CommandTag
	err   error
}

func (d *stubDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.query = sql
	d.args = args
	return d.tag, d.err
}

func (d *stubDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (d *stubDB) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func TestNormalizePhone_ShouldStripFormattingAndCountryPrefix(t *testing.T) {
	assert.Equal(t, "9876543210", user.NormalizePhone("+91 98765 43210"))
	assert.Equal(t, "9876543210", user.NormalizePhone("919876543210"))
	assert.Equal(t, "9876543210", user.NormalizePhone("98765-43210"))
	// A bare 10-digit number starting with 91 keeps its digits.
	assert.Equal(t, "9198765432", user.NormalizePhone("9198765432"))
	assert.Equal(t, "", user.NormalizePhone("abc"))
}

func TestProfile_ShouldReportOnboardingGaps(t *testing.T) {
	name := "Deepthi"
	blank := "  "
	p := &user.Profile{}
	assert.True(t, p.NeedsName())
	assert.True(t, p.NeedsGender())
	assert.True(t, p.NeedsLocation())

	p.Name = &name
	assert.False(t, p.NeedsName())
	p.Gender = &blank
	assert.True(t, p.NeedsGender())
}

func TestStore_SaveAnswers_ShouldInsertOneRowPerAnswer(t *testing.T) {
	db := &stubDB{tag: pgconn.NewCommandTag("INSERT 0 2")}
	store := user.NewStore(db)
	saved, err := store.SaveAnswers(context.Background(), "user-1", []user.Answer{
		{QuestionKey: "cycle_regularity", SelectedOptions: []string{"Irregular"}},
		{QuestionKey: "trying_duration", SelectedOptions: []string{"6–12 months"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, saved)
	assert.Contains(t, db.query, "INSERT INTO sakhi_users_answer")
	assert.Len(t, db.args, 6)
}

func TestStore_SaveAnswers_ShouldRejectIncompleteInput(t *testing.T) {
	store := user.NewStore(&stubDB{})
	_, err := store.SaveAnswers(context.Background(), "", []user.Answer{
		{QuestionKey: "q", SelectedOptions: []string{"a"}},
	})
	require.Error(t, err)
	_, err = store.SaveAnswers(context.Background(), "user-1", nil)
	require.Error(t, err)
	_, err = store.SaveAnswers(context.Background(), "user-1", []user.Answer{
		{SelectedOptions: []string{"a"}},
	})
	require.Error(t, err)
	_, err = store.SaveAnswers(context.Background(), "user-1", []user.Answer{
		{QuestionKey: "q"},
	})
	require.Error(t, err)
}

func TestProfile_ShouldDefaultLanguage(t *testing.T) {
	p := &user.Profile{}
	assert.Equal(t, "en", p.Language())
	te := "te"
	p.PreferredLanguage = &te
	assert.Equal(t, "te", p.Language())
}
