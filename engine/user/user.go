package user

import (
	"regexp"
	"strings"
	"time"
)

// Profile is one row of the assistant's user table. Pointer fields are
// nullable columns that inline onboarding fills in over successive turns.
type Profile struct {
	UserID            string     `db:"user_id"`
	PhoneNumber       *string    `db:"phone_number"`
	Name              *string    `db:"name"`
	Gender            *string    `db:"gender"`
	Location          *string    `db:"location"`
	PreferredLanguage *string    `db:"preferred_language"`
	RelationToPatient *string    `db:"relation_to_patient"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         *time.Time `db:"updated_at"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// DisplayName returns the stored name or empty when onboarding has not
// captured one yet.
func (p *Profile) DisplayName() string { return deref(p.Name) }

func (p *Profile) Language() string {
	if lang := deref(p.PreferredLanguage); lang != "" {
		return lang
	}
	return "en"
}

func (p *Profile) Relation() string { return deref(p.RelationToPatient) }

// NeedsName, NeedsGender and NeedsLocation drive the inline onboarding state
// machine: the first unset field determines the next question.
func (p *Profile) NeedsName() bool     { return deref(p.Name) == "" }
func (p *Profile) NeedsGender() bool   { return deref(p.Gender) == "" }
func (p *Profile) NeedsLocation() bool { return deref(p.Location) == "" }

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips formatting and the Indian country prefix so lookups by
// phone are stable regardless of how the number was entered.
func NormalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) > 10 && strings.HasPrefix(digits, "91") {
		digits = digits[2:]
	}
	return digits
}
