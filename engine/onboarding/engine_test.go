package onboarding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janmasethu/sakhi/engine/onboarding"
)

func TestNextQuestion_ShouldWalkStepsInOrder(t *testing.T) {
	resp, err := onboarding.NextQuestion(onboarding.Request{
		RelationshipType: "herself",
		CurrentStep:      1,
		Answers:          map[string]any{},
	})
	require.NoError(t, err)
	assert.False(t, resp.Completed)
	assert.Equal(t, 1, resp.Step)
	assert.Equal(t, 7, resp.TotalSteps)
	require.NotNil(t, resp.Question)
	assert.Equal(t, "age", resp.Question.FieldName)
	assert.Equal(t, onboarding.TypeNumber, resp.Question.Type)

	resp, err = onboarding.NextQuestion(onboarding.Request{
		RelationshipType: "herself",
		CurrentStep:      2,
		Answers:          map[string]any{"age": 29},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Question)
	assert.Equal(t, "tryingDuration", resp.Question.FieldName)
	assert.NotEmpty(t, resp.Question.Options)
}

func TestNextQuestion_ShouldRecoverFromOutOfBoundsStep(t *testing.T) {
	resp, err := onboarding.NextQuestion(onboarding.Request{
		RelationshipType: "mother",
		CurrentStep:      42,
		Answers:          map[string]any{"duration": "1–2 years"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Question)
	assert.Equal(t, 2, resp.Step)
	assert.Equal(t, "medicalCare", resp.Question.FieldName)
}

func TestNextQuestion_ShouldReportCompletion(t *testing.T) {
	answers := map[string]any{
		"tryingForBaby":   "Actively trying",
		"smokingDrinking": "No",
		"fertilityTests":  "No tests",
		"healthProblems":  "No problems",
		"previousIVF":     "First time",
	}
	resp, err := onboarding.NextQuestion(onboarding.Request{
		ParentProfileID:  "pp-1",
		RelationshipType: "himself",
		CurrentStep:      6,
		Answers:          answers,
	})
	require.NoError(t, err)
	assert.True(t, resp.Completed)
	assert.Equal(t, "pp-1", resp.ParentProfileID)
	assert.Equal(t, "himself", resp.RelationshipType)
	assert.Equal(t, answers, resp.Answers)
}

func TestNextQuestion_ShouldRejectUnknownRelationship(t *testing.T) {
	_, err := onboarding.NextQuestion(onboarding.Request{RelationshipType: "cousin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid relationship_type")
}

func TestIsComplete_ShouldSkipOptionalQuestions(t *testing.T) {
	questions, err := onboarding.QuestionsFor("herself")
	require.NoError(t, err)

	// partnerAge is optional; complete without it.
	answers := map[string]any{
		"age":                30,
		"tryingDuration":     "1–2 years",
		"previousTreatments": "IUI",
		"diagnosis":          "Unexplained",
		"previousPregnancy":  "Never",
		"priority":           "Medical process",
	}
	assert.True(t, onboarding.IsComplete(answers, questions))

	// A required field set to nil keeps the flow open.
	answers["diagnosis"] = nil
	assert.False(t, onboarding.IsComplete(answers, questions))
}
