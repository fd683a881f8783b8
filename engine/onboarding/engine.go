// Package onboarding implements the stateless guided-questionnaire engine.
// The caller holds all state (current step plus accumulated answers); each
// call either returns the next question or reports completion.
package onboarding

// Request is the caller-held flow state.
type Request struct {
	ParentProfileID  string         `json:"parent_profile_id"`
	RelationshipType string         `json:"relationship_type"`
	CurrentStep      int            `json:"current_step"`
	Answers          map[string]any `json:"answers_json"`
}

// StepResponse is either the next question (Completed=false) or the
// completion payload echoing the accumulated answers.
type StepResponse struct {
	Completed        bool           `json:"completed"`
	Step             int            `json:"step,omitempty"`
	TotalSteps       int            `json:"total_steps,omitempty"`
	Question         *Question      `json:"question,omitempty"`
	ParentProfileID  string         `json:"parent_profile_id,omitempty"`
	RelationshipType string         `json:"relationship_type,omitempty"`
	Answers          map[string]any `json:"answers_json,omitempty"`
}

// NextQuestion advances the flow. Steps are 1-indexed; an out-of-bounds step
// falls back to the first unanswered question.
func NextQuestion(req Request) (StepResponse, error) {
	questions, err := QuestionsFor(req.RelationshipType)
	if err != nil {
		return StepResponse{}, err
	}
	if IsComplete(req.Answers, questions) {
		return StepResponse{
			Completed:        true,
			ParentProfileID:  req.ParentProfileID,
			RelationshipType: req.RelationshipType,
			Answers:          req.Answers,
		}, nil
	}
	index := req.CurrentStep - 1
	if index < 0 || index >= len(questions) {
		index = firstUnansweredIndex(req.Answers, questions)
	}
	question := questions[index]
	return StepResponse{
		Step:       index + 1,
		TotalSteps: len(questions),
		Question:   &question,
	}, nil
}

// IsComplete reports whether every required question has a non-nil answer.
func IsComplete(answers map[string]any, questions []Question) bool {
	for _, question := range questions {
		if question.AllowNotApplicable {
			continue
		}
		value, ok := answers[question.FieldName]
		if !ok || value == nil {
			return false
		}
	}
	return true
}

func firstUnansweredIndex(answers map[string]any, questions []Question) int {
	for i, question := range questions {
		value, ok := answers[question.FieldName]
		if !ok {
			return i
		}
		if value == nil && !question.AllowNotApplicable {
			return i
		}
	}
	return len(questions) - 1
}
