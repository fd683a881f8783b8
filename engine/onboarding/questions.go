package onboarding

import (
	"fmt"
	"sort"
	"strings"
)

// QuestionType distinguishes free-number inputs from fixed-choice prompts.
type QuestionType string

const (
	TypeNumber QuestionType = "number"
	TypeRadio  QuestionType = "radio"
)

// Question is one step of a relationship-specific onboarding flow. The text
// and options are frontend contract; do not rephrase them.
type Question struct {
	FieldName          string       `json:"field_name"`
	Text               string       `json:"text"`
	Type               QuestionType `json:"type"`
	Options            []string     `json:"options,omitempty"`
	AllowNotApplicable bool         `json:"allow_not_applicable"`
}

var questionsHerself = []Question{
	{FieldName: "age", Text: "What is your age?", Type: TypeNumber},
	{
		FieldName: "tryingDuration",
		Text:      "How long have you been actively trying to conceive?",
		Type:      TypeRadio,
		Options:   []string{"Less than 6 months", "6–12 months", "1–2 years", "More than 2 years"},
	},
	{
		FieldName: "previousTreatments",
		Text:      "Have you had any previous fertility treatments?",
		Type:      TypeRadio,
		Options:   []string{"No / first time", "Medications only", "IUI", "IVF"},
	},
	{
		FieldName: "diagnosis",
		Text:      "Have you or your partner been diagnosed with any conditions?",
		Type:      TypeRadio,
		Options:   []string{"Condition related to me", "Partner condition", "Both", "Unexplained", "Not diagnosed yet"},
	},
	{FieldName: "partnerAge", Text: "What is your partner's age?", Type: TypeNumber, AllowNotApplicable: true},
	{
		FieldName: "previousPregnancy",
		Text:      "Have you ever been pregnant before?",
		Type:      TypeRadio,
		Options:   []string{"Never", "Had a child", "Loss / miscarriage"},
	},
	{
		FieldName: "priority",
		Text:      "What is your biggest priority right now?",
		Type:      TypeRadio,
		Options:   []string{"Medical process", "Emotional stress", "Financial planning", "Lifestyle / diet"},
	},
}

var questionsHimself = []Question{
	{
		FieldName: "tryingForBaby",
		Text:      "Are you and your partner trying to have a baby?",
		Type:      TypeRadio,
		Options:   []string{"Actively trying", "Planning soon", "Exploring options"},
	},
	{
		FieldName: "smokingDrinking",
		Text:      "Do you have smoking and drinking habits?",
		Type:      TypeRadio,
		Options:   []string{"No", "Smoke occasionally", "Drink occasionally", "Regularly"},
	},
	{
		FieldName: "fertilityTests",
		Text:      "Have you or your partner done fertility tests?",
		Type:      TypeRadio,
		Options:   []string{"No tests", "Partner tested", "Semen analysis", "Both tested"},
	},
	{
		FieldName: "healthProblems",
		Text:      "Do you or your partner have health problems?",
		Type:      TypeRadio,
		Options:   []string{"No problems", "I have condition", "Partner has condition", "Both"},
	},
	{
		FieldName: "previousIVF",
		Text:      "Has your partner had IVF treatments in the past?",
		Type:      TypeRadio,
		Options:   []string{"First time", "One cycle", "Multiple cycles", "Not sure"},
	},
}

var questionsFather = []Question{
	{
		FieldName: "duration",
		Text:      "How long is your daughter trying to have a baby?",
		Type:      TypeRadio,
		Options:   []string{"About a year", "Few years", "Long time", "Not sure"},
	},
	{
		FieldName: "treatment",
		Text:      "Is she seeing a doctor or taking treatment?",
		Type:      TypeRadio,
		Options:   []string{"Yes under care", "No, not started", "Not aware"},
	},
	{
		FieldName: "healthIssues",
		Text:      "Does she have health problems?",
		Type:      TypeRadio,
		Options:   []string{"Yes mentioned", "Not that I know", "Not sure"},
	},
	{
		FieldName: "emotionalState",
		Text:      "How is she feeling emotionally?",
		Type:      TypeRadio,
		Options:   []string{"Quiet / worried", "Tries positive", "Very concerned"},
	},
	{
		FieldName: "previousIVF",
		Text:      "Did she have IVF treatments in the past?",
		Type:      TypeRadio,
		Options:   []string{"First time", "Tried before", "Not sure"},
	},
}

var questionsMother = []Question{
	{
		FieldName: "duration",
		Text:      "How long is your daughter trying?",
		Type:      TypeRadio,
		Options:   []string{"Less than a year", "1–2 years", "More than 2 years"},
	},
	{
		FieldName: "medicalCare",
		Text:      "Has she seen a doctor or done tests?",
		Type:      TypeRadio,
		Options:   []string{"Seeing specialist", "Done tests", "Encouraging her", "Not sure"},
	},
	{
		FieldName: "healthIssues",
		Text:      "Does she have health problems?",
		Type:      TypeRadio,
		Options:   []string{"Yes told me", "Healthy", "Suspect issue"},
	},
	{
		FieldName: "emotionalState",
		Text:      "How is she feeling about trying?",
		Type:      TypeRadio,
		Options:   []string{"Stressed / disheartened", "Hopeful but difficult", "Confides in me"},
	},
	{
		FieldName: "previousIVF",
		Text:      "Did she have IVF treatments?",
		Type:      TypeRadio,
		Options:   []string{"First attempt", "One cycle", "Multiple attempts"},
	},
}

var questionsFatherInLaw = []Question{
	{
		FieldName: "duration",
		Text:      "How long is your daughter-in-law trying?",
		Type:      TypeRadio,
		Options:   []string{"Over a year", "Few years", "Not sure"},
	},
	{
		FieldName: "treatment",
		Text:      "Is she seeing a doctor?",
		Type:      TypeRadio,
		Options:   []string{"Yes, seeing someone", "Don't believe so", "Private matter"},
	},
	{
		FieldName: "healthIssues",
		Text:      "Does she have health problems?",
		Type:      TypeRadio,
		Options:   []string{"Not told", "Not aware of details"},
	},
	{
		FieldName: "emotionalState",
		Text:      "How is she feeling?",
		Type:      TypeRadio,
		Options:   []string{"Manages well", "Quiet / worried", "Don't discuss openly"},
	},
	{
		FieldName: "previousIVF",
		Text:      "Did she have IVF treatments?",
		Type:      TypeRadio,
		Options:   []string{"Don't think so", "Tried before", "Not sure"},
	},
}

var questionsMotherInLaw = []Question{
	{
		FieldName: "duration",
		Text:      "How long is your daughter-in-law trying?",
		Type:      TypeRadio,
		Options:   []string{"About a year", "Few years", "Long time"},
	},
	{
		FieldName: "treatment",
		Text:      "Is she taking treatment?",
		Type:      TypeRadio,
		Options:   []string{"Yes, good doctor", "Suggested doctors", "Not fully aware"},
	},
	{
		FieldName: "emotionalState",
		Text:      "Do you see her stressed or worried?",
		Type:      TypeRadio,
		Options:   []string{"Clearly worried", "Tries to hide it", "Handling well"},
	},
	{
		FieldName: "support",
		Text:      "How do you help or talk to her?",
		Type:      TypeRadio,
		Options:   []string{"Give advice", "Listen and comfort", "Avoid talking to reduce pressure"},
	},
	{
		FieldName: "previousIVF",
		Text:      "Did she have IVF treatments?",
		Type:      TypeRadio,
		Options:   []string{"First time", "Once before", "Few times"},
	},
}

var questionsSibling = []Question{
	{
		FieldName: "duration",
		Text:      "How long is your sibling trying?",
		Type:      TypeRadio,
		Options:   []string{"About a year", "Couple years", "Long time"},
	},
	{
		FieldName: "treatment",
		Text:      "Are they seeing a doctor?",
		Type:      TypeRadio,
		Options:   []string{"Yes specialist", "Yes but private", "Not sure"},
	},
	{
		FieldName: "healthIssues",
		Text:      "Do they have health problems?",
		Type:      TypeRadio,
		Options:   []string{"Yes mentioned", "Not that I know", "Not shared"},
	},
	{
		FieldName: "emotionalState",
		Text:      "How are they feeling?",
		Type:      TypeRadio,
		Options:   []string{"Stressed / frustrated", "Trying to be positive", "Don't open up"},
	},
	{
		FieldName: "previousIVF",
		Text:      "Have they gone through IVF?",
		Type:      TypeRadio,
		Options:   []string{"First time", "Been through it", "Don't know details"},
	},
}

var relationshipQuestions = map[string][]Question{
	"herself":       questionsHerself,
	"himself":       questionsHimself,
	"father":        questionsFather,
	"mother":        questionsMother,
	"father_in_law": questionsFatherInLaw,
	"mother_in_law": questionsMotherInLaw,
	"sibling":       questionsSibling,
}

// QuestionsFor returns the fixed question set for a relationship type.
func QuestionsFor(relationshipType string) ([]Question, error) {
	questions, ok := relationshipQuestions[relationshipType]
	if !ok {
		valid := make([]string, 0, len(relationshipQuestions))
		for key := range relationshipQuestions {
			valid = append(valid, key)
		}
		sort.Strings(valid)
		return nil, fmt.Errorf("onboarding: invalid relationship_type %q, must be one of: %s",
			relationshipType, strings.Join(valid, ", "))
	}
	return questions, nil
}
