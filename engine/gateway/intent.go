package gateway

import "strings"

// Static keyword tables behind IntentDescription. Substring containment over
// the lowercased input, no vectors involved.

var topicKeywords = []struct {
	topic    string
	keywords []string
}{
	{"IVF", []string{"ivf", "in vitro", "vitro fertilization"}},
	{"IUI", []string{"iui", "intrauterine insemination"}},
	{"ICSI", []string{"icsi", "intracytoplasmic"}},
	{"PCOS", []string{"pcos", "polycystic ovary"}},
	{"PCOD", []string{"pcod", "polycystic ovarian disease"}},
	{"Fertility", []string{"fertility", "fertile", "infertility", "infertile"}},
	{"Pregnancy", []string{"pregnancy", "pregnant", "conception", "conceive"}},
	{"Egg Freezing", []string{"egg freezing", "oocyte freezing", "freeze eggs"}},
	{"Sperm Freezing", []string{"sperm freezing", "freeze sperm"}},
	{"Embryo Freezing", []string{"embryo freezing", "freeze embryo"}},
	{"Laparoscopy", []string{"laparoscopy", "laparoscopic"}},
	{"Hysteroscopy", []string{"hysteroscopy", "hysteroscopic"}},
	{"Surrogacy", []string{"surrogacy", "surrogate"}},
	{"C-Section", []string{"c section", "c-section", "cesarean", "caesarean"}},
	{"Natural Birth", []string{"natural birth", "normal delivery", "vaginal delivery"}},
	{"Postpartum", []string{"postpartum", "after delivery", "post pregnancy"}},
	{"Male Infertility", []string{"male infertility", "sperm count", "sperm quality", "low sperm"}},
	{"Female Infertility", []string{"female infertility", "ovulation", "anovulation"}},
}

var topicIntents = map[string]string{
	"IVF":               "We're here to gently guide you through understanding IVF, so you feel informed and supported every step of the way.",
	"IUI":               "We want to help you understand IUI in a way that feels clear and reassuring as you explore your options.",
	"ICSI":              "We're here to explain ICSI with care, helping you feel confident and informed about this treatment approach.",
	"PCOS":              "We understand that PCOS can feel overwhelming, and we're here to provide gentle, clear information to support you.",
	"PCOD":              "We're here to help you understand PCOD with compassion, offering information that feels supportive and easy to understand.",
	"Fertility":         "We're here to walk alongside you on your fertility journey, offering information with warmth and understanding.",
	"Pregnancy":         "We're here to support you with caring information about pregnancy, helping you feel confident and nurtured.",
	"Egg Freezing":      "We're here to help you understand egg freezing in a supportive way, so you can make decisions that feel right for you.",
	"Sperm Freezing":    "We're here to provide clear, compassionate guidance about sperm freezing to help you plan for the future.",
	"Embryo Freezing":   "We're here to gently explain embryo freezing, helping you understand your options with care and clarity.",
	"Laparoscopy":       "We're here to help you understand laparoscopy with reassurance, so you know what to expect and feel prepared.",
	"Hysteroscopy":      "We want to help you feel at ease by explaining hysteroscopy in a gentle, supportive manner.",
	"Surrogacy":         "We're here to provide thoughtful, compassionate information about surrogacy to help you explore this path.",
	"C-Section":         "We're here to help you understand C-sections with care, so you feel informed and prepared for your journey.",
	"Natural Birth":     "We're here to support your understanding of natural birth with warmth and encouragement.",
	"Postpartum":        "We're here to gently guide you through the postpartum period with care and understanding.",
	"Male Infertility":  "We're here to provide supportive, compassionate information about male fertility, helping you feel understood.",
	"Female Infertility": "We're here to walk with you through understanding female fertility with empathy and care.",
}

var (
	greetingKeywords = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}
	thanksKeywords   = []string{"thank", "thanks"}
	byeKeywords      = []string{"bye", "goodbye", "see you"}
	facilityKeywords = []string{
		"clinic", "address", "location", "phone", "contact", "branch",
		"vizag", "hyderabad", "vijayawada", "where", "timing",
	}
)

const (
	intentGreeting     = "We're so glad you're here — this is a safe space where you can ask anything, and we're ready to listen."
	intentThanks       = "We're touched by your gratitude, and we're always here whenever you need support or guidance."
	intentFarewell     = "We're here whenever you need us — take care of yourself, and remember, you're never alone on this journey."
	intentSmallTalk    = "We're here to listen and support you with warmth and understanding, no matter what's on your mind."
	intentFacility     = "We want to make it easy for you to connect with us, so here's the information you need to reach our care team."
	intentSimpleRAG    = "We're here to provide you with clear, caring information to help you feel more confident and supported."
	intentComplexRAG   = "We're here to offer you thoughtful, detailed guidance to help you understand your journey with clarity and compassion."
	intentGenericVoice = "We're here to support you with care and understanding — you're in a safe space."
)

// IntentDescription produces a patient-facing one-liner describing how the
// assistant is about to help, keyed by detected topic and route. Pure function
// of its inputs.
func IntentDescription(text string, route Route) string {
	lowered := strings.ToLower(text)
	topic := detectTopic(lowered)
	switch route {
	case RouteSLMDirect:
		switch {
		case containsAny(lowered, greetingKeywords):
			return intentGreeting
		case containsAny(lowered, thanksKeywords):
			return intentThanks
		case containsAny(lowered, byeKeywords):
			return intentFarewell
		default:
			return intentSmallTalk
		}
	case RouteSLMRAG:
		if containsAny(lowered, facilityKeywords) {
			return intentFacility
		}
		if intent, ok := topicIntents[topic]; ok {
			return intent
		}
		return intentSimpleRAG
	case RouteOpenAIRAG:
		if intent, ok := topicIntents[topic]; ok {
			return intent
		}
		return intentComplexRAG
	}
	return intentGenericVoice
}

func detectTopic(lowered string) string {
	for _, entry := range topicKeywords {
		if containsAny(lowered, entry.keywords) {
			return entry.topic
		}
	}
	return ""
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
