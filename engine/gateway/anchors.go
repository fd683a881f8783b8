package gateway

import "sort"

// Curated anchor phrases for each routing category. The anchor vector for a
// category is the element-wise mean of the embeddings of its phrases, so every
// category must keep at least one phrase.

var smallTalkExamples = []string{
	"hi",
	"hello",
	"hey there",
	"hey",
	"thanks",
	"thank you",
	"thanks a lot",
	"thank you so much",
	"who are you",
	"what is your name",
	"may i know your name",
	"how are you",
	"how are you doing",
	"how's it going",
	"what's up",
	"good morning",
	"good afternoon",
	"good evening",
	"good night",
	"bye",
	"goodbye",
	"see you",
	"see you later",
	"talk to you later",
	"nice to meet you",
	"pleased to meet you",
	"ok",
	"okay",
	"cool",
	"great",
	"awesome",
	"no problem",
	"you're welcome",
	"welcome",
}

// medicalSimpleExamples groups phrases by topic; the grouping also feeds the
// intent-description tables.
var medicalSimpleExamples = map[string][]string{
	"IVF": {
		"what is ivf",
		"how ivf treatment works",
		"ivf success rate",
		"ivf process step by step",
		"ivf treatment cost",
		"is ivf painful",
		"ivf risks",
		"who needs ivf",
	},
	"IUI": {
		"what is iui",
		"iui treatment process",
		"iui success rate",
		"difference between iui and ivf",
		"iui cost",
		"is iui painful",
	},
	"ICSI": {
		"what is icsi",
		"icsi vs ivf",
		"when is icsi needed",
		"icsi success rate",
		"icsi treatment steps",
	},
	"FERTILITY": {
		"what is fertility",
		"how to improve fertility naturally",
		"fertility age limit",
		"fertility tests for women",
		"fertility tests for men",
	},
	"FEMALE_INFERTILITY": {
		"what causes female infertility",
		"female infertility symptoms",
		"tests for female infertility",
		"can female infertility be treated",
	},
	"MALE_INFERTILITY": {
		"what causes male infertility",
		"male infertility symptoms",
		"sperm count test",
		"how to improve sperm quality",
	},
	"LAPAROSCOPY": {
		"what is laparoscopy",
		"laparoscopy for infertility",
		"is laparoscopy surgery painful",
		"recovery time after laparoscopy",
	},
	"POSTPARTUM": {
		"what is postpartum period",
		"postpartum recovery tips",
		"postpartum depression symptoms",
		"diet after delivery",
	},
	"CONCEPTION": {
		"what is conception",
		"how conception happens",
		"best time for conception",
		"how long does conception take",
	},
	"EMBRYO_FREEZING": {
		"what is embryo freezing",
		"why embryo freezing is done",
		"how long embryos can be frozen",
		"is embryo freezing safe",
	},
	"SPERM_FREEZING": {
		"what is sperm freezing",
		"how sperm freezing works",
		"how long sperm can be frozen",
		"who should freeze sperm",
	},
	"EGG_FREEZING": {
		"what is egg freezing",
		"best age for egg freezing",
		"egg freezing process",
		"egg freezing success rate",
	},
	"PCOS": {
		"what is pcos",
		"pcos symptoms",
		"pcos treatment",
		"pcos diet plan",
		"can pcos cause infertility",
	},
	"PCOD": {
		"what is pcod",
		"pcod symptoms",
		"pcod vs pcos",
		"pcod treatment",
	},
	"AYURVEDA_TREATMENTS": {
		"ayurveda treatment for infertility",
		"ayurvedic remedies for pcos",
		"is ayurveda safe for fertility",
		"ayurveda diet for pregnancy",
	},
	"HYSTEROSCOPY": {
		"what is hysteroscopy",
		"why hysteroscopy is done",
		"hysteroscopy recovery time",
		"is hysteroscopy painful",
	},
	"PREGNANCY": {
		"early pregnancy symptoms",
		"pregnancy diet tips",
		"safe exercises during pregnancy",
		"pregnancy tests accuracy",
	},
	"SURROGACY": {
		"what is surrogacy",
		"surrogacy process",
		"who needs surrogacy",
		"is surrogacy legal in india",
	},
	"C_SECTION": {
		"what is c section",
		"recovery after c section",
		"c section vs normal delivery",
		"when c section is needed",
	},
	"NATURAL_BIRTH": {
		"what is natural birth",
		"benefits of normal delivery",
		"pain relief for natural birth",
		"preparing for natural delivery",
	},
	"NUTRITION_AND_TESTS": {
		"nutrition needed for ivf",
		"fertility blood tests",
		"hormone tests for pregnancy",
		"vitamins needed for conception",
	},
	"MEDICATION_AND_EXERCISES": {
		"fertility medicines for women",
		"medicines to improve sperm count",
		"exercises for fertility",
		"yoga for pregnancy",
	},
}

var medicalComplexExamples = []string{
	"severe bleeding",
	"baby not moving",
	"sharp abdominal pain",
	"emergency symptoms",
	"heavy bleeding in pregnancy",
	"sudden severe headache",
	"vision problems pregnancy",
	"chest pain difficulty breathing",
	"preeclampsia symptoms",
	"miscarriage signs",
}

var facilityInfoExamples = []string{
	"what is the phone number for vijayawada branch",
	"address of hyderabad clinic",
	"where is your office located",
	"contact number for the clinic",
	"how can I reach the xyz branch",
	"clinic timings",
	"where are you located",
	"phone number for appointment",
	"address for fertility center",
	"branch locations",
	"where are the clinics in vizag",
	"vizag clinic address",
	"visakhapatnam branch location",
	"show me clinics near me",
	"clinic contact details",
	"where can I find your clinic",
	"nearest clinic location",
	"fertility center address",
	"branch office contact",
	"how to reach the clinic",
}

// flattenMedicalSimple returns the medical-simple phrases in a stable order so
// anchor computation is deterministic across restarts.
func flattenMedicalSimple() []string {
	topics := make([]string, 0, len(medicalSimpleExamples))
	for topic := range medicalSimpleExamples {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	phrases := make([]string, 0, 128)
	for _, topic := range topics {
		phrases = append(phrases, medicalSimpleExamples[topic]...)
	}
	return phrases
}
