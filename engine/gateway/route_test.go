package gateway_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janmasethu/sakhi/engine/gateway"
)

func TestThresholds_ShouldPickSmallTalkFirst(t *testing.T) {
	th := gateway.DefaultThresholds()
	route := th.Route(gateway.Scores{
		SmallTalk:      0.9,
		FacilityInfo:   0.9,
		MedicalComplex: 0.1,
		MedicalSimple:  0.1,
	})
	assert.Equal(t, gateway.RouteSLMDirect, route)
}

func TestThresholds_ShouldPreferFacilityOverComplexMedical(t *testing.T) {
	th := gateway.DefaultThresholds()
	route := th.Route(gateway.Scores{
		SmallTalk:      0.1,
		FacilityInfo:   0.55,
		MedicalComplex: 0.9,
		MedicalSimple:  0.1,
	})
	assert.Equal(t, gateway.RouteSLMRAG, route)
}

func TestThresholds_ShouldEscalateComplexOrTiedMedical(t *testing.T) {
	th := gateway.DefaultThresholds()
	route := th.Route(gateway.Scores{
		SmallTalk:      0.2,
		FacilityInfo:   0.2,
		MedicalComplex: 0.7,
		MedicalSimple:  0.6,
	})
	assert.Equal(t, gateway.RouteOpenAIRAG, route)

	// A low tie still escalates: safety bias over cost.
	route = th.Route(gateway.Scores{
		SmallTalk:      0.05,
		FacilityInfo:   0.05,
		MedicalComplex: 0.05,
		MedicalSimple:  0.05,
	})
	assert.Equal(t, gateway.RouteOpenAIRAG, route)
}

func TestThresholds_ShouldRouteConfidentSimpleMedicalToSLM(t *testing.T) {
	th := gateway.DefaultThresholds()
	route := th.Route(gateway.Scores{
		SmallTalk:      0.2,
		FacilityInfo:   0.2,
		MedicalComplex: 0.3,
		MedicalSimple:  0.7,
	})
	assert.Equal(t, gateway.RouteSLMRAG, route)
}

func TestThresholds_ShouldDefaultSafeOnLowConfidence(t *testing.T) {
	th := gateway.DefaultThresholds()
	route := th.Route(gateway.Scores{
		SmallTalk:      0.1,
		FacilityInfo:   0.1,
		MedicalComplex: 0.1,
		MedicalSimple:  0.1,
	})
	assert.Equal(t, gateway.RouteOpenAIRAG, route)
}

func TestThresholds_ShouldFallThroughToDefaultBelowSimpleThreshold(t *testing.T) {
	th := gateway.DefaultThresholds()
	route := th.Route(gateway.Scores{
		SmallTalk:      0.1,
		FacilityInfo:   0.1,
		MedicalComplex: 0.2,
		MedicalSimple:  0.5,
	})
	assert.Equal(t, gateway.RouteOpenAIRAG, route)
}

func TestIntentDescription_ShouldMatchTopicsAndRoutes(t *testing.T) {
	greeting := gateway.IntentDescription("hello there", gateway.RouteSLMDirect)
	assert.Contains(t, greeting, "glad you're here")

	thanks := gateway.IntentDescription("thank you so much", gateway.RouteSLMDirect)
	assert.Contains(t, thanks, "gratitude")

	bye := gateway.IntentDescription("bye for now", gateway.RouteSLMDirect)
	assert.Contains(t, bye, "take care")

	facility := gateway.IntentDescription("what is the clinic address", gateway.RouteSLMRAG)
	assert.Contains(t, facility, "care team")

	ivf := gateway.IntentDescription("How does IVF work?", gateway.RouteSLMRAG)
	assert.Contains(t, ivf, "IVF")

	escalated := gateway.IntentDescription("severe bleeding during pregnancy", gateway.RouteOpenAIRAG)
	assert.NotEmpty(t, escalated)

	fallback := gateway.IntentDescription("random words", gateway.RouteOpenAIRAG)
	assert.Contains(t, fallback, "thoughtful")
}
