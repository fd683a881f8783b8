package gateway

// Route names the downstream processing path chosen for a user message.
type Route string

const (
	// RouteSLMDirect answers small talk with the small model, no retrieval.
	RouteSLMDirect Route = "slm_direct"
	// RouteSLMRAG answers simple medical and facility queries with retrieval
	// plus the small model.
	RouteSLMRAG Route = "slm_rag"
	// RouteOpenAIRAG answers complex medical queries (and anything ambiguous)
	// with retrieval plus the full-capability model.
	RouteOpenAIRAG Route = "openai_rag"
)

func (r Route) String() string {
	return string(r)
}

// Scores holds the cosine similarity of a query against the four category
// anchors.
type Scores struct {
	SmallTalk      float64
	MedicalSimple  float64
	MedicalComplex float64
	FacilityInfo   float64
}

// Thresholds carries the routing cutoffs. The asymmetry is deliberate: small
// talk needs high confidence so real medical questions are never dismissed as
// chit-chat, while the facility cutoff is low to maximize recall on a narrow,
// low-risk category.
type Thresholds struct {
	SmallTalk     float64
	MedicalSimple float64
	FacilityInfo  float64
}

// DefaultThresholds returns the production routing cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SmallTalk:     0.75,
		MedicalSimple: 0.65,
		FacilityInfo:  0.50,
	}
}

// Route applies the ordered decision cascade. Rule order matters: facility
// queries are checked before the medical-complexity comparison so clinic-info
// questions are never escalated to the complex-medical path, and any tie
// between complexity tiers resolves to the most capable route.
func (t Thresholds) Route(s Scores) Route {
	if s.SmallTalk >= t.SmallTalk {
		return RouteSLMDirect
	}
	if s.FacilityInfo >= t.FacilityInfo {
		return RouteSLMRAG
	}
	if s.MedicalComplex >= s.MedicalSimple {
		return RouteOpenAIRAG
	}
	if s.MedicalSimple >= t.MedicalSimple {
		return RouteSLMRAG
	}
	return RouteOpenAIRAG
}
