package knowledge

import "github.com/janmasethu/sakhi/engine/knowledge/vectordb"

// SourceType tags which corpus produced a retrieval match.
type SourceType string

const (
	SourceDocument SourceType = "DOCUMENT"
	SourceFAQ      SourceType = "FAQ"
)

// Match is a request-scoped retrieval result. Document matches carry the
// heading path and section body; FAQ matches carry the question/answer pair
// plus optional media links.
type Match struct {
	SourceType SourceType
	Similarity float64

	// Document payload
	HeaderPath     string
	SectionContent string

	// FAQ payload
	Question       string
	Answer         string
	YouTubeLink    string
	InfographicURL string
}

func documentMatch(m vectordb.Match) Match {
	return Match{
		SourceType:     SourceDocument,
		Similarity:     m.Score,
		HeaderPath:     metaString(m.Metadata, "header_path"),
		SectionContent: m.Text,
	}
}

func faqMatch(m vectordb.Match) Match {
	return Match{
		SourceType:     SourceFAQ,
		Similarity:     m.Score,
		Question:       metaString(m.Metadata, "question"),
		Answer:         m.Text,
		YouTubeLink:    metaString(m.Metadata, "youtube_link"),
		InfographicURL: metaString(m.Metadata, "infographic_url"),
	}
}

func metaString(metadata map[string]any, key string) string {
	if len(metadata) == 0 {
		return ""
	}
	if value, ok := metadata[key].(string); ok {
		return value
	}
	return ""
}
