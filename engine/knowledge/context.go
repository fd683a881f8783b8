package knowledge

import (
	"fmt"
	"strings"
)

// NoRelevantInformation is returned instead of an empty context string;
// downstream prompt construction depends on a non-empty placeholder.
const NoRelevantInformation = "No relevant information found."

// FormatContext renders merged matches into a single context string for prompt
// injection. Document blocks come first in input order; the first FAQ video
// link seen is appended once after all narrative content. An FAQ answer is
// used as fallback content only when no document block precedes it.
func FormatContext(matches []Match) string {
	if len(matches) == 0 {
		return NoRelevantInformation
	}
	var content strings.Builder
	videoLink := ""
	for i := range matches {
		match := matches[i]
		switch match.SourceType {
		case SourceFAQ:
			if videoLink == "" && match.YouTubeLink != "" {
				videoLink = match.YouTubeLink
			}
			if content.Len() == 0 {
				content.WriteString(fmt.Sprintf("FAQ Answer: %s\n", match.Answer))
			}
		default:
			path := match.HeaderPath
			if path == "" {
				path = "Unknown Path"
			}
			content.WriteString(fmt.Sprintf(
				"\n--- SOURCE: DOCUMENT (Relevance: %.2f) ---\nPath: %s\nContent: %s\n--------------------------------------------------\n",
				match.Similarity, path, match.SectionContent,
			))
		}
	}
	rendered := content.String()
	if videoLink != "" {
		rendered += fmt.Sprintf("\n\n*** RELEVANT VIDEO ***\nYouTube: %s\n", videoLink)
	}
	return rendered
}
