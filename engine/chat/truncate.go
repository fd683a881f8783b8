package chat

import "strings"

// MaxReplyLength caps the main reply of a generated response in characters.
const MaxReplyLength = 2000

const followUpsMarker = " Follow ups : "

// Truncate caps text at maxLength characters, preferring a sentence boundary.
// When the response carries a follow-ups section, only the main reply counts
// toward the limit and the follow-ups tail is preserved verbatim. Lengths are
// counted in runes, not bytes, so multibyte script never gets cut
// mid-character. A maxLength too small to hold the ellipsis falls back to
// MaxReplyLength.
func Truncate(text string, maxLength int) string {
	if text == "" {
		return text
	}
	if maxLength < 3 {
		maxLength = MaxReplyLength
	}
	if main, tail, found := strings.Cut(text, followUpsMarker); found {
		return truncateAtBoundary(main, maxLength) + followUpsMarker + tail
	}
	return truncateAtBoundary(text, maxLength)
}

func truncateAtBoundary(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	truncated := []rune(strings.TrimRight(string(runes[:maxLength-3]), " \t\n"))
	boundary := -1
	for i, r := range truncated {
		switch r {
		case '.', '!', '?', '\n':
			boundary = i
		}
	}
	// Cut at the boundary only when it keeps most of the text; otherwise a
	// hard cut with an ellipsis reads better than losing whole paragraphs.
	if boundary > maxLength*7/10 {
		return string(truncated[:boundary+1])
	}
	return string(truncated) + "..."
}
