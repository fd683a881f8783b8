package embedding

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Embedder converts text into fixed-dimension float vectors. Implementations
// must be safe for concurrent use.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// Error marks a failure of the embedding capability for a specific input.
// Callers propagate it unchanged; retry policy belongs to the orchestration
// layer.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("embedding %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsError reports whether err originates from the embedding capability.
func IsError(err error) bool {
	var target *Error
	return errors.As(err, &target)
}

var garbageRunes = regexp.MustCompile(`[^\w\s,.!?]`)
var extraSpaces = regexp.MustCompile(`\s+`)

// CleanText strips emojis, newlines and redundant whitespace so the embedding
// input stays stable across chat surfaces.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	cleaned := garbageRunes.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = extraSpaces.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
