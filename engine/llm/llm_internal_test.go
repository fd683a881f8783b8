package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendlyName_ShouldNormalizeStoredNames(t *testing.T) {
	assert.Equal(t, "Deepthi", friendlyName("Deepthi"))
	assert.Equal(t, "Deepthi", friendlyName("  Deepthi Rao  "))
	assert.Equal(t, "", friendlyName(""))
	assert.Equal(t, "", friendlyName("null"))
	assert.Equal(t, "", friendlyName("Unknown"))
	assert.Equal(t, 14, len(friendlyName("Venkatasubrahmanyam")))
}

func TestPersona_ShouldFollowRelation(t *testing.T) {
	assert.Contains(t, persona("husband"), "husband supporting his wife")
	assert.Contains(t, persona("Mother"), "mother helping her daughter")
	assert.Contains(t, persona(""), "compassionate fertility and pregnancy support companion")
	assert.Contains(t, persona("self"), "compassionate fertility and pregnancy support companion")
}

func TestParseClassification_ShouldTolerateLooseOutput(t *testing.T) {
	out := parseClassification(`{"language": "Telugu", "signal": "yes"}`)
	assert.Equal(t, "Telugu", out.Language)
	assert.Equal(t, "YES", out.Signal)
	assert.True(t, out.Medical())

	out = parseClassification("```json\n{\"language\": \"Tinglish\", \"signal\": \"NO\"}\n```")
	assert.Equal(t, "Tinglish", out.Language)
	assert.False(t, out.Medical())

	out = parseClassification("not json at all")
	assert.Equal(t, "en", out.Language)
	assert.Equal(t, "NO", out.Signal)
}

func TestHistoryBlock_ShouldLabelSpeakers(t *testing.T) {
	block := historyBlock([]Message{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "hi there"},
	})
	assert.Contains(t, block, "User: hello")
	assert.Contains(t, block, "Sakhi: hi there")

	assert.Contains(t, historyBlock(nil), "None.")
}
