package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janmasethu/sakhi/engine/llm"
)

func TestMedicalPrompt_ShouldInjectRetrievedKnowledge(t *testing.T) {
	prompt := llm.MedicalPrompt(llm.Request{
		Message:  "how much does ivf cost",
		Language: "en",
		UserName: "Deepthi",
		Context:  "--- SOURCE: DOCUMENT (Relevance: 0.91) ---\nPath: IVF > Costs\nContent: details\n",
	})
	assert.Contains(t, prompt, "SAFETY RULES:")
	assert.Contains(t, prompt, "### Retrieved Knowledge:")
	assert.Contains(t, prompt, "IVF > Costs")
	assert.Contains(t, prompt, " Follow ups : ")
	assert.Contains(t, prompt, "User name: Deepthi")
	assert.Contains(t, prompt, "Always answer in en.")
}

func TestMedicalPrompt_ShouldFallBackWhenNothingRetrieved(t *testing.T) {
	prompt := llm.MedicalPrompt(llm.Request{Message: "hi", Language: "en"})
	assert.Contains(t, prompt, "### Retrieved Knowledge:\nNone.")
	assert.Contains(t, prompt, "Provide general, high-level, medically safe guidance.")
	assert.Contains(t, prompt, "User name: Not provided")
}

func TestSmallTalkPrompt_ShouldExcludeMedicalMachinery(t *testing.T) {
	prompt := llm.SmallTalkPrompt(llm.Request{Message: "good morning", Language: "Tinglish"})
	assert.Contains(t, prompt, "Avoid medical or fertility information completely.")
	assert.NotContains(t, prompt, "SAFETY RULES:")
	assert.NotContains(t, prompt, "Retrieved Knowledge")
	assert.Contains(t, prompt, "Always answer in Tinglish.")
}
