package llm

import (
	"fmt"
	"strings"
)

const safetyRules = `SAFETY RULES:
- Do NOT give exact medications, dosages, or prescriptions.
- Do NOT diagnose medical conditions.
- Give general, supportive guidance only.
- Recommend consulting a doctor for ANY medical decisions.
- If the user expresses danger signs (bleeding, severe pain, fainting), advise immediate medical attention.`

const responseStructure = `MANDATORY RESPONSE STRUCTURE:
1. Write your main conversational reply with caring tone. If a usable name is available, open with it naturally.
2. After the main reply, add EXACTLY two newline characters.
3. Write ' Follow ups : ' (space before 'Follow', space after 'ups', space after colon).
4. Immediately after the colon and space (NO extra newlines), write the first question.
5. Each subsequent question goes on a new line.
CRITICAL: Do NOT add blank lines after ' Follow ups : ' - the first question must appear immediately.
IMPORTANT: Each follow-up question MUST be under 65 characters long.`

// persona selects the assistant identity for the caller's relationship to the
// patient.
func persona(relation string) string {
	switch strings.ToLower(strings.TrimSpace(relation)) {
	case "husband":
		return "You are Sakhi, a warm emotional guide for a husband supporting his wife through fertility or pregnancy."
	case "mother":
		return "You are Sakhi, a patient, caring guide for a mother helping her daughter through fertility or pregnancy."
	default:
		return "You are Sakhi, a compassionate fertility and pregnancy support companion."
	}
}

func historyBlock(history []Message) string {
	if len(history) == 0 {
		return "### Conversation History:\nNone."
	}
	var b strings.Builder
	b.WriteString("### Conversation History:")
	for _, msg := range history {
		speaker := "User"
		if msg.Role == RoleAssistant {
			speaker = "Sakhi"
		}
		b.WriteString(fmt.Sprintf("\n%s: %s", speaker, msg.Content))
	}
	return b.String()
}

func nameLine(userName string) string {
	if name := friendlyName(userName); name != "" {
		return "User name: " + name
	}
	return "User name: Not provided"
}

const languageRules = "Match the language of the user prompt: respond ONLY in the target language. " +
	"If the target language is Tinglish, write Telugu words using Roman letters; do not switch to English.\n" +
	"Keep sentences short, clear, and grammatically simple."

const greetingRule = "If this is the first turn, start with a warm greeting and the name. " +
	"If this is a follow-up, do NOT say 'Hi' again; give a brief caring acknowledgement with the name instead. " +
	"If no usable name, use a gentle greeting without a name."

// SmallTalkPrompt renders the system prompt for the non-medical companion
// path. No retrieval context is injected and medical topics are forbidden.
func SmallTalkPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(persona(req.Relation))
	b.WriteString("\nUser is NOT asking medical questions.\n")
	b.WriteString("Give a warm, supportive, friendly, empathetic reply.\n")
	b.WriteString("Avoid medical or fertility information completely.\n")
	b.WriteString(greetingRule)
	b.WriteString("\n")
	b.WriteString(languageRules)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Always answer in %s.\n", req.Language)
	b.WriteString(nameLine(req.UserName))
	b.WriteString("\nMaintain continuity using the conversation history.\n")
	b.WriteString(historyBlock(req.History))
	return b.String()
}

// MedicalPrompt renders the system prompt for the retrieval-grounded path:
// persona, safety rules, the mandatory follow-ups structure, and the formatted
// knowledge context (or an explicit "none retrieved" block).
func MedicalPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(persona(req.Relation))
	b.WriteString("\nUse retrieved knowledge when available. If none is retrieved, you may give general, high-level, medically safe guidance.\n")
	b.WriteString("Be conservative and clearly state when guidance is general; advise consulting a doctor for specifics.\n")
	b.WriteString(safetyRules)
	b.WriteString("\n")
	b.WriteString(greetingRule)
	b.WriteString("\n")
	b.WriteString(languageRules)
	b.WriteString("\n\n")
	b.WriteString(responseStructure)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Always answer in %s.\n", req.Language)
	b.WriteString(nameLine(req.UserName))
	b.WriteString("\nMaintain continuity using the conversation history.\n")
	b.WriteString(historyBlock(req.History))
	if strings.TrimSpace(req.Context) != "" {
		b.WriteString("\n\n### Retrieved Knowledge:\n")
		b.WriteString(req.Context)
		b.WriteString("\nUse the above knowledge directly. If something is unclear, stay conservative and safe.")
	} else {
		b.WriteString("\n\n### Retrieved Knowledge:\nNone.")
		b.WriteString("\nNo knowledge retrieved. Provide general, high-level, medically safe guidance.")
		b.WriteString("\nState clearly that advice is general and suggest consulting a doctor for specifics.")
	}
	return b.String()
}
