package ai

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mindease/internal/models"
)

// HistoryTurns is how many previous messages are quoted into a chat prompt.
const HistoryTurns = 3

// ChatPrompt builds the full persona prompt for the primary tier.
func ChatPrompt(text string, history []models.ConversationMessage) string {
	if len(history) > HistoryTurns {
		history = history[len(history)-HistoryTurns:]
	}

	var b strings.Builder
	b.WriteString(`You are MindEase, a highly trained AI emotional companion for university students.
Your persona is a wise, non-judgmental and supportive mentor or senior student.

Guidelines:
- Tone: warm, validating and calm, but sharp and insightful.
- Avoid generic "I am an AI" disclaimers unless necessary for safety.
- Validate their feelings deeply ("It makes sense you feel x because y").
- Offer one tiny, actionable reframing or comforting thought.
- Review the previous chat so the reply flows naturally. Do not repeat introductions.

Previous Chat:
`)
	for _, m := range history {
		speaker := "MindEase"
		if m.Role == models.RoleUser {
			speaker = "Student"
		}
		fmt.Fprintf(&b, "%s: %q\n", speaker, m.Content)
	}
	fmt.Fprintf(&b, "\nCurrent User Input: %q\n\n", text)
	b.WriteString(`Respond in valid JSON format ONLY:
{
  "mood": "one of: happy, sad, anxious, calm, neutral",
  "text": "Your response here (max 2-3 sentences, conversational and real)"
}
`)
	return b.String()
}

// SimpleChatPrompt is the reduced prompt for the secondary tier.
func SimpleChatPrompt(text string) string {
	return fmt.Sprintf(`You are MindEase, a friendly emotional support AI.
User said: %q
Reply in JSON: { "text": "...", "mood": "neutral" }
`, text)
}

// AnalysisPrompt asks for a sentiment reading of a journal entry.
func AnalysisPrompt(text string) string {
	return fmt.Sprintf(`As an emotional intelligence engine, analyze this journal entry from a university student.
Entry: %q

Tasks:
1. Calculate a sentiment score (0-100).
2. Extract 1-3 specific emotional themes (e.g. "Academic Burnout", "Social Envy", "Growth Mindset").
3. Compose a companion note: a short, insightful comment that validates their situation and offers a small perspective shift.

Return JSON ONLY:
{
  "sentimentScore": number,
  "emotions": ["tag1", "tag2"],
  "response": "The companion note string"
}
`, text)
}

// SimpleAnalysisPrompt is the reduced analysis prompt for the secondary tier.
func SimpleAnalysisPrompt(text string) string {
	return fmt.Sprintf(`Analyze this journal entry.
Entry: %q
1. Sentiment Score (0-100).
2. 1-3 mood tags.
3. Short empathetic response (2 sentences).
Return JSON ONLY: { "sentimentScore": number, "emotions": [], "response": "" }
`, text)
}
