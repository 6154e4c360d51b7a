// Package crisis detects self-harm language and produces the fixed
// supportive reply that bypasses every other response tier.
package crisis

import (
	"strings"

	"github.com/dmitrijs2005/mindease/internal/models"
)

// Phrases is the fixed list checked by Classify, in lowercase.
var Phrases = []string{
	"want to die",
	"kill myself",
	"hurt myself",
	"suicide",
	"end it all",
	"can't go on",
	"better off dead",
}

const replyText = "I'm really glad you told me this. You don't have to go through this alone. " +
	"While I'm an AI and can't provide professional help, there are people who care and can support you. " +
	"Would you consider reaching out to a trusted friend or contacting emergency services?"

// Classify reports whether text contains any crisis phrase. Matching is a
// case-insensitive substring test.
func Classify(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range Phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Reply is the response shown when Classify fires.
func Reply() models.Reply {
	return models.Reply{
		Text:             replyText,
		Mood:             models.MoodAnxious,
		IsCrisis:         true,
		SuggestResources: true,
	}
}
