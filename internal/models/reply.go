package models

// Reply is what the response pipeline hands back for a chat turn.
type Reply struct {
	Text             string `json:"text"`
	Mood             Mood   `json:"mood"`
	IsCrisis         bool   `json:"isCrisis,omitempty"`
	SuggestResources bool   `json:"suggestResources,omitempty"`
}

// Analysis is the structured reading of a journal entry or mood note.
type Analysis struct {
	SentimentScore float64  `json:"sentimentScore"`
	Emotions       []string `json:"emotions"`
	Response       string   `json:"response"`
}

// KnowledgeCategory is one topic of the offline knowledge base.
type KnowledgeCategory struct {
	ID        string   `yaml:"id"`
	Keywords  []string `yaml:"keywords"`
	Responses []string `yaml:"responses"`
	Mood      Mood     `yaml:"mood"`
}
