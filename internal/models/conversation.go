package models

import "github.com/google/uuid"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationMessage is one turn of a chat session.
type ConversationMessage struct {
	ID       string
	Role     Role
	Content  string
	IsCrisis bool
	Mood     Mood
}

// Conversation is the ordered, append-only transcript of a session.
type Conversation struct {
	messages []ConversationMessage
}

func (c *Conversation) AppendUser(text string) ConversationMessage {
	m := ConversationMessage{ID: uuid.NewString(), Role: RoleUser, Content: text}
	c.messages = append(c.messages, m)
	return m
}

func (c *Conversation) AppendReply(r Reply) ConversationMessage {
	m := ConversationMessage{
		ID:       uuid.NewString(),
		Role:     RoleAssistant,
		Content:  r.Text,
		IsCrisis: r.IsCrisis,
		Mood:     r.Mood,
	}
	c.messages = append(c.messages, m)
	return m
}

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []ConversationMessage {
	return append([]ConversationMessage(nil), c.messages...)
}

// Last returns up to n most recent messages, oldest first.
func (c *Conversation) Last(n int) []ConversationMessage {
	if n <= 0 || len(c.messages) == 0 {
		return nil
	}
	start := len(c.messages) - n
	if start < 0 {
		start = 0
	}
	return append([]ConversationMessage(nil), c.messages[start:]...)
}

func (c *Conversation) Len() int { return len(c.messages) }
