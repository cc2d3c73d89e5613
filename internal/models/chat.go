package models

import (
	"time"

	"github.com/google/uuid"
	"whd.healthtrends.org/internal/narrative"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one line of the chat transcript.
type ChatMessage struct {
	ID        string           `json:"id"`
	Role      string           `json:"role"`
	Text      string           `json:"text"`
	Intent    narrative.Intent `json:"intent,omitempty"`
	CreatedAt int64            `json:"createdAt"`
}

func NewChatMessage(role, text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// NewGreetingMessage is the assistant message that opens every chat.
func NewGreetingMessage() ChatMessage {
	return NewChatMessage(RoleAssistant, narrative.ChatGreeting)
}

// NewAnswerMessage wraps a rule-based reply.
func NewAnswerMessage(answer narrative.Answer) ChatMessage {
	msg := NewChatMessage(RoleAssistant, answer.Text)
	msg.Intent = answer.Intent
	return msg
}

type ChatRequest struct {
	SelectionRequest
	Question string `json:"question"`
}

// ChatEntry holds the question as asked and the reply to it.
type ChatEntry struct {
	Messages []ChatMessage `json:"messages"`
}
