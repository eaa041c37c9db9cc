package concierge

import (
	"context"
	"errors"

	"yadori/models"
)

// ErrSessionNotFound is returned when a chat session id is unknown or its
// transcript has expired.
var ErrSessionNotFound = errors.New("chat session not found")

// Generator produces a reply for a fully rendered prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// TranscriptStore persists chat transcripts.
type TranscriptStore interface {
	Get(ctx context.Context, sessionID string) (*models.ChatSession, error)
	Save(ctx context.Context, sessionID string, session *models.ChatSession) error
	Delete(ctx context.Context, sessionID string) error
}

// Service is the guest-facing concierge chat.
type Service interface {
	CreateSession(ctx context.Context, bookingID int) (*models.ChatSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error)
	SendMessage(ctx context.Context, sessionID, text string) (*models.ChatMessage, error)
}
