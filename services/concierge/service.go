package concierge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yadori/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const generateTimeout = 30 * time.Second

const apologyMessage = "Sorry, I am having trouble connecting right now. Please try again later."

const greetingMessage = "Hello! I am your AI concierge. How can I help you today? You can ask me about amenities, local restaurants, or how to use the appliances."

// PropertyInfo feeds the concierge persona with facts about the stay.
type PropertyInfo struct {
	Name         string
	CheckInTime  string
	CheckOutTime string
	WifiSSID     string
	WifiPassword string
}

// DefaultService runs concierge chats over a Generator, persisting
// transcripts in a TranscriptStore.
type DefaultService struct {
	generator Generator
	store     TranscriptStore
	property  PropertyInfo
	logger    *zap.Logger
}

func NewDefaultService(generator Generator, store TranscriptStore, property PropertyInfo, logger *zap.Logger) *DefaultService {
	return &DefaultService{
		generator: generator,
		store:     store,
		property:  property,
		logger:    logger,
	}
}

// CreateSession opens a transcript for a booking, seeded with the assistant
// greeting.
func (s *DefaultService) CreateSession(ctx context.Context, bookingID int) (*models.ChatSession, error) {
	session := &models.ChatSession{
		ID:        uuid.New().String(),
		BookingID: bookingID,
		CreatedAt: time.Now(),
		Messages: []models.ChatMessage{
			{
				ID:        uuid.New().String(),
				Role:      models.ChatRoleAssistant,
				Content:   greetingMessage,
				CreatedAt: time.Now(),
			},
		},
	}
	if err := s.store.Save(ctx, session.ID, session); err != nil {
		return nil, fmt.Errorf("failed to save chat session: %w", err)
	}
	return session, nil
}

// GetSession returns the transcript for a session id.
func (s *DefaultService) GetSession(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	return s.store.Get(ctx, sessionID)
}

// SendMessage appends the guest message, asks the model for a reply, and
// appends that reply. Model or network failures degrade to a canned apology
// in the transcript; they never surface as an error to the chat view.
func (s *DefaultService) SendMessage(ctx context.Context, sessionID, text string) (*models.ChatMessage, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	userMsg := models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      models.ChatRoleUser,
		Content:   text,
		CreatedAt: time.Now(),
	}
	session.Messages = append(session.Messages, userMsg)

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	content, genErr := s.generator.GenerateContent(genCtx, s.buildPrompt(session))
	if genErr != nil || strings.TrimSpace(content) == "" {
		s.logger.Warn("concierge generation failed, degrading to canned reply",
			zap.String("chatSessionID", sessionID), zap.Error(genErr))
		content = apologyMessage
	}

	reply := models.ChatMessage{
		ID:        uuid.New().String(),
		Role:      models.ChatRoleAssistant,
		Content:   content,
		CreatedAt: time.Now(),
	}
	session.Messages = append(session.Messages, reply)

	if err := s.store.Save(ctx, sessionID, session); err != nil {
		s.logger.Warn("failed to persist chat transcript",
			zap.String("chatSessionID", sessionID), zap.Error(err))
	}
	return &reply, nil
}

// buildPrompt renders the persona plus the transcript so far.
func (s *DefaultService) buildPrompt(session *models.ChatSession) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful Minpaku (Private Lodging) Concierge.\n")
	sb.WriteString("Your goal is to assist guests with their stay, provide local tourism advice, and help with check-in/out.\n")
	fmt.Fprintf(&sb, "The accommodation is %q.\n", s.property.Name)
	fmt.Fprintf(&sb, "Check-in is %s, Check-out is %s.\n", s.property.CheckInTime, s.property.CheckOutTime)
	fmt.Fprintf(&sb, "WiFi network is %q, password is %q.\n", s.property.WifiSSID, s.property.WifiPassword)
	sb.WriteString("You must be polite, professional, and welcoming.\n\n")
	sb.WriteString("Conversation so far:\n")
	for _, msg := range session.Messages {
		speaker := "Guest"
		if msg.Role == models.ChatRoleAssistant {
			speaker = "Concierge"
		}
		fmt.Fprintf(&sb, "%s: %s\n", speaker, msg.Content)
	}
	sb.WriteString("Concierge:")
	return sb.String()
}
