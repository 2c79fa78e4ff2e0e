package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/llm"
	"github.com/pleaderai/backend/internal/models"
	"github.com/pleaderai/backend/internal/validate"
)

const (
	maxMessageLength = 5000
	titleLimit       = 50
	contextWindow    = 5 // messages of history sent to the model
	historyLimit     = 100
)

const (
	ModeConcise  = "concise"
	ModeDetailed = "detailed"
)

// Service orchestrates a conversation turn: resolve or create the chat,
// append the user message, generate a reply, persist both.
type Service struct {
	store   Store
	gateway llm.Gateway
}

func NewService(store Store, gw llm.Gateway) *Service {
	return &Service{store: store, gateway: gw}
}

type SendRequest struct {
	ChatID  string `json:"chat_id,omitempty"`
	Message string `json:"message"`
	Mode    string `json:"mode,omitempty"` // "concise" or "detailed"
}

type SendResponse struct {
	ChatID  string         `json:"chat_id"`
	Message models.Message `json:"message"`
}

func (s *Service) Send(ctx context.Context, userID string, req SendRequest) (*SendResponse, error) {
	content := validate.Sanitize(req.Message, maxMessageLength)
	if content == "" {
		return nil, apperr.Validation("message", "message cannot be empty")
	}

	mode := req.Mode
	if mode != ModeConcise {
		mode = ModeDetailed
	}

	now := time.Now().UTC()

	var chat *models.Chat
	if req.ChatID == "" {
		chat = &models.Chat{
			ID:        uuid.NewString(),
			UserID:    userID,
			Title:     deriveTitle(content),
			Messages:  []models.Message{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.store.Create(ctx, chat); err != nil {
			return nil, err
		}
	} else {
		var err error
		chat, err = s.store.Get(ctx, req.ChatID, userID)
		if err != nil {
			return nil, err
		}
	}

	userMsg := models.Message{
		Sender:      models.SenderUser,
		Content:     content,
		Timestamp:   now,
		Attachments: []string{},
	}
	chat.Messages = append(chat.Messages, userMsg)

	// The user message is persisted before the generation call. If
	// generation fails it stays persisted and the request errors; the
	// caller retries by resubmitting.
	if err := s.store.UpdateMessages(ctx, chat.ID, userID, chat.Messages, monotonic(chat.UpdatedAt)); err != nil {
		return nil, err
	}

	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "user", Content: buildPrompt(chat.Messages, mode)},
		},
	})
	if err != nil {
		return nil, apperr.Upstream("generate response", err)
	}

	aiMsg := models.Message{
		Sender:      models.SenderAI,
		Content:     resp.Content,
		Timestamp:   time.Now().UTC(),
		Attachments: []string{},
	}
	chat.Messages = append(chat.Messages, aiMsg)

	if err := s.store.UpdateMessages(ctx, chat.ID, userID, chat.Messages, monotonic(chat.UpdatedAt)); err != nil {
		return nil, err
	}

	return &SendResponse{ChatID: chat.ID, Message: aiMsg}, nil
}

func (s *Service) History(ctx context.Context, userID string) ([]models.ChatSummary, error) {
	return s.store.ListByUser(ctx, userID, historyLimit)
}

func (s *Service) Get(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	return s.store.Get(ctx, chatID, userID)
}

func (s *Service) Delete(ctx context.Context, chatID, userID string) error {
	return s.store.Delete(ctx, chatID, userID)
}

// monotonic guards the updated_at invariant against clock skew.
func monotonic(prev time.Time) time.Time {
	now := time.Now().UTC()
	if now.Before(prev) {
		return prev
	}
	return now
}

func deriveTitle(message string) string {
	runes := []rune(message)
	if len(runes) > titleLimit {
		return string(runes[:titleLimit]) + "..."
	}
	return message
}

func buildPrompt(messages []models.Message, mode string) string {
	start := len(messages) - contextWindow
	if start < 0 {
		start = 0
	}

	var history strings.Builder
	for _, msg := range messages[start:] {
		fmt.Fprintf(&history, "%s: %s\n", strings.ToUpper(msg.Sender), msg.Content)
	}

	modeInstruction := "Provide a DETAILED, comprehensive response with explanations and examples."
	if mode == ModeConcise {
		modeInstruction = "Provide a CONCISE response (2-3 sentences maximum). Be brief and to the point."
	}

	return fmt.Sprintf(`You are Pleader AI, an expert Indian legal assistant. %s

Your role:
- Answer EXCLUSIVELY based on Indian legal framework (Constitution, IPC, CPC, CrPC, etc.)
- Cite specific sections, articles, and Acts
- Reference Supreme Court and High Court judgments when relevant
- Provide practical legal guidance for Indian jurisdiction only

IMPORTANT GUIDELINES:
- Always cite Indian laws: IPC sections, Constitutional articles, Act names
- Reference landmark Indian Supreme Court cases when applicable
- If a question is outside Indian law, politely state that you focus on Indian legal matters
- Structure your response clearly with headings and bullet points

Conversation history:
%s
Provide your response now:`, modeInstruction, history.String())
}
