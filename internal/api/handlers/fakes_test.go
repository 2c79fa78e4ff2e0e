package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/auth"
	"github.com/pleaderai/backend/internal/llm"
	"github.com/pleaderai/backend/internal/models"
	"github.com/pleaderai/backend/internal/vectorstore"
)

// In-memory fakes behind the store and gateway interfaces. Handlers are
// tested against real services wired to these.

type memUserStore struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byID: map[string]*models.User{}, byEmail: map[string]*models.User{}}
}

func (s *memUserStore) Create(ctx context.Context, u *models.User) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return apperr.ErrDuplicateEmail
	}
	s.byID[u.ID] = u
	s.byEmail[u.Email] = u
	return nil
}

func (s *memUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, apperr.ErrNotFound
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperr.ErrNotFound
}

func (s *memUserStore) UpdatePreferences(ctx context.Context, id string, prefs map[string]any) error {
	u, ok := s.byID[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.Preferences = prefs
	return nil
}

func (s *memUserStore) TouchLastActive(ctx context.Context, id string) error { return nil }

type memChatStore struct {
	chats map[string]*models.Chat
}

func newMemChatStore() *memChatStore {
	return &memChatStore{chats: map[string]*models.Chat{}}
}

func (s *memChatStore) Create(ctx context.Context, c *models.Chat) error {
	cp := *c
	s.chats[c.ID] = &cp
	return nil
}

func (s *memChatStore) Get(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	c, ok := s.chats[chatID]
	if !ok || c.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	cp := *c
	cp.Messages = append([]models.Message(nil), c.Messages...)
	return &cp, nil
}

func (s *memChatStore) UpdateMessages(ctx context.Context, chatID, userID string, messages []models.Message, updatedAt time.Time) error {
	c, ok := s.chats[chatID]
	if !ok || c.UserID != userID {
		return apperr.ErrNotFound
	}
	c.Messages = append([]models.Message(nil), messages...)
	c.UpdatedAt = updatedAt
	return nil
}

func (s *memChatStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatSummary, error) {
	var out []models.ChatSummary
	for _, c := range s.chats {
		if c.UserID == userID {
			out = append(out, models.ChatSummary{
				ID: c.ID, UserID: c.UserID, Title: c.Title,
				CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
			})
		}
	}
	return out, nil
}

func (s *memChatStore) Delete(ctx context.Context, chatID, userID string) error {
	c, ok := s.chats[chatID]
	if !ok || c.UserID != userID {
		return apperr.ErrNotFound
	}
	delete(s.chats, chatID)
	return nil
}

type stubGateway struct {
	reply string
	err   error
}

func (g *stubGateway) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &llm.ChatResponse{Content: g.reply}, nil
}

func (g *stubGateway) Embed(ctx context.Context, req llm.EmbeddingRequest) (*llm.EmbeddingResponse, error) {
	return &llm.EmbeddingResponse{}, nil
}

type memDocStore struct {
	docs map[string]*models.Document
}

func newMemDocStore() *memDocStore {
	return &memDocStore{docs: map[string]*models.Document{}}
}

func (s *memDocStore) Create(ctx context.Context, d *models.Document) error {
	cp := *d
	s.docs[d.ID] = &cp
	return nil
}

func (s *memDocStore) Get(ctx context.Context, docID, userID string) (*models.Document, error) {
	d, ok := s.docs[docID]
	if !ok || d.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

func (s *memDocStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.DocumentSummary, error) {
	var out []models.DocumentSummary
	for _, d := range s.docs {
		if d.UserID == userID {
			out = append(out, models.DocumentSummary{
				ID: d.ID, UserID: d.UserID, Filename: d.Filename,
				DocumentType: d.DocumentType, Analysis: d.Analysis, CreatedAt: d.CreatedAt,
			})
		}
	}
	return out, nil
}

func (s *memDocStore) Delete(ctx context.Context, docID, userID string) error {
	d, ok := s.docs[docID]
	if !ok || d.UserID != userID {
		return apperr.ErrNotFound
	}
	delete(s.docs, docID)
	return nil
}

type stubExtractor struct {
	text string
	err  error
}

func (e *stubExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	return e.text, e.err
}

func (e *stubExtractor) SupportedType(filename string) bool { return true }

type stubEngine struct {
	results    []vectorstore.SearchResult
	stats      vectorstore.Stats
	err        error
	lastTopK   int
	lastRerank bool
}

func (e *stubEngine) AddDocuments(ctx context.Context, texts []string, ids []string) error {
	return nil
}

func (e *stubEngine) Query(ctx context.Context, query string, topK int, useRerank bool) ([]vectorstore.SearchResult, error) {
	e.lastTopK = topK
	e.lastRerank = useRerank
	return e.results, e.err
}

func (e *stubEngine) DeleteDocument(ctx context.Context, documentID string) error { return nil }

func (e *stubEngine) Stats(ctx context.Context) (vectorstore.Stats, error) {
	return e.stats, e.err
}

// authedRequest injects a user and chi URL params, mirroring what the
// router and auth middleware do in production.
func authedRequest(r *http.Request, user *models.User, params map[string]string) *http.Request {
	ctx := auth.WithUser(r.Context(), user)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return r.WithContext(ctx)
}

func testUser() *models.User {
	return &models.User{
		ID:          "9f1c0a5e-0000-4000-8000-000000000001",
		Name:        "Asha Rao",
		Email:       "asha@example.com",
		Preferences: models.DefaultPreferences(),
	}
}
