package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pleaderai/backend/internal/export"
	"github.com/pleaderai/backend/internal/models"
)

func newExportHandler(t *testing.T) (*ExportHandler, *models.Chat) {
	t.Helper()
	chatStore := newMemChatStore()
	c := &models.Chat{
		ID:     "11112222-3333-4444-5555-666677778888",
		UserID: testUser().ID,
		Title:  "Cheque bounce",
		Messages: []models.Message{
			{Sender: models.SenderUser, Content: "What is Section 138?", Timestamp: time.Now()},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := chatStore.Create(context.Background(), c); err != nil {
		t.Fatalf("seed chat: %v", err)
	}
	svc := export.NewService(chatStore, newMemDocStore())
	return NewExportHandler(svc), c
}

func TestExportChatHandler(t *testing.T) {
	h, c := newExportHandler(t)
	user := testUser()

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/chat/"+c.ID+"/export/txt", nil),
		user, map[string]string{"id": c.ID, "format": "txt"})
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/plain" {
		t.Errorf("got content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "chat_11112222.txt") {
		t.Errorf("got disposition %q", got)
	}
	if !strings.Contains(rec.Body.String(), "What is Section 138?") {
		t.Error("body missing chat content")
	}
}

func TestExportChatInvalidFormat(t *testing.T) {
	h, c := newExportHandler(t)

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/chat/"+c.ID+"/export/csv", nil),
		testUser(), map[string]string{"id": c.ID, "format": "csv"})
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid format. Use: pdf, docx, or txt") {
		t.Errorf("got body %s", rec.Body)
	}
}

func TestExportChatNotOwned(t *testing.T) {
	h, c := newExportHandler(t)
	other := &models.User{ID: "someone-else"}

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/chat/"+c.ID+"/export/txt", nil),
		other, map[string]string{"id": c.ID, "format": "txt"})
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
}

func TestExportDocumentHandler(t *testing.T) {
	docStore := newMemDocStore()
	d := &models.Document{
		ID:           "aaaabbbb-cccc-dddd-eeee-ffff00001111",
		UserID:       testUser().ID,
		Filename:     "lease.pdf",
		DocumentType: "lease",
		Analysis:     "Key provisions of the lease...",
		CreatedAt:    time.Now(),
	}
	if err := docStore.Create(context.Background(), d); err != nil {
		t.Fatalf("seed document: %v", err)
	}
	h := NewExportHandler(export.NewService(newMemChatStore(), docStore))

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/documents/"+d.ID+"/export/pdf", nil),
		testUser(), map[string]string{"id": d.ID, "format": "pdf"})
	rec := httptest.NewRecorder()
	h.Document(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("got content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "analysis_aaaabbbb.pdf") {
		t.Errorf("got disposition %q", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("body is not a pdf")
	}
}
