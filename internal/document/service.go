package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/llm"
	"github.com/pleaderai/backend/internal/models"
	"github.com/pleaderai/backend/internal/rag"
	"github.com/pleaderai/backend/internal/validate"
	"github.com/pleaderai/backend/internal/vectorstore"
)

const (
	// MaxUploadSize bounds the multipart body before it is read in full.
	MaxUploadSize = 10 << 20

	minExtractedChars = 10
	analysisInputCap  = 5000  // chars of extracted text sent to the model
	storedTextCap     = 10000 // chars of extracted text persisted
	listLimit         = 100

	maxQueryLength = 2000
	maxTopK        = 20
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrExtraction      = errors.New("could not extract sufficient text from document")
)

// Service orchestrates document analysis and retrieval: upload
// validation, extraction, generation, persistence, and best-effort
// indexing.
type Service struct {
	store     Store
	extractor Extractor
	gateway   llm.Gateway
	engine    rag.Engine
}

func NewService(store Store, ext Extractor, gw llm.Gateway, engine rag.Engine) *Service {
	return &Service{store: store, extractor: ext, gateway: gw, engine: engine}
}

type AnalyzeResponse struct {
	DocumentID          string `json:"document_id"`
	Filename            string `json:"filename"`
	Analysis            string `json:"analysis"`
	ExtractedTextLength int    `json:"extracted_text_length"`
}

func (s *Service) Analyze(ctx context.Context, userID, filename, docType string, data []byte) (*AnalyzeResponse, error) {
	if !s.extractor.SupportedType(filename) {
		return nil, ErrUnsupportedType
	}
	if len(data) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	if docType == "" {
		docType = "legal_document"
	}

	text, err := s.extractor.Extract(ctx, data, filename)
	if err != nil {
		slog.Error("text extraction failed", "filename", filename, "error", err)
		return nil, ErrExtraction
	}
	if len(strings.TrimSpace(text)) < minExtractedChars {
		return nil, ErrExtraction
	}

	resp, err := s.gateway.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "user", Content: buildAnalysisPrompt(docType, text)},
		},
	})
	if err != nil {
		return nil, apperr.Upstream("analyze document", err)
	}

	doc := &models.Document{
		ID:            uuid.NewString(),
		UserID:        userID,
		Filename:      filename,
		DocumentType:  docType,
		ExtractedText: capRunes(text, storedTextCap),
		Analysis:      resp.Content,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.Create(ctx, doc); err != nil {
		return nil, err
	}

	// Indexing is best-effort: the analysis already succeeded, so a
	// retrieval-engine failure is logged and swallowed.
	if err := s.engine.AddDocuments(ctx, []string{text}, []string{doc.ID}); err != nil {
		slog.Error("failed to index document", "document_id", doc.ID, "error", err)
	} else {
		slog.Info("document indexed", "document_id", doc.ID)
	}

	return &AnalyzeResponse{
		DocumentID:          doc.ID,
		Filename:            doc.Filename,
		Analysis:            doc.Analysis,
		ExtractedTextLength: len(text),
	}, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]models.DocumentSummary, error) {
	return s.store.ListByUser(ctx, userID, listLimit)
}

func (s *Service) Get(ctx context.Context, docID, userID string) (*models.Document, error) {
	return s.store.Get(ctx, docID, userID)
}

func (s *Service) Delete(ctx context.Context, docID, userID string) error {
	if err := s.store.Delete(ctx, docID, userID); err != nil {
		return err
	}
	if err := s.engine.DeleteDocument(ctx, docID); err != nil {
		slog.Error("failed to deindex document", "document_id", docID, "error", err)
	}
	return nil
}

// RagQuery validates, then forwards verbatim to the retrieval engine.
func (s *Service) RagQuery(ctx context.Context, query string, topK int, useRerank bool) ([]vectorstore.SearchResult, error) {
	query = validate.Sanitize(query, maxQueryLength)
	if query == "" {
		return nil, apperr.Validation("query", "query cannot be empty")
	}
	if topK < 1 || topK > maxTopK {
		return nil, apperr.Validation("top_k", "top_k must be between 1 and 20")
	}

	results, err := s.engine.Query(ctx, query, topK, useRerank)
	if err != nil {
		return nil, apperr.Upstream("retrieval query", err)
	}
	return results, nil
}

// RagStats degrades to zeroed counts instead of failing the request.
func (s *Service) RagStats(ctx context.Context) vectorstore.Stats {
	stats, err := s.engine.Stats(ctx)
	if err != nil {
		slog.Error("failed to get retrieval stats", "error", err)
		return vectorstore.Stats{}
	}
	return stats
}

func capRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func buildAnalysisPrompt(docType, text string) string {
	return fmt.Sprintf(`You are Pleader AI, an expert Indian legal document analyst.

Analyze the following %s and provide:

1. **Document Summary**: Brief overview of the document's purpose and key parties
2. **Legal Framework**: Identify applicable Indian laws, Acts, and sections
3. **Key Provisions**: List main clauses, terms, and conditions
4. **Rights & Obligations**: Outline rights and obligations of all parties
5. **Risk Analysis**: Identify potential legal risks under Indian law
6. **Compliance Check**: Verify compliance with relevant Indian Acts (Indian Contract Act, Consumer Protection Act, etc.)
7. **Recommendations**: Suggest improvements or missing clauses per Indian legal standards

Document text:
%s

Provide a comprehensive analysis:`, docType, capRunes(text, analysisInputCap))
}
