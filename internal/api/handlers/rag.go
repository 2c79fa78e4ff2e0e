package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pleaderai/backend/internal/document"
)

type RAGHandler struct {
	svc *document.Service
}

func NewRAGHandler(svc *document.Service) *RAGHandler {
	return &RAGHandler{svc: svc}
}

type ragQueryRequest struct {
	Query     string `json:"query"`
	TopK      *int   `json:"top_k"`
	UseRerank *bool  `json:"use_rerank"`
}

func (h *RAGHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req ragQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	topK := 5
	if req.TopK != nil {
		topK = *req.TopK
	}
	useRerank := true
	if req.UseRerank != nil {
		useRerank = *req.UseRerank
	}

	results, err := h.svc.RagQuery(r.Context(), req.Query, topK, useRerank)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   req.Query,
		"results": results,
	})
}

func (h *RAGHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.RagStats(r.Context()))
}
