package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pleaderai/backend/internal/auth"
	"github.com/pleaderai/backend/internal/document"
)

type DocumentHandler struct {
	svc *document.Service
}

func NewDocumentHandler(svc *document.Service) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

func (h *DocumentHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	// MaxBytesReader rejects oversized bodies before they are buffered
	// in full.
	r.Body = http.MaxBytesReader(w, r.Body, document.MaxUploadSize+4096)
	if err := r.ParseMultipartForm(document.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	docType := r.FormValue("document_type")

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read file")
		return
	}

	resp, err := h.svc.Analyze(r.Context(), user.ID, header.Filename, docType, data)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrUnsupportedType):
			writeError(w, http.StatusBadRequest, "unsupported file type. Supported: PDF, DOCX, TXT, JPG, PNG")
		case errors.Is(err, document.ErrFileTooLarge):
			writeError(w, http.StatusBadRequest, "file too large. Maximum size: 10MB")
		case errors.Is(err, document.ErrExtraction):
			writeError(w, http.StatusBadRequest, "could not extract sufficient text from document")
		default:
			writeServiceError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	docs, err := h.svc.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Document deleted successfully"})
}
