package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/auth"
	"github.com/pleaderai/backend/internal/export"
)

type ExportHandler struct {
	svc *export.Service
}

func NewExportHandler(svc *export.Service) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func (h *ExportHandler) Chat(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	file, err := h.svc.ExportChat(r.Context(), chi.URLParam(r, "id"), user.ID, chi.URLParam(r, "format"))
	if err != nil {
		writeExportError(w, err)
		return
	}

	streamFile(w, file)
}

func (h *ExportHandler) Document(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	file, err := h.svc.ExportDocument(r.Context(), chi.URLParam(r, "id"), user.ID, chi.URLParam(r, "format"))
	if err != nil {
		writeExportError(w, err)
		return
	}

	streamFile(w, file)
}

// A bad format tag is a 400 here, not a 422: it is checked before any
// store lookup.
func writeExportError(w http.ResponseWriter, err error) {
	if apperr.IsValidation(err) {
		writeError(w, http.StatusBadRequest, "invalid format. Use: pdf, docx, or txt")
		return
	}
	writeServiceError(w, err)
}

func streamFile(w http.ResponseWriter, file *export.File) {
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", file.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}
