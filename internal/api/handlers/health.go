package handlers

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pleaderai/backend/internal/config"
)

type HealthHandler struct {
	db  *pgxpool.Pool
	cfg config.VersionConfig
}

func NewHealthHandler(db *pgxpool.Pool, cfg config.VersionConfig) *HealthHandler {
	return &HealthHandler{db: db, cfg: cfg}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "connected"
	if h.db == nil {
		dbStatus = "unavailable"
	} else if err := h.db.Ping(r.Context()); err != nil {
		dbStatus = "unhealthy"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"version":    h.cfg.Version,
		"git_commit": h.cfg.GitCommit,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"services": map[string]string{
			"database": dbStatus,
		},
	})
}
