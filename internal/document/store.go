package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/models"
)

// Store persists documents, ownership-scoped like the chat store.
type Store interface {
	Create(ctx context.Context, d *models.Document) error
	Get(ctx context.Context, docID, userID string) (*models.Document, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.DocumentSummary, error)
	Delete(ctx context.Context, docID, userID string) error
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, d *models.Document) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO documents (id, user_id, filename, document_type, extracted_text, analysis, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.UserID, d.Filename, d.DocumentType, d.ExtractedText, d.Analysis, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, docID, userID string) (*models.Document, error) {
	var d models.Document
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, filename, document_type, extracted_text, analysis, created_at
		 FROM documents WHERE id = $1 AND user_id = $2`,
		docID, userID,
	).Scan(&d.ID, &d.UserID, &d.Filename, &d.DocumentType, &d.ExtractedText, &d.Analysis, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// ListByUser deliberately leaves extracted_text out of the projection.
func (s *PGStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.DocumentSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, filename, document_type, analysis, created_at
		 FROM documents WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.DocumentSummary
	for rows.Next() {
		var d models.DocumentSummary
		if err := rows.Scan(&d.ID, &d.UserID, &d.Filename, &d.DocumentType, &d.Analysis, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func (s *PGStore) Delete(ctx context.Context, docID, userID string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM documents WHERE id = $1 AND user_id = $2", docID, userID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
