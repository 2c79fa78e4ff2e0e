package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/models"
)

// Store persists chats. Every lookup and mutation is scoped by both
// chat id and owner id so cross-user access cannot be expressed.
type Store interface {
	Create(ctx context.Context, c *models.Chat) error
	Get(ctx context.Context, chatID, userID string) (*models.Chat, error)
	UpdateMessages(ctx context.Context, chatID, userID string, messages []models.Message, updatedAt time.Time) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatSummary, error)
	Delete(ctx context.Context, chatID, userID string) error
}

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, c *models.Chat) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO chats (id, user_id, title, messages, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.UserID, c.Title, c.Messages, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	var c models.Chat
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, title, messages, created_at, updated_at
		 FROM chats WHERE id = $1 AND user_id = $2`,
		chatID, userID,
	).Scan(&c.ID, &c.UserID, &c.Title, &c.Messages, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get chat: %w", err)
	}
	return &c, nil
}

// UpdateMessages writes the whole message array. Concurrent sends to
// the same chat resolve by store-level write ordering (last write
// wins); the service layer takes no lock. The owner filter also keeps
// an update from recreating state for a chat deleted mid-send.
func (s *PGStore) UpdateMessages(ctx context.Context, chatID, userID string, messages []models.Message, updatedAt time.Time) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE chats SET messages = $1, updated_at = $2 WHERE id = $3 AND user_id = $4",
		messages, updatedAt, chatID, userID,
	)
	if err != nil {
		return fmt.Errorf("update chat messages: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *PGStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.ChatSummary, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, title, created_at, updated_at
		 FROM chats WHERE user_id = $1 ORDER BY updated_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var chats []models.ChatSummary
	for rows.Next() {
		var c models.ChatSummary
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, c)
	}
	return chats, nil
}

func (s *PGStore) Delete(ctx context.Context, chatID, userID string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM chats WHERE id = $1 AND user_id = $2", chatID, userID)
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
