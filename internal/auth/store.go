package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/models"
)

// UserStore persists user records. Lookups by id or email return
// apperr.ErrNotFound when no row matches.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePreferences(ctx context.Context, id string, prefs map[string]any) error
	TouchLastActive(ctx context.Context, id string) error
}

type PGUserStore struct {
	db *pgxpool.Pool
}

func NewPGUserStore(db *pgxpool.Pool) *PGUserStore {
	return &PGUserStore{db: db}
}

const userColumns = `id, name, email, avatar_url, auth_provider, COALESCE(password_hash, ''), preferences, created_at, last_active`

func (s *PGUserStore) Create(ctx context.Context, u *models.User) error {
	var hash *string
	if u.PasswordHash != "" {
		hash = &u.PasswordHash
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, name, email, avatar_url, auth_provider, password_hash, preferences, created_at, last_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Name, u.Email, u.AvatarURL, u.AuthProvider, hash, u.Preferences, u.CreatedAt, u.LastActive,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PGUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getWhere(ctx, "id = $1", id)
}

func (s *PGUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getWhere(ctx, "email = $1", email)
}

func (s *PGUserStore) getWhere(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.AvatarURL, &u.AuthProvider, &u.PasswordHash, &u.Preferences, &u.CreatedAt, &u.LastActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *PGUserStore) UpdatePreferences(ctx context.Context, id string, prefs map[string]any) error {
	_, err := s.db.Exec(ctx, "UPDATE users SET preferences = $1 WHERE id = $2", prefs, id)
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	return nil
}

func (s *PGUserStore) TouchLastActive(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "UPDATE users SET last_active = now() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("touch last_active: %w", err)
	}
	return nil
}
