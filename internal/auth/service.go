package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/models"
	"github.com/pleaderai/backend/internal/validate"
)

const (
	minNameLength     = 2
	maxNameLength     = 100
	minPasswordLength = 8
)

// Service is the credential store: registration, password login, and
// OAuth-style upserts. Plaintext passwords never leave this package.
type Service struct {
	store UserStore
}

func NewService(store UserStore) *Service {
	return &Service{store: store}
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = validate.Sanitize(name, maxNameLength)
	if len([]rune(name)) < minNameLength {
		return nil, apperr.Validation("name", "name must be at least 2 characters")
	}
	if !validate.Email(email) {
		return nil, apperr.Validation("email", "invalid email address")
	}
	if len(password) < minPasswordLength {
		return nil, apperr.Validation("password", "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		AuthProvider: models.ProviderEmail,
		PasswordHash: string(hash),
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    now,
		LastActive:   now,
	}

	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the same error for unknown email and wrong
// password so responses cannot be used to enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.PasswordHash == "" {
		return nil, apperr.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	if err := s.store.TouchLastActive(ctx, user.ID); err != nil {
		slog.Warn("failed to update last_active", "user_id", user.ID, "error", err)
	}
	return user, nil
}

// AuthenticateExternal upserts a user from an OAuth provider: an
// existing email wins regardless of provider, otherwise a passwordless
// user is created.
func (s *Service) AuthenticateExternal(ctx context.Context, email, name, avatarURL, provider string) (*models.User, error) {
	if !validate.Email(email) {
		return nil, apperr.Validation("email", "invalid email address")
	}
	if provider == "" {
		provider = models.ProviderGoogle
	}

	user, err := s.store.GetByEmail(ctx, email)
	if err == nil {
		if err := s.store.TouchLastActive(ctx, user.ID); err != nil {
			slog.Warn("failed to update last_active", "user_id", user.ID, "error", err)
		}
		return user, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	var avatar *string
	if avatarURL != "" {
		avatar = &avatarURL
	}

	now := time.Now().UTC()
	user = &models.User{
		ID:           uuid.NewString(),
		Name:         validate.Sanitize(name, maxNameLength),
		Email:        email,
		AvatarURL:    avatar,
		AuthProvider: provider,
		Preferences:  models.DefaultPreferences(),
		CreatedAt:    now,
		LastActive:   now,
	}
	if err := s.store.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) UpdatePreferences(ctx context.Context, userID string, prefs map[string]any) error {
	return s.store.UpdatePreferences(ctx, userID, prefs)
}
