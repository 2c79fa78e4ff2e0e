package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/pleaderai/backend/internal/apperr"
	"github.com/pleaderai/backend/internal/models"
)

type fakeUserStore struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
	created []*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (f *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return apperr.ErrDuplicateEmail
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	f.created = append(f.created, u)
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserStore) UpdatePreferences(ctx context.Context, id string, prefs map[string]any) error {
	u, ok := f.byID[id]
	if !ok {
		return apperr.ErrNotFound
	}
	u.Preferences = prefs
	return nil
}

func (f *fakeUserStore) TouchLastActive(ctx context.Context, id string) error {
	return nil
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "Asha Rao", "asha@example.com", "password123", false},
		{"name too short", "A", "asha@example.com", "password123", true},
		{"name only brackets", "<>", "asha@example.com", "password123", true},
		{"bad email", "Asha Rao", "not-an-email", "password123", true},
		{"short password", "Asha Rao", "asha@example.com", "short", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newFakeUserStore())
			user, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			if tt.wantErr {
				if !apperr.IsValidation(err) {
					t.Fatalf("got %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register: %v", err)
			}
			if user.ID == "" {
				t.Error("user id is empty")
			}
			if user.AuthProvider != models.ProviderEmail {
				t.Errorf("got provider %q, want %q", user.AuthProvider, models.ProviderEmail)
			}
			if user.PasswordHash == tt.password {
				t.Error("password stored in plaintext")
			}
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)) != nil {
				t.Error("stored hash does not match password")
			}
			if user.Preferences["theme"] != "light" {
				t.Errorf("got default theme %v, want light", user.Preferences["theme"])
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "password123"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "Another", "asha@example.com", "password456")
	if !errors.Is(err, apperr.ErrDuplicateEmail) {
		t.Errorf("got %v, want ErrDuplicateEmail", err)
	}
}

func TestAuthenticate(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "asha@example.com", "password123")
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("got user %q, want %q", user.ID, registered.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "asha@example.com", "wrongpass1")
		if !errors.Is(err, apperr.ErrInvalidCredentials) {
			t.Errorf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "missing@example.com", "password123")
		if !errors.Is(err, apperr.ErrInvalidCredentials) {
			t.Errorf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("external account has no password", func(t *testing.T) {
		if _, err := svc.AuthenticateExternal(ctx, "oauth@example.com", "OAuth User", "", ""); err != nil {
			t.Fatalf("AuthenticateExternal: %v", err)
		}
		_, err := svc.Authenticate(ctx, "oauth@example.com", "anything123")
		if !errors.Is(err, apperr.ErrInvalidCredentials) {
			t.Errorf("got %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestAuthenticateExternal(t *testing.T) {
	store := newFakeUserStore()
	svc := NewService(store)
	ctx := context.Background()

	t.Run("invalid email rejected", func(t *testing.T) {
		_, err := svc.AuthenticateExternal(ctx, "bad-email", "Name", "", "google")
		if !apperr.IsValidation(err) {
			t.Errorf("got %v, want validation error", err)
		}
	})

	t.Run("creates new user with defaults", func(t *testing.T) {
		user, err := svc.AuthenticateExternal(ctx, "new.user@example.com", "", "", "")
		if err != nil {
			t.Fatalf("AuthenticateExternal: %v", err)
		}
		if user.Name != "new.user" {
			t.Errorf("got name %q, want local part of email", user.Name)
		}
		if user.AuthProvider != models.ProviderGoogle {
			t.Errorf("got provider %q, want %q", user.AuthProvider, models.ProviderGoogle)
		}
		if user.PasswordHash != "" {
			t.Error("external user should have no password hash")
		}
	})

	t.Run("existing email wins regardless of provider", func(t *testing.T) {
		registered, err := svc.Register(ctx, "Asha Rao", "asha@example.com", "password123")
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		user, err := svc.AuthenticateExternal(ctx, "asha@example.com", "Different Name", "", "github")
		if err != nil {
			t.Fatalf("AuthenticateExternal: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("got user %q, want existing %q", user.ID, registered.ID)
		}
		if user.AuthProvider != models.ProviderEmail {
			t.Errorf("provider changed to %q", user.AuthProvider)
		}
	})
}
