package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"admin-console/internal/httperr"
	"admin-console/internal/models"
	"admin-console/internal/repository"
	"admin-console/internal/token"
)

// stubUsers implements repository.Users with a fixed record set.
type stubUsers struct {
	records []*models.User
}

func (s *stubUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range s.records {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range s.records {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) List(ctx context.Context) ([]models.SafeUser, error) {
	out := make([]models.SafeUser, 0, len(s.records))
	for _, u := range s.records {
		out = append(out, u.Safe())
	}
	return out, nil
}

func (s *stubUsers) Create(ctx context.Context, in repository.CreateInput) (models.SafeUser, error) {
	return models.SafeUser{}, errors.New("not implemented")
}

func (s *stubUsers) Update(ctx context.Context, id string, patch repository.UpdatePatch) (models.SafeUser, error) {
	return models.SafeUser{}, errors.New("not implemented")
}

func (s *stubUsers) Delete(ctx context.Context, id string) (models.SafeUser, error) {
	return models.SafeUser{}, errors.New("not implemented")
}

func testAuthService() *AuthService {
	users := &stubUsers{records: []*models.User{
		{ID: "u-1", Username: "admin", Password: "admin123", Role: models.RoleAdmin,
			CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z"},
	}}
	return NewAuthService(users, token.NewManager("service-test-secret", time.Hour))
}

func wantUnauthorized(t *testing.T, err error, msg string) {
	t.Helper()
	var httpErr *httperr.Error
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected typed error, got %v", err)
	}
	if httpErr.Status != http.StatusUnauthorized || httpErr.Message != msg {
		t.Fatalf("got %d %q, want 401 %q", httpErr.Status, httpErr.Message, msg)
	}
}

func TestLogin_TokenMatchesIdentity(t *testing.T) {
	s := testAuthService()

	accessToken, user, err := s.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u-1" || user.Role != models.RoleAdmin {
		t.Fatalf("safe user: %+v", user)
	}

	// the token's embedded identity must match the returned projection
	claims, err := s.ParseToken(accessToken)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != user.ID || claims.Username != user.Username || claims.Role != user.Role {
		t.Fatalf("claims mismatch: %+v vs %+v", claims, user)
	}
}

func TestLogin_Failures(t *testing.T) {
	s := testAuthService()
	ctx := context.Background()

	_, _, err := s.Login(ctx, "admin", "wrong-password")
	wantUnauthorized(t, err, "Invalid username or password")

	_, _, err = s.Login(ctx, "ghost", "admin123")
	wantUnauthorized(t, err, "Invalid username or password")

	// lookup is case-sensitive: the account exists as "admin"
	_, _, err = s.Login(ctx, "Admin", "admin123")
	wantUnauthorized(t, err, "Invalid username or password")
}

func TestCurrentUser(t *testing.T) {
	s := testAuthService()
	ctx := context.Background()

	user, err := s.CurrentUser(ctx, "u-1")
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user.Username != "admin" {
		t.Fatalf("user: %+v", user)
	}

	_, err = s.CurrentUser(ctx, "deleted-id")
	wantUnauthorized(t, err, "User does not exist")
}
