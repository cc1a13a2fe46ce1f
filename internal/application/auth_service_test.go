package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/user-account-service/internal/infrastructure/memory"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

func newAuthService(repo *memory.UserRepository) *AuthService {
	return NewAuthService(repo, testHasher, helpers.NewJWTManager("test-secret", time.Hour), helpers.NewNopLogger())
}

func TestLogin(t *testing.T) {
	repo := memory.NewUserRepository()
	first := seedUser(t, repo, "first@x.com", "0800", "secret")
	seedUser(t, repo, "second@x.com", "0800", "other")
	svc := newAuthService(repo)
	ctx := context.Background()

	tests := []struct {
		name     string
		phone    string
		password string
		wantErr  error
	}{
		{"unknown phone", "0999", "secret", ErrUserNotFound},
		{"wrong password", "0800", "nope", ErrInvalidCredentials},
		{"second user's password does not match first", "0800", "other", ErrInvalidCredentials},
		{"success", "0800", "secret", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(ctx, tt.phone, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				if res != nil {
					t.Fatalf("expected no response on failure, got %+v", res)
				}
				return
			}
			if res.User.ID != first.ID || !res.User.SessionActive || res.TokenType != "bearer" {
				t.Fatalf("unexpected response %+v", res)
			}
			claims, err := svc.Authorize("Bearer " + res.AccessToken)
			if err != nil {
				t.Fatalf("authorize issued token: %v", err)
			}
			if claims.UserID != first.ID || claims.Phone != "0800" {
				t.Fatalf("unexpected claims %+v", claims)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	svc := newAuthService(memory.NewUserRepository())
	token, _, err := svc.JWT.GenerateAccessToken(7, "0800")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"empty", "", ErrMissingCredential},
		{"blank but present", "   ", ErrInvalidToken},
		{"token without scheme", token, ErrInvalidToken},
		{"wrong scheme", "Basic " + token, ErrInvalidToken},
		{"garbage token", "Bearer abc.def.ghi", ErrInvalidToken},
		{"extra parts", "Bearer " + token + " more", ErrInvalidToken},
		{"lower case scheme", "bearer " + token, nil},
		{"valid", "Bearer " + token, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Authorize(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && claims.UserID != 7 {
				t.Fatalf("expected user 7, got %+v", claims)
			}
		})
	}
}

func TestAuthorizeRejectsTokenFromOtherSecret(t *testing.T) {
	svc := newAuthService(memory.NewUserRepository())
	other := helpers.NewJWTManager("another-secret", time.Hour)
	token, _, err := other.GenerateAccessToken(1, "0800")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := svc.Authorize("Bearer " + token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestClaimsContext(t *testing.T) {
	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Fatal("expected no claims on empty context")
	}
	ctx := ContextWithClaims(context.Background(), &helpers.Claims{UserID: 3})
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.UserID != 3 {
		t.Fatalf("unexpected claims %+v", claims)
	}
}
