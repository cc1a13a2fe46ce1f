package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/user-account-service/internal/domain/repository"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

const TokenTypeBearer = "bearer"

type AuthService struct {
	Repo   repo.UserRepository
	Hasher helpers.PasswordHasher
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(repo repo.UserRepository, hasher helpers.PasswordHasher, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, Hasher: hasher, JWT: jwt, Logger: logger}
}

type LoginResponse struct {
	User        PublicUser `json:"user"`
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
}

// Login resolves the first user with phone, checks the password and issues a
// bearer token carrying {id, phone}.
func (s *AuthService) Login(ctx context.Context, phone, password string) (*LoginResponse, error) {
	u, err := s.Repo.GetFirstByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			loginAttempts.Add("user_not_found", 1)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: lookup user by phone: %w", ErrInternal, err)
	}

	ok, err := s.Hasher.Verify(password, u.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: verify password: %w", ErrInternal, err)
	}
	if !ok {
		loginAttempts.Add("invalid_credentials", 1)
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.JWT.GenerateAccessToken(u.ID, u.Phone)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	loginAttempts.Add("success", 1)
	return &LoginResponse{User: toPublicUser(u), AccessToken: token, TokenType: TokenTypeBearer}, nil
}

// Authorize validates an Authorization header value of the form "Bearer <token>".
// An empty header is ErrMissingCredential; anything else that fails is ErrInvalidToken.
func (s *AuthService) Authorize(header string) (*helpers.Claims, error) {
	if header == "" {
		return nil, ErrMissingCredential
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], TokenTypeBearer) {
		return nil, ErrInvalidToken
	}
	claims, err := s.JWT.ParseAccessToken(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

type claimsCtxKey struct{}

// ContextWithClaims attaches verified token claims to ctx.
func ContextWithClaims(ctx context.Context, claims *helpers.Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey{}, claims)
}

// ClaimsFromContext returns the claims stored by ContextWithClaims.
func ClaimsFromContext(ctx context.Context) (*helpers.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(*helpers.Claims)
	return claims, ok && claims != nil
}
