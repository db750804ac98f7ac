package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswaphq/skillswap/config"
	"github.com/skillswaphq/skillswap/internal/api"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	// Register creates a new account. No token is issued at registration.
	Register(ctx context.Context, name, email, password, location, role string) error

	// Login verifies credentials and returns a signed bearer token plus the
	// public projection of the account. Unknown email and wrong password both
	// surface as api.ErrUnauthenticated so callers cannot tell which failed.
	Login(ctx context.Context, email, password string) (string, *api.UserSummary, error)
}

type AuthServiceImpl struct {
	logger *slog.Logger
	repo   AuthRepo
	jwtCfg config.JWTConfig
}

func NewAuthService(repo AuthRepo, jwtCfg config.JWTConfig, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		repo:   repo,
		jwtCfg: jwtCfg,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password, location, role string) error {
	l := s.logger.With(slog.String("method", "Register"), slog.String("email", email))

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if role == "" {
		role = "user"
	}

	if _, err := s.repo.CreateUser(ctx, name, email, string(hashedPassword), location, role); err != nil {
		return err
	}

	l.InfoContext(ctx, "Registration successful")
	return nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *api.UserSummary, error) {
	l := s.logger.With(slog.String("method", "Login"), slog.String("email", email))

	account, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			l.WarnContext(ctx, "Login attempt for unknown email")
			return "", nil, api.ErrUnauthenticated
		}
		return "", nil, fmt.Errorf("login lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		l.WarnContext(ctx, "Login attempt with wrong password")
		return "", nil, api.ErrUnauthenticated
	}

	token, err := s.generateAccessToken(account.ID.String(), account.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	summary := account.Summary()
	l.InfoContext(ctx, "Login successful", slog.String("userID", account.ID.String()))
	return token, &summary, nil
}

func (s *AuthServiceImpl) generateAccessToken(userID, email string) (string, error) {
	ttl := s.jwtCfg.TokenTTL
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}

	now := time.Now()
	claims := api.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.jwtCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}
