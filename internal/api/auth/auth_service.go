package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/trivixa/listings-api/config"
	"github.com/trivixa/listings-api/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the business logic contract for authentication.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthServiceImpl struct {
	logger *slog.Logger
	repo   AuthRepo
	cfg    *config.Config
}

func NewAuthService(repo AuthRepo, cfg *config.Config, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		repo:   repo,
		cfg:    cfg,
	}
}

// Login verifies the credentials and returns a signed access token.
// A missing account and a wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Login")
	defer span.End()

	l := s.logger.With(slog.String("method", "Login"))
	l.DebugContext(ctx, "Attempting login")

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			span.SetStatus(codes.Error, "Unknown email")
			return "", fmt.Errorf("login failed: %w", types.ErrInvalidCredentials)
		}
		l.ErrorContext(ctx, "Failed to fetch user for login", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB lookup failed")
		return "", fmt.Errorf("error fetching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		l.WarnContext(ctx, "Password mismatch")
		span.SetStatus(codes.Error, "Password mismatch")
		return "", fmt.Errorf("login failed: %w", types.ErrInvalidCredentials)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		l.ErrorContext(ctx, "Failed to sign access token", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Token signing failed")
		return "", fmt.Errorf("error generating access token: %w", err)
	}

	l.InfoContext(ctx, "Login successful", slog.String("userID", user.ID.String()))
	span.SetStatus(codes.Ok, "Login successful")
	return token, nil
}

func (s *AuthServiceImpl) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	expiry := time.Duration(s.cfg.JWT.ExpirationMinutes) * time.Minute
	if expiry <= 0 {
		expiry = time.Hour
	}

	claims := types.Claims{
		UserID: user.ID.String(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.JWT.Issuer,
			Audience:  jwt.ClaimStrings{s.cfg.JWT.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}
