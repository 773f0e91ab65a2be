package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/avelinov/shop_api/internal/events"
	"github.com/avelinov/shop_api/internal/hash"
	"github.com/avelinov/shop_api/internal/logging"
	"github.com/avelinov/shop_api/internal/models"
	"github.com/avelinov/shop_api/internal/repo"
	"github.com/avelinov/shop_api/pkg/tokens"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrConflict           = errors.New("conflict")            // 409
	ErrTokenInvalid       = errors.New("token invalid")       // 401
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      *events.Producer
}

type TokenPair struct {
	Access  string
	Refresh string
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return nil, err
	}

	return &user, nil
}

// IssueTokens checks the credentials and returns a fresh access/refresh pair.
// The refresh token is persisted (hashed) so it can be revoked later.
func (s *AuthService) IssueTokens(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	access, _, err := tokens.SignAccessToken(user.ID, user.Username, user.Role, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	refresh, refreshExp, err := tokens.SignRefreshToken(user.ID, s.RefreshSecret)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddRefreshToken(ctx, tokens.Sha256Hex(refresh), user.ID, refreshExp); err != nil {
		return nil, err
	}

	s.publishLogin(ctx, user)

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// RefreshAccess validates a refresh token against its stored row and issues a
// new access token only; the refresh token stays as is until it expires or is
// revoked.
func (s *AuthService) RefreshAccess(ctx context.Context, rawToken string) (string, error) {
	claims, err := tokens.RefreshClaimsFromToken(rawToken, s.RefreshSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	stored, err := s.Repo.GetRefreshToken(ctx, tokens.Sha256Hex(rawToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: unknown refresh token", ErrTokenInvalid)
		}
		return "", err
	}
	if stored.Revoked {
		return "", fmt.Errorf("%w: refresh token revoked", ErrTokenInvalid)
	}
	if time.Now().UTC().After(stored.ExpiresAt) {
		return "", fmt.Errorf("%w: refresh token expired", ErrTokenInvalid)
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", fmt.Errorf("%w: bad subject", ErrTokenInvalid)
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: user no longer exists", ErrTokenInvalid)
		}
		return "", err
	}

	access, _, err := tokens.SignAccessToken(user.ID, user.Username, user.Role, s.JWTSecret)
	if err != nil {
		return "", err
	}
	return access, nil
}

func (s *AuthService) publishLogin(ctx context.Context, user *models.User) {
	event := map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.Producer.PublishEvent(pubCtx, fmt.Sprint(user.ID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
