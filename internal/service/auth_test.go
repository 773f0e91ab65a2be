package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avelinov/shop_api/internal/models"
	"github.com/avelinov/shop_api/internal/repo"
	"github.com/avelinov/shop_api/pkg/tokens"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}))

	return &AuthService{
		Repo:          repo.New(db),
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestAuthService_Register_SuccessAndConflict(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "user1", "Secret123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "user", user.Role)

	_, err = svc.Register(ctx, "user1", "Secret123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Register_RequiresCredentials(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(context.Background(), "", "Secret123")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(context.Background(), "user1", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAuthService_IssueTokens(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "user1", "Secret123")
	require.NoError(t, err)

	pair, err := svc.IssueTokens(ctx, "user1", "Secret123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := tokens.AccessClaimsFromToken(pair.Access, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.Username)

	// the refresh token is stored hashed, never in the clear
	var stored models.RefreshToken
	require.NoError(t, svc.Repo.DB.First(&stored).Error)
	assert.Equal(t, tokens.Sha256Hex(pair.Refresh), stored.Token)
	assert.False(t, stored.Revoked)
}

func TestAuthService_IssueTokens_InvalidCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "user1", "Secret123")
	require.NoError(t, err)

	_, err = svc.IssueTokens(ctx, "user1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.IssueTokens(ctx, "nobody", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshAccess(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "user1", "Secret123")
	require.NoError(t, err)
	pair, err := svc.IssueTokens(ctx, "user1", "Secret123")
	require.NoError(t, err)

	access, err := svc.RefreshAccess(ctx, pair.Refresh)
	require.NoError(t, err)

	claims, err := tokens.AccessClaimsFromToken(access, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.Username)
}

func TestAuthService_RefreshAccess_Revoked(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "user1", "Secret123")
	require.NoError(t, err)
	pair, err := svc.IssueTokens(ctx, "user1", "Secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Repo.RevokeRefreshToken(ctx, tokens.Sha256Hex(pair.Refresh)))

	_, err = svc.RefreshAccess(ctx, pair.Refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthService_RefreshAccess_Unknown(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "user1", "Secret123")
	require.NoError(t, err)
	pair, err := svc.IssueTokens(ctx, "user1", "Secret123")
	require.NoError(t, err)

	// wipe the stored row: a structurally valid token with no row is rejected
	require.NoError(t, svc.Repo.DB.Where("1 = 1").Delete(&models.RefreshToken{}).Error)

	_, err = svc.RefreshAccess(ctx, pair.Refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
