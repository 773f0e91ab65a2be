package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")

	signed, exp, err := SignAccessToken(7, "user1", "user", secret)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now().UTC()))

	claims, err := AccessClaimsFromToken(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.Username)
	assert.Equal(t, "user", claims.Role)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	signed, _, err := SignAccessToken(7, "user1", "user", []byte("secret"))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(signed, []byte("other"))
	require.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")

	signed, exp, err := SignRefreshToken(7, secret)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now().UTC()))

	claims, err := RefreshClaimsFromToken(signed, secret)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.Typ)
	assert.NotEmpty(t, claims.ID)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestRefreshClaims_RejectsAccessToken(t *testing.T) {
	secret := []byte("secret")

	signed, _, err := SignAccessToken(7, "user1", "user", secret)
	require.NoError(t, err)

	_, err = RefreshClaimsFromToken(signed, secret)
	assert.ErrorIs(t, err, ErrNotRefreshToken)
}
