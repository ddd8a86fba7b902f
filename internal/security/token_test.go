package security_test

import (
	"testing"

	"partsphere-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := security.NewTokenManager(testSecret, 60)

	token, err := tm.GenerateAccessToken(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, "partsphere", claims.Issuer)
}

func TestTokenManager_RejectsTamperedToken(t *testing.T) {
	tm := security.NewTokenManager(testSecret, 60)

	token, err := tm.GenerateAccessToken(42, "alice")
	require.NoError(t, err)

	_, err = tm.ValidateToken(token + "x")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := security.NewTokenManager(testSecret, 60)
	other := security.NewTokenManager("another-secret-entirely-0123456789abcdef", 60)

	token, err := other.GenerateAccessToken(42, "alice")
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := security.NewTokenManager(testSecret, 60)

	_, err := tm.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
