package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight-app/finsight/config"
	"github.com/finsight-app/finsight/internal/types"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey: "test-access-secret",
		Issuer:    "test-issuer",
		Audience:  "test-audience",
		TokenTTL:  7 * 24 * time.Hour,
	}
}

func testUser() *types.User {
	return &types.User{
		ID:       42,
		Email:    "test@example.com",
		Username: "testuser",
		IsActive: true,
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	ts := NewTokenService(testJWTConfig())
	user := testUser()

	token, err := ts.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenService_JTIUniqueAcrossIssues(t *testing.T) {
	ts := NewTokenService(testJWTConfig())
	user := testUser()

	t1, err := ts.Issue(user)
	require.NoError(t, err)
	t2, err := ts.Issue(user)
	require.NoError(t, err)

	c1, err := ts.Verify(t1)
	require.NoError(t, err)
	c2, err := ts.Verify(t2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestTokenService_ExpiryWindow(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ts := NewTokenService(testJWTConfig())
	ts.now = func() time.Time { return issuedAt }

	token, err := ts.Issue(testUser())
	require.NoError(t, err)

	t.Run("ValidJustBeforeExpiry", func(t *testing.T) {
		ts.now = func() time.Time { return issuedAt.Add(6*24*time.Hour + 23*time.Hour) }
		claims, err := ts.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID)
	})

	t.Run("ExpiredJustAfterWindow", func(t *testing.T) {
		ts.now = func() time.Time { return issuedAt.Add(7*24*time.Hour + time.Second) }
		_, err := ts.Verify(token)
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		assert.Contains(t, err.Error(), "expired")
	})
}

func TestTokenService_InvalidSignature(t *testing.T) {
	ts := NewTokenService(testJWTConfig())
	token, err := ts.Issue(testUser())
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.SecretKey = "a-different-secret"
	other := NewTokenService(otherCfg)

	_, err = other.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestTokenService_MalformedToken(t *testing.T) {
	ts := NewTokenService(testJWTConfig())

	_, err := ts.Verify("not-a-jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
	assert.Contains(t, err.Error(), "Malformed")
}

func TestTokenService_TamperedPayload(t *testing.T) {
	ts := NewTokenService(testJWTConfig())
	token, err := ts.Issue(testUser())
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ts.Verify(tampered)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}

func TestTokenService_IssuerMismatch(t *testing.T) {
	ts := NewTokenService(testJWTConfig())
	token, err := ts.Issue(testUser())
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.Issuer = "someone-else"
	other := NewTokenService(otherCfg)

	_, err = other.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnauthenticated)
}
