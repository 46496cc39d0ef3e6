package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawmatch/backend/internal/infrastructure/config"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-at-least-32-chars!",
		RefreshSecret:          "test-refresh-secret-at-least-32-char!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "lawmatch-test",
		MaxRefreshCount:        3,
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:   userID,
		Email:    "mediator@example.com",
		UserKind: "MEDIATOR",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	t.Run("access token round trip", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "mediator@example.com", claims.Email)
		assert.Equal(t, "MEDIATOR", claims.UserKind)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := svc.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})
}

func TestValidateAccessToken_Invalid(t *testing.T) {
	svc := testJWTService()

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "a-completely-different-secret-value!!",
			AccessTokenExpiration:  time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "other",
			MaxRefreshCount:        1,
		})
		pair, err := other.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "a@b.c", UserKind: "CLIENT"})
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	svc := testJWTService()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:   uuid.New(),
		Email:    "client@example.com",
		UserKind: "CLIENT",
	})
	require.NoError(t, err)

	t.Run("issues new pair and increments count", func(t *testing.T) {
		newPair, err := svc.RefreshTokenPair(pair.RefreshToken)
		require.NoError(t, err)

		claims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.RefreshCount)
	})

	t.Run("rejects after max refresh count", func(t *testing.T) {
		current := pair.RefreshToken
		for i := 0; i < 3; i++ {
			newPair, err := svc.RefreshTokenPair(current)
			require.NoError(t, err)
			current = newPair.RefreshToken
		}

		_, err := svc.RefreshTokenPair(current)
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	bl := NewInMemoryTokenBlacklist()

	t.Run("jti blacklisting", func(t *testing.T) {
		blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, blacklisted)

		require.NoError(t, bl.AddToBlacklist(ctx, "jti-1", time.Minute))

		blacklisted, err = bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("expired entries are purged", func(t *testing.T) {
		require.NoError(t, bl.AddToBlacklist(ctx, "jti-2", -time.Second))

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})

	t.Run("user-wide invalidation", func(t *testing.T) {
		userID := uuid.New().String()
		issuedBefore := time.Now()

		require.NoError(t, bl.AddUserTokensToBlacklist(ctx, userID, time.Hour))

		invalid, err := bl.IsUserTokenInvalidated(ctx, userID, issuedBefore)
		require.NoError(t, err)
		assert.True(t, invalid)

		invalid, err = bl.IsUserTokenInvalidated(ctx, userID, time.Now().Add(time.Second))
		require.NoError(t, err)
		assert.False(t, invalid)
	})
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher()

	t.Run("hash and verify", func(t *testing.T) {
		hash, err := h.Hash("correct-horse-battery")
		require.NoError(t, err)
		assert.True(t, h.Verify(hash, "correct-horse-battery"))
		assert.False(t, h.Verify(hash, "wrong-password"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := h.Hash("short")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}
