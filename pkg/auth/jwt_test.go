package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPair(t *testing.T) (*Generator, *Validator) {
	t.Helper()

	gen, err := NewGenerator(GeneratorConfig{
		SecretKey: "secret",
		Issuer:    "wishlist-backend",
		Audience:  "wishlist-api",
	})
	require.NoError(t, err)

	val, err := NewValidator(Config{
		SecretKey: "secret",
		Issuer:    "wishlist-backend",
		Audience:  "wishlist-api",
	})
	require.NoError(t, err)

	return gen, val
}

func TestValidateTokenRoundTrip(t *testing.T) {
	gen, val := newPair(t)

	token, err := gen.GenerateToken("a@x.com")
	require.NoError(t, err)

	claims, err := val.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, val := newPair(t)

	_, err := val.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	_, val := newPair(t)

	other, err := NewGenerator(GeneratorConfig{
		SecretKey: "different",
		Issuer:    "wishlist-backend",
		Audience:  "wishlist-api",
	})
	require.NoError(t, err)

	token, err := other.GenerateToken("a@x.com")
	require.NoError(t, err)

	_, err = val.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongIssuer(t *testing.T) {
	_, val := newPair(t)

	other, err := NewGenerator(GeneratorConfig{
		SecretKey: "secret",
		Issuer:    "somebody-else",
		Audience:  "wishlist-api",
	})
	require.NoError(t, err)

	token, err := other.GenerateToken("a@x.com")
	require.NoError(t, err)

	_, err = val.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	_, val := newPair(t)

	gen, err := NewGenerator(GeneratorConfig{
		SecretKey: "secret",
		Issuer:    "wishlist-backend",
		Audience:  "wishlist-api",
		Expiry:    -time.Minute,
	})
	require.NoError(t, err)

	token, err := gen.GenerateToken("a@x.com")
	require.NoError(t, err)

	_, err = val.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestNewValidatorRequiresSecret(t *testing.T) {
	_, err := NewValidator(Config{})
	assert.Error(t, err)
}

func TestUserContextRoundTrip(t *testing.T) {
	ctx := SetUserInContext(context.Background(), &UserContext{Email: "a@x.com"})

	user, err := GetUserFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	_, err = GetUserFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoUserInContext)
}
