package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	token, err := GenerateJWT("user-123", "test@example.com", "cauldron-abc")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have 3 parts")
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT("user-123", "test@example.com", "cauldron-abc")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET not set")
}

func TestGenerateJWT_MissingCauldron(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	_, err := GenerateJWT("user-123", "test@example.com", "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cauldron_id is required")
}

func TestValidateJWT_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	token, err := GenerateJWT("user-123", "test@example.com", "cauldron-abc")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "cauldron-abc", claims.CauldronID)
}

func TestValidateJWT_MissingCauldronClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	// hand-roll a token without the cauldron_id claim
	claims := Claims{
		UserID: "user-123",
		Email:  "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-key-for-testing"))
	require.NoError(t, err)

	_, err = ValidateJWT(token)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cauldron_id")
}

func TestValidateJWT_ExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	claims := Claims{
		UserID:     "user-123",
		CauldronID: "cauldron-abc",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-key-for-testing"))
	require.NoError(t, err)

	_, err = ValidateJWT(token)

	assert.Error(t, err)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing")

	token, err := GenerateJWT("user-123", "test@example.com", "cauldron-abc")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "a-different-secret")

	_, err = ValidateJWT(token)

	assert.Error(t, err)
}
