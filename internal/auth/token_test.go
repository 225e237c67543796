package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := IssueToken("user-1", "s3cret")
	require.NoError(t, err)

	c, err := ParseToken(tok, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
}

func TestTokenWrongSecret(t *testing.T) {
	tok, err := IssueToken("user-1", "s3cret")
	require.NoError(t, err)

	_, err = ParseToken(tok, "other")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	c := Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = ParseToken(tok, "s3cret")
	assert.Error(t, err)
}

func TestTokenNeedsSecret(t *testing.T) {
	_, err := IssueToken("user-1", "")
	assert.Error(t, err)
}
