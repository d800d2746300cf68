package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examhub-lk/examhub-api/internal/models"
	appErrors "github.com/examhub-lk/examhub-api/pkg/errors"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims models.JWTClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(role models.UserRole) models.JWTClaims {
	now := time.Now()
	return models.JWTClaims{
		Email: "admin@examhub.lk",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestTokenVerifierAcceptsValidToken(t *testing.T) {
	verifier := NewTokenVerifier(AuthConfig{Secret: testSecret}, nil)
	claims, err := verifier.Verify(signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(models.RoleAdmin)))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenVerifierRejects(t *testing.T) {
	verifier := NewTokenVerifier(AuthConfig{Secret: testSecret, Audience: "authenticated"}, nil)

	expired := validClaims(models.RoleAdmin)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	expired.Audience = jwt.ClaimStrings{"authenticated"}

	wrongAudience := validClaims(models.RoleAdmin)
	wrongAudience.Audience = jwt.ClaimStrings{"anon"}

	noSubject := validClaims(models.RoleAdmin)
	noSubject.Audience = jwt.ClaimStrings{"authenticated"}
	noSubject.Subject = ""

	cases := map[string]string{
		"empty":          "",
		"garbage":        "not-a-token",
		"wrong secret":   signToken(t, jwt.SigningMethodHS256, "other", validClaims(models.RoleAdmin)),
		"wrong method":   signToken(t, jwt.SigningMethodHS512, testSecret, validClaims(models.RoleAdmin)),
		"expired":        signToken(t, jwt.SigningMethodHS256, testSecret, expired),
		"wrong audience": signToken(t, jwt.SigningMethodHS256, testSecret, wrongAudience),
		"no subject":     signToken(t, jwt.SigningMethodHS256, testSecret, noSubject),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := verifier.Verify(token)
			require.Error(t, err)
			var appErr *appErrors.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, appErrors.ErrUnauthorized.Status, appErr.Status)
		})
	}
}

func TestTokenVerifierWithoutSecret(t *testing.T) {
	verifier := NewTokenVerifier(AuthConfig{}, nil)
	_, err := verifier.Verify(signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(models.RoleAdmin)))
	assert.Error(t, err)
}
