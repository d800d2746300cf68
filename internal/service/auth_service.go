package service

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/examhub-lk/examhub-api/internal/models"
	appErrors "github.com/examhub-lk/examhub-api/pkg/errors"
)

// AuthConfig defines how access tokens from the auth provider are verified.
type AuthConfig struct {
	Secret   string
	Issuer   string
	Audience string
}

// TokenVerifier validates bearer tokens issued by the hosted auth provider. It never issues tokens.
type TokenVerifier struct {
	config AuthConfig
	logger *zap.Logger
}

// NewTokenVerifier constructs a TokenVerifier.
func NewTokenVerifier(config AuthConfig, logger *zap.Logger) *TokenVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenVerifier{config: config, logger: logger}
}

// Verify parses and validates an access token returning its claims.
func (v *TokenVerifier) Verify(tokenString string) (*models.JWTClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing token")
	}
	if v.config.Secret == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token verification disabled")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}
	if v.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.config.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.config.Secret), nil
	}, opts...)
	if err != nil {
		v.logger.Debug("token rejected", zap.Error(err))
		return nil, appErrors.WrapAs(appErrors.ErrUnauthorized, err, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}
