// Package auth validates bearer tokens and carries the authenticated
// identity through the request context. The authenticated email is the
// owner value used by every repository.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrNoUserInContext  = errors.New("no user in context")
)

// Claims are the token claims the backend cares about.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Config holds JWT validation settings.
type Config struct {
	SecretKey string
	Issuer    string
	Audience  string
}

// Validator validates bearer tokens issued by the identity provider.
type Validator struct {
	config Config
}

// NewValidator creates a new token validator
func NewValidator(config Config) (*Validator, error) {
	if config.SecretKey == "" {
		return nil, errors.New("auth: secret key is required")
	}
	return &Validator{config: config}, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (v *Validator) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.config.Issuer))
	}
	if v.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.config.Audience))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(v.config.SecretKey), nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}

	return claims, nil
}

// GeneratorConfig holds token generation settings.
type GeneratorConfig struct {
	SecretKey string
	Issuer    string
	Audience  string
	Expiry    time.Duration
}

// Generator issues HS256 tokens. Used for local development and tests;
// production tokens come from the external identity provider.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new token generator
func NewGenerator(config GeneratorConfig) (*Generator, error) {
	if config.SecretKey == "" {
		return nil, errors.New("auth: secret key is required")
	}
	if config.Expiry == 0 {
		config.Expiry = 24 * time.Hour
	}
	return &Generator{config: config}, nil
}

// GenerateToken issues a signed token for the given identity.
func (g *Generator) GenerateToken(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    g.config.Issuer,
			Audience:  jwt.ClaimStrings{g.config.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.config.Expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(g.config.SecretKey))
}

// UserContext is the authenticated identity attached to a request.
type UserContext struct {
	Email string
}

type contextKey string

const userContextKey contextKey = "user"

// SetUserInContext attaches the authenticated user to the context.
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the authenticated user from the context.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
