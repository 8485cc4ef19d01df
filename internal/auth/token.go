// Package auth validates JWT access tokens and exposes the acting identity
// to handlers. Token issuance lives in a separate identity service; this
// service only consumes tokens.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eduflex/backend/internal/models"
)

// TokenValidator handles JWT access token validation
type TokenValidator struct {
	secret            string
	accessTokenExpiry time.Duration
}

// NewTokenValidator creates a new token validator
func NewTokenValidator(secret string, accessExpiry time.Duration) *TokenValidator {
	return &TokenValidator{
		secret:            secret,
		accessTokenExpiry: accessExpiry,
	}
}

// GenerateAccessToken creates an access token with user_id and role in the payload.
// Used by tests and local tooling; production tokens come from the identity service.
func (tv *TokenValidator) GenerateAccessToken(userID int, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    int(role),
		"exp":     time.Now().Add(tv.accessTokenExpiry).Unix(),
		"iat":     time.Now().Unix(),
		"type":    "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tv.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns the actor it carries
func (tv *TokenValidator) ValidateAccessToken(tokenString string) (models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tv.secret), nil
	})

	if err != nil {
		return models.Actor{}, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return models.Actor{}, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Actor{}, fmt.Errorf("invalid token claims")
	}

	// Check token type
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return models.Actor{}, fmt.Errorf("token is not an access token")
	}

	// Extract user_id (JWT claims decode numbers as float64)
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return models.Actor{}, fmt.Errorf("user_id not found in token")
	}

	// Extract role (JWT claims decode numbers as float64)
	role, ok := claims["role"].(float64)
	if !ok {
		return models.Actor{}, fmt.Errorf("role not found in token")
	}

	return models.Actor{ID: int(userID), Role: models.Role(int(role))}, nil
}
