package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims mirrors the claims the backend puts into access tokens.
// Older tokens carry the user id in user_id instead of sub.
type accessClaims struct {
	jwt.RegisteredClaims
	UserID any    `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// tokenInfo is what the client needs to know about its own token.
type tokenInfo struct {
	User      User
	ExpiresAt time.Time
}

// parseAccessToken reads the claims of a backend-issued token without
// verifying the signature. The client never holds the signing key; the
// backend verifies every request.
func parseAccessToken(raw string) (tokenInfo, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if raw == "" {
		return tokenInfo{}, fmt.Errorf("token is empty")
	}

	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return tokenInfo{}, fmt.Errorf("parse token: %w", err)
	}

	id := claims.Subject
	if id == "" && claims.UserID != nil {
		id = fmt.Sprint(claims.UserID)
	}
	if id == "" {
		return tokenInfo{}, fmt.Errorf("token has no subject")
	}

	info := tokenInfo{
		User: User{ID: id, Email: claims.Email, Name: claims.Name},
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
