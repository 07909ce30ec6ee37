package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the parts of the backend's access token the client looks at.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}

// ParseUnverified decodes the token payload without checking the signature.
// The client has no signing key; the backend stays the authority on validity.
func ParseUnverified(tokenString string) (*Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	out := &Claims{}
	if userID, ok := claims["user_id"].(string); ok {
		out.UserID = userID
	} else if sub, err := claims.GetSubject(); err == nil {
		out.UserID = sub
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}

	return out, nil
}
