package utils

import (
	"errors" // Sentinel errors
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/google/uuid"       // Token ids
)

// ErrInvalidToken is returned for malformed, badly signed or expired tokens
var ErrInvalidToken = errors.New("invalid or expired token")

// JWT Claims for a signed-in session
type Claims struct {
	UID                  string `json:"uid"`   // Account uid
	Email                string `json:"email"` // Account email
	jwt.RegisteredClaims        // Standard JWT claims, ID is the revocation key
}

// GenerateJWT creates a session token for an account, valid for ttl
func GenerateJWT(uid, email, secret string, ttl time.Duration) (string, *Claims, error) {
	now := time.Now()
	// Set token claims
	claims := &Claims{
		UID:   uid,   // Custom claim for account uid
		Email: email, // Custom claim for account email
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),                 // Unique token id
			Subject:   uid,                              // Subject is the account
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString([]byte(secret))          // Sign the token with the secret
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ParseJWT parses and validates a session token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UID != "" {
		return claims, nil // Return claims if valid
	}
	return nil, ErrInvalidToken
}
