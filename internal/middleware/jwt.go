package middleware

import (
	"context"  // Context for provider lookups
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"money_tracker/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

const (
	SessionCookie = "session" // Cookie holding the session token
	AccountKey    = "account" // Context key of the signed-in *domain.Account
)

// SessionResolver turns a session token into the signed-in account
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) (*domain.Account, error)
}

// SessionToken extracts the session token from the Authorization header or the session cookie
func SessionToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ") // Header wins over the cookie
	}
	token, _ := c.Cookie(SessionCookie) // Empty when the cookie is missing
	return token
}

// SessionAuthMiddleware validates the session token and stores the account in the context
func SessionAuthMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c) // Bearer header or session cookie
		// Check that some token was sent at all
		if token == "" {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing session token"})
			return
		}
		account, err := sessions.CurrentUser(c.Request.Context(), token) // Verify signature, expiry and revocation
		if err != nil {
			// If the provider rejects it, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid, expired or revoked token"})
			return
		}
		c.Set(AccountKey, account) // Store account in context
		c.Next()                   // Proceed to the next handler
	}
}

// CurrentAccount returns the account stored by SessionAuthMiddleware
func CurrentAccount(c *gin.Context) (*domain.Account, bool) {
	v, ok := c.Get(AccountKey)
	if !ok {
		return nil, false
	}
	account, ok := v.(*domain.Account)
	return account, ok && account != nil
}
