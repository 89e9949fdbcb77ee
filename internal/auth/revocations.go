package auth

import (
	"context" // Context for cache calls
	"time"    // Revocation lifetime

	"money_tracker/internal/utils" // Cache
)

const revokedKeyPrefix = "auth:revoked:" // Cache key prefix, followed by the jti

// Revocations remembers signed-out token ids until the tokens expire
type Revocations interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// CacheRevocations keeps revoked token ids in a utils.Cache (Redis in production)
type CacheRevocations struct {
	cache utils.Cache
}

func NewCacheRevocations(cache utils.Cache) *CacheRevocations {
	return &CacheRevocations{cache: cache}
}

func (r *CacheRevocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to remember
	}
	return r.cache.Set(ctx, revokedKeyPrefix+tokenID, true, ttl) // Entry dies with the token
}

func (r *CacheRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var revoked bool
	found, err := r.cache.Get(ctx, revokedKeyPrefix+tokenID, &revoked)
	if err != nil {
		return false, err // Unknown, the caller decides
	}
	return found && revoked, nil
}
