package docstore

import (
	"context" // Context for store and cache calls
	"sync"    // Guards the write generation
	"time"    // Snapshot lifetime

	"money_tracker/internal/domain" // Importing domain models
	"money_tracker/internal/utils"  // Cache

	"github.com/sirupsen/logrus" // Structured logging
)

// ListCacheKey holds the cached ListAll snapshot.
const ListCacheKey = "tracker:users:all"

const defaultListTTL = time.Minute // Snapshot lifetime when none is configured

// CachedUserList serves ListAll from the cache and drops the snapshot on
// every successful write. Cache failures fall through to the store.
//
// A snapshot read from the store is only cached if no write finished while
// it was being read. The generation is per process; other replicas sharing
// the cache still rely on the TTL.
type CachedUserList struct {
	next  UserListStore      // Backing store
	cache utils.Cache        // Snapshot cache
	ttl   time.Duration      // Snapshot lifetime
	log   logrus.FieldLogger // Logger

	mu         sync.Mutex
	generation uint64 // Bumped by every successful write
}

func NewCachedUserList(next UserListStore, cache utils.Cache, ttl time.Duration, log logrus.FieldLogger) *CachedUserList {
	if ttl <= 0 {
		ttl = defaultListTTL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CachedUserList{next: next, cache: cache, ttl: ttl, log: log}
}

func (c *CachedUserList) ListAll(ctx context.Context) ([]domain.TrackerRecord, error) {
	var records []domain.TrackerRecord
	found, err := c.cache.Get(ctx, ListCacheKey, &records)
	if err != nil {
		c.log.WithField("error", err.Error()).Warn("List cache read failed") // Fall through to the store
	} else if found {
		return records, nil // Cache hit
	}

	c.mu.Lock()
	generation := c.generation // Writes seen before the read
	c.mu.Unlock()

	records, err = c.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != generation {
		return records, nil // A write landed meanwhile, the snapshot may be stale
	}
	if err := c.cache.Set(ctx, ListCacheKey, records, c.ttl); err != nil {
		c.log.WithField("error", err.Error()).Warn("List cache write failed")
	}
	return records, nil
}

func (c *CachedUserList) Add(ctx context.Context, record domain.TrackerRecord) (string, error) {
	id, err := c.next.Add(ctx, record)
	if err != nil {
		return "", err
	}
	c.invalidate(ctx)
	return id, nil
}

func (c *CachedUserList) Delete(ctx context.Context, id string) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedUserList) invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++ // In-flight reads must not cache what they got
	if err := c.cache.Delete(ctx, ListCacheKey); err != nil {
		c.log.WithField("error", err.Error()).Warn("List cache invalidation failed")
	}
}
