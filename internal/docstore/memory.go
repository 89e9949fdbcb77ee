package docstore

import (
	"context" // Context for store calls
	"sync"    // Guards both collections
	"time"    // Timestamps

	"money_tracker/internal/domain" // Importing domain models

	"github.com/google/uuid" // Record ids
)

// MemoryStore keeps both collections in process memory. Used when no
// database is configured and in tests.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile // Profiles keyed by uid
	records  []domain.TrackerRecord    // Records in insertion order
	now      func() time.Time          // Clock, replaced in tests
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]domain.Profile), now: time.Now}
}

func (s *MemoryStore) CreateProfile(_ context.Context, uid, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[uid] = domain.Profile{UID: uid, Email: email, CreatedAt: s.now()}
	return nil
}

func (s *MemoryStore) EnsureProfile(_ context.Context, uid, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[uid]; !ok {
		s.profiles[uid] = domain.Profile{UID: uid, Email: email, CreatedAt: s.now()}
	}
	return nil // Unknown ids delete nothing
}

// Profile returns the profile stored under uid.
func (s *MemoryStore) Profile(uid string) (domain.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[uid]
	return p, ok
}

func (s *MemoryStore) ListAll(_ context.Context) ([]domain.TrackerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.TrackerRecord, len(s.records))
	copy(out, s.records) // Callers get their own slice
	return out, nil
}

func (s *MemoryStore) Add(_ context.Context, record domain.TrackerRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = uuid.NewString()
	record.CreatedAt = s.now()
	s.records = append(s.records, record)
	return record.ID, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...) // Keep insertion order
			break
		}
	}
	return nil
}
