// Package docstore holds the two document collections of the tracker:
// profiles, one per account keyed by uid, and tracker_users, the shared
// list of people and amounts. Each collection has its own typed interface.
package docstore

import (
	"context" // Context for store calls
	"errors"  // Error matching
	"fmt"     // Error formatting

	"money_tracker/internal/domain" // Importing domain models
)

// Collection names, shared by every backend.
const (
	ProfilesCollection = "profiles"      // One document per account
	TrackerCollection  = "tracker_users" // Shared list of people and amounts
)

// ProfileStore writes per-account profile documents.
type ProfileStore interface {
	// CreateProfile writes {email, createdAt, totalMoney: 0} under uid,
	// replacing any existing document.
	CreateProfile(ctx context.Context, uid, email string) error
	// EnsureProfile writes the same document only if uid has none yet.
	EnsureProfile(ctx context.Context, uid, email string) error
}

// UserListStore is the tracker list.
type UserListStore interface {
	ListAll(ctx context.Context) ([]domain.TrackerRecord, error)
	Add(ctx context.Context, record domain.TrackerRecord) (string, error)
	Delete(ctx context.Context, id string) error
}

// Store is a backend serving both collections.
type Store interface {
	ProfileStore
	UserListStore
}

// StoreError is returned by every failing store operation.
type StoreError struct {
	Op  string // listAll, add, delete, createProfile, ensureProfile
	Err error  // Underlying failure
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("docstore %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Message is the underlying failure text, without the operation prefix.
func (e *StoreError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err // Already tagged with its operation
	}
	return &StoreError{Op: op, Err: err}
}
