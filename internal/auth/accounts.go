package auth

import (
	"context" // Context for queries
	"errors"  // Error matching
	"fmt"     // Error wrapping
	"sync"    // Guards the in-memory repository

	"money_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// AccountRepository persists provider accounts
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// GormAccounts stores accounts in the auth_accounts table. The *gorm.DB must
// be opened with TranslateError so duplicates surface as gorm.ErrDuplicatedKey.
type GormAccounts struct {
	db *gorm.DB
}

func NewGormAccounts(db *gorm.DB) *GormAccounts {
	return &GormAccounts{db: db}
}

func (r *GormAccounts) Create(ctx context.Context, account *domain.Account) error {
	const op = "auth.GormAccounts.Create"

	// Insert the account, the unique index on email rejects duplicates
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%s: %w", op, ErrAccountExists) // Email already registered
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *GormAccounts) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const op = "auth.GormAccounts.FindByEmail"

	var account domain.Account // Account to be fetched
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrAccountNotFound) // No such email
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &account, nil
}

// MemoryAccounts keeps accounts in process memory
type MemoryAccounts struct {
	mu      sync.Mutex
	byEmail map[string]domain.Account // Accounts keyed by normalized email
	nextID  uint                      // Last assigned primary key
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{byEmail: make(map[string]domain.Account)}
}

func (r *MemoryAccounts) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return ErrAccountExists
	}
	r.nextID++
	account.ID = r.nextID // Mirror the auto-increment key
	r.byEmail[account.Email] = *account
	return nil
}

func (r *MemoryAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.byEmail[email]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil // Copy, callers cannot mutate the stored value
}
