package auth

import (
	"context" // Context for repository calls
	"errors"  // Error matching
	"fmt"     // Message formatting
	"strings" // Email normalization
	"time"    // Token lifetimes

	"money_tracker/internal/domain"    // Importing domain models
	"money_tracker/internal/utils"     // JWT helpers
	"money_tracker/internal/validator" // Email and length rules

	"github.com/google/uuid"     // Account ids
	"github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// ProviderConfig tunes the identity provider.
type ProviderConfig struct {
	Secret            string        // HMAC key for session tokens
	SessionTTL        time.Duration // Lifetime of a session token
	MinPasswordLength int           // Provider-side password rule, stricter than the form rule
	HashCost          int           // bcrypt cost
}

const (
	defaultSessionTTL        = 24 * time.Hour // One day sessions
	defaultMinPasswordLength = 6              // Provider minimum
)

// Credential is the result of a successful sign-up or sign-in.
type Credential struct {
	Account   *domain.Account // Signed-in account, without the hash
	Token     string          // Signed session token
	ExpiresAt time.Time       // Token expiry
}

// Provider is the identity backend: it owns accounts, password hashes and
// session tokens, and reports failures as *ProviderError.
type Provider struct {
	accounts    AccountRepository  // Account storage
	revocations Revocations        // Signed-out token ids
	cfg         ProviderConfig     // Defaults applied in NewProvider
	log         logrus.FieldLogger // Logger
}

func NewProvider(accounts AccountRepository, revocations Revocations, cfg ProviderConfig, log logrus.FieldLogger) *Provider {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.MinPasswordLength <= 0 {
		cfg.MinPasswordLength = defaultMinPasswordLength
	}
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Provider{accounts: accounts, revocations: revocations, cfg: cfg, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(validator.TrimSpace(email))
}

// CreateUserWithEmailAndPassword registers a new account and signs it in.
func (p *Provider) CreateUserWithEmailAndPassword(ctx context.Context, email, password string) (*Credential, error) {
	email = normalizeEmail(email)
	if !validator.IsValidEmail(email) {
		return nil, newError(CodeInvalidEmail, "The email address is badly formatted.")
	}
	if validator.Length(password) < p.cfg.MinPasswordLength {
		return nil, newError(CodeWeakPassword, fmt.Sprintf("Password should be at least %d characters.", p.cfg.MinPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cfg.HashCost) // Hash the password
	if err != nil {
		return nil, NewProviderError(RawInternalError, "Failed to hash password.")
	}

	account := &domain.Account{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := p.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, ErrAccountExists) {
			return nil, newError(CodeEmailAlreadyInUse, "The email address is already in use by another account.")
		}
		p.log.WithFields(logrus.Fields{"email": email, "error": err.Error()}).Error("Account creation failed")
		return nil, NewProviderError(RawInternalError, "An internal error has occurred.")
	}

	p.log.WithFields(logrus.Fields{"uid": account.UID, "email": email}).Info("Account created")
	return p.issue(account)
}

// SignInWithEmailAndPassword checks the credentials and opens a session.
func (p *Provider) SignInWithEmailAndPassword(ctx context.Context, email, password string) (*Credential, error) {
	email = normalizeEmail(email)
	if !validator.IsValidEmail(email) {
		return nil, newError(CodeInvalidEmail, "The email address is badly formatted.")
	}

	account, err := p.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, newError(CodeUserNotFound, "There is no user record corresponding to this identifier. The user may have been deleted.")
		}
		p.log.WithFields(logrus.Fields{"email": email, "error": err.Error()}).Error("Account lookup failed")
		return nil, NewProviderError(RawInternalError, "An internal error has occurred.")
	}

	// Compare the provided password with the stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, newError(CodeWrongPassword, "The password is invalid or the user does not have a password.")
	}

	p.log.WithFields(logrus.Fields{"uid": account.UID}).Info("Signed in")
	return p.issue(account)
}

func (p *Provider) issue(account *domain.Account) (*Credential, error) {
	token, claims, err := utils.GenerateJWT(account.UID, account.Email, p.cfg.Secret, p.cfg.SessionTTL)
	if err != nil {
		return nil, NewProviderError(RawInternalError, "Failed to issue session token.")
	}
	return &Credential{
		Account:   &domain.Account{UID: account.UID, Email: account.Email, CreatedAt: account.CreatedAt},
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SignOut revokes the session token. Empty, malformed and expired tokens are
// already signed out and succeed.
func (p *Provider) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := utils.ParseJWT(token, p.cfg.Secret)
	if err != nil {
		return nil // Unusable token, nothing to revoke
	}
	if err := p.revocations.Revoke(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		p.log.WithFields(logrus.Fields{"uid": claims.UID, "error": err.Error()}).Error("Sign out failed")
		return NewProviderError(RawNetworkRequestFailed, "A network error has occurred while signing out.")
	}
	p.log.WithFields(logrus.Fields{"uid": claims.UID}).Info("Signed out")
	return nil
}

// CurrentUser resolves a session token to its account, ErrSignedOut when the
// token cannot be used.
func (p *Provider) CurrentUser(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, ErrSignedOut
	}
	claims, err := utils.ParseJWT(token, p.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignedOut, err)
	}
	revoked, err := p.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.Provider.CurrentUser: %w", err) // Not a sign-out, the caller keeps the token
	}
	if revoked {
		return nil, ErrSignedOut // Signed out elsewhere
	}
	return &domain.Account{UID: claims.UID, Email: claims.Email}, nil
}
