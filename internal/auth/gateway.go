// Package auth contains the identity provider (accounts, password hashes,
// session tokens) and the Gateway through which a single client session
// talks to it.
package auth

import (
	"context" // Context for provider calls
	"errors"  // Error matching
	"sync"    // Guards the observer set
	"time"    // Token expiry

	"money_tracker/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Structured logging
)

// IdentityProvider is the provider surface the Gateway depends on.
type IdentityProvider interface {
	CreateUserWithEmailAndPassword(ctx context.Context, email, password string) (*Credential, error)
	SignInWithEmailAndPassword(ctx context.Context, email, password string) (*Credential, error)
	SignOut(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*domain.Account, error)
}

// ProfileWriter writes the per-account profile document.
type ProfileWriter interface {
	CreateProfile(ctx context.Context, uid, email string) error
	EnsureProfile(ctx context.Context, uid, email string) error
}

// TokenStore holds the session token of one client, e.g. a cookie.
type TokenStore interface {
	Token() string
	Store(token string, expiresAt time.Time)
	Clear()
}

// MemoryTokens is a TokenStore kept in a variable.
type MemoryTokens struct {
	token string
}

func (t *MemoryTokens) Token() string                   { return t.token }
func (t *MemoryTokens) Store(token string, _ time.Time) { t.token = token }
func (t *MemoryTokens) Clear()                          { t.token = "" }

// AuthStateFunc receives the signed-in account, or nil when signed out.
type AuthStateFunc func(account *domain.Account)

// Gateway binds the provider to one client session. Observers registered
// with ObserveAuthState hear about every sign-in and sign-out made through it.
type Gateway struct {
	provider IdentityProvider
	profiles ProfileWriter
	tokens   TokenStore // Session of this client
	log      logrus.FieldLogger

	mu        sync.Mutex
	observers map[int]AuthStateFunc // Subscribers keyed by registration order
	nextID    int                   // Next subscriber key
}

func NewGateway(provider IdentityProvider, profiles ProfileWriter, tokens TokenStore, log logrus.FieldLogger) *Gateway {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Gateway{
		provider:  provider,
		profiles:  profiles,
		tokens:    tokens,
		log:       log,
		observers: make(map[int]AuthStateFunc),
	}
}

// CreateAccount registers the account, signs it in and writes its profile.
// A failed profile write is logged and not returned: the account exists and
// the profile is repaired on the next sign-in.
func (g *Gateway) CreateAccount(ctx context.Context, email, password string) (*domain.Account, error) {
	cred, err := g.provider.CreateUserWithEmailAndPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	g.tokens.Store(cred.Token, cred.ExpiresAt) // Signed in before the profile write

	if err := g.profiles.CreateProfile(ctx, cred.Account.UID, cred.Account.Email); err != nil {
		g.log.WithFields(logrus.Fields{
			"uid":   cred.Account.UID,
			"error": err.Error(),
		}).Error("Profile write failed, account left without profile")
	}

	g.notify(cred.Account)
	return cred.Account, nil
}

// SignIn opens a session and makes sure the account has a profile.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (*domain.Account, error) {
	cred, err := g.provider.SignInWithEmailAndPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	g.tokens.Store(cred.Token, cred.ExpiresAt)

	if err := g.profiles.EnsureProfile(ctx, cred.Account.UID, cred.Account.Email); err != nil {
		g.log.WithFields(logrus.Fields{
			"uid":   cred.Account.UID,
			"error": err.Error(),
		}).Warn("Profile check failed")
	}

	g.notify(cred.Account)
	return cred.Account, nil
}

// SignOut ends the session. On failure the session stays as it was.
func (g *Gateway) SignOut(ctx context.Context) error {
	if err := g.provider.SignOut(ctx, g.tokens.Token()); err != nil {
		return err
	}
	g.tokens.Clear()
	g.notify(nil)
	return nil
}

// CurrentUser returns the signed-in account or nil. A token the provider no
// longer accepts is dropped from the store; a token that could not be checked
// is kept for the next call.
func (g *Gateway) CurrentUser(ctx context.Context) *domain.Account {
	token := g.tokens.Token()
	if token == "" {
		return nil // Nobody signed in
	}
	account, err := g.provider.CurrentUser(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSignedOut) {
			g.log.WithField("error", err.Error()).Debug("Session token rejected")
			g.tokens.Clear() // Invalid, expired or revoked
			return nil
		}
		g.log.WithField("error", err.Error()).Warn("Session check failed")
		return nil
	}
	return account
}

// ObserveAuthState calls fn with the current state right away and again on
// every later change. The returned func removes the subscription.
func (g *Gateway) ObserveAuthState(ctx context.Context, fn AuthStateFunc) (unsubscribe func()) {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.observers[id] = fn
	g.mu.Unlock()

	fn(g.CurrentUser(ctx)) // Initial state

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.observers, id)
			g.mu.Unlock()
		})
	}
}

func (g *Gateway) notify(account *domain.Account) {
	g.mu.Lock()
	fns := make([]AuthStateFunc, 0, len(g.observers))
	for id := 0; id < g.nextID; id++ { // Registration order
		if fn, ok := g.observers[id]; ok {
			fns = append(fns, fn)
		}
	}
	g.mu.Unlock()

	for _, fn := range fns { // Called outside the lock, fn may unsubscribe
		fn(account)
	}
}
