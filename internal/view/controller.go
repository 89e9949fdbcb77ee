package view

import (
	"context"      // Context for gateway and store calls
	"unicode/utf8" // First-rune decoding

	"money_tracker/internal/auth"      // Auth state callbacks
	"money_tracker/internal/docstore"  // Tracker list store
	"money_tracker/internal/domain"    // Importing domain models
	"money_tracker/internal/validator" // Form rules

	"github.com/shopspring/decimal" // Exact totals
	"github.com/sirupsen/logrus"    // Structured logging
	"golang.org/x/text/cases"       // Full case mapping
	"golang.org/x/text/language"    // Root locale for case mapping
)

// AuthGateway is the session surface the controller drives.
type AuthGateway interface {
	CreateAccount(ctx context.Context, email, password string) (*domain.Account, error)
	SignIn(ctx context.Context, email, password string) (*domain.Account, error)
	SignOut(ctx context.Context) error
	ObserveAuthState(ctx context.Context, fn auth.AuthStateFunc) (unsubscribe func())
}

type Controller struct {
	gateway AuthGateway            // Session of the current client
	users   docstore.UserListStore // Tracker list
	log     logrus.FieldLogger     // Logger
}

func NewController(gateway AuthGateway, users docstore.UserListStore, log logrus.FieldLogger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{gateway: gateway, users: users, log: log}
}

// Bind subscribes the page to auth state changes. The returned func ends
// the subscription and must be called when the page is done.
func (c *Controller) Bind(ctx context.Context, p *Page) (unbind func()) {
	return c.gateway.ObserveAuthState(ctx, func(account *domain.Account) {
		c.onAuthState(p, account)
	})
}

func (c *Controller) onAuthState(p *Page, account *domain.Account) {
	if account != nil {
		c.log.WithFields(logrus.Fields{"email": account.Email, "path": p.Path}).Debug("Auth state: signed in")
		if p.IsEntry() {
			p.Navigate(HomePath) // Signed in on the entry page, go home
			return
		}
		p.UserEmail = account.Email // Greeting on the home page
		return
	}

	c.log.WithField("path", p.Path).Debug("Auth state: signed out")
	if !p.IsEntry() {
		p.Navigate(EntryPath) // Protected page without a session
	}
}

// OnEmailInput re-evaluates the email field after a keystroke.
func (c *Controller) OnEmailInput(p *Page, value string) {
	p.Email.Value = value
	c.applyField(p, &p.Email, validator.EmailField(value))
}

// OnPasswordInput re-evaluates the password field after a keystroke.
func (c *Controller) OnPasswordInput(p *Page, value string) {
	p.Password.Value = value
	c.applyField(p, &p.Password, validator.PasswordField(value))
}

func (c *Controller) applyField(p *Page, f *Field, state validator.FieldState) {
	f.Invalid = state.Invalid
	if state.Invalid {
		p.ShowError(state.Message)
		return
	}
	p.ClearError()
}

// SignUp validates the form and creates the account. Navigation is left to
// the auth state observer.
func (c *Controller) SignUp(ctx context.Context, p *Page, email, password string) {
	p.ClearError()
	email = validator.TrimSpace(email)
	p.Email.Value = email

	if err := validator.CheckSignUp(email, password); err != nil {
		p.ShowError(err.Error())
		return
	}

	p.SignUpButton = Button{Label: SignUpBusyLabel, Disabled: true}
	defer func() { p.SignUpButton = Button{Label: SignUpLabel} }() // Re-enable whatever the outcome

	c.log.WithField("email", email).Info("Attempting to create account")
	account, err := c.gateway.CreateAccount(ctx, email, password)
	if err != nil {
		c.log.WithFields(logrus.Fields{"email": email, "error": err.Error()}).Warn("Sign up error")
		p.ShowError(signUpMessage(err))
		return
	}
	c.log.WithField("uid", account.UID).Info("Account created successfully")
}

// SignIn validates the form and signs in.
func (c *Controller) SignIn(ctx context.Context, p *Page, email, password string) {
	p.ClearError()
	email = validator.TrimSpace(email)
	p.Email.Value = email

	if err := validator.CheckSignIn(email, password); err != nil {
		p.ShowError(err.Error())
		return
	}

	p.SignInButton = Button{Label: SignInBusyLabel, Disabled: true}
	defer func() { p.SignInButton = Button{Label: SignInLabel} }() // Re-enable whatever the outcome

	c.log.WithField("email", email).Info("Attempting to sign in")
	account, err := c.gateway.SignIn(ctx, email, password)
	if err != nil {
		c.log.WithFields(logrus.Fields{"email": email, "error": err.Error()}).Warn("Sign in error")
		p.ShowError(signInMessage(err))
		return
	}
	c.log.WithField("uid", account.UID).Info("Sign in successful")
}

func (c *Controller) SignOut(ctx context.Context, p *Page) {
	if err := c.gateway.SignOut(ctx); err != nil {
		c.log.WithField("error", err.Error()).Error("Sign out error")
		p.ShowError("Error signing out: " + rawMessage(err))
		return
	}
	c.log.Info("User has been logged out")
	p.Navigate(EntryPath) // Back to the login page
}

// LoadList renders the current snapshot of the tracker list.
func (c *Controller) LoadList(ctx context.Context, p *Page) {
	records, err := c.users.ListAll(ctx)
	if err != nil {
		c.log.WithField("error", err.Error()).Error("Loading entries failed")
		p.ShowError("Could not load entries: " + rawMessage(err))
		return
	}

	p.Rows = make([]Row, 0, len(records))
	for _, rec := range records {
		p.Rows = append(p.Rows, Row{
			ID:       rec.ID,
			Name:     capitalize(rec.Name),
			AllMoney: rec.AllMoney.Text,
			Email:    rec.Email,
		})
	}
	p.Total = SumAmounts(records)
}

// SumAmounts adds up every amount that parses as a decimal number and
// skips the rest.
func SumAmounts(records []domain.TrackerRecord) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		if amount, err := decimal.NewFromString(validator.TrimSpace(rec.AllMoney.Text)); err == nil {
			total = total.Add(amount)
		} // Non-numeric amounts are shown but not summed
	}
	return total
}

// AddUser stores the form values as entered and empties the form whatever
// the outcome.
func (c *Controller) AddUser(ctx context.Context, p *Page, form AddForm) {
	defer func() { p.AddForm = AddForm{} }() // Empty the form on success and failure

	id, err := c.users.Add(ctx, domain.TrackerRecord{
		Name:     form.Name,
		AllMoney: domain.MoneyText(form.AllMoney),
		Email:    form.Email,
	})
	if err != nil {
		c.log.WithField("error", err.Error()).Error("Saving entry failed")
		p.ShowError("Could not save entry: " + rawMessage(err))
		return
	}
	c.log.WithField("id", id).Info("Entry added")
}

// DeleteRow deletes the record a row is tagged with.
func (c *Controller) DeleteRow(ctx context.Context, p *Page, id string) {
	if id == "" {
		return // Row without a record id
	}
	if err := c.users.Delete(ctx, id); err != nil {
		c.log.WithFields(logrus.Fields{"id": id, "error": err.Error()}).Error("Deleting entry failed")
		p.ShowError("Could not delete entry: " + rawMessage(err))
		return
	}
	c.log.WithField("id", id).Info("Entry deleted")
}

// capitalize upper-cases the first UTF-16 unit of s with full case mapping,
// so "ß" becomes "SS". A first character outside the BMP is left alone.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || r > 0xFFFF {
		return s // Empty, invalid or a surrogate pair
	}
	return cases.Upper(language.Und).String(s[:size]) + s[size:] // A Caser is stateful, one per call
}
