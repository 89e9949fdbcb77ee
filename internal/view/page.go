// Package view is the presentation layer: a Page value stands for one
// rendered screen and the Controller turns user actions into validated
// gateway and store calls whose outcome is written back onto the Page.
package view

import (
	"strings" // Path matching

	"github.com/shopspring/decimal" // List total
)

// Page locations.
const (
	EntryPath = "/index.html" // Login and sign-up
	HomePath  = "/home.html"  // Tracker list
)

// Button labels.
const (
	SignUpLabel     = "Create New Account"
	SignUpBusyLabel = "Creating Account..."
	SignInLabel     = "Sign In"
	SignInBusyLabel = "Signing In..."
)

type Banner struct {
	Text    string // Error text
	Visible bool   // Hidden once cleared
}

type Field struct {
	Value   string
	Invalid bool // Rendered as a red border
}

type Button struct {
	Label    string // Busy label while a request runs
	Disabled bool   // Disabled while a request runs
}

// Row is one rendered tracker record, tagged with the record id so the
// delete control can target it.
type Row struct {
	ID       string // Record id, target of the delete control
	Name     string // Capitalized name
	AllMoney string // Amount text as entered
	Email    string
}

// AddForm holds the values of the add-entry form.
type AddForm struct {
	Name     string `form:"name"`
	AllMoney string `form:"allMoney"`
	Email    string `form:"email"`
}

// Page is the state of one rendered screen. Handlers receive it explicitly
// and the templates render it as is.
type Page struct {
	Path string

	Banner       Banner
	Email        Field
	Password     Field
	SignInButton Button
	SignUpButton Button

	UserEmail string
	Rows      []Row
	Total     decimal.Decimal // Sum of numeric amounts
	AddForm   AddForm

	// Navigations lists every redirect requested while handling the page,
	// in order. Repeats are kept.
	Navigations []string
}

func NewPage(path string) *Page {
	return &Page{
		Path:         path,
		SignInButton: Button{Label: SignInLabel},
		SignUpButton: Button{Label: SignUpLabel},
	}
}

func (p *Page) ShowError(message string) {
	p.Banner = Banner{Text: message, Visible: true}
}

func (p *Page) ClearError() {
	p.Banner = Banner{}
}

func (p *Page) Navigate(path string) {
	p.Navigations = append(p.Navigations, path)
}

// Redirect returns the last requested navigation, if any.
func (p *Page) Redirect() (string, bool) {
	if len(p.Navigations) == 0 {
		return "", false
	}
	return p.Navigations[len(p.Navigations)-1], true
}

// IsEntry reports whether the page is the login/sign-up page.
func (p *Page) IsEntry() bool {
	path := strings.ToLower(p.Path)
	return path == "/" || strings.HasSuffix(path, "index.html")
}

// TotalText is the list total as shown on the home page.
func (p *Page) TotalText() string {
	return p.Total.StringFixed(2) // Two decimal places
}
