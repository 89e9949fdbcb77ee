// Package validator holds the client-side credential checks: email shape,
// password length, the submit-time precedence rules and the live per-field
// states shown while the user types.
package validator

import (
	"regexp"        // Email pattern
	"strings"       // Trimming
	"unicode"       // Separator categories
	"unicode/utf16" // Browser string length
)

// MinPasswordLength is the shortest password the forms accept.
const MinPasswordLength = 4

// space is the whitespace class browsers use for \s: ASCII spaces, vertical
// tab, every Unicode separator (Zs, Zl, Zp) and the byte order mark.
const space = `\s\x0B\p{Z}\x{FEFF}`

var emailPattern = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)

// IsSpace reports whether r counts as whitespace in a browser.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\uFEFF':
		return true
	}
	return unicode.In(r, unicode.Z)
}

// TrimSpace removes leading and trailing browser whitespace.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// Length measures s in UTF-16 code units, the unit browsers count string
// length in, so "😀😀" has length 4.
func Length(s string) int {
	n := 0
	for _, r := range s {
		if units := utf16.RuneLen(r); units > 0 {
			n += units
		} else {
			n++ // Not encodable, counted as one replacement unit
		}
	}
	return n
}

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidPassword reports whether p has at least MinPasswordLength characters.
func IsValidPassword(p string) bool {
	return Length(p) >= MinPasswordLength
}

// CheckSignUp validates the sign-up form. The first failing rule wins:
// missing field, then email shape, then password length.
func CheckSignUp(email, password string) error {
	if err := CheckSignIn(email, password); err != nil {
		return err
	}
	if !IsValidPassword(password) {
		return ErrWeakPassword
	}
	return nil
}

// CheckSignIn validates the sign-in form: missing field, then email shape.
// Password length is left to the provider.
func CheckSignIn(email, password string) error {
	if email == "" || password == "" {
		return ErrEmptyCredentials
	}
	if !IsValidEmail(email) {
		return ErrInvalidEmail
	}
	return nil
}

// FieldState is the live state of a single input: neutral or invalid.
type FieldState struct {
	Invalid bool   `json:"invalid"`
	Message string `json:"message,omitempty"`
}

// EmailField evaluates the email input on every keystroke. The value is
// trimmed first and an empty input is neutral.
func EmailField(value string) FieldState {
	email := TrimSpace(value)
	if email != "" && !IsValidEmail(email) {
		return FieldState{Invalid: true, Message: ErrInvalidEmail.Error()}
	}
	return FieldState{}
}

// PasswordField evaluates the password input on every keystroke. An empty
// input is neutral.
func PasswordField(value string) FieldState {
	if value != "" && !IsValidPassword(value) {
		return FieldState{Invalid: true, Message: ErrWeakPassword.Error()}
	}
	return FieldState{}
}
