package view

import (
	"errors" // Error matching

	"money_tracker/internal/auth"     // Provider error codes
	"money_tracker/internal/docstore" // Store errors
)

func signUpMessage(err error) string {
	var perr *auth.ProviderError
	if !errors.As(err, &perr) {
		return err.Error() // Not from the provider
	}
	switch perr.Code {
	case auth.CodeEmailAlreadyInUse:
		return "This email is already registered. Please sign in instead."
	case auth.CodeInvalidEmail:
		return "Please enter a valid email (e.g., user@example.com)"
	case auth.CodeWeakPassword:
		return "Password is too weak. Please use at least 4 characters."
	default:
		return perr.Message // Provider text as is
	}
}

func signInMessage(err error) string {
	var perr *auth.ProviderError
	if !errors.As(err, &perr) {
		return err.Error()
	}
	switch perr.Code {
	case auth.CodeUserNotFound:
		return "No account found with this email. Please sign up first."
	case auth.CodeWrongPassword:
		return "Incorrect password. Please try again."
	default:
		return perr.Message
	}
}

// rawMessage is the error text without wrapping prefixes.
func rawMessage(err error) string {
	var perr *auth.ProviderError
	if errors.As(err, &perr) {
		return perr.Message
	}
	var serr *docstore.StoreError
	if errors.As(err, &serr) {
		return serr.Message()
	}
	return err.Error()
}
