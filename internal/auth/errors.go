package auth

import (
	"errors" // Sentinel errors
	"fmt"    // Error formatting
)

// Code is the closed set of provider error codes the application reacts to.
// Anything the provider reports outside this set is CodeUnknown and keeps its
// raw code string on the ProviderError.
type Code int

const (
	CodeUnknown Code = iota
	CodeEmailAlreadyInUse
	CodeInvalidEmail
	CodeWeakPassword
	CodeUserNotFound
	CodeWrongPassword
)

// Raw codes the provider emits besides the known ones
const (
	RawInternalError        = "auth/internal-error"         // Storage or hashing failure
	RawNetworkRequestFailed = "auth/network-request-failed" // Revocation store unreachable
)

var codeNames = map[Code]string{
	CodeEmailAlreadyInUse: "auth/email-already-in-use",
	CodeInvalidEmail:      "auth/invalid-email",
	CodeWeakPassword:      "auth/weak-password",
	CodeUserNotFound:      "auth/user-not-found",
	CodeWrongPassword:     "auth/wrong-password",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "auth/unknown"
}

// ParseCode maps a raw provider code to its Code, CodeUnknown if unrecognized
func ParseCode(raw string) Code {
	for code, name := range codeNames {
		if name == raw {
			return code
		}
	}
	return CodeUnknown // Default arm keeps the raw string on the error
}

// ProviderError is what every provider operation fails with
type ProviderError struct {
	Code    Code   // Known code or CodeUnknown
	RawCode string // Code string as the provider reported it
	Message string // Provider text, shown when no friendlier message exists
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s", e.RawCode, e.Message)
}

// NewProviderError builds a ProviderError from a raw code string
func NewProviderError(raw, message string) *ProviderError {
	return &ProviderError{Code: ParseCode(raw), RawCode: raw, Message: message}
}

func newError(code Code, message string) *ProviderError {
	return &ProviderError{Code: code, RawCode: code.String(), Message: message}
}

// Repository errors
var (
	ErrAccountExists   = errors.New("account already exists") // Duplicate email
	ErrAccountNotFound = errors.New("account not found")      // Unknown email
)

// ErrSignedOut is returned by CurrentUser when the token is missing, invalid,
// expired or revoked
var ErrSignedOut = errors.New("no signed-in user")
