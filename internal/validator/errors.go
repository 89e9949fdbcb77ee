package validator

// ValidationError is a local input error. Its text is shown to the user as is
// and it never reaches the auth provider.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrEmptyCredentials = &ValidationError{Message: "Please enter both email and password"}
	ErrInvalidEmail     = &ValidationError{Message: "Please enter a valid email (e.g., user@example.com)"}
	ErrWeakPassword     = &ValidationError{Message: "Password must be at least 4 characters long"}
)
