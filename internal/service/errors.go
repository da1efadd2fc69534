package service

import "errors"

var (
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so login responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrInactiveUser rejects disabled accounts at login and at session
	// resolution.
	ErrInactiveUser = errors.New("inactive user")

	// ErrUnauthorized covers missing, expired, or malformed bearer tokens.
	ErrUnauthorized = errors.New("could not validate credentials")

	// ErrForbidden means the caller is authenticated but not the target user
	// and not an admin.
	ErrForbidden = errors.New("not authorized to access this resource")

	// ErrNotFound means the target user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicate means the email (or username) is already registered.
	ErrDuplicate = errors.New("email already registered")
)

// ValidationError reports a registration or update field that is malformed or
// out of policy.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(message string) error {
	return &ValidationError{Message: message}
}
