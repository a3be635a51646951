package service

import "errors"

// Closed set of business failures. Handlers switch on these with errors.Is;
// anything else wrapping out of the repository is an unexpected storage
// fault and maps to a generic 500.
var (
	ErrInvalidInput       = errors.New("all fields (name, email, password) are required")
	ErrNameConflict       = errors.New("name already exists")
	ErrEmailConflict      = errors.New("email already exists")
	ErrHashingFailure     = errors.New("failed to hash password")
	ErrStorageIntegrity   = errors.New("database integrity error")
	ErrNotFound           = errors.New("user not found")
	ErrNoFieldsProvided   = errors.New("no data to update")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
