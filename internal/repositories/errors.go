package repositories

import "errors"

// Sentinel errors surfaced by repositories so callers can map them to
// transport status codes without string matching.
var (
	ErrInvalidID     = errors.New("invalid id format")
	ErrUserNotFound  = errors.New("user not found")
	ErrMediaNotFound = errors.New("media not found")
	ErrDuplicateUser = errors.New("email or username already in use")
)
