package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserEmailExists    = errors.New("email already registered")
	ErrUsernameExists     = errors.New("username already taken")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrPasswordHashFailed = errors.New("failed to hash password")
)
