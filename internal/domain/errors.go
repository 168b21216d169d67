package domain

import "errors"

var (
	ErrMissingToken    = errors.New("refresh token is required")
	ErrUnknownToken    = errors.New("unknown refresh token")
	ErrInvalidToken    = errors.New("invalid refresh token")
	ErrUnauthenticated = errors.New("access token required")
	ErrUnauthorized    = errors.New("invalid or expired access token")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrStorage         = errors.New("storage failure")
)
