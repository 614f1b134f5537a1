package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader indicates the Authorization header is missing.
	ErrEmptyAuthorizationHeader = errors.New("empty Authorization header")
	// ErrInvalidAuthorizationHeader indicates the header is not a Bearer scheme.
	ErrInvalidAuthorizationHeader = errors.New("invalid Authorization header")
	// ErrEmptyToken indicates the Bearer scheme carried no token.
	ErrEmptyToken = errors.New("empty token")
)
