package service

import (
	"errors"
	"fmt"

	"github.com/jmrodas/parkings-api/internal/resource"
)

var (
	// ErrInvalidDataProvided indicates a write request carried no usable fields.
	ErrInvalidDataProvided = errors.New("invalid data provided")
	// ErrInvalidCredentials indicates the username or password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidOrder indicates a malformed or unknown ORDER BY request.
	ErrInvalidOrder = errors.New("invalid order clause")
	// ErrTokenCreationFailed indicates the issued token could not be persisted.
	ErrTokenCreationFailed = errors.New("token creation failed")
	// ErrTokenIsExpired indicates the token is past its expiry.
	ErrTokenIsExpired = errors.New("token is expired")
	// ErrTokenRevoked indicates the token was invalidated by a logout.
	ErrTokenRevoked = errors.New("token is revoked")
	// ErrTokenNotFound indicates the token was never issued by this server.
	ErrTokenNotFound = errors.New("token not found")
	// ErrTokenInvalid indicates the token failed signature or claim checks.
	ErrTokenInvalid = errors.New("token is invalid")
)

// ValidationError aggregates the field errors of a rejected write.
type ValidationError struct {
	Errores []resource.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("datos inválidos: %d error(es) de validación", len(e.Errores))
}
