package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInsufficientStock   = errors.New("insufficient stock for product")
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
)

type notFoundError struct {
	EntityType string
	ID         uuid.UUID
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.EntityType, e.ID.String())
}

func NewNotFoundError(entityType string, id uuid.UUID) error {
	return &notFoundError{
		EntityType: entityType,
		ID:         id,
	}
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var nfe *notFoundError
	return errors.As(err, &nfe)
}

// ValidationError carries the offending field for the error envelope.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
