package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Starose admin client
var (
	// Session errors
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrTokenUndecodable   = errors.New("token could not be decoded")
	ErrTokenMissingExpiry = errors.New("token has no exp claim")

	// API errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrOperation    = errors.New("operation failed")

	// Inventory errors
	ErrItemNotFound    = errors.New("item not found")
	ErrInvalidQuantity = errors.New("invalid quantity")

	// General errors
	ErrInvalidRequest    = errors.New("invalid request")
	ErrMissingDependency = errors.New("missing dependency")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
