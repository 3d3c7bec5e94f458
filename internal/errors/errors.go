package errors

import (
	"errors"
	"fmt"
)

// Common error types for the poster gateway
var (
	// Tenant errors
	ErrTenantNotFound = errors.New("tenant not found")

	// Provider / exchange errors
	ErrProviderNotConfigured = errors.New("identity provider not configured")
	ErrExchangeFailed        = errors.New("token exchange failed")
	ErrTokenInvalid          = errors.New("token invalid")
	ErrTokenExpired          = errors.New("token expired")

	// Login state errors
	ErrStateNotFound = errors.New("login state not found")
	ErrStateExpired  = errors.New("login state expired")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionInvalid  = errors.New("session invalid")
	ErrSessionExpired  = errors.New("session expired")

	// Allow-list errors
	ErrAllowlistUnavailable = errors.New("allow-list store unavailable")
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
