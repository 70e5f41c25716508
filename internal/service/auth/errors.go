// Package auth issues and validates the signed principal tokens that
// identify callers of the gateway API. Minting and task requests are open
// to any principal; the operator principal must additionally prove itself
// with the configured secret before a token is issued for it.
package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or the
	// signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrBadOperatorSecret indicates the operator principal presented a
	// missing or wrong secret when requesting a token
	ErrBadOperatorSecret = errors.New("operator secret is missing or incorrect")
)
