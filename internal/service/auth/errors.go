package auth

import "errors"

// Common error types for authentication operations
var (
	// ErrInvalidToken indicates the token is malformed, has a bad signature,
	// or otherwise failed validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid indicates the token's nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")
)
