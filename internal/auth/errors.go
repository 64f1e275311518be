// Package auth implements the security core: bcrypt credential
// hashing, HS256 token issuance/verification, and the role guard. It
// holds no mutable state after construction and performs no I/O, so a
// single instance of each type is safe to share across requests.
package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown login and a wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenMissing means no token was supplied at all.
	ErrTokenMissing = errors.New("token missing")

	// ErrTokenInvalid means the token is malformed or its signature
	// does not verify against the configured key.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired means the token was well formed and correctly
	// signed but its expiration has passed.
	ErrTokenExpired = errors.New("token expired")
)
