package auth

import "github.com/medix-app/medix-backend/internal/model"

// Authorize reports whether the authenticated identity may proceed.
// Nil claims deny: a request that never passed token verification is
// treated the same as a role mismatch. Must run after Verify.
func Authorize(claims *Claims, required model.Role) bool {
	return claims != nil && claims.Role == required
}
