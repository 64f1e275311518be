// Package repository persists account records in MySQL. Sentinel
// errors let handlers map storage outcomes to HTTP statuses without
// inspecting driver errors; anything else is an opaque storage failure
// propagated unchanged.
package repository

import "errors"

// ErrDuplicateLogin is returned when an insert collides with an
// existing login. Handlers translate it into HTTP 400.
var ErrDuplicateLogin = errors.New("login already taken")

// ErrNotFound is returned when no account matches the lookup.
// Handlers translate it into HTTP 404, except during login where it is
// folded into the invalid-credentials outcome.
var ErrNotFound = errors.New("account not found")
