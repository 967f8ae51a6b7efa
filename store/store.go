// Package store wraps all PostgreSQL access behind small per-table types.
// Cross-request correctness (duplicate usernames, duplicate watchlist rows)
// is delegated to database constraints, never to in-process checks.
package store

import "errors"

var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUserNotFound      = errors.New("user not found")
)
