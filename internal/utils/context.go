// SPDX-License-Identifier: Apache-2.0

// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, JWT token generation and
// validation, and other common operations.
package utils

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user's identifier
// in the request context. Used together with GetUserIDFromContext for
// type-safe retrieval.
var UserIDCtxKey = contextKey("userID")

// ErrNoUserIDInContext is returned by GetUserIDFromContext when the context
// carries no user ID (the request went through no auth middleware).
var ErrNoUserIDInContext = errors.New("no user ID in context")

// GetUserIDFromContext retrieves the authenticated user's ID stored in ctx
// under UserIDCtxKey.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(UserIDCtxKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoUserIDInContext
	}
	return userID, nil
}
