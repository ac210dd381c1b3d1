// SPDX-License-Identifier: Apache-2.0

package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account entity used for authentication and ownership of
// folder trees. Credential fields must never be exposed outside trusted
// boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID uuid.UUID `json:"_id"`

	// Login is the unique user login identifier, used during authentication.
	Login string `json:"login"`

	// Name is the display name of the user. Non-sensitive, may be shown in UI.
	Name string `json:"name"`

	// Password carries the plaintext password on inbound requests only.
	// It is never persisted; the store keeps PasswordHash.
	Password string `json:"password,omitempty"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Excluded from JSON serialization.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
