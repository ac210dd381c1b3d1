// SPDX-License-Identifier: Apache-2.0

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrFolderNotFound is returned when a query targets a folder that does
	// not exist in the database.
	ErrFolderNotFound = errors.New("folder was not found")

	// ErrFolderNameTaken is returned when creating a folder collides with a
	// sibling of the same name under the same parent.
	ErrFolderNameTaken = errors.New("folder name already taken under this parent")

	// ErrItemNotFound is returned when a query targets an item that does not
	// exist in the database.
	ErrItemNotFound = errors.New("item was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a result row into a model
	// fails (including JSONB decoding errors).
	ErrScanningRow = errors.New("error scanning result row")
)
