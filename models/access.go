// SPDX-License-Identifier: Apache-2.0

package models

import "github.com/google/uuid"

// AccessLevel expresses how much a user is allowed to do with a folder or
// item. Levels are ordered: a user holding WRITE implicitly holds READ.
type AccessLevel int

const (
	// AccessNone requires no permission at all; loading at this level only
	// checks that the document exists.
	AccessNone AccessLevel = -1

	// AccessRead allows reading a document and enumerating its children.
	AccessRead AccessLevel = 0

	// AccessWrite allows creating and modifying children of a document.
	AccessWrite AccessLevel = 1

	// AccessAdmin allows changing permissions and deleting the document.
	// The creator of a document always holds AccessAdmin.
	AccessAdmin AccessLevel = 2
)

// ACL maps user IDs to the access level explicitly granted to them on a
// folder. The creator is not listed; they hold AccessAdmin implicitly.
type ACL map[uuid.UUID]AccessLevel

// LevelFor returns the explicit access level granted to userID, or AccessNone
// when no grant exists.
func (a ACL) LevelFor(userID uuid.UUID) AccessLevel {
	if a == nil {
		return AccessNone
	}
	if level, ok := a[userID]; ok {
		return level
	}
	return AccessNone
}
