// SPDX-License-Identifier: Apache-2.0

package models

import (
	"time"

	"github.com/google/uuid"
)

// Parent types a folder can be attached to.
const (
	ParentTypeUser   = "user"
	ParentTypeFolder = "folder"
)

// Folder is a named container node in the document tree. A folder belongs
// either to a user (a root folder such as "Responses") or to another folder,
// and carries arbitrary JSON metadata plus an optional cached JSON-LD
// expansion of that metadata.
type Folder struct {
	// FolderID is the internal unique identifier of the folder.
	FolderID uuid.UUID `json:"_id"`

	// ParentID identifies the owning user or folder, per ParentType.
	ParentID uuid.UUID `json:"parent_id"`

	// ParentType is either ParentTypeUser or ParentTypeFolder.
	ParentType string `json:"parent_type"`

	// Name is the folder's display name, unique among siblings.
	Name string `json:"name"`

	// CreatorID is the user who created the folder. The creator holds
	// AccessAdmin implicitly.
	CreatorID uuid.UUID `json:"creator_id"`

	// Public marks the folder world-readable.
	Public bool `json:"public"`

	// Access lists explicit per-user grants beyond the creator.
	Access ACL `json:"-"`

	// Meta holds arbitrary JSON metadata attached to the folder, including
	// compacted JSON-LD definitions keyed by entity type (e.g. "applet").
	Meta map[string]any `json:"meta,omitempty"`

	// Cached holds the expanded JSON-LD representation of Meta, stamped with
	// a prov:generatedAtTime, or nil when nothing has been cached yet.
	Cached map[string]any `json:"cached,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Folder model.
func (f Folder) TableName() string {
	return "folders"
}
