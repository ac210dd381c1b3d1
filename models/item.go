// SPDX-License-Identifier: Apache-2.0

package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a leaf document belonging to a folder. Response submissions are
// stored as items: created once, named by a timestamp, never mutated except
// for metadata attachment at creation time.
type Item struct {
	// ItemID is the internal unique identifier of the item.
	ItemID uuid.UUID `json:"_id"`

	// FolderID identifies the folder the item belongs to.
	FolderID uuid.UUID `json:"folder_id"`

	// Name is the item's display name; response items use the submission
	// timestamp in "YYYY-MM-DD-HH-MM-SS-TZ" form.
	Name string `json:"name"`

	// Description is a human-readable summary of the item.
	Description string `json:"description"`

	// CreatorID is the user who created the item.
	CreatorID uuid.UUID `json:"creator_id"`

	// Meta holds the arbitrary JSON payload attached to the item
	// (the response body for response items).
	Meta map[string]any `json:"meta,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "items"
}
