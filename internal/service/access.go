// SPDX-License-Identifier: Apache-2.0

package service

import (
	"github.com/dkhasanov/appletd/models"
	"github.com/google/uuid"
)

// accessLevelFor computes the effective access level a user holds on a
// folder: the creator is admin, explicit grants apply as listed, and public
// folders are readable by everyone.
func accessLevelFor(folder models.Folder, userID uuid.UUID) models.AccessLevel {
	if folder.CreatorID == userID {
		return models.AccessAdmin
	}
	level := folder.Access.LevelFor(userID)
	if folder.Public && level < models.AccessRead {
		return models.AccessRead
	}
	return level
}

// requireAccess returns ErrAccessDenied unless the user holds at least the
// required level on the folder. AccessNone always passes: loading at that
// level only asserts existence.
func requireAccess(folder models.Folder, userID uuid.UUID, required models.AccessLevel) error {
	if required == models.AccessNone {
		return nil
	}
	if accessLevelFor(folder, userID) < required {
		return ErrAccessDenied
	}
	return nil
}
