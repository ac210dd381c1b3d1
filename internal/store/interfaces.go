// SPDX-License-Identifier: Apache-2.0

package store

//go:generate mockgen -source=interfaces.go -destination=../service/mocks/store_mock.go -package=mocks

import (
	"context"

	"github.com/dkhasanov/appletd/models"
	"github.com/google/uuid"
)

// UserRepository persists and retrieves user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
}

// FolderRepository persists and retrieves folders — the container nodes of
// the document tree. Access-level enforcement lives in the service layer;
// repositories only move rows.
type FolderRepository interface {
	CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error)
	FindFolderByID(ctx context.Context, folderID uuid.UUID) (models.Folder, error)
	// FindFolderByParentAndName returns the single child folder of the given
	// parent with the given name, or ErrFolderNotFound.
	FindFolderByParentAndName(ctx context.Context, parentID uuid.UUID, parentType, name string) (models.Folder, error)
	ChildFolders(ctx context.Context, parentID uuid.UUID, parentType string) ([]models.Folder, error)
	// UpdateCached persists the expanded JSON-LD cache onto the folder row.
	UpdateCached(ctx context.Context, folderID uuid.UUID, cached map[string]any) error
	// FindFolderByMetaURL returns the folder whose meta.<mesoType>.url equals
	// url, or ErrFolderNotFound.
	FindFolderByMetaURL(ctx context.Context, mesoType, url string) (models.Folder, error)
}

// ItemRepository persists and retrieves items — the leaf documents holding
// response payloads.
type ItemRepository interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	SetMetadata(ctx context.Context, itemID uuid.UUID, meta map[string]any) (models.Item, error)
	ChildItems(ctx context.Context, folderID uuid.UUID) ([]models.Item, error)
}
