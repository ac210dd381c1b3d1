// SPDX-License-Identifier: Apache-2.0

package store

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const (
	createUser = `INSERT INTO users (user_id, login, name, password_hash)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, login, name, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, created_at
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, login, name, password_hash, created_at
    FROM users
    WHERE user_id = $1;`

	createFolder = `INSERT INTO folders (folder_id, parent_id, parent_type, name, creator_id, public, access, meta)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING folder_id, parent_id, parent_type, name, creator_id, public, access, meta, cached, created_at, updated_at;`

	findFolderByID = `SELECT folder_id, parent_id, parent_type, name, creator_id, public, access, meta, cached, created_at, updated_at
    FROM folders
    WHERE folder_id = $1;`

	updateFolderCached = `UPDATE folders
    SET cached = $2, updated_at = now()
    WHERE folder_id = $1;`

	findFolderByMetaURL = `SELECT folder_id, parent_id, parent_type, name, creator_id, public, access, meta, cached, created_at, updated_at
    FROM folders
    WHERE meta #>> ARRAY[$1, 'url'] = $2
    LIMIT 1;`

	createItem = `INSERT INTO items (item_id, folder_id, name, description, creator_id, meta)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING item_id, folder_id, name, description, creator_id, meta, created_at;`

	setItemMetadata = `UPDATE items
    SET meta = $2
    WHERE item_id = $1
    RETURNING item_id, folder_id, name, description, creator_id, meta, created_at;`
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// buildChildFoldersQuery selects all folders whose parent is the given node,
// optionally narrowed to an exact name (the reuseExisting lookup path).
func buildChildFoldersQuery(parentID uuid.UUID, parentType string, name string) (string, []any, error) {
	q := psql.Select(
		"folder_id", "parent_id", "parent_type", "name", "creator_id",
		"public", "access", "meta", "cached", "created_at", "updated_at",
	).
		From("folders").
		Where(squirrel.Eq{"parent_id": parentID, "parent_type": parentType}).
		OrderBy("name")

	if name != "" {
		q = q.Where(squirrel.Eq{"name": name})
	}

	return q.ToSql()
}

// buildChildItemsQuery selects all items belonging to the given folder,
// oldest first (submission order).
func buildChildItemsQuery(folderID uuid.UUID) (string, []any, error) {
	return psql.Select(
		"item_id", "folder_id", "name", "description", "creator_id",
		"meta", "created_at",
	).
		From("items").
		Where(squirrel.Eq{"folder_id": folderID}).
		OrderBy("created_at").
		ToSql()
}
