// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// folderRepository is the PostgreSQL-backed implementation of
// [FolderRepository]. Folder rows carry their JSON metadata, per-user access
// grants, and the cached JSON-LD expansion as JSONB columns.
type folderRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewFolderRepository constructs a [FolderRepository] backed by the provided
// database connection and logger.
func NewFolderRepository(db *DB, logger *logger.Logger) FolderRepository {
	logger.Debug().Msg("creating folder repository")
	return &folderRepository{
		db:     db,
		logger: logger,
	}
}

// scanFolder reads one folder row, decoding the JSONB columns. The cached
// column may be NULL; it decodes to a nil map.
func scanFolder(row interface{ Scan(...any) error }) (models.Folder, error) {
	var folder models.Folder
	var accessRaw, metaRaw, cachedRaw []byte

	err := row.Scan(
		&folder.FolderID, &folder.ParentID, &folder.ParentType, &folder.Name,
		&folder.CreatorID, &folder.Public, &accessRaw, &metaRaw, &cachedRaw,
		&folder.CreatedAt, &folder.UpdatedAt,
	)
	if err != nil {
		return models.Folder{}, err
	}

	if folder.Access, err = unmarshalACL(accessRaw); err != nil {
		return models.Folder{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if folder.Meta, err = unmarshalJSONB(metaRaw); err != nil {
		return models.Folder{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if folder.Cached, err = unmarshalJSONB(cachedRaw); err != nil {
		return models.Folder{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return folder, nil
}

// CreateFolder persists a new folder row and returns the stored
// representation.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on (parent, parent_type, name)
//     → [ErrFolderNameTaken]; callers implementing create-or-reuse semantics
//     re-fetch the existing sibling on this error.
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *folderRepository) CreateFolder(ctx context.Context, folder models.Folder) (models.Folder, error) {
	log := logger.FromContext(ctx)

	if folder.FolderID == uuid.Nil {
		folder.FolderID = uuid.New()
	}

	accessArg, err := marshalACL(folder.Access)
	if err != nil {
		return models.Folder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	metaArg, err := marshalJSONB(folder.Meta)
	if err != nil {
		return models.Folder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if metaArg == nil {
		metaArg = []byte("{}")
	}

	row := r.db.QueryRowContext(ctx, createFolder,
		folder.FolderID, folder.ParentID, folder.ParentType, folder.Name,
		folder.CreatorID, folder.Public, accessArg, metaArg,
	)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*folderRepository.CreateFolder").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Folder{}, ErrFolderNameTaken
		default:
			return models.Folder{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	created, err := scanFolder(row)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Folder{}, ErrFolderNameTaken
		}
		log.Err(err).Str("func", "*folderRepository.CreateFolder").Msg("error: scanning error")
		return models.Folder{}, err
	}

	return created, nil
}

// FindFolderByID retrieves a folder by its primary key, or
// [ErrFolderNotFound].
func (r *folderRepository) FindFolderByID(ctx context.Context, folderID uuid.UUID) (models.Folder, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findFolderByID, folderID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*folderRepository.FindFolderByID").Msg("error: row is nil")
		return models.Folder{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	folder, err := scanFolder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Folder{}, ErrFolderNotFound
		}
		log.Err(err).Str("func", "*folderRepository.FindFolderByID").Msg("error: scanning error")
		return models.Folder{}, err
	}

	return folder, nil
}

// FindFolderByParentAndName retrieves the single child of the given parent
// node carrying the given name, or [ErrFolderNotFound]. This is the lookup
// half of the create-or-reuse folder path.
func (r *folderRepository) FindFolderByParentAndName(ctx context.Context, parentID uuid.UUID, parentType, name string) (models.Folder, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildChildFoldersQuery(parentID, parentType, name)
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.FindFolderByParentAndName").Msg("error building query")
		return models.Folder{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		return models.Folder{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	folder, err := scanFolder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Folder{}, ErrFolderNotFound
		}
		log.Err(err).Str("func", "*folderRepository.FindFolderByParentAndName").Msg("error: scanning error")
		return models.Folder{}, err
	}

	return folder, nil
}

// ChildFolders enumerates all folders whose parent is the given node, ordered
// by name.
func (r *folderRepository) ChildFolders(ctx context.Context, parentID uuid.UUID, parentType string) ([]models.Folder, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildChildFoldersQuery(parentID, parentType, "")
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.ChildFolders").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.ChildFolders").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	folders := make([]models.Folder, 0)
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			log.Err(err).Str("func", "*folderRepository.ChildFolders").Msg("error: scanning error")
			return nil, err
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return folders, nil
}

// UpdateCached persists the expanded JSON-LD cache onto the folder row. A nil
// cached map clears the column.
func (r *folderRepository) UpdateCached(ctx context.Context, folderID uuid.UUID, cached map[string]any) error {
	log := logger.FromContext(ctx)

	cachedArg, err := marshalJSONB(cached)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, updateFolderCached, folderID, cachedArg)
	if err != nil {
		log.Err(err).Str("func", "*folderRepository.UpdateCached").Msg("error executing update")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrFolderNotFound
	}

	return nil
}

// FindFolderByMetaURL retrieves the folder whose meta.<mesoType>.url equals
// url, or [ErrFolderNotFound]. Used to resolve already-imported component
// documents before falling back to a remote fetch.
func (r *folderRepository) FindFolderByMetaURL(ctx context.Context, mesoType, url string) (models.Folder, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findFolderByMetaURL, mesoType, url)
	if err := row.Err(); err != nil {
		return models.Folder{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	folder, err := scanFolder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Folder{}, ErrFolderNotFound
		}
		log.Err(err).Str("func", "*folderRepository.FindFolderByMetaURL").Msg("error: scanning error")
		return models.Folder{}, err
	}

	return folder, nil
}
