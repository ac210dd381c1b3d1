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
)

// itemRepository is the PostgreSQL-backed implementation of [ItemRepository].
type itemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

func scanItem(row interface{ Scan(...any) error }) (models.Item, error) {
	var item models.Item
	var metaRaw []byte

	err := row.Scan(
		&item.ItemID, &item.FolderID, &item.Name, &item.Description,
		&item.CreatorID, &metaRaw, &item.CreatedAt,
	)
	if err != nil {
		return models.Item{}, err
	}

	if item.Meta, err = unmarshalJSONB(metaRaw); err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// CreateItem persists a new item row and returns the stored representation.
// Items are never reused; each call creates a new row.
func (r *itemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	if item.ItemID == uuid.Nil {
		item.ItemID = uuid.New()
	}

	metaArg, err := marshalJSONB(item.Meta)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if metaArg == nil {
		metaArg = []byte("{}")
	}

	row := r.db.QueryRowContext(ctx, createItem,
		item.ItemID, item.FolderID, item.Name, item.Description,
		item.CreatorID, metaArg,
	)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error: row is nil")
		return models.Item{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	created, err := scanItem(row)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error: scanning error")
		return models.Item{}, err
	}

	return created, nil
}

// SetMetadata replaces the item's metadata payload and returns the updated
// row, or [ErrItemNotFound].
func (r *itemRepository) SetMetadata(ctx context.Context, itemID uuid.UUID, meta map[string]any) (models.Item, error) {
	log := logger.FromContext(ctx)

	metaArg, err := marshalJSONB(meta)
	if err != nil {
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if metaArg == nil {
		metaArg = []byte("{}")
	}

	row := r.db.QueryRowContext(ctx, setItemMetadata, itemID, metaArg)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*itemRepository.SetMetadata").Msg("error: row is nil")
		return models.Item{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	updated, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}
		log.Err(err).Str("func", "*itemRepository.SetMetadata").Msg("error: scanning error")
		return models.Item{}, err
	}

	return updated, nil
}

// ChildItems enumerates all items belonging to the given folder, oldest
// first.
func (r *itemRepository) ChildItems(ctx context.Context, folderID uuid.UUID) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildChildItemsQuery(folderID)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.ChildItems").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.ChildItems").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			log.Err(err).Str("func", "*itemRepository.ChildItems").Msg("error: scanning error")
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return items, nil
}
