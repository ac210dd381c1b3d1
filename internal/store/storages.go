// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"

	"github.com/dkhasanov/appletd/internal/config"
	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/migrations"
)

// Storages bundles all repositories backed by one database connection.
type Storages struct {
	UserRepository   UserRepository
	FolderRepository FolderRepository
	ItemRepository   ItemRepository
}

// NewStorages connects to PostgreSQL, applies pending migrations, and wires
// all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := migrations.Migrate(db.DB); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		FolderRepository: NewFolderRepository(db, log),
		ItemRepository:   NewItemRepository(db, log),
	}, nil
}
