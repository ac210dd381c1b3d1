// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/models"
	"github.com/google/uuid"
)

func newTestItemRepo(t *testing.T) (*itemRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &itemRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

var itemColumns = []string{
	"item_id", "folder_id", "name", "description", "creator_id", "meta", "created_at",
}

func itemRow(item models.Item) *sqlmock.Rows {
	meta, _ := marshalJSONB(item.Meta)

	return sqlmock.
		NewRows(itemColumns).
		AddRow(
			item.ItemID, item.FolderID, item.Name, item.Description,
			item.CreatorID, meta, time.Now(),
		)
}

func TestCreateItem_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	ctx := context.Background()
	item := models.Item{
		ItemID:      uuid.New(),
		FolderID:    uuid.New(),
		Name:        "2024-01-02-15-04-05-UTC",
		Description: "Survey response on 2024-01-02 at 15:04:05 UTC",
		CreatorID:   uuid.New(),
		Meta:        map[string]any{"applet": map[string]any{"@id": "applet/1"}},
	}

	mock.ExpectQuery("INSERT INTO items").
		WithArgs(
			item.ItemID, item.FolderID, item.Name, item.Description,
			item.CreatorID, sqlmock.AnyArg(),
		).
		WillReturnRows(itemRow(item))

	created, err := repo.CreateItem(ctx, item)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ItemID != item.ItemID {
		t.Errorf("expected ItemID=%s, got %s", item.ItemID, created.ItemID)
	}
	if created.Name != item.Name {
		t.Errorf("expected name %s, got %s", item.Name, created.Name)
	}
}

func TestCreateItem_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO items").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateItem(ctx, models.Item{Name: "x"})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestSetMetadata_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	ctx := context.Background()
	item := models.Item{
		ItemID: uuid.New(),
		Name:   "2024-01-02-15-04-05-UTC",
		Meta:   map[string]any{"responses": map[string]any{"q1": "yes"}},
	}

	mock.ExpectQuery("UPDATE items").
		WithArgs(item.ItemID, sqlmock.AnyArg()).
		WillReturnRows(itemRow(item))

	updated, err := repo.SetMetadata(ctx, item.ItemID, item.Meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	responses, ok := updated.Meta["responses"].(map[string]any)
	if !ok || responses["q1"] != "yes" {
		t.Errorf("expected metadata to round-trip, got %v", updated.Meta)
	}
}

func TestSetMetadata_ItemMissing(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("UPDATE items").
		WillReturnRows(sqlmock.NewRows(itemColumns))

	_, err := repo.SetMetadata(ctx, uuid.New(), map[string]any{"x": 1})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestChildItems_ReturnsAll(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	ctx := context.Background()
	folderID := uuid.New()
	now := time.Now()

	rows := sqlmock.
		NewRows(itemColumns).
		AddRow(uuid.New(), folderID, "2024-01-01-10-00-00-UTC", "first", uuid.Nil, []byte("{}"), now).
		AddRow(uuid.New(), folderID, "2024-01-02-10-00-00-UTC", "second", uuid.Nil, []byte("{}"), now)

	mock.ExpectQuery("SELECT (.+) FROM items").
		WithArgs(folderID).
		WillReturnRows(rows)

	items, err := repo.ChildItems(ctx, folderID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Description != "first" || items[1].Description != "second" {
		t.Errorf("unexpected item order: %s, %s", items[0].Description, items[1].Description)
	}
}

func TestChildItems_Empty(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM items").
		WillReturnRows(sqlmock.NewRows(itemColumns))

	items, err := repo.ChildItems(ctx, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestChildItems_QueryError(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM items").
		WillReturnError(errors.New("db network error"))

	_, err := repo.ChildItems(ctx, uuid.New())
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}
