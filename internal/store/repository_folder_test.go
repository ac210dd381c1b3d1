// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

func newTestFolderRepo(t *testing.T) (*folderRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &folderRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

var folderColumns = []string{
	"folder_id", "parent_id", "parent_type", "name", "creator_id",
	"public", "access", "meta", "cached", "created_at", "updated_at",
}

func folderRow(folder models.Folder) *sqlmock.Rows {
	access, _ := marshalACL(folder.Access)
	meta, _ := marshalJSONB(folder.Meta)
	cached, _ := marshalJSONB(folder.Cached)
	now := time.Now()

	return sqlmock.
		NewRows(folderColumns).
		AddRow(
			folder.FolderID, folder.ParentID, folder.ParentType, folder.Name,
			folder.CreatorID, folder.Public, access, meta, cached, now, now,
		)
}

func TestCreateFolder_Success(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()
	creatorID := uuid.New()
	folder := models.Folder{
		FolderID:   uuid.New(),
		ParentID:   uuid.New(),
		ParentType: models.ParentTypeUser,
		Name:       "Responses",
		CreatorID:  creatorID,
		Access:     models.ACL{creatorID: models.AccessAdmin},
		Meta:       map[string]any{"kind": "responses"},
	}

	mock.ExpectQuery("INSERT INTO folders").
		WithArgs(
			folder.FolderID, folder.ParentID, folder.ParentType, folder.Name,
			folder.CreatorID, folder.Public, sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(folderRow(folder))

	created, err := repo.CreateFolder(ctx, folder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.FolderID != folder.FolderID {
		t.Errorf("expected FolderID=%s, got %s", folder.FolderID, created.FolderID)
	}
	if created.Meta["kind"] != "responses" {
		t.Errorf("expected meta.kind=responses, got %v", created.Meta["kind"])
	}
	if created.Access.LevelFor(creatorID) != models.AccessAdmin {
		t.Errorf("expected creator access to round-trip, got %v", created.Access)
	}
}

func TestCreateFolder_NameTaken(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO folders").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateFolder(ctx, models.Folder{Name: "Responses"})
	if !errors.Is(err, ErrFolderNameTaken) {
		t.Fatalf("expected ErrFolderNameTaken, got %v", err)
	}
}

func TestCreateFolder_NilCachedColumn(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()
	folder := models.Folder{FolderID: uuid.New(), Name: "Responses"}

	// cached arrives as SQL NULL for a fresh folder
	rows := sqlmock.
		NewRows(folderColumns).
		AddRow(
			folder.FolderID, uuid.Nil, models.ParentTypeUser, folder.Name,
			uuid.Nil, false, []byte("{}"), []byte("{}"), nil, time.Now(), time.Now(),
		)

	mock.ExpectQuery("INSERT INTO folders").
		WillReturnRows(rows)

	created, err := repo.CreateFolder(ctx, folder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Cached != nil {
		t.Errorf("expected nil cached map, got %v", created.Cached)
	}
}

func TestFindFolderByID_Success(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()
	folder := models.Folder{
		FolderID: uuid.New(),
		Name:     "Responses",
		Cached:   map[string]any{"@type": "applet"},
	}

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WithArgs(folder.FolderID).
		WillReturnRows(folderRow(folder))

	found, err := repo.FindFolderByID(ctx, folder.FolderID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Cached["@type"] != "applet" {
		t.Errorf("expected cached to round-trip, got %v", found.Cached)
	}
}

func TestFindFolderByID_NotFound(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(folderColumns))

	_, err := repo.FindFolderByID(ctx, uuid.New())
	if !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
}

func TestFindFolderByID_CorruptMetaColumn(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()
	folderID := uuid.New()

	rows := sqlmock.
		NewRows(folderColumns).
		AddRow(
			folderID, uuid.Nil, models.ParentTypeUser, "Responses",
			uuid.Nil, false, []byte("{}"), []byte("not json"), nil, time.Now(), time.Now(),
		)

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WillReturnRows(rows)

	_, err := repo.FindFolderByID(ctx, folderID)
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestFindFolderByParentAndName_Success(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()
	parentID := uuid.New()
	folder := models.Folder{
		FolderID:   uuid.New(),
		ParentID:   parentID,
		ParentType: models.ParentTypeUser,
		Name:       "Responses",
	}

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WithArgs(parentID, models.ParentTypeUser, "Responses").
		WillReturnRows(folderRow(folder))

	found, err := repo.FindFolderByParentAndName(ctx, parentID, models.ParentTypeUser, "Responses")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.FolderID != folder.FolderID {
		t.Errorf("expected FolderID=%s, got %s", folder.FolderID, found.FolderID)
	}
}

func TestFindFolderByParentAndName_NotFound(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WillReturnRows(sqlmock.NewRows(folderColumns))

	_, err := repo.FindFolderByParentAndName(ctx, uuid.New(), models.ParentTypeUser, "Responses")
	if !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
}

func TestChildFolders_ReturnsAll(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()
	parentID := uuid.New()
	now := time.Now()

	rows := sqlmock.
		NewRows(folderColumns).
		AddRow(uuid.New(), parentID, models.ParentTypeFolder, "alice", uuid.Nil, false, []byte("{}"), []byte("{}"), nil, now, now).
		AddRow(uuid.New(), parentID, models.ParentTypeFolder, "bob", uuid.Nil, false, []byte("{}"), []byte("{}"), nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WithArgs(parentID, models.ParentTypeFolder).
		WillReturnRows(rows)

	folders, err := repo.ChildFolders(ctx, parentID, models.ParentTypeFolder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(folders))
	}
	if folders[0].Name != "alice" || folders[1].Name != "bob" {
		t.Errorf("unexpected folder names: %s, %s", folders[0].Name, folders[1].Name)
	}
}

func TestChildFolders_Empty(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WillReturnRows(sqlmock.NewRows(folderColumns))

	folders, err := repo.ChildFolders(ctx, uuid.New(), models.ParentTypeUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(folders) != 0 {
		t.Fatalf("expected no folders, got %d", len(folders))
	}
}

func TestUpdateCached_Success(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()
	folderID := uuid.New()

	mock.ExpectExec("UPDATE folders").
		WithArgs(folderID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCached(ctx, folderID, map[string]any{"@type": "applet"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateCached_FolderMissing(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE folders").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateCached(ctx, uuid.New(), map[string]any{"x": 1})
	if !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
}

func TestUpdateCached_ExecError(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE folders").
		WillReturnError(errors.New("db network error"))

	err := repo.UpdateCached(ctx, uuid.New(), nil)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestFindFolderByMetaURL_Success(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()
	url := "https://example.org/applet.jsonld"
	folder := models.Folder{
		FolderID: uuid.New(),
		Name:     "My Applet",
		Meta:     map[string]any{"applet": map[string]any{"url": url}},
	}

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WithArgs("applet", url).
		WillReturnRows(folderRow(folder))

	found, err := repo.FindFolderByMetaURL(ctx, "applet", url)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.FolderID != folder.FolderID {
		t.Errorf("expected FolderID=%s, got %s", folder.FolderID, found.FolderID)
	}
}

func TestFindFolderByMetaURL_NotFound(t *testing.T) {
	repo, mock, db := newTestFolderRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM folders").
		WillReturnRows(sqlmock.NewRows(folderColumns))

	_, err := repo.FindFolderByMetaURL(ctx, "activity", "https://example.org/missing.jsonld")
	if !errors.Is(err, ErrFolderNotFound) {
		t.Fatalf("expected ErrFolderNotFound, got %v", err)
	}
}
