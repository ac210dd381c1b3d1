// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/internal/store"
	"github.com/dkhasanov/appletd/models"
	"github.com/google/uuid"
)

const responsesFolderName = "Responses"

const (
	itemNameFormat    = "2006-01-02-15-04-05-MST"
	descDateFormat    = "2006-01-02"
	descTimeFormat    = "15:04:05 MST"
	unknownApplet     = "[Unknown Applet]"
	unknownActivity   = "[Unknown Activity]"
	descriptionFormat = "%s response on %s at %s"
)

// ResponseService stores survey responses as items under the informant's
// Responses/<applet>/<subject> folder hierarchy and lists them back.
type ResponseService struct {
	users   store.UserRepository
	folders store.FolderRepository
	items   store.ItemRepository
}

func NewResponseService(users store.UserRepository, folders store.FolderRepository, items store.ItemRepository) *ResponseService {
	return &ResponseService{users: users, folders: folders, items: items}
}

// GetResponses lists all response items the given user holds for one applet,
// keyed by the applet ID asked about. The caller may be a reviewer listing
// another user's responses; each matched applet folder is gated by its own
// read grant, and unreadable folders are skipped. Applet folders under
// Responses are matched two ways: by the legacy folder name and by the newer
// meta.applet.@id value; items from both kinds of match are merged.
//
// TODO: drop the legacy name match once no pre-@id folder trees remain in
// production data.
func (s *ResponseService) GetResponses(ctx context.Context, callerID, userID uuid.UUID, appletID string) (models.ResponseListing, error) {
	log := logger.FromContext(ctx)

	if appletID == "" {
		return nil, ErrInvalidDataProvided
	}

	if _, err := s.users.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}
	// New-schema IDs are folder IDs; verify the applet exists before
	// scanning. Legacy name-style IDs have no folder row to check.
	if folderID, err := uuid.Parse(appletID); err == nil {
		if _, err := s.folders.FindFolderByID(ctx, folderID); err != nil {
			return nil, err
		}
	}

	all := models.ResponseListing{appletID: []models.Item{}}

	responses, err := s.folders.FindFolderByParentAndName(ctx, userID, models.ParentTypeUser, responsesFolderName)
	if errors.Is(err, store.ErrFolderNotFound) {
		// No submissions yet.
		return all, nil
	}
	if err != nil {
		return nil, err
	}

	children, err := s.folders.ChildFolders(ctx, responses.FolderID, models.ParentTypeFolder)
	if err != nil {
		return nil, err
	}

	for _, child := range children {
		if child.Name != appletID && metaAppletID(child.Meta) != appletID {
			continue
		}
		if err := requireAccess(child, callerID, models.AccessRead); err != nil {
			log.Debug().Str("func", "GetResponses").
				Str("folder", child.FolderID.String()).
				Msg("skipping unreadable applet folder")
			continue
		}

		items, err := s.collectItems(ctx, child.FolderID)
		if err != nil {
			return nil, err
		}
		all[appletID] = append(all[appletID], items...)
	}

	return all, nil
}

// collectItems gathers the folder's direct items and the items of its
// subject subfolders.
func (s *ResponseService) collectItems(ctx context.Context, folderID uuid.UUID) ([]models.Item, error) {
	items, err := s.items.ChildItems(ctx, folderID)
	if err != nil {
		return nil, err
	}

	subjects, err := s.folders.ChildFolders(ctx, folderID, models.ParentTypeFolder)
	if err != nil {
		return nil, err
	}
	for _, subject := range subjects {
		subjectItems, err := s.items.ChildItems(ctx, subject.FolderID)
		if err != nil {
			return nil, err
		}
		items = append(items, subjectItems...)
	}

	return items, nil
}

// CreateResponseItem stores one response submission: it ensures the
// Responses/<applet>/<subject> folder path exists, then creates a new
// timestamp-named item there and attaches the submitted metadata. Folder
// creation is idempotent; item creation is not, every call stores a new item.
func (s *ResponseService) CreateResponseItem(ctx context.Context, callerID uuid.UUID, req models.CreateResponseRequest) (models.Item, error) {
	if req.Metadata == nil {
		return models.Item{}, ErrInvalidMetadata
	}
	appletRef, hasApplet := req.Metadata["applet"]
	activityRef, hasActivity := req.Metadata["activity"]
	if !hasApplet || !hasActivity {
		return models.Item{}, ErrInvalidMetadata
	}

	appletLabel := displayLabel(appletRef, unknownApplet)
	activityLabel := displayLabel(activityRef, unknownActivity)

	subjectID := req.SubjectID
	if subjectID == "" {
		subjectID = callerID.String()
	}

	responses, err := s.createOrReuseFolder(ctx, callerID, models.ParentTypeUser, callerID, responsesFolderName)
	if err != nil {
		return models.Item{}, err
	}
	appletFolder, err := s.createOrReuseFolder(ctx, callerID, models.ParentTypeFolder, responses.FolderID, appletLabel)
	if err != nil {
		return models.Item{}, err
	}
	subjectFolder, err := s.createOrReuseFolder(ctx, callerID, models.ParentTypeFolder, appletFolder.FolderID, subjectID)
	if err != nil {
		return models.Item{}, err
	}

	now := time.Now()
	item, err := s.items.CreateItem(ctx, models.Item{
		FolderID:  subjectFolder.FolderID,
		Name:      now.Format(itemNameFormat),
		CreatorID: callerID,
		Description: fmt.Sprintf(descriptionFormat,
			activityLabel, now.Format(descDateFormat), now.Format(descTimeFormat)),
	})
	if err != nil {
		return models.Item{}, err
	}

	if len(req.Metadata) > 0 {
		item, err = s.items.SetMetadata(ctx, item.ItemID, req.Metadata)
		if err != nil {
			return models.Item{}, err
		}
	}

	return item, nil
}

// createOrReuseFolder returns the named child folder, creating it when
// absent. A create that loses the race to a concurrent request falls back to
// re-reading the winner's folder.
func (s *ResponseService) createOrReuseFolder(ctx context.Context, creatorID uuid.UUID, parentType string, parentID uuid.UUID, name string) (models.Folder, error) {
	existing, err := s.folders.FindFolderByParentAndName(ctx, parentID, parentType, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, store.ErrFolderNotFound) {
		return models.Folder{}, err
	}

	created, err := s.folders.CreateFolder(ctx, models.Folder{
		ParentID:   parentID,
		ParentType: parentType,
		Name:       name,
		CreatorID:  creatorID,
	})
	if errors.Is(err, store.ErrFolderNameTaken) {
		return s.folders.FindFolderByParentAndName(ctx, parentID, parentType, name)
	}
	if err != nil {
		return models.Folder{}, err
	}
	return created, nil
}

// displayLabel coerces an applet or activity reference into a human-readable
// label: @id, then skos:prefLabel, then name, then the raw string, then the
// unknown placeholder.
func displayLabel(ref any, unknown string) string {
	switch v := ref.(type) {
	case map[string]any:
		for _, key := range []string{"@id", "skos:prefLabel", "name"} {
			if raw, ok := v[key]; ok && raw != nil && raw != "" {
				return fmt.Sprintf("%v", raw)
			}
		}
	case string:
		if v != "" {
			return v
		}
	}
	return unknown
}

// metaAppletID reads meta.applet.@id from folder metadata, or empty when the
// folder predates the @id schema.
func metaAppletID(meta map[string]any) string {
	applet, _ := meta["applet"].(map[string]any)
	id, _ := applet["@id"].(string)
	return id
}
