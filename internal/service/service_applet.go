// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"

	"github.com/dkhasanov/appletd/internal/jsonld"
	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/internal/store"
	"github.com/dkhasanov/appletd/models"
	"github.com/google/uuid"
)

// AppletService serves fully formatted applet representations, running the
// JSON-LD pipeline over the applet's stored metadata.
type AppletService struct {
	folders   store.FolderRepository
	formatter *jsonld.Formatter
}

func NewAppletService(folders store.FolderRepository, formatter *jsonld.Formatter) *AppletService {
	return &AppletService{folders: folders, formatter: formatter}
}

// GetApplet loads the applet folder, checks read access, and returns its
// formatted representation. An applet without metadata yields ErrNoAppletData
// so callers can tell "nothing stored" from a formatting failure.
func (s *AppletService) GetApplet(ctx context.Context, callerID, appletID uuid.UUID, refreshCache bool) (map[string]any, error) {
	log := logger.FromContext(ctx)

	folder, err := s.folders.FindFolderByID(ctx, appletID)
	if err != nil {
		return nil, err
	}
	if err := requireAccess(folder, callerID, models.AccessRead); err != nil {
		return nil, err
	}

	doc := &jsonld.Document{
		ID:     folder.FolderID.String(),
		Meta:   folder.Meta,
		Cached: folder.Cached,
	}

	formatted, err := s.formatter.FormatLdObject(ctx, doc, jsonld.TypeApplet, jsonld.FormatOptions{RefreshCache: refreshCache})
	if errors.Is(err, jsonld.ErrNoMetadata) {
		return nil, ErrNoAppletData
	}
	if err != nil {
		log.Error().Str("func", "GetApplet").Str("applet", appletID.String()).Err(err).
			Msg("cannot format applet")
		return nil, err
	}
	return formatted, nil
}
