// SPDX-License-Identifier: Apache-2.0

// Package service holds the application's business logic: authentication,
// response storage and retrieval over the folder tree, and applet formatting
// through the JSON-LD pipeline. Services enforce access levels; repositories
// below them only move rows.
package service

import (
	"context"

	"github.com/dkhasanov/appletd/internal/config"
	"github.com/dkhasanov/appletd/internal/jsonld"
	"github.com/dkhasanov/appletd/internal/store"
	"github.com/dkhasanov/appletd/models"
	"github.com/google/uuid"
)

// Auth manages user registration, login, and token validation.
type Auth interface {
	RegisterUser(ctx context.Context, user models.User) (models.Token, error)
	LoginUser(ctx context.Context, user models.User) (models.Token, error)
	ValidateToken(tokenString string) (uuid.UUID, error)
}

// Responses stores and lists survey response items in a user's
// Responses/<applet>/<subject> folder hierarchy. Listing another user's
// responses is allowed; per-folder read grants decide what comes back.
type Responses interface {
	GetResponses(ctx context.Context, callerID, userID uuid.UUID, appletID string) (models.ResponseListing, error)
	CreateResponseItem(ctx context.Context, callerID uuid.UUID, req models.CreateResponseRequest) (models.Item, error)
}

// Applets serves formatted applet representations.
type Applets interface {
	GetApplet(ctx context.Context, callerID, appletID uuid.UUID, refreshCache bool) (map[string]any, error)
}

// Services bundles all business-logic services behind their interfaces.
type Services struct {
	Auth      Auth
	Responses Responses
	Applets   Applets
}

// NewServices wires the service layer on top of the repositories and the
// JSON-LD formatter.
func NewServices(storages *store.Storages, formatter *jsonld.Formatter, cfg config.App) *Services {
	return &Services{
		Auth:      NewAuthService(storages.UserRepository, cfg),
		Responses: NewResponseService(storages.UserRepository, storages.FolderRepository, storages.ItemRepository),
		Applets:   NewAppletService(storages.FolderRepository, formatter),
	}
}
