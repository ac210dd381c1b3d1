// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/internal/service"
	"github.com/dkhasanov/appletd/internal/utils"
	"github.com/dkhasanov/appletd/models"
	"github.com/google/uuid"
)

// ─────────────────────────────────────────────
// Function-field service mocks
// ─────────────────────────────────────────────

// mockAuth implements service.Auth for unit tests.
// Each method field can be overridden per test case.
type mockAuth struct {
	registerUserFn  func(ctx context.Context, user models.User) (models.Token, error)
	loginUserFn     func(ctx context.Context, user models.User) (models.Token, error)
	validateTokenFn func(tokenString string) (uuid.UUID, error)
}

func (m *mockAuth) RegisterUser(ctx context.Context, user models.User) (models.Token, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuth) LoginUser(ctx context.Context, user models.User) (models.Token, error) {
	return m.loginUserFn(ctx, user)
}

func (m *mockAuth) ValidateToken(tokenString string) (uuid.UUID, error) {
	return m.validateTokenFn(tokenString)
}

// mockResponses implements service.Responses for unit tests.
type mockResponses struct {
	getResponsesFn       func(ctx context.Context, callerID, userID uuid.UUID, appletID string) (models.ResponseListing, error)
	createResponseItemFn func(ctx context.Context, callerID uuid.UUID, req models.CreateResponseRequest) (models.Item, error)
}

func (m *mockResponses) GetResponses(ctx context.Context, callerID, userID uuid.UUID, appletID string) (models.ResponseListing, error) {
	return m.getResponsesFn(ctx, callerID, userID, appletID)
}

func (m *mockResponses) CreateResponseItem(ctx context.Context, callerID uuid.UUID, req models.CreateResponseRequest) (models.Item, error) {
	return m.createResponseItemFn(ctx, callerID, req)
}

// mockApplets implements service.Applets for unit tests.
type mockApplets struct {
	getAppletFn func(ctx context.Context, callerID, appletID uuid.UUID, refreshCache bool) (map[string]any, error)
}

func (m *mockApplets) GetApplet(ctx context.Context, callerID, appletID uuid.UUID, refreshCache bool) (map[string]any, error) {
	return m.getAppletFn(ctx, callerID, appletID, refreshCache)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	if svcs == nil {
		svcs = &service.Services{}
	}
	return NewHandler(svcs, logger.Nop())
}

// authedRequest returns the request with the caller's user ID stored in its
// context, the way the auth middleware would leave it.
func authedRequest(r *http.Request, callerID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, callerID)
	return r.WithContext(ctx)
}

func doRequest(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}
