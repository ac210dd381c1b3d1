// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkhasanov/appletd/internal/service"
	"github.com/dkhasanov/appletd/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appletRequest routes the request through a chi router so URL parameters
// resolve the way they do in production.
func appletRequest(h *Handler, target string, callerID uuid.UUID) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/api/applet/{appletId}", h.getApplet)

	r := authedRequest(httptest.NewRequest(http.MethodGet, target, nil), callerID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandler_GetApplet(t *testing.T) {
	callerID := uuid.New()
	appletID := uuid.New()
	formatted := map[string]any{
		"applet": map[string]any{"_id": "applet/" + appletID.String()},
	}

	h := newTestHandler(t, &service.Services{
		Applets: &mockApplets{
			getAppletFn: func(_ context.Context, gotCaller, gotApplet uuid.UUID, refreshCache bool) (map[string]any, error) {
				assert.Equal(t, callerID, gotCaller)
				assert.Equal(t, appletID, gotApplet)
				assert.True(t, refreshCache)
				return formatted, nil
			},
		},
	})

	w := appletRequest(h, "/api/applet/"+appletID.String()+"?refreshCache=true", callerID)

	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, formatted, got)
}

func TestHandler_GetApplet_Errors(t *testing.T) {
	callerID := uuid.New()

	tests := []struct {
		name       string
		target     string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "malformed applet id",
			target:     "/api/applet/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not found",
			target:     "/api/applet/" + uuid.NewString(),
			serviceErr: store.ErrFolderNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no metadata",
			target:     "/api/applet/" + uuid.NewString(),
			serviceErr: service.ErrNoAppletData,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "access denied",
			target:     "/api/applet/" + uuid.NewString(),
			serviceErr: service.ErrAccessDenied,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := newTestHandler(t, &service.Services{
				Applets: &mockApplets{
					getAppletFn: func(_ context.Context, _, _ uuid.UUID, _ bool) (map[string]any, error) {
						return nil, test.serviceErr
					},
				},
			})

			w := appletRequest(h, test.target, callerID)
			assert.Equal(t, test.wantStatus, w.Code)
		})
	}
}
