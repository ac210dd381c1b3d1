// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"

	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// getApplet handles GET /api/applet/{appletId}?refreshCache=.
// It returns the fully formatted JSON-LD representation of the applet.
func (h *Handler) getApplet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	callerID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		log.Err(err).Msg("no user ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	appletID, err := uuid.Parse(chi.URLParam(r, "appletId"))
	if err != nil {
		log.Err(err).Msg("malformed applet ID")
		http.Error(w, "malformed applet ID", http.StatusBadRequest)
		return
	}

	refreshCache := r.URL.Query().Get("refreshCache") == "true"

	formatted, err := h.services.Applets.GetApplet(ctx, callerID, appletID, refreshCache)
	if err != nil {
		log.Err(err).Str("applet", appletID.String()).Msg("cannot get applet")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, formatted, http.StatusOK); err != nil {
		log.Err(err).Msg("cannot write formatted applet")
	}
}
