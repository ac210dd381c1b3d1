// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/dkhasanov/appletd/internal/logger"
	"github.com/dkhasanov/appletd/internal/utils"
	"github.com/dkhasanov/appletd/models"
	"github.com/google/uuid"
)

// getResponses handles GET /api/response?userId=&appletId=.
// userId defaults to the authenticated caller.
func (h *Handler) getResponses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	callerID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		log.Err(err).Msg("no user ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	appletID := r.URL.Query().Get("appletId")
	if appletID == "" {
		http.Error(w, "appletId query parameter is required", http.StatusBadRequest)
		return
	}

	userID := callerID
	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, err = uuid.Parse(raw)
		if err != nil {
			log.Err(err).Str("userId", raw).Msg("malformed userId query parameter")
			http.Error(w, "malformed userId query parameter", http.StatusBadRequest)
			return
		}
	}

	listing, err := h.services.Responses.GetResponses(ctx, callerID, userID, appletID)
	if err != nil {
		log.Err(err).Msg("cannot list responses")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, listing, http.StatusOK); err != nil {
		log.Err(err).Msg("cannot write response listing")
	}
}

// createResponse handles POST /api/response. The body is form-encoded: a
// required "metadata" field holding the response payload as a JSON object,
// and an optional "subject_id" field naming who the response is about.
func (h *Handler) createResponse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	callerID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		log.Err(err).Msg("no user ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("cannot parse form body")
		http.Error(w, "cannot parse form body", http.StatusBadRequest)
		return
	}

	rawMetadata := r.PostFormValue("metadata")
	if rawMetadata == "" {
		http.Error(w, "metadata form field is required", http.StatusBadRequest)
		return
	}

	var metadata map[string]any
	if err := json.Unmarshal([]byte(rawMetadata), &metadata); err != nil {
		log.Err(err).Msg("metadata form field is not a JSON object")
		http.Error(w, "metadata form field is not a JSON object", http.StatusBadRequest)
		return
	}

	item, err := h.services.Responses.CreateResponseItem(ctx, callerID, models.CreateResponseRequest{
		Metadata:  metadata,
		SubjectID: r.PostFormValue("subject_id"),
	})
	if err != nil {
		log.Err(err).Msg("cannot create response item")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	if _, err := utils.WriteJSON(w, item, http.StatusOK); err != nil {
		log.Err(err).Msg("cannot write created item")
	}
}
