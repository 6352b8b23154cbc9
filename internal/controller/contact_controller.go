// internal/controller/contact_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/unclebandit/outreach-backend/internal/service"
)

type ContactController struct {
	CampaignService *service.CampaignService
	Logger          zerolog.Logger
}

type syncRequest struct {
	TokenHint string `json:"token_hint"`
}

// SyncContacts accepts an empty body; token_hint is optional.
func (c *ContactController) SyncContacts(w http.ResponseWriter, r *http.Request) {
	var body syncRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeKind(w, http.StatusBadRequest, "invalid_request", err)
		return
	}

	contacts, err := c.CampaignService.SyncContacts(r.Context(), body.TokenHint)
	if err != nil {
		writeError(w, c.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (c *ContactController) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := c.CampaignService.ListContacts(r.Context())
	if err != nil {
		writeError(w, c.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (c *ContactController) ListSegments(w http.ResponseWriter, r *http.Request) {
	segments, err := c.CampaignService.ListSegments(r.Context())
	if err != nil {
		writeError(w, c.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, segments)
}
