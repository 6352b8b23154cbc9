// internal/controller/respond.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError translates service errors into client responses.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var (
		unknown         *appErrors.ErrUnknownContact
		invalidWindow   *appErrors.ErrInvalidWindow
		invalidDay      *appErrors.ErrInvalidDay
		invalidDelay    *appErrors.ErrInvalidDelayRange
		invalidPerDay   *appErrors.ErrInvalidPerDay
		templateErr     *appErrors.ErrTemplate
		campaignMissing *appErrors.ErrCampaignNotFound
		contactMissing  *appErrors.ErrContactNotFound
		validation      validator.ValidationErrors
	)

	switch {
	case errors.As(err, &unknown):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":            err.Error(),
			"kind":             "unknown_contact",
			"missing_contacts": unknown.IDs,
		})
	case errors.As(err, &invalidWindow):
		writeKind(w, http.StatusBadRequest, "invalid_window", err)
	case errors.As(err, &invalidDay):
		writeKind(w, http.StatusBadRequest, "invalid_day", err)
	case errors.As(err, &invalidDelay):
		writeKind(w, http.StatusBadRequest, "invalid_delay_range", err)
	case errors.As(err, &invalidPerDay):
		writeKind(w, http.StatusBadRequest, "invalid_per_day", err)
	case errors.As(err, &templateErr):
		writeKind(w, http.StatusBadRequest, "template_error", err)
	case errors.As(err, &validation):
		writeKind(w, http.StatusBadRequest, "invalid_request", err)
	case errors.As(err, &campaignMissing), errors.As(err, &contactMissing):
		writeKind(w, http.StatusNotFound, "not_found", err)
	default:
		logger.Error().Err(err).Msg("request failed")
		writeKind(w, http.StatusInternalServerError, "internal", errors.New("internal server error"))
	}
}

func writeKind(w http.ResponseWriter, status int, kind string, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error(), "kind": kind})
}
