// internal/handler/router.go
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/unclebandit/outreach-backend/internal/controller"
)

// NewRouter mounts every HTTP route of the service.
func NewRouter(campaigns *controller.CampaignController, contacts *controller.ContactController, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Get("/health", Health)

	// Contact routes
	r.Post("/contacts/sync", contacts.SyncContacts)
	r.Get("/contacts", contacts.ListContacts)
	r.Get("/segments", contacts.ListSegments)

	// Campaign routes
	r.Post("/campaigns", campaigns.ScheduleCampaign)
	r.Get("/campaigns", campaigns.ListCampaigns)
	r.Get("/campaigns/{id}", campaigns.GetCampaignDetails)
	r.Post("/templates/preview", campaigns.PersonalizedPreview)

	return r
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// RequestLogger logs one line per request with status and latency.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("latency", time.Since(start)).
				Msg("request")
		})
	}
}
