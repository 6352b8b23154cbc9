package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/outreach-backend/internal/controller"
	"github.com/unclebandit/outreach-backend/internal/handler"
	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/repository"
	"github.com/unclebandit/outreach-backend/internal/service"
)

var now = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	svc := &service.CampaignService{
		ContactRepo:  repository.NewContactDirectory(),
		CampaignRepo: repository.NewCampaignStore(func() time.Time { return now }),
		Source:       service.StubContactSource{},
		Scheduler: service.NewScheduler(
			service.ClockFunc(func() time.Time { return now }),
			func(min, max int) int { return max },
		),
		Logger: zerolog.Nop(),
	}
	campaigns := controller.NewCampaignController(svc, zerolog.Nop())
	contacts := &controller.ContactController{CampaignService: svc, Logger: zerolog.Nop()}
	return handler.NewRouter(campaigns, contacts, zerolog.Nop())
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func syncContacts(t *testing.T, h http.Handler) {
	t.Helper()
	w := do(t, h, http.MethodPost, "/contacts/sync", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSyncAndSegments(t *testing.T) {
	h := newServer(t)

	w := do(t, h, http.MethodPost, "/contacts/sync", map[string]string{"token_hint": "ignored"})
	require.Equal(t, http.StatusOK, w.Code)
	var contacts []model.Contact
	require.NoError(t, json.NewDecoder(w.Body).Decode(&contacts))
	assert.Len(t, contacts, 4)

	w = do(t, h, http.MethodGet, "/segments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var segments []model.Segment
	require.NoError(t, json.NewDecoder(w.Body).Decode(&segments))
	require.Len(t, segments, 4)
	assert.Equal(t, "Ecommerce", segments[0].Industry)
	assert.Equal(t, []string{"urn:li:person:4"}, segments[0].Contacts)
}

func TestScheduleCampaignHandler(t *testing.T) {
	h := newServer(t)
	syncContacts(t, h)

	w := do(t, h, http.MethodPost, "/campaigns", map[string]any{
		"name":          "Launch",
		"contact_ids":   []string{"urn:li:person:1", "urn:li:person:2", "urn:li:person:3"},
		"template_body": "Hi {first_name} from {company}",
		"per_day":       2,
		"days":          []string{"Mon", "Tue"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		CampaignID        string                   `json:"campaign_id"`
		ScheduledMessages []model.ScheduledMessage `json:"scheduled_messages"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, "camp-001", res.CampaignID)
	require.Len(t, res.ScheduledMessages, 3)
	assert.Equal(t, "Hi Alice from FintechCo", res.ScheduledMessages[0].Body)

	// Defaults: 09:00 start, jitter at the 30 minute maximum.
	assert.True(t, time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC).Equal(res.ScheduledMessages[0].SendAt))
	assert.True(t, time.Date(2026, time.October, 19, 13, 30, 0, 0, time.UTC).Equal(res.ScheduledMessages[1].SendAt))
	assert.True(t, time.Date(2026, time.October, 20, 9, 30, 0, 0, time.UTC).Equal(res.ScheduledMessages[2].SendAt))

	w = do(t, h, http.MethodGet, "/campaigns/camp-001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details model.CampaignDetails
	require.NoError(t, json.NewDecoder(w.Body).Decode(&details))
	assert.Equal(t, "Launch", details.Name)
	assert.Equal(t, 3, details.Stats.Total)

	w = do(t, h, http.MethodGet, "/campaigns?page=1&page_size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data       []model.CampaignSummary `json:"data"`
		Pagination map[string]int          `json:"pagination"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	assert.Equal(t, 1, list.Pagination["total_count"])
	require.Len(t, list.Data, 1)
	assert.Equal(t, 3, list.Data[0].MessageCount)
}

func TestScheduleCampaignUnknownContacts(t *testing.T) {
	h := newServer(t)
	syncContacts(t, h)

	w := do(t, h, http.MethodPost, "/campaigns", map[string]any{
		"name":          "Launch",
		"contact_ids":   []string{"urn:li:person:1", "unknown1", "unknown2"},
		"template_body": "Hi",
		"per_day":       5,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var res struct {
		Kind    string   `json:"kind"`
		Missing []string `json:"missing_contacts"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, "unknown_contact", res.Kind)
	assert.Equal(t, []string{"unknown1", "unknown2"}, res.Missing)
}

func TestScheduleCampaignValidationKinds(t *testing.T) {
	h := newServer(t)
	syncContacts(t, h)

	base := func() map[string]any {
		return map[string]any{
			"name":          "Launch",
			"contact_ids":   []string{"urn:li:person:1"},
			"template_body": "Hi {first_name}",
			"per_day":       5,
		}
	}
	tests := []struct {
		name  string
		field string
		value any
		kind  string
	}{
		{"per_day zero", "per_day", 0, "invalid_per_day"},
		{"window end equals start", "window_end", "09:00", "invalid_window"},
		{"unknown day", "days", []string{"Funday"}, "invalid_day"},
		{"repeated day", "days", []string{"Mon", "Mon"}, "invalid_day"},
		{"bad delay", "random_delay_minutes", []int{0, 10}, "invalid_delay_range"},
		{"bad placeholder", "template_body", "Hi {nickname}", "template_error"},
		{"missing name", "name", "", "invalid_request"},
		{"delay wrong length", "random_delay_minutes", []int{5}, "invalid_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := base()
			body[tt.field] = tt.value

			w := do(t, h, http.MethodPost, "/campaigns", body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var res map[string]any
			require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
			assert.Equal(t, tt.kind, res["kind"])
		})
	}
}

func TestMalformedBodyIsJSONError(t *testing.T) {
	h := newServer(t)

	for _, path := range []string{"/campaigns", "/templates/preview", "/contacts/sync"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"name":`))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var res map[string]any
			require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
			assert.Equal(t, "invalid_request", res["kind"])
			assert.NotEmpty(t, res["error"])
		})
	}
}

func TestGetCampaignNotFound(t *testing.T) {
	h := newServer(t)

	w := do(t, h, http.MethodGet, "/campaigns/camp-404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersonalizedPreviewHandler(t *testing.T) {
	h := newServer(t)
	syncContacts(t, h)

	w := do(t, h, http.MethodPost, "/templates/preview", map[string]string{
		"contact_id": "urn:li:person:2",
		"template":   "Hi {first_name} {last_name}",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, "Hi Bruno Silva", res["rendered_message"])

	w = do(t, h, http.MethodPost, "/templates/preview", map[string]string{
		"contact_id": "urn:li:person:404",
		"template":   "Hi",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	w := do(t, newServer(t), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
