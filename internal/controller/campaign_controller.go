// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
	Validate        *validator.Validate
	Logger          zerolog.Logger
}

func NewCampaignController(svc *service.CampaignService, logger zerolog.Logger) *CampaignController {
	return &CampaignController{
		CampaignService: svc,
		Validate:        validator.New(validator.WithRequiredStructEnabled()),
		Logger:          logger,
	}
}

// scheduleRequest checks field shapes only; window semantics are the
// scheduler's to reject.
type scheduleRequest struct {
	Name               string   `json:"name" validate:"required"`
	ContactIDs         []string `json:"contact_ids" validate:"required,dive,required"`
	TemplateBody       string   `json:"template_body" validate:"required"`
	PerDay             int      `json:"per_day"`
	Timezone           string   `json:"timezone" validate:"timezone"`
	WindowStart        string   `json:"window_start" validate:"len=5"`
	WindowEnd          string   `json:"window_end" validate:"len=5"`
	Days               []string `json:"days"`
	RandomDelayMinutes []int    `json:"random_delay_minutes" validate:"len=2"`
}

func (r *scheduleRequest) applyDefaults() {
	if r.Timezone == "" {
		r.Timezone = "UTC"
	}
	if r.WindowStart == "" {
		r.WindowStart = "09:00"
	}
	if r.WindowEnd == "" {
		r.WindowEnd = "17:00"
	}
	if r.Days == nil {
		r.Days = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	}
	if r.RandomDelayMinutes == nil {
		r.RandomDelayMinutes = []int{15, 30}
	}
}

func (r *scheduleRequest) toService() service.ScheduleRequest {
	return service.ScheduleRequest{
		Name:         r.Name,
		ContactIDs:   r.ContactIDs,
		TemplateBody: r.TemplateBody,
		Window: model.ScheduleWindow{
			WindowStart:        r.WindowStart,
			WindowEnd:          r.WindowEnd,
			Days:               r.Days,
			Timezone:           r.Timezone,
			PerDay:             r.PerDay,
			RandomDelayMinutes: [2]int{r.RandomDelayMinutes[0], r.RandomDelayMinutes[1]},
		},
	}
}

func (c *CampaignController) ScheduleCampaign(w http.ResponseWriter, r *http.Request) {
	var body scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeKind(w, http.StatusBadRequest, "invalid_request", err)
		return
	}
	body.applyDefaults()
	if err := c.Validate.Struct(&body); err != nil {
		writeError(w, c.Logger, err)
		return
	}

	result, err := c.CampaignService.ScheduleCampaign(r.Context(), body.toService())
	if err != nil {
		writeError(w, c.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	campaigns, pagination, err := c.CampaignService.ListCampaigns(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, c.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":       campaigns,
		"pagination": pagination,
	})
}

func (c *CampaignController) GetCampaignDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	details, err := c.CampaignService.GetCampaignDetails(r.Context(), id)
	if err != nil {
		writeError(w, c.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

type previewRequest struct {
	ContactID string `json:"contact_id" validate:"required"`
	Template  string `json:"template" validate:"required"`
}

func (c *CampaignController) PersonalizedPreview(w http.ResponseWriter, r *http.Request) {
	var body previewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeKind(w, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := c.Validate.Struct(&body); err != nil {
		writeError(w, c.Logger, err)
		return
	}

	rendered, err := c.CampaignService.RenderPreview(r.Context(), body.ContactID, body.Template)
	if err != nil {
		writeError(w, c.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"rendered_message": rendered,
		"contact_id":       body.ContactID,
	})
}
