// internal/service/campaign_service.go
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/queue"
	"github.com/unclebandit/outreach-backend/internal/repository"
)

type CampaignService struct {
	ContactRepo  repository.ContactRepositoryInterface
	CampaignRepo repository.CampaignRepositoryInterface
	Source       ContactSource
	Scheduler    *Scheduler
	Queue        queue.Queue
	Topic        string
	Logger       zerolog.Logger
}

type ScheduleRequest struct {
	Name         string
	ContactIDs   []string
	TemplateBody string
	Window       model.ScheduleWindow
}

type ScheduleResult struct {
	CampaignID        string                   `json:"campaign_id"`
	ScheduledMessages []model.ScheduledMessage `json:"scheduled_messages"`
}

// SyncContacts pulls contacts from the source into the directory.
func (s *CampaignService) SyncContacts(ctx context.Context, tokenHint string) ([]model.Contact, error) {
	contacts, err := s.Source.FetchContacts(ctx, tokenHint)
	if err != nil {
		return nil, err
	}
	if err := s.ContactRepo.Upsert(ctx, contacts); err != nil {
		return nil, err
	}
	s.Logger.Info().Int("count", len(contacts)).Msg("contacts synced")
	return contacts, nil
}

func (s *CampaignService) ListContacts(ctx context.Context) ([]model.Contact, error) {
	return s.ContactRepo.ListAll(ctx)
}

func (s *CampaignService) ListSegments(ctx context.Context) ([]model.Segment, error) {
	contacts, err := s.ContactRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return Segments(contacts), nil
}

// ScheduleCampaign validates the request, computes the schedule and saves it.
// Nothing is saved unless every check passes.
func (s *CampaignService) ScheduleCampaign(ctx context.Context, req ScheduleRequest) (*ScheduleResult, error) {
	if err := ValidateWindow(req.Window); err != nil {
		return nil, err
	}
	if _, err := ParseTemplate(req.TemplateBody); err != nil {
		return nil, err
	}

	contacts, missing, err := s.ContactRepo.GetByIDs(ctx, req.ContactIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, appErrors.NewUnknownContact(missing)
	}

	messages, err := s.Scheduler.Schedule(contacts, req.Window, req.TemplateBody)
	if err != nil {
		return nil, err
	}

	campaignID, err := s.CampaignRepo.Save(ctx, req.Name, messages)
	if err != nil {
		return nil, err
	}
	s.Logger.Info().
		Str("campaign_id", campaignID).
		Str("name", req.Name).
		Int("messages", len(messages)).
		Int("per_day", req.Window.PerDay).
		Strs("days", req.Window.Days).
		Msg("campaign scheduled")

	s.announce(campaignID, req.Name, messages)

	return &ScheduleResult{CampaignID: campaignID, ScheduledMessages: messages}, nil
}

// announce publishes the campaign_scheduled event. The campaign is already
// saved, so a failure is only logged.
func (s *CampaignService) announce(campaignID, name string, messages []model.ScheduledMessage) {
	if s.Queue == nil {
		return
	}
	topic := s.Topic
	if topic == "" {
		topic = queue.TopicCampaignScheduled
	}
	stats := computeStats(messages)
	ev := queue.NewCampaignScheduledEvent(campaignID, name, len(messages), stats.FirstSendAt)
	if err := queue.PublishEvent(s.Queue, topic, ev); err != nil {
		s.Logger.Warn().Err(err).Str("campaign_id", campaignID).Msg("failed to publish campaign event")
	}
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(ctx context.Context, page, pageSize int) ([]model.CampaignSummary, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	campaigns, total, err := s.CampaignRepo.ListCampaigns(ctx, offset, pageSize)
	if err != nil {
		return nil, nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}
	return campaigns, pagination, nil
}

func (s *CampaignService) GetCampaignDetails(ctx context.Context, id string) (*model.CampaignDetails, error) {
	campaign, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.CampaignDetails{Campaign: *campaign, Stats: computeStats(campaign.Messages)}, nil
}

func computeStats(messages []model.ScheduledMessage) model.CampaignStats {
	stats := model.CampaignStats{Total: len(messages), PerDate: map[string]int{}}
	for i := range messages {
		at := messages[i].SendAt
		if stats.FirstSendAt == nil || at.Before(*stats.FirstSendAt) {
			first := at
			stats.FirstSendAt = &first
		}
		if stats.LastSendAt == nil || at.After(*stats.LastSendAt) {
			last := at
			stats.LastSendAt = &last
		}
		stats.PerDate[at.Format(time.DateOnly)]++
	}
	return stats
}

// RenderPreview renders template for one directory contact.
func (s *CampaignService) RenderPreview(ctx context.Context, contactID, template string) (string, error) {
	contact, err := s.ContactRepo.GetByID(ctx, contactID)
	if err != nil {
		return "", err
	}
	return RenderTemplate(template, *contact)
}
