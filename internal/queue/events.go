package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const TopicCampaignScheduled = "campaign_scheduled"

// CampaignScheduledEvent announces a saved campaign schedule.
type CampaignScheduledEvent struct {
	EventID      string     `json:"event_id"`
	CampaignID   string     `json:"campaign_id"`
	Name         string     `json:"name"`
	MessageCount int        `json:"message_count"`
	FirstSendAt  *time.Time `json:"first_send_at,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
}

func NewCampaignScheduledEvent(campaignID, name string, count int, firstSendAt *time.Time) CampaignScheduledEvent {
	return CampaignScheduledEvent{
		EventID:      uuid.NewString(),
		CampaignID:   campaignID,
		Name:         name,
		MessageCount: count,
		FirstSendAt:  firstSendAt,
		OccurredAt:   time.Now().UTC(),
	}
}

func PublishEvent(q Queue, topic string, ev any) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return q.Publish(topic, body)
}

// LogCampaignScheduled returns a handler that records each scheduled campaign.
// Malformed bodies are logged and dropped rather than retried.
func LogCampaignScheduled(logger zerolog.Logger) Handler {
	return func(body []byte) error {
		var ev CampaignScheduledEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			logger.Error().Err(err).Msg("invalid campaign_scheduled payload")
			return nil
		}
		e := logger.Info().
			Str("event_id", ev.EventID).
			Str("campaign_id", ev.CampaignID).
			Str("name", ev.Name).
			Int("message_count", ev.MessageCount)
		if ev.FirstSendAt != nil {
			e = e.Time("first_send_at", *ev.FirstSendAt)
		}
		e.Msg("campaign scheduled")
		return nil
	}
}
