// internal/model/campaign.go
package model

import "time"

type ScheduledMessage struct {
	ContactID string    `db:"contact_id" json:"contact_id"`
	SendAt    time.Time `db:"send_at" json:"send_at"`
	Body      string    `db:"body" json:"body"`
}

type Campaign struct {
	ID        string             `db:"id" json:"id"`
	Name      string             `db:"name" json:"name"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	Messages  []ScheduledMessage `json:"messages,omitempty"`
}

// CampaignSummary is the list view of a campaign, without message bodies.
type CampaignSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	MessageCount int       `json:"message_count"`
}

type CampaignStats struct {
	Total       int            `json:"total"`
	FirstSendAt *time.Time     `json:"first_send_at,omitempty"`
	LastSendAt  *time.Time     `json:"last_send_at,omitempty"`
	PerDate     map[string]int `json:"per_date"`
}

type CampaignDetails struct {
	Campaign
	Stats CampaignStats `json:"stats"`
}
