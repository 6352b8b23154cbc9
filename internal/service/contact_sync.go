// internal/service/contact_sync.go
package service

import (
	"context"

	"github.com/unclebandit/outreach-backend/internal/model"
)

// ContactSource fetches the contact list a directory is synced from.
type ContactSource interface {
	FetchContacts(ctx context.Context, tokenHint string) ([]model.Contact, error)
}

// StubContactSource returns a fixed set of contacts. A production source would
// call the professional-network API with the stored access token.
type StubContactSource struct{}

func (StubContactSource) FetchContacts(ctx context.Context, tokenHint string) ([]model.Contact, error) {
	return []model.Contact{
		{
			ID:        "urn:li:person:1",
			FirstName: "Alice",
			LastName:  "Nguyen",
			Headline:  "VP Marketing at FintechCo",
			Company:   "FintechCo",
			Industry:  "FinTech",
			Location:  "London, UK",
		},
		{
			ID:        "urn:li:person:2",
			FirstName: "Bruno",
			LastName:  "Silva",
			Headline:  "Founder at HealthAI",
			Company:   "HealthAI",
			Industry:  "HealthTech",
			Location:  "Lisbon, Portugal",
		},
		{
			ID:        "urn:li:person:3",
			FirstName: "Chen",
			LastName:  "Zhou",
			Headline:  "Reporter at MediaNow",
			Company:   "MediaNow",
			Industry:  "Media",
			Location:  "New York, USA",
		},
		{
			ID:        "urn:li:person:4",
			FirstName: "Deepti",
			LastName:  "Patel",
			Headline:  "CMO at RetailHub",
			Company:   "RetailHub",
			Industry:  "Ecommerce",
			Location:  "Manchester, UK",
		},
	}, nil
}
