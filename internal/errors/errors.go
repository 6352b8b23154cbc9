// internal/errors/errors.go
package appErrors

import (
	"fmt"
	"strings"
)

// ErrCampaignNotFound is returned by campaign stores for unknown ids.
type ErrCampaignNotFound struct {
	CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %s not found", e.CampaignID)
}

func NewCampaignNotFound(id string) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

type ErrContactNotFound struct {
	ContactID string
}

func (e *ErrContactNotFound) Error() string {
	return fmt.Sprintf("contact with ID %s not found", e.ContactID)
}

func NewContactNotFound(id string) error {
	return &ErrContactNotFound{ContactID: id}
}

// ErrUnknownContact lists every requested identifier missing from the directory.
type ErrUnknownContact struct {
	IDs []string
}

func (e *ErrUnknownContact) Error() string {
	return fmt.Sprintf("unknown contacts: %s", strings.Join(e.IDs, ", "))
}

func NewUnknownContact(ids []string) error {
	return &ErrUnknownContact{IDs: ids}
}

type ErrInvalidWindow struct {
	Start  string
	End    string
	Reason string
}

func (e *ErrInvalidWindow) Error() string {
	return fmt.Sprintf("invalid window %s-%s: %s", e.Start, e.End, e.Reason)
}

func NewInvalidWindow(start, end, reason string) error {
	return &ErrInvalidWindow{Start: start, End: end, Reason: reason}
}

// ErrInvalidDay carries the offending token, unknown or repeated; an empty Day
// means no days were given.
type ErrInvalidDay struct {
	Day string
}

func (e *ErrInvalidDay) Error() string {
	if e.Day == "" {
		return "at least one send day is required"
	}
	return fmt.Sprintf("invalid or repeated day name: %q", e.Day)
}

func NewInvalidDay(day string) error {
	return &ErrInvalidDay{Day: day}
}

type ErrInvalidDelayRange struct {
	Min int
	Max int
}

func (e *ErrInvalidDelayRange) Error() string {
	return fmt.Sprintf("random_delay_minutes must be [min, max] with min > 0 and max >= min, got [%d, %d]", e.Min, e.Max)
}

func NewInvalidDelayRange(min, max int) error {
	return &ErrInvalidDelayRange{Min: min, Max: max}
}

type ErrInvalidPerDay struct {
	PerDay int
	Min    int
	Max    int
}

func (e *ErrInvalidPerDay) Error() string {
	return fmt.Sprintf("per_day must be between %d and %d, got %d", e.Min, e.Max, e.PerDay)
}

func NewInvalidPerDay(perDay, min, max int) error {
	return &ErrInvalidPerDay{PerDay: perDay, Min: min, Max: max}
}

// ErrTemplate reports an unsupported placeholder or malformed braces.
type ErrTemplate struct {
	Placeholder string
	Reason      string
}

func (e *ErrTemplate) Error() string {
	if e.Placeholder != "" {
		return fmt.Sprintf("template error: %s {%s}", e.Reason, e.Placeholder)
	}
	return "template error: " + e.Reason
}

func NewTemplateError(placeholder, reason string) error {
	return &ErrTemplate{Placeholder: placeholder, Reason: reason}
}
