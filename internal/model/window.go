// internal/model/window.go
package model

// ScheduleWindow describes when a campaign may send. Times are "HH:MM".
// Timezone is carried with the campaign but not applied to arithmetic.
type ScheduleWindow struct {
	WindowStart        string   `json:"window_start"`
	WindowEnd          string   `json:"window_end"`
	Days               []string `json:"days"`
	Timezone           string   `json:"timezone"`
	PerDay             int      `json:"per_day"`
	RandomDelayMinutes [2]int   `json:"random_delay_minutes"`
}

const (
	MinPerDay = 1
	MaxPerDay = 50
)
