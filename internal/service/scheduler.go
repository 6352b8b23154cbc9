// internal/service/scheduler.go
package service

import (
	"math/rand"
	"time"

	appErrors "github.com/unclebandit/outreach-backend/internal/errors"
	"github.com/unclebandit/outreach-backend/internal/model"
)

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

var SystemClock Clock = ClockFunc(time.Now)

// JitterSource returns an integer in the closed range [min, max].
type JitterSource func(min, max int) int

func RandomJitter(min, max int) int {
	return min + rand.Intn(max-min+1)
}

var weekdays = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

// windowBounds is a validated ScheduleWindow in minutes since midnight.
type windowBounds struct {
	start int
	end   int
	days  []time.Weekday
}

func (b windowBounds) minutes() int { return b.end - b.start }

// ValidateWindow checks every window precondition without scheduling anything.
func ValidateWindow(w model.ScheduleWindow) error {
	_, err := parseWindow(w)
	return err
}

func parseWindow(w model.ScheduleWindow) (windowBounds, error) {
	if w.PerDay < model.MinPerDay || w.PerDay > model.MaxPerDay {
		return windowBounds{}, appErrors.NewInvalidPerDay(w.PerDay, model.MinPerDay, model.MaxPerDay)
	}

	start, ok := parseClock(w.WindowStart)
	if !ok {
		return windowBounds{}, appErrors.NewInvalidWindow(w.WindowStart, w.WindowEnd, "window_start must be HH:MM")
	}
	end, ok := parseClock(w.WindowEnd)
	if !ok {
		return windowBounds{}, appErrors.NewInvalidWindow(w.WindowStart, w.WindowEnd, "window_end must be HH:MM")
	}
	if end <= start {
		return windowBounds{}, appErrors.NewInvalidWindow(w.WindowStart, w.WindowEnd, "window_end must be after window_start")
	}

	if len(w.Days) == 0 {
		return windowBounds{}, appErrors.NewInvalidDay("")
	}
	// Each weekday at most once.
	days := make([]time.Weekday, len(w.Days))
	seen := make(map[time.Weekday]bool, len(w.Days))
	for i, name := range w.Days {
		wd, ok := weekdays[name]
		if !ok || seen[wd] {
			return windowBounds{}, appErrors.NewInvalidDay(name)
		}
		seen[wd] = true
		days[i] = wd
	}

	lo, hi := w.RandomDelayMinutes[0], w.RandomDelayMinutes[1]
	if lo <= 0 || hi < lo {
		return windowBounds{}, appErrors.NewInvalidDelayRange(lo, hi)
	}

	return windowBounds{start: start, end: end, days: days}, nil
}

// parseClock parses a strict "HH:MM" into minutes since midnight.
func parseClock(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// SendInterval is the even spacing between sends of one day, never below a minute.
func SendInterval(windowMinutes, perDay int) int {
	return max(windowMinutes/perDay, 1)
}

// nextWeekdayAt projects forward to the next target weekday at the given
// minute of day. Today qualifies only while its window start is still ahead.
func nextWeekdayAt(now time.Time, target time.Weekday, minuteOfDay int) time.Time {
	daysAhead := (int(target) - int(now.Weekday()) + 7) % 7
	at := time.Date(now.Year(), now.Month(), now.Day()+daysAhead,
		minuteOfDay/60, minuteOfDay%60, 0, 0, now.Location())
	if daysAhead == 0 && !at.After(now) {
		at = at.AddDate(0, 0, 7)
	}
	return at
}

type Scheduler struct {
	Clock  Clock
	Jitter JitterSource
}

func NewScheduler(clock Clock, jitter JitterSource) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	if jitter == nil {
		jitter = RandomJitter
	}
	return &Scheduler{Clock: clock, Jitter: jitter}
}

// Schedule spreads contacts over the window in daily batches of at most
// PerDay, in input order. Either every message is produced or an error is.
func (s *Scheduler) Schedule(contacts []model.Contact, window model.ScheduleWindow, template string) ([]model.ScheduledMessage, error) {
	if len(contacts) == 0 {
		return []model.ScheduledMessage{}, nil
	}

	bounds, err := parseWindow(window)
	if err != nil {
		return nil, err
	}
	tmpl, err := ParseTemplate(template)
	if err != nil {
		return nil, err
	}
	for _, c := range contacts {
		if c.ID == "" {
			return nil, appErrors.NewUnknownContact([]string{""})
		}
	}

	now := s.Clock.Now()
	interval := SendInterval(bounds.minutes(), window.PerDay)
	lo, hi := window.RandomDelayMinutes[0], window.RandomDelayMinutes[1]

	messages := make([]model.ScheduledMessage, 0, len(contacts))
	for batch := 0; batch*window.PerDay < len(contacts); batch++ {
		first := batch * window.PerDay
		last := min(first+window.PerDay, len(contacts))

		weekday := bounds.days[batch%len(bounds.days)]
		weeks := batch / len(bounds.days)
		base := nextWeekdayAt(now, weekday, bounds.start).AddDate(0, 0, 7*weeks)

		for j, c := range contacts[first:last] {
			offset := interval*j + s.Jitter(lo, hi)
			messages = append(messages, model.ScheduledMessage{
				ContactID: c.ID,
				SendAt:    base.Add(time.Duration(offset) * time.Minute),
				Body:      tmpl.Render(c),
			})
		}
	}

	return messages, nil
}
