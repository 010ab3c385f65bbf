package dto

import (
	"time"

	"github.com/my2a/courseselect/internal/domain/calendar"
)

// CalendarRequest maps calendar keys to YYYY-MM-DD dates; null or "" unsets a key
type CalendarRequest map[string]*string

// CalendarEntry describes one milestone for display
type CalendarEntry struct {
	Key             calendar.Key `json:"key" example:"monday_of_autumn_holiday"`
	Label           string       `json:"label" example:"Monday of the autumn holiday"`
	Date            *string      `json:"date" example:"2024-10-21"`
	RequiredWeekday string       `json:"requiredWeekday,omitempty" example:"Monday"`
}

// CalendarResponse is a calendar with its violations
type CalendarResponse struct {
	Dates      calendar.Calendar   `json:"dates" swaggertype:"object,string"`
	Entries    []CalendarEntry     `json:"entries"`
	Violations calendar.Violations `json:"violations"`
	Messages   []string            `json:"messages"`
	Valid      bool                `json:"valid" example:"true"`
	Saved      bool                `json:"saved" example:"false"`
	UpdatedAt  *time.Time          `json:"updatedAt,omitempty"`
}

// NewCalendarResponse builds the response for a calendar and its violations
func NewCalendarResponse(cal calendar.Calendar, violations calendar.Violations, updatedAt *time.Time, saved bool) CalendarResponse {
	if violations == nil {
		violations = calendar.Violations{}
	}

	entries := make([]CalendarEntry, 0, len(calendar.Keys()))
	for _, k := range calendar.Keys() {
		entry := CalendarEntry{Key: k, Label: k.Label()}
		if d, ok := cal.Get(k); ok {
			s := d.Format(calendar.DateLayout)
			entry.Date = &s
		}
		if wd, ok := k.RequiredWeekday(); ok {
			entry.RequiredWeekday = wd.String()
		}
		entries = append(entries, entry)
	}

	return CalendarResponse{
		Dates:      cal,
		Entries:    entries,
		Violations: violations,
		Messages:   violations.Messages(),
		Valid:      len(violations) == 0,
		Saved:      saved,
		UpdatedAt:  updatedAt,
	}
}
