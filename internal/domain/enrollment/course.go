package enrollment

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Engine errors. ErrMalformedCourse is a boundary error; the other two mean the
// engine cannot evaluate and the caller must not offer a submit action.
var (
	ErrMalformedCourse = errors.New("malformed course")
	ErrCatalogMissing  = errors.New("course catalog is missing")
	ErrCannotEvaluate  = errors.New("enrollment cannot be evaluated")
)

// Clock is a time of day in minutes after midnight
type Clock int

// ParseClock parses "HH:MM" or "HH:MM:SS"
func ParseClock(s string) (Clock, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock(t.Hour()*60 + t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", s)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// MarshalJSON encodes the clock as "HH:MM"
func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes "HH:MM" or "HH:MM:SS"
func (c *Clock) UnmarshalJSON(b []byte) error {
	parsed, err := ParseClock(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Slot is the weekly time slot of a timed course. Courses run Monday to Friday.
type Slot struct {
	Day   time.Weekday `json:"day"`
	Start Clock        `json:"start"`
	End   Clock        `json:"end"`
}

// SlotKey identifies courses that collide on the same weekly start
type SlotKey struct {
	Day   time.Weekday `json:"day"`
	Start Clock        `json:"start"`
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%s %s", k.Day, k.Start)
}

// Key returns the grouping key of the slot
func (s Slot) Key() SlotKey {
	return SlotKey{Day: s.Day, Start: s.Start}
}

// Course is the engine's view of a catalog entry
type Course struct {
	ID       int64   `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	ECTS     float64 `json:"ects"`
	Semester string  `json:"semester,omitempty"`
	Slot     *Slot   `json:"slot,omitempty"`
}

// Timed reports whether the course has a weekly slot
func (c Course) Timed() bool {
	return c.Slot != nil
}

// Validate rejects catalog entries the engine cannot reason about
func (c Course) Validate() error {
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("%w: course %d has no code", ErrMalformedCourse, c.ID)
	}
	if c.ECTS < 0 {
		return fmt.Errorf("%w: course %s has negative ECTS", ErrMalformedCourse, c.Code)
	}
	if c.Slot == nil {
		return nil
	}
	if c.Slot.Day < time.Monday || c.Slot.Day > time.Friday {
		return fmt.Errorf("%w: course %s has no valid day", ErrMalformedCourse, c.Code)
	}
	if c.Slot.Start < 0 || c.Slot.End > 24*60 || c.Slot.End <= c.Slot.Start {
		return fmt.Errorf("%w: course %s has an invalid time range", ErrMalformedCourse, c.Code)
	}
	return nil
}

// IDSet is an immutable set of course IDs
type IDSet struct {
	ids map[int64]struct{}
}

// NewIDSet builds a set from ids
func NewIDSet(ids ...int64) IDSet {
	m := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return IDSet{ids: m}
}

// Has reports membership
func (s IDSet) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of IDs
func (s IDSet) Len() int {
	return len(s.ids)
}

// Union returns a new set holding the members of both sets
func (s IDSet) Union(other IDSet) IDSet {
	m := make(map[int64]struct{}, len(s.ids)+len(other.ids))
	for id := range s.ids {
		m[id] = struct{}{}
	}
	for id := range other.ids {
		m[id] = struct{}{}
	}
	return IDSet{ids: m}
}

// State is a snapshot of one student's enrollment
type State struct {
	Mandatory IDSet
	Elective  IDSet
	ECTS      float64
	Editable  bool
}

// Chosen returns every chosen course regardless of category
func (s State) Chosen() IDSet {
	return s.Mandatory.Union(s.Elective)
}

// TotalECTS sums chosen and core course credits plus the parcours base credits
func TotalECTS(chosen, core []Course, base float64) float64 {
	total := base
	for _, c := range chosen {
		total += c.ECTS
	}
	for _, c := range core {
		total += c.ECTS
	}
	return total
}
