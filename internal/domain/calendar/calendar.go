package calendar

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// Key names one academic-year milestone
type Key string

// Milestone keys, declared in canonical order
const (
	StartOfYear           Key = "start_of_year"
	StartOfS3B            Key = "start_of_s3b"
	StartOfS4A            Key = "start_of_s4a"
	StartOfS4B            Key = "start_of_s4b"
	EndOfYear             Key = "end_of_year"
	MondayOfAutumnHoliday Key = "monday_of_autumn_holiday"
	MondayOfXmasHoliday   Key = "monday_of_xmas_holiday"
	MondayOfWinterHoliday Key = "monday_of_winter_holiday"
	MondayOfSpringHoliday Key = "monday_of_spring_holiday"
	EasterMonday          Key = "easter_monday"
	AscensionDay          Key = "ascension_day"
	WhitMonday            Key = "whit_monday"
)

var canonicalKeys = []Key{
	StartOfYear,
	StartOfS3B,
	StartOfS4A,
	StartOfS4B,
	EndOfYear,
	MondayOfAutumnHoliday,
	MondayOfXmasHoliday,
	MondayOfWinterHoliday,
	MondayOfSpringHoliday,
	EasterMonday,
	AscensionDay,
	WhitMonday,
}

var labels = map[Key]string{
	StartOfYear:           "Start of the school year",
	StartOfS3B:            "Start of S3B",
	StartOfS4A:            "Start of S4A",
	StartOfS4B:            "Start of S4B",
	EndOfYear:             "End of the school year",
	MondayOfAutumnHoliday: "Monday of the autumn holiday",
	MondayOfXmasHoliday:   "Monday of the Christmas holiday",
	MondayOfWinterHoliday: "Monday of the winter holiday",
	MondayOfSpringHoliday: "Monday of the spring holiday",
	EasterMonday:          "Easter Monday",
	AscensionDay:          "Ascension Thursday",
	WhitMonday:            "Whit Monday",
}

var requiredWeekdays = map[Key]time.Weekday{
	MondayOfAutumnHoliday: time.Monday,
	MondayOfXmasHoliday:   time.Monday,
	MondayOfWinterHoliday: time.Monday,
	MondayOfSpringHoliday: time.Monday,
	EasterMonday:          time.Monday,
	AscensionDay:          time.Thursday,
	WhitMonday:            time.Monday,
}

// Keys returns every milestone key in canonical order
func Keys() []Key {
	keys := make([]Key, len(canonicalKeys))
	copy(keys, canonicalKeys)
	return keys
}

// ParseKey converts a raw name into a Key, rejecting names outside the closed set
func ParseKey(name string) (Key, error) {
	k := Key(name)
	if _, ok := labels[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return k, nil
}

// Label returns the human readable name of the key
func (k Key) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return string(k)
}

// IsAnchor reports whether the key bounds the academic year
func (k Key) IsAnchor() bool {
	return k == StartOfYear || k == EndOfYear
}

// RequiredWeekday returns the weekday the key's date must fall on, if any
func (k Key) RequiredWeekday() (time.Weekday, bool) {
	wd, ok := requiredWeekdays[k]
	return wd, ok
}

// Calendar maps milestone keys to civil dates. Absent keys are unset.
type Calendar map[Key]time.Time

// New builds a calendar from the given dates, dropping zero values
func New(dates map[Key]time.Time) Calendar {
	c := make(Calendar, len(dates))
	for k, d := range dates {
		c.Set(k, d)
	}
	return c
}

// Get returns the civil date set for key, also for entries stored without Set
func (c Calendar) Get(key Key) (time.Time, bool) {
	d, ok := c[key]
	if !ok || d.IsZero() {
		return time.Time{}, false
	}
	return Civil(d), true
}

// Set stores the civil date of t under key; a zero t unsets the key
func (c Calendar) Set(key Key, t time.Time) {
	if t.IsZero() {
		delete(c, key)
		return
	}
	c[key] = Civil(t)
}

// Clone returns an independent copy
func (c Calendar) Clone() Calendar {
	out := make(Calendar, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes every canonical key, unset ones as null
func (c Calendar) MarshalJSON() ([]byte, error) {
	raw := make(map[string]*string, len(canonicalKeys))
	for _, k := range canonicalKeys {
		if d, ok := c.Get(k); ok {
			s := d.Format(DateLayout)
			raw[string(k)] = &s
		} else {
			raw[string(k)] = nil
		}
	}
	return json.Marshal(raw)
}

// UnmarshalJSON decodes a key to date map; empty strings and nulls are unset
func (c *Calendar) UnmarshalJSON(b []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse builds a calendar from wire values
func Parse(raw map[string]*string) (Calendar, error) {
	c := make(Calendar, len(raw))
	for name, value := range raw {
		key, err := ParseKey(name)
		if err != nil {
			return nil, err
		}
		if value == nil || *value == "" {
			continue
		}
		d, err := time.Parse(DateLayout, *value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidDate, name, *value)
		}
		c.Set(key, d)
	}
	return c, nil
}

// Civil truncates t to its calendar date at UTC midnight
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
