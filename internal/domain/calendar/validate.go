package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Boundary errors for malformed calendar input
var (
	ErrUnknownKey  = errors.New("unknown calendar key")
	ErrInvalidDate = errors.New("invalid calendar date")
)

// Rule identifies which constraint a violation breaks
type Rule string

const (
	RuleMissingAnchors Rule = "MISSING_ANCHORS"
	RuleBeforeStart    Rule = "BEFORE_START"
	RuleAfterEnd       Rule = "AFTER_END"
	RuleWeekday        Rule = "WRONG_WEEKDAY"
)

// Violation is one advisory finding on a calendar
type Violation struct {
	Rule    Rule   `json:"rule"`
	Key     Key    `json:"key,omitempty"`
	Date    string `json:"date,omitempty"`
	Anchor  Key    `json:"anchor,omitempty"`
	Message string `json:"message"`
}

// Violations is the ordered result of Validate
type Violations []Violation

// Messages returns the human readable message of each violation
func (v Violations) Messages() []string {
	msgs := make([]string, 0, len(v))
	for _, violation := range v {
		msgs = append(msgs, violation.Message)
	}
	return msgs
}

// MissingAnchors reports whether validation stopped on the anchor precondition
func (v Violations) MissingAnchors() bool {
	return len(v) == 1 && v[0].Rule == RuleMissingAnchors
}

// Validate reports every structural violation of c in canonical key order.
// An empty result means the calendar is consistent.
func Validate(c Calendar) Violations {
	start, hasStart := c.Get(StartOfYear)
	end, hasEnd := c.Get(EndOfYear)
	if !hasStart || !hasEnd {
		return Violations{{
			Rule:    RuleMissingAnchors,
			Message: fmt.Sprintf("%q and %q must both be set.", StartOfYear.Label(), EndOfYear.Label()),
		}}
	}

	violations := Violations{}
	for _, key := range canonicalKeys {
		date, ok := c.Get(key)
		if !ok {
			continue
		}

		switch {
		case key == EndOfYear:
			if date.Before(start) {
				violations = append(violations, rangeViolation(RuleBeforeStart, key, date, StartOfYear, start))
			}
		case !key.IsAnchor():
			if date.Before(start) {
				violations = append(violations, rangeViolation(RuleBeforeStart, key, date, StartOfYear, start))
			}
			if date.After(end) {
				violations = append(violations, rangeViolation(RuleAfterEnd, key, date, EndOfYear, end))
			}
		}

		if wd, ok := key.RequiredWeekday(); ok && date.Weekday() != wd {
			violations = append(violations, Violation{
				Rule:    RuleWeekday,
				Key:     key,
				Date:    date.Format(DateLayout),
				Message: fmt.Sprintf("%q (%s, %s) must be a %s.", key.Label(), key, date.Format(DateLayout), wd),
			})
		}
	}
	return violations
}

func rangeViolation(rule Rule, key Key, date time.Time, anchor Key, anchorDate time.Time) Violation {
	relation := "before"
	if rule == RuleAfterEnd {
		relation = "after"
	}
	return Violation{
		Rule:   rule,
		Key:    key,
		Date:   date.Format(DateLayout),
		Anchor: anchor,
		Message: fmt.Sprintf("%q (%s, %s) is %s %q (%s).",
			key.Label(), key, date.Format(DateLayout), relation, anchor.Label(), anchorDate.Format(DateLayout)),
	}
}
