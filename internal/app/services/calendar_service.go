package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/my2a/courseselect/internal/domain/calendar"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// CalendarReport is a calendar together with its violations
type CalendarReport struct {
	Calendar   calendar.Calendar
	Violations calendar.Violations
	UpdatedAt  *time.Time
	Saved      bool
}

// Valid reports whether the calendar has no violations
func (r *CalendarReport) Valid() bool {
	return len(r.Violations) == 0
}

// CalendarService defines academic calendar operations
type CalendarService interface {
	Get(ctx context.Context) (*CalendarReport, error)
	Validate(cal calendar.Calendar) *CalendarReport
	Save(ctx context.Context, cal calendar.Calendar) (*CalendarReport, error)
}

type calendarServiceImpl struct {
	store      CalendarStore
	strictSave bool
	logger     zerolog.Logger
}

// NewCalendarService creates a calendar service. With strictSave a calendar
// that has violations is refused instead of stored with advisory violations.
func NewCalendarService(store CalendarStore, strictSave bool, lgr zerolog.Logger) CalendarService {
	return &calendarServiceImpl{
		store:      store,
		strictSave: strictSave,
		logger:     lgr,
	}
}

// Get loads the stored calendar; a missing row reads as an empty calendar
func (s *calendarServiceImpl) Get(ctx context.Context) (*CalendarReport, error) {
	cal, updatedAt, err := s.store.Get(ctx)
	switch {
	case errors.Is(err, apperrors.ErrCalendarNotFound):
		return s.Validate(calendar.New(nil)), nil
	case err != nil:
		return nil, fmt.Errorf("error loading calendar: %w", err)
	}

	report := s.Validate(cal)
	report.UpdatedAt = &updatedAt
	return report, nil
}

func (s *calendarServiceImpl) Validate(cal calendar.Calendar) *CalendarReport {
	if cal == nil {
		cal = calendar.New(nil)
	}
	return &CalendarReport{
		Calendar:   cal,
		Violations: calendar.Validate(cal),
	}
}

func (s *calendarServiceImpl) Save(ctx context.Context, cal calendar.Calendar) (*CalendarReport, error) {
	report := s.Validate(cal.Clone())
	if !report.Valid() {
		s.logger.Warn().
			Int("violations", len(report.Violations)).
			Bool("strict", s.strictSave).
			Msg("Calendar has violations")
		if s.strictSave {
			return report, apperrors.NewCustomError(apperrors.ErrCalendarInvalid, "Academic calendar has violations").
				WithDetails(map[string]interface{}{"violations": report.Violations})
		}
	}

	updatedAt, err := s.store.Save(ctx, report.Calendar)
	if err != nil {
		return nil, fmt.Errorf("error saving calendar: %w", err)
	}
	report.UpdatedAt = &updatedAt
	report.Saved = true

	s.logger.Info().Time("updatedAt", updatedAt).Msg("Academic calendar saved")
	return report, nil
}
