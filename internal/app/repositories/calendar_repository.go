package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/my2a/courseselect/internal/domain/calendar"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
	"github.com/my2a/courseselect/internal/pkg/dberrors"
)

const calendarRowID = 1

// CalendarRepository persists the academic calendar as a single row whose
// date columns are named after the calendar keys
type CalendarRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCalendarRepository creates a new calendar repository
func NewCalendarRepository(db *pgxpool.Pool) *CalendarRepository {
	return &CalendarRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func calendarColumns() []string {
	keys := calendar.Keys()
	cols := make([]string, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, string(k))
	}
	return cols
}

// Get loads the stored calendar and its last update time
func (r *CalendarRepository) Get(ctx context.Context) (calendar.Calendar, time.Time, error) {
	keys := calendar.Keys()
	sql, args, err := r.sb.Select(append(calendarColumns(), "updated_at")...).
		From("academic_calendar").
		Where(squirrel.Eq{"id": calendarRowID}).
		ToSql()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to build get calendar query: %w", err)
	}

	dates := make([]*time.Time, len(keys))
	dest := make([]interface{}, 0, len(keys)+1)
	for i := range dates {
		dest = append(dest, &dates[i])
	}
	var updatedAt time.Time
	dest = append(dest, &updatedAt)

	if err := r.db.QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, time.Time{}, apperrors.ErrCalendarNotFound
		}
		return nil, time.Time{}, fmt.Errorf("error retrieving calendar: %w", err)
	}

	cal := calendar.New(nil)
	for i, k := range keys {
		if dates[i] != nil {
			cal.Set(k, *dates[i])
		}
	}
	return cal, updatedAt, nil
}

// Save replaces every stored date with the given calendar; unset keys become NULL
func (r *CalendarRepository) Save(ctx context.Context, cal calendar.Calendar) (time.Time, error) {
	cols := calendarColumns()
	values := []interface{}{calendarRowID}
	updates := make([]string, 0, len(cols)+1)
	for _, k := range calendar.Keys() {
		if d, ok := cal.Get(k); ok {
			values = append(values, d)
		} else {
			values = append(values, nil)
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", k, k))
	}
	updates = append(updates, "updated_at = CURRENT_TIMESTAMP")

	sql, args, err := r.sb.Insert("academic_calendar").
		Columns(append([]string{"id"}, cols...)...).
		Values(values...).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + strings.Join(updates, ", ") + " RETURNING updated_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build save calendar query: %w", err)
	}

	var updatedAt time.Time
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&updatedAt); err != nil {
		return time.Time{}, fmt.Errorf("error saving calendar: %w", err)
	}
	return updatedAt, nil
}

// EnsureRow creates the empty calendar row when missing
func (r *CalendarRepository) EnsureRow(ctx context.Context) error {
	sql, args, err := r.sb.Insert("academic_calendar").
		Columns("id").
		Values(calendarRowID).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build calendar row query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating calendar row: %w", err)
	}
	return nil
}
