package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/my2a/courseselect/internal/app/models"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
	"github.com/my2a/courseselect/internal/pkg/dberrors"
	"github.com/my2a/courseselect/internal/pkg/logger"
)

var courseColumns = []string{
	"c.id", "c.department_id", "c.code", "c.name", "c.description", "c.ects", "c.semester",
	"c.day", "c.start_minute", "c.end_minute",
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.DepartmentID, &c.Code, &c.Name, &c.Description, &c.ECTS,
		&c.Semester, &c.Day, &c.StartMinute, &c.EndMinute)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, q squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

// Create inserts a course; a duplicate code returns apperrors.ErrConflict
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("department_id", "code", "name", "description", "ects", "semester",
			"day", "start_minute", "end_minute").
		Values(c.DepartmentID, c.Code, c.Name, c.Description, c.ECTS, c.Semester,
			c.Day, c.StartMinute, c.EndMinute).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "courses_code_key"):
			return fmt.Errorf("course %s: %w", c.Code, apperrors.ErrConflict)
		case dberrors.IsForeignKeyError(err):
			return apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Str("code", c.Code).Msg("Error creating course")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetAll lists every course ordered by code
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	return r.queryCourses(ctx, r.sb.Select(courseColumns...).
		From("courses c").
		OrderBy("c.code"))
}

// GetByParcours lists one course list of a parcours in its configured order
func (r *CourseRepository) GetByParcours(ctx context.Context, parcoursID int64, kind models.CourseListKind) ([]*models.Course, error) {
	table, err := courseListTable(kind)
	if err != nil {
		return nil, err
	}
	return r.queryCourses(ctx, r.sb.Select(courseColumns...).
		From("courses c").
		Join(table+" l ON l.course_id = c.id").
		Where(squirrel.Eq{"l.parcours_id": parcoursID}).
		OrderBy("l.position", "c.id"))
}
