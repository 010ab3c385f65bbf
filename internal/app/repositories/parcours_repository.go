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

var parcoursColumns = []string{
	"id", "department_id", "name", "description", "mandatory_text", "elective_text",
	"base_ects", "academic_base_ects",
}

// ParcoursRepository handles database operations for parcours and their course lists
type ParcoursRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewParcoursRepository creates a new parcours repository
func NewParcoursRepository(db *pgxpool.Pool) *ParcoursRepository {
	return &ParcoursRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanParcours(row pgx.Row) (*models.Parcours, error) {
	var p models.Parcours
	err := row.Scan(&p.ID, &p.DepartmentID, &p.Name, &p.Description, &p.MandatoryText,
		&p.ElectiveText, &p.BaseECTS, &p.AcademicBaseECTS)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a parcours
func (r *ParcoursRepository) Create(ctx context.Context, p *models.Parcours) error {
	sql, args, err := r.sb.Insert("parcours").
		Columns("department_id", "name", "description", "mandatory_text", "elective_text",
			"base_ects", "academic_base_ects").
		Values(p.DepartmentID, p.Name, p.Description, p.MandatoryText, p.ElectiveText,
			p.BaseECTS, p.AcademicBaseECTS).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create parcours query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error creating parcours: %w", err)
	}
	return nil
}

// GetByID retrieves a parcours by ID
func (r *ParcoursRepository) GetByID(ctx context.Context, id int64) (*models.Parcours, error) {
	sql, args, err := r.sb.Select(parcoursColumns...).
		From("parcours").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get parcours query: %w", err)
	}

	p, err := scanParcours(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrParcoursNotFound
		}
		logger.Error().Err(err).Int64("parcoursID", id).Msg("Error retrieving parcours")
		return nil, fmt.Errorf("error retrieving parcours: %w", err)
	}
	return p, nil
}

// GetByDepartmentID lists the parcours of a department
func (r *ParcoursRepository) GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Parcours, error) {
	sql, args, err := r.sb.Select(parcoursColumns...).
		From("parcours").
		Where(squirrel.Eq{"department_id": departmentID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list parcours query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing parcours: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Parcours, 0)
	for rows.Next() {
		p, err := scanParcours(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning parcours: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// AttachCourse appends a course to one of the parcours lists; attaching twice is a no-op
func (r *ParcoursRepository) AttachCourse(ctx context.Context, parcoursID, courseID int64, kind models.CourseListKind) error {
	table, err := courseListTable(kind)
	if err != nil {
		return err
	}

	sql := fmt.Sprintf(`
		INSERT INTO %[1]s (parcours_id, course_id, position)
		SELECT $1::bigint, $2::bigint, COALESCE(MAX(position), 0) + 1
		FROM %[1]s
		WHERE parcours_id = $1::bigint
		ON CONFLICT (parcours_id, course_id) DO NOTHING
	`, table)
	args := []interface{}{parcoursID, courseID}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return fmt.Errorf("attach course %d to parcours %d: %w", courseID, parcoursID, apperrors.ErrResourceNotFound)
		}
		return fmt.Errorf("error attaching course: %w", err)
	}
	return nil
}

func courseListTable(kind models.CourseListKind) (string, error) {
	switch kind {
	case models.ListMandatory:
		return "parcours_mandatory_courses", nil
	case models.ListOnList:
		return "parcours_on_list_courses", nil
	}
	return "", apperrors.NewBadRequestError(fmt.Sprintf("unknown course list %q", kind))
}
