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

var departmentColumns = []string{"id", "name", "code", "description", "end_comment"}

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanDepartment(row pgx.Row) (*models.Department, error) {
	var d models.Department
	if err := row.Scan(&d.ID, &d.Name, &d.Code, &d.Description, &d.EndComment); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a department; a duplicate code returns apperrors.ErrConflict
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	sql, args, err := r.sb.Insert("departments").
		Columns("name", "code", "description", "end_comment").
		Values(department.Name, department.Code, department.Description, department.EndComment).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create department query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&department.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "") {
			return fmt.Errorf("department %s: %w", department.Code, apperrors.ErrConflict)
		}
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	sql, args, err := r.sb.Select(departmentColumns...).
		From("departments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	department, err := scanDepartment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		logger.Error().Err(err).Int64("departmentID", id).Msg("Error retrieving department")
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return department, nil
}

// GetByCode retrieves a department by its code
func (r *DepartmentRepository) GetByCode(ctx context.Context, code string) (*models.Department, error) {
	sql, args, err := r.sb.Select(departmentColumns...).
		From("departments").
		Where(squirrel.Eq{"code": code}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get department query: %w", err)
	}

	department, err := scanDepartment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	return department, nil
}

// GetAll retrieves all departments ordered by code
func (r *DepartmentRepository) GetAll(ctx context.Context) ([]*models.Department, error) {
	sql, args, err := r.sb.Select(departmentColumns...).
		From("departments").
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing departments: %w", err)
	}
	defer rows.Close()

	departments := make([]*models.Department, 0)
	for rows.Next() {
		department, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning department: %w", err)
		}
		departments = append(departments, department)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}
