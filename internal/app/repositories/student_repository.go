package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/my2a/courseselect/internal/app/models"
	"github.com/my2a/courseselect/internal/db"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
	"github.com/my2a/courseselect/internal/pkg/dberrors"
	"github.com/my2a/courseselect/internal/pkg/logger"
)

var studentColumns = []string{
	"id", "name", "surname", "department_id", "parcours_id", "editable", "comment",
	"confirmation_id", "submitted_at",
}

// StudentRepository handles students and their enrollments
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(&s.ID, &s.Name, &s.Surname, &s.DepartmentID, &s.ParcoursID, &s.Editable,
		&s.Comment, &s.ConfirmationID, &s.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a student
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "surname", "department_id", "parcours_id", "editable", "comment").
		Values(s.Name, s.Surname, s.DepartmentID, s.ParcoursID, s.Editable, s.Comment).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID); err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			logger.Warn().Int64("studentID", id).Msg("Student not found")
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return s, nil
}

// SetDepartment assigns the department and clears the parcours
func (r *StudentRepository) SetDepartment(ctx context.Context, studentID, departmentID int64) error {
	sql, args, err := r.sb.Update("students").
		Set("department_id", departmentID).
		Set("parcours_id", nil).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set department query: %w", err)
	}

	return r.whileEditable(ctx, studentID, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsForeignKeyError(err) {
				return apperrors.ErrDepartmentNotFound
			}
			return fmt.Errorf("error updating student %d: %w", studentID, err)
		}
		return nil
	})
}

// SetParcours assigns the parcours and drops every enrollment in one transaction
func (r *StudentRepository) SetParcours(ctx context.Context, studentID, parcoursID int64) error {
	update, updateArgs, err := r.sb.Update("students").
		Set("parcours_id", parcoursID).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set parcours query: %w", err)
	}
	clearSQL, clearArgs, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear enrollments query: %w", err)
	}

	return r.whileEditable(ctx, studentID, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, update, updateArgs...); err != nil {
			if dberrors.IsForeignKeyError(err) {
				return apperrors.ErrParcoursNotFound
			}
			return fmt.Errorf("error setting parcours: %w", err)
		}
		if _, err := tx.Exec(ctx, clearSQL, clearArgs...); err != nil {
			return fmt.Errorf("error clearing enrollments: %w", err)
		}
		return nil
	})
}

// SetEditable reopens or closes a record for editing. Unlocking keeps the
// confirmation of the previous submission until the next one replaces it.
func (r *StudentRepository) SetEditable(ctx context.Context, studentID int64, editable bool) error {
	sql, args, err := r.sb.Update("students").
		Set("editable", editable).
		Where(squirrel.Eq{"id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set editable query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student %d: %w", studentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// List returns the students matching filter ordered by surname and name
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	sql, args, err := studentListQuery(r.sb, filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return students, nil
}

func studentListQuery(sb squirrel.StatementBuilderType, filter models.StudentFilter) squirrel.SelectBuilder {
	q := sb.Select(studentColumns...).From("students")
	if filter.DepartmentID != nil {
		q = q.Where(squirrel.Eq{"department_id": *filter.DepartmentID})
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		pattern := "%" + likeEscaper.Replace(query) + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"surname": pattern},
		})
	}
	return q.OrderBy("surname", "name", "id")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// lockEditableQuery reads the editable flag and holds the row until the transaction ends
func lockEditableQuery(sb squirrel.StatementBuilderType, studentID int64) (string, []interface{}, error) {
	return sb.Select("editable").
		From("students").
		Where(squirrel.Eq{"id": studentID}).
		Suffix("FOR UPDATE").
		ToSql()
}

// whileEditable runs fn in a transaction that holds the student row, so a
// concurrent Confirm either waits for fn or makes it fail with ErrEnrollmentLocked
func (r *StudentRepository) whileEditable(ctx context.Context, studentID int64, fn db.TransactionFn) error {
	lock, lockArgs, err := lockEditableQuery(r.sb, studentID)
	if err != nil {
		return fmt.Errorf("failed to build lock student query: %w", err)
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var editable bool
		if err := tx.QueryRow(ctx, lock, lockArgs...).Scan(&editable); err != nil {
			if dberrors.IsNoRows(err) {
				return apperrors.ErrStudentNotFound
			}
			return fmt.Errorf("error locking student %d: %w", studentID, err)
		}
		if !editable {
			return apperrors.ErrEnrollmentLocked
		}
		return fn(ctx, tx)
	})
}

// Confirm stores the submission comment and locks the record
func (r *StudentRepository) Confirm(ctx context.Context, studentID int64, comment *string, confirmationID uuid.UUID, at time.Time) error {
	sql, args, err := r.sb.Update("students").
		Set("comment", comment).
		Set("editable", false).
		Set("confirmation_id", confirmationID).
		Set("submitted_at", at).
		Where(squirrel.Eq{"id": studentID, "editable": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build confirm query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error confirming enrollment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// either missing or already locked by a concurrent submit
		if _, err := r.GetByID(ctx, studentID); err != nil {
			return err
		}
		return apperrors.ErrEnrollmentLocked
	}
	return nil
}

// ListEnrollments returns the enrollments of a student in creation order
func (r *StudentRepository) ListEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	sql, args, err := r.sb.Select("student_id", "course_id", "category", "created_at").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at", "course_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := make([]*models.Enrollment, 0)
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.StudentID, &e.CourseID, &e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning enrollment: %w", err)
		}
		enrollments = append(enrollments, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// AddEnrollment records a choice; choosing an already chosen course updates its category
func (r *StudentRepository) AddEnrollment(ctx context.Context, e *models.Enrollment) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id", "category").
		Values(e.StudentID, e.CourseID, e.Category).
		Suffix("ON CONFLICT (student_id, course_id) DO UPDATE SET category = EXCLUDED.category").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add enrollment query: %w", err)
	}

	return r.whileEditable(ctx, e.StudentID, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsForeignKeyError(err) {
				return apperrors.ErrCourseNotFound
			}
			return fmt.Errorf("error adding enrollment: %w", err)
		}
		return nil
	})
}

// RemoveEnrollment deletes a choice; removing a course that is not chosen is a no-op
func (r *StudentRepository) RemoveEnrollment(ctx context.Context, studentID, courseID int64) error {
	sql, args, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove enrollment query: %w", err)
	}

	return r.whileEditable(ctx, studentID, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error removing enrollment: %w", err)
		}
		return nil
	})
}
