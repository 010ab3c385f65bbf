package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/my2a/courseselect/internal/app/models"
	"github.com/my2a/courseselect/internal/domain/calendar"
)

// Services defined in this package:
// - CalendarService: loads, validates and saves the academic calendar
// - EnrollmentService: runs the constraint engine over a student's choices
// - CatalogService: read access to departments, parcours and courses
// - StudentService: staff listing, registration and unlocking of students

// DepartmentStore is the department persistence used by the services
type DepartmentStore interface {
	GetAll(ctx context.Context) ([]*models.Department, error)
	GetByID(ctx context.Context, id int64) (*models.Department, error)
}

// ParcoursStore is the parcours persistence used by the services
type ParcoursStore interface {
	GetByID(ctx context.Context, id int64) (*models.Parcours, error)
	GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Parcours, error)
}

// CourseStore is the course persistence used by the services
type CourseStore interface {
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByParcours(ctx context.Context, parcoursID int64, kind models.CourseListKind) ([]*models.Course, error)
}

// StudentStore is the student and enrollment persistence used by the services
type StudentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	SetDepartment(ctx context.Context, studentID, departmentID int64) error
	SetParcours(ctx context.Context, studentID, parcoursID int64) error
	Confirm(ctx context.Context, studentID int64, comment *string, confirmationID uuid.UUID, at time.Time) error
	ListEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	AddEnrollment(ctx context.Context, e *models.Enrollment) error
	RemoveEnrollment(ctx context.Context, studentID, courseID int64) error
}

// StudentRegistry is the staff-side student persistence
type StudentRegistry interface {
	Create(ctx context.Context, s *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error)
	SetEditable(ctx context.Context, studentID int64, editable bool) error
}

// CalendarStore is the calendar persistence used by the services
type CalendarStore interface {
	Get(ctx context.Context) (calendar.Calendar, time.Time, error)
	Save(ctx context.Context, cal calendar.Calendar) (time.Time, error)
}
