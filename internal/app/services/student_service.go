package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/my2a/courseselect/internal/app/models"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// StudentService defines the staff operations on student records
type StudentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error)
	Register(ctx context.Context, name, surname string, departmentID *int64) (*models.Student, error)
	SetEditable(ctx context.Context, studentID int64, editable bool) (*models.Student, error)
}

type studentServiceImpl struct {
	students    StudentRegistry
	departments DepartmentStore
	logger      zerolog.Logger
}

// NewStudentService creates a student service
func NewStudentService(students StudentRegistry, departments DepartmentStore, lgr zerolog.Logger) StudentService {
	return &studentServiceImpl{
		students:    students,
		departments: departments,
		logger:      lgr,
	}
}

// List returns the students of a department, or of every department when
// filter.DepartmentID is nil, whose name or surname contains filter.Query
func (s *studentServiceImpl) List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	if filter.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *filter.DepartmentID); err != nil {
			return nil, fmt.Errorf("error retrieving department: %w", err)
		}
	}
	students, err := s.students.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

func (s *studentServiceImpl) Register(ctx context.Context, name, surname string, departmentID *int64) (*models.Student, error) {
	name, surname = strings.TrimSpace(name), strings.TrimSpace(surname)
	if name == "" || surname == "" {
		return nil, apperrors.NewBadRequestError("name and surname are required")
	}
	if departmentID != nil {
		if _, err := s.departments.GetByID(ctx, *departmentID); err != nil {
			return nil, fmt.Errorf("error retrieving department: %w", err)
		}
	}

	student := &models.Student{
		Name:         name,
		Surname:      surname,
		DepartmentID: departmentID,
		Editable:     true,
	}
	if err := s.students.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("error registering student: %w", err)
	}
	s.logger.Info().Int64("studentID", student.ID).Msg("Student registered")
	return s.students.GetByID(ctx, student.ID)
}

// SetEditable locks or reopens a record regardless of its current state
func (s *studentServiceImpl) SetEditable(ctx context.Context, studentID int64, editable bool) (*models.Student, error) {
	if err := s.students.SetEditable(ctx, studentID, editable); err != nil {
		return nil, fmt.Errorf("error updating student status: %w", err)
	}
	s.logger.Info().Int64("studentID", studentID).Bool("editable", editable).Msg("Student status changed")
	return s.students.GetByID(ctx, studentID)
}
