package services

import (
	"context"
	"fmt"

	"github.com/my2a/courseselect/internal/app/models"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
)

// CatalogService defines read access to departments, parcours and courses
type CatalogService interface {
	ListDepartments(ctx context.Context) ([]*models.Department, error)
	ListParcours(ctx context.Context, departmentID int64) ([]*models.Parcours, error)
	ListCourses(ctx context.Context, parcoursID int64, kind models.CourseListKind) ([]*models.Course, error)
}

type catalogServiceImpl struct {
	departments DepartmentStore
	parcours    ParcoursStore
	courses     CourseStore
}

// NewCatalogService creates a catalog service
func NewCatalogService(departments DepartmentStore, parcours ParcoursStore, courses CourseStore) CatalogService {
	return &catalogServiceImpl{
		departments: departments,
		parcours:    parcours,
		courses:     courses,
	}
}

func (s *catalogServiceImpl) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.departments.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	return departments, nil
}

func (s *catalogServiceImpl) ListParcours(ctx context.Context, departmentID int64) ([]*models.Parcours, error) {
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}
	list, err := s.parcours.GetByDepartmentID(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving parcours: %w", err)
	}
	return list, nil
}

// ListCourses returns one course list of a parcours; an empty kind means on_list
func (s *catalogServiceImpl) ListCourses(ctx context.Context, parcoursID int64, kind models.CourseListKind) ([]*models.Course, error) {
	if kind == "" {
		kind = models.ListOnList
	}
	if kind != models.ListOnList && kind != models.ListMandatory {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown course list %q", kind))
	}
	if _, err := s.parcours.GetByID(ctx, parcoursID); err != nil {
		return nil, fmt.Errorf("error retrieving parcours: %w", err)
	}
	courses, err := s.courses.GetByParcours(ctx, parcoursID, kind)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}
