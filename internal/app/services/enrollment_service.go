package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/my2a/courseselect/internal/app/models"
	"github.com/my2a/courseselect/internal/config"
	"github.com/my2a/courseselect/internal/domain/enrollment"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// PartitionView is the constraint structure of a parcours' on-list courses
type PartitionView struct {
	Parcours    *models.Parcours
	Independent []enrollment.Course
	Groups      []enrollment.ConstraintGroup
}

// Overview is everything a student needs to edit and submit a selection.
// Options and Completion are nil while no parcours is chosen.
type Overview struct {
	Student      *models.Student
	Department   *models.Department
	Parcours     *models.Parcours
	Enrollments  []*models.Enrollment
	Requirements enrollment.Requirements
	ECTS         float64
	Options      *enrollment.Options
	Completion   *enrollment.Completion
}

// Warnings returns the advisory messages of the completion, if evaluated
func (o *Overview) Warnings() []enrollment.Warning {
	if o.Completion == nil {
		return []enrollment.Warning{}
	}
	return o.Completion.Warnings()
}

// Submission is the outcome of a confirmed selection
type Submission struct {
	ConfirmationID uuid.UUID
	SubmittedAt    time.Time
	Completion     enrollment.Completion
	EndComment     string
}

// EnrollmentService defines the course selection operations of a student
type EnrollmentService interface {
	Partition(ctx context.Context, parcoursID int64) (*PartitionView, error)
	Overview(ctx context.Context, studentID int64) (*Overview, error)
	UpdateChoice(ctx context.Context, studentID, courseID int64, category models.EnrollmentCategory, enrolled bool) (*Overview, error)
	SetDepartment(ctx context.Context, studentID, departmentID int64) (*models.Student, error)
	SetParcours(ctx context.Context, studentID, parcoursID int64) (*models.Student, error)
	Available(ctx context.Context, studentID int64) ([]*models.Course, error)
	Electives(ctx context.Context, studentID int64) ([]*models.Course, error)
	Submit(ctx context.Context, studentID int64, comment string) (*Submission, error)
}

type enrollmentServiceImpl struct {
	students     StudentStore
	departments  DepartmentStore
	parcours     ParcoursStore
	courses      CourseStore
	requirements config.EnrollmentConfig
	logger       zerolog.Logger
	now          func() time.Time
	newID        func() uuid.UUID
}

// NewEnrollmentService creates an enrollment service
func NewEnrollmentService(
	students StudentStore,
	departments DepartmentStore,
	parcours ParcoursStore,
	courses CourseStore,
	requirements config.EnrollmentConfig,
	lgr zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		students:     students,
		departments:  departments,
		parcours:     parcours,
		courses:      courses,
		requirements: requirements,
		logger:       lgr,
		now:          time.Now,
		newID:        uuid.New,
	}
}

// snapshot is the state of one student read at a single point
type snapshot struct {
	student     *models.Student
	department  *models.Department
	parcours    *models.Parcours
	enrollments []*models.Enrollment
	courses     []*models.Course
	byID        map[int64]*models.Course
	core        []enrollment.Course
	onList      []enrollment.Course
	electives   []enrollment.Course
	partition   *enrollment.Partition
	state       enrollment.State
	compatible  enrollment.IDSet
}

func (s *enrollmentServiceImpl) load(ctx context.Context, studentID int64) (*snapshot, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error loading student: %w", err)
	}
	snap := &snapshot{student: student}

	if student.DepartmentID != nil {
		if snap.department, err = s.departments.GetByID(ctx, *student.DepartmentID); err != nil {
			return nil, fmt.Errorf("error loading department: %w", err)
		}
	}

	if snap.enrollments, err = s.students.ListEnrollments(ctx, studentID); err != nil {
		return nil, fmt.Errorf("error loading enrollments: %w", err)
	}
	if snap.courses, err = s.courses.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("error loading courses: %w", err)
	}
	snap.byID = make(map[int64]*models.Course, len(snap.courses))
	for _, c := range snap.courses {
		snap.byID[c.ID] = c
	}

	if student.ParcoursID != nil {
		if snap.parcours, err = s.parcours.GetByID(ctx, *student.ParcoursID); err != nil {
			return nil, fmt.Errorf("error loading parcours: %w", err)
		}
		mandatory, err := s.courses.GetByParcours(ctx, snap.parcours.ID, models.ListMandatory)
		if err != nil {
			return nil, fmt.Errorf("error loading core courses: %w", err)
		}
		onList, err := s.courses.GetByParcours(ctx, snap.parcours.ID, models.ListOnList)
		if err != nil {
			return nil, fmt.Errorf("error loading course list: %w", err)
		}
		snap.core = models.CoursesToDomain(mandatory)
		snap.onList = models.CoursesToDomain(onList)
		if snap.partition, err = enrollment.NewPartition(snap.onList); err != nil {
			return nil, fmt.Errorf("error partitioning parcours %d: %w", snap.parcours.ID, err)
		}
	}

	excluded := make(map[int64]bool, len(snap.core)+len(snap.onList))
	for _, c := range snap.core {
		excluded[c.ID] = true
	}
	for _, c := range snap.onList {
		excluded[c.ID] = true
	}
	all := models.CoursesToDomain(snap.courses)
	for _, c := range all {
		if !excluded[c.ID] {
			snap.electives = append(snap.electives, c)
		}
	}

	var mandatoryIDs, electiveIDs []int64
	taken := append([]enrollment.Course{}, snap.core...)
	chosen := make([]enrollment.Course, 0, len(snap.enrollments))
	for _, e := range snap.enrollments {
		if e.Category == models.CategoryMandatory {
			mandatoryIDs = append(mandatoryIDs, e.CourseID)
		} else {
			electiveIDs = append(electiveIDs, e.CourseID)
		}
		if c, ok := snap.byID[e.CourseID]; ok {
			chosen = append(chosen, c.ToDomain())
		}
	}
	taken = append(taken, chosen...)

	snap.state = enrollment.State{
		Mandatory: enrollment.NewIDSet(mandatoryIDs...),
		Elective:  enrollment.NewIDSet(electiveIDs...),
		ECTS:      enrollment.TotalECTS(chosen, snap.core, snap.parcours.GrantedECTS()),
		Editable:  student.Editable,
	}
	snap.compatible = ComputeCompatibility(all, taken)
	return snap, nil
}

func (s *enrollmentServiceImpl) requirementsFor(department *models.Department) enrollment.Requirements {
	code := ""
	if department != nil {
		code = department.Code
	}
	minMandatory, ects := s.requirements.Thresholds(code)
	return enrollment.Requirements{MinIndependentMandatory: minMandatory, RequiredECTS: ects}
}

func (s *enrollmentServiceImpl) overview(snap *snapshot) (*Overview, error) {
	o := &Overview{
		Student:      snap.student,
		Department:   snap.department,
		Parcours:     snap.parcours,
		Enrollments:  snap.enrollments,
		Requirements: s.requirementsFor(snap.department),
		ECTS:         snap.state.ECTS,
	}
	if snap.partition == nil {
		return o, nil
	}

	options := enrollment.BuildOptions(snap.partition, snap.electives, snap.state, snap.compatible)
	completion, err := enrollment.Evaluate(snap.partition, snap.state, o.Requirements)
	if err != nil {
		return nil, err
	}
	o.Options = &options
	o.Completion = &completion
	return o, nil
}

func (s *enrollmentServiceImpl) Partition(ctx context.Context, parcoursID int64) (*PartitionView, error) {
	p, err := s.parcours.GetByID(ctx, parcoursID)
	if err != nil {
		return nil, fmt.Errorf("error loading parcours: %w", err)
	}
	onList, err := s.courses.GetByParcours(ctx, parcoursID, models.ListOnList)
	if err != nil {
		return nil, fmt.Errorf("error loading course list: %w", err)
	}
	partition, err := enrollment.NewPartition(models.CoursesToDomain(onList))
	if err != nil {
		return nil, fmt.Errorf("error partitioning parcours %d: %w", parcoursID, err)
	}
	return &PartitionView{
		Parcours:    p,
		Independent: partition.Independent(),
		Groups:      partition.Groups(),
	}, nil
}

func (s *enrollmentServiceImpl) Overview(ctx context.Context, studentID int64) (*Overview, error) {
	snap, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.overview(snap)
}

func (s *enrollmentServiceImpl) UpdateChoice(ctx context.Context, studentID, courseID int64, category models.EnrollmentCategory, enrolled bool) (*Overview, error) {
	snap, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !snap.state.Editable {
		return nil, apperrors.ErrEnrollmentLocked
	}

	chosen := snap.state.Chosen()
	if enrolled {
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidCategory, category)
		}
		if _, ok := snap.byID[courseID]; !ok {
			return nil, apperrors.ErrCourseNotFound
		}
		if err := snap.checkCategory(courseID, category); err != nil {
			return nil, err
		}
		switch current := snap.categoryOf(courseID); {
		case current == "":
			if !enrollment.IsOfferable(courseID, snap.compatible, chosen) {
				return nil, apperrors.ErrCourseNotOfferable
			}
			if err := s.saveChoice(ctx, studentID, courseID, category); err != nil {
				return nil, err
			}
			s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).
				Str("category", string(category)).Msg("Course chosen")
		case current != category:
			if err := s.saveChoice(ctx, studentID, courseID, category); err != nil {
				return nil, err
			}
			s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).
				Str("from", string(current)).Str("to", string(category)).Msg("Course recategorised")
		}
	} else if chosen.Has(courseID) {
		if err := s.students.RemoveEnrollment(ctx, studentID, courseID); err != nil {
			return nil, fmt.Errorf("error removing course %d: %w", courseID, err)
		}
		s.logger.Info().Int64("studentID", studentID).Int64("courseID", courseID).Msg("Course dropped")
	}

	return s.Overview(ctx, studentID)
}

func (s *enrollmentServiceImpl) saveChoice(ctx context.Context, studentID, courseID int64, category models.EnrollmentCategory) error {
	err := s.students.AddEnrollment(ctx, &models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		Category:  category,
	})
	if err != nil {
		return fmt.Errorf("error saving course %d: %w", courseID, err)
	}
	return nil
}

// checkCategory allows mandatory only for on-list courses and elective or
// visiting only for courses outside the parcours; core courses are never chosen
func (snap *snapshot) checkCategory(courseID int64, category models.EnrollmentCategory) error {
	for _, c := range snap.core {
		if c.ID == courseID {
			return fmt.Errorf("%w: course %d is a core course", apperrors.ErrCategoryMismatch, courseID)
		}
	}
	_, onList := snap.partitionIndex()[courseID]
	if category == models.CategoryMandatory {
		if snap.partition == nil {
			return apperrors.ErrNoParcours
		}
		if !onList {
			return apperrors.ErrCourseNotInParcours
		}
		return nil
	}
	if onList {
		return fmt.Errorf("%w: course %d is on the parcours list and only counts as %s",
			apperrors.ErrCategoryMismatch, courseID, models.CategoryMandatory)
	}
	return nil
}

// categoryOf returns the category a course is chosen under, empty if it is not chosen
func (snap *snapshot) categoryOf(courseID int64) models.EnrollmentCategory {
	for _, e := range snap.enrollments {
		if e.CourseID == courseID {
			return e.Category
		}
	}
	return ""
}

func (snap *snapshot) partitionIndex() map[int64]struct{} {
	idx := make(map[int64]struct{}, len(snap.onList))
	for _, c := range snap.onList {
		idx[c.ID] = struct{}{}
	}
	return idx
}

func (s *enrollmentServiceImpl) SetDepartment(ctx context.Context, studentID, departmentID int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error loading student: %w", err)
	}
	if !student.Editable {
		return nil, apperrors.ErrEnrollmentLocked
	}
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		return nil, fmt.Errorf("error loading department: %w", err)
	}
	if err := s.students.SetDepartment(ctx, studentID, departmentID); err != nil {
		return nil, fmt.Errorf("error setting department: %w", err)
	}

	s.logger.Info().Int64("studentID", studentID).Int64("departmentID", departmentID).Msg("Department set, parcours cleared")
	return s.students.GetByID(ctx, studentID)
}

func (s *enrollmentServiceImpl) SetParcours(ctx context.Context, studentID, parcoursID int64) (*models.Student, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error loading student: %w", err)
	}
	if !student.Editable {
		return nil, apperrors.ErrEnrollmentLocked
	}
	p, err := s.parcours.GetByID(ctx, parcoursID)
	if err != nil {
		return nil, fmt.Errorf("error loading parcours: %w", err)
	}
	if student.DepartmentID == nil || *student.DepartmentID != p.DepartmentID {
		return nil, apperrors.NewBadRequestError("parcours does not belong to the student's department")
	}
	if err := s.students.SetParcours(ctx, studentID, parcoursID); err != nil {
		return nil, fmt.Errorf("error setting parcours: %w", err)
	}

	s.logger.Info().Int64("studentID", studentID).Int64("parcoursID", parcoursID).Msg("Parcours set, enrollments cleared")
	return s.students.GetByID(ctx, studentID)
}

func (s *enrollmentServiceImpl) Available(ctx context.Context, studentID int64) ([]*models.Course, error) {
	snap, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	available := make([]*models.Course, 0, snap.compatible.Len())
	for _, c := range snap.courses {
		if snap.compatible.Has(c.ID) {
			available = append(available, c)
		}
	}
	return available, nil
}

func (s *enrollmentServiceImpl) Electives(ctx context.Context, studentID int64) ([]*models.Course, error) {
	snap, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	electives := make([]*models.Course, 0, len(snap.electives))
	for _, c := range snap.electives {
		electives = append(electives, snap.byID[c.ID])
	}
	return electives, nil
}

func (s *enrollmentServiceImpl) Submit(ctx context.Context, studentID int64, comment string) (*Submission, error) {
	snap, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !snap.state.Editable {
		return nil, apperrors.ErrEnrollmentLocked
	}
	if snap.partition == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCannotEvaluate, apperrors.ErrNoParcours)
	}

	completion, err := enrollment.Evaluate(snap.partition, snap.state, s.requirementsFor(snap.department))
	if err != nil {
		return nil, err
	}

	var stored *string
	if comment != "" {
		stored = &comment
	}
	sub := &Submission{
		ConfirmationID: s.newID(),
		SubmittedAt:    s.now().UTC(),
		Completion:     completion,
	}
	if snap.department != nil {
		sub.EndComment = snap.department.EndComment
	}

	if err := s.students.Confirm(ctx, studentID, stored, sub.ConfirmationID, sub.SubmittedAt); err != nil {
		if errors.Is(err, apperrors.ErrEnrollmentLocked) {
			return nil, err
		}
		return nil, fmt.Errorf("error confirming selection: %w", err)
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Str("confirmationID", sub.ConfirmationID.String()).
		Bool("complete", completion.Submittable()).
		Msg("Selection submitted")
	return sub, nil
}
