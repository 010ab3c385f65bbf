package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/my2a/courseselect/internal/app/models"
	"github.com/my2a/courseselect/internal/domain/calendar"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
)

// memStore is an in-memory implementation of every store interface
type memStore struct {
	departments map[int64]*models.Department
	parcours    map[int64]*models.Parcours
	courses     []*models.Course
	lists       map[int64]map[models.CourseListKind][]int64
	students    map[int64]*models.Student
	enrollments map[int64][]*models.Enrollment

	calendar   calendar.Calendar
	calSaved   time.Time
	saveCalls  int
	failOnList error
	// beforeWrite runs ahead of every guarded student write, after the
	// service has read the record
	beforeWrite func()
	nextStudent int64
}

var (
	_ CourseStore     = (*memStore)(nil)
	_ DepartmentStore = departmentView{}
	_ ParcoursStore   = parcoursView{}
	_ StudentStore    = studentView{}
	_ StudentRegistry = studentView{}
	_ CalendarStore   = calendarView{}
)

func newMemStore() *memStore {
	return &memStore{
		departments: map[int64]*models.Department{},
		parcours:    map[int64]*models.Parcours{},
		lists:       map[int64]map[models.CourseListKind][]int64{},
		students:    map[int64]*models.Student{},
		enrollments: map[int64][]*models.Enrollment{},
	}
}

func (m *memStore) addCourse(c *models.Course) *models.Course {
	m.courses = append(m.courses, c)
	return c
}

func (m *memStore) attach(parcoursID int64, kind models.CourseListKind, ids ...int64) {
	if m.lists[parcoursID] == nil {
		m.lists[parcoursID] = map[models.CourseListKind][]int64{}
	}
	m.lists[parcoursID][kind] = append(m.lists[parcoursID][kind], ids...)
}

func (m *memStore) GetAll(ctx context.Context) ([]*models.Course, error) {
	out := append([]*models.Course{}, m.courses...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *memStore) GetByParcours(ctx context.Context, parcoursID int64, kind models.CourseListKind) ([]*models.Course, error) {
	if kind == models.ListOnList && m.failOnList != nil {
		return nil, m.failOnList
	}
	out := make([]*models.Course, 0)
	for _, id := range m.lists[parcoursID][kind] {
		for _, c := range m.courses {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

// departments

type departmentView struct{ *memStore }

func (d departmentView) GetAll(ctx context.Context) ([]*models.Department, error) {
	out := make([]*models.Department, 0, len(d.departments))
	for _, dep := range d.departments {
		out = append(out, dep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (d departmentView) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	dep, ok := d.departments[id]
	if !ok {
		return nil, apperrors.ErrDepartmentNotFound
	}
	return dep, nil
}

// parcours

type parcoursView struct{ *memStore }

func (p parcoursView) GetByID(ctx context.Context, id int64) (*models.Parcours, error) {
	pc, ok := p.parcours[id]
	if !ok {
		return nil, apperrors.ErrParcoursNotFound
	}
	return pc, nil
}

func (p parcoursView) GetByDepartmentID(ctx context.Context, departmentID int64) ([]*models.Parcours, error) {
	out := make([]*models.Parcours, 0)
	for _, pc := range p.parcours {
		if pc.DepartmentID == departmentID {
			out = append(out, pc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// students

type studentView struct{ *memStore }

func (s studentView) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	st, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *st
	return &cp, nil
}

// guard mirrors the row lock the repository takes before writing
func (s studentView) guard(studentID int64) (*models.Student, error) {
	if s.beforeWrite != nil {
		s.beforeWrite()
	}
	st, ok := s.students[studentID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	if !st.Editable {
		return nil, apperrors.ErrEnrollmentLocked
	}
	return st, nil
}

func (s studentView) SetDepartment(ctx context.Context, studentID, departmentID int64) error {
	st, err := s.guard(studentID)
	if err != nil {
		return err
	}
	st.DepartmentID = &departmentID
	st.ParcoursID = nil
	return nil
}

func (s studentView) SetParcours(ctx context.Context, studentID, parcoursID int64) error {
	st, err := s.guard(studentID)
	if err != nil {
		return err
	}
	st.ParcoursID = &parcoursID
	delete(s.enrollments, studentID)
	return nil
}

func (s studentView) Confirm(ctx context.Context, studentID int64, comment *string, confirmationID uuid.UUID, at time.Time) error {
	st, ok := s.students[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	if !st.Editable {
		return apperrors.ErrEnrollmentLocked
	}
	st.Editable = false
	st.Comment = comment
	st.ConfirmationID = &confirmationID
	st.SubmittedAt = &at
	return nil
}

func (s studentView) ListEnrollments(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return append([]*models.Enrollment{}, s.enrollments[studentID]...), nil
}

func (s studentView) AddEnrollment(ctx context.Context, e *models.Enrollment) error {
	if _, err := s.guard(e.StudentID); err != nil {
		return err
	}
	for _, existing := range s.enrollments[e.StudentID] {
		if existing.CourseID == e.CourseID {
			existing.Category = e.Category
			return nil
		}
	}
	s.enrollments[e.StudentID] = append(s.enrollments[e.StudentID], e)
	return nil
}

func (s studentView) RemoveEnrollment(ctx context.Context, studentID, courseID int64) error {
	if _, err := s.guard(studentID); err != nil {
		return err
	}
	kept := s.enrollments[studentID][:0]
	for _, e := range s.enrollments[studentID] {
		if e.CourseID != courseID {
			kept = append(kept, e)
		}
	}
	s.enrollments[studentID] = kept
	return nil
}

func (s studentView) Create(ctx context.Context, st *models.Student) error {
	s.nextStudent++
	st.ID = 1000 + s.nextStudent
	cp := *st
	s.students[st.ID] = &cp
	return nil
}

func (s studentView) List(ctx context.Context, filter models.StudentFilter) ([]*models.Student, error) {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]*models.Student, 0)
	for _, st := range s.students {
		if filter.DepartmentID != nil && (st.DepartmentID == nil || *st.DepartmentID != *filter.DepartmentID) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(st.Name), query) &&
			!strings.Contains(strings.ToLower(st.Surname), query) {
			continue
		}
		cp := *st
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Surname != out[j].Surname {
			return out[i].Surname < out[j].Surname
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s studentView) SetEditable(ctx context.Context, studentID int64, editable bool) error {
	st, ok := s.students[studentID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	st.Editable = editable
	return nil
}

// calendar

type calendarView struct{ *memStore }

func (c calendarView) Get(ctx context.Context) (calendar.Calendar, time.Time, error) {
	if c.calendar == nil {
		return nil, time.Time{}, apperrors.ErrCalendarNotFound
	}
	return c.calendar.Clone(), c.calSaved, nil
}

func (c calendarView) Save(ctx context.Context, cal calendar.Calendar) (time.Time, error) {
	c.saveCalls++
	c.calendar = cal.Clone()
	c.calSaved = time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
	return c.calSaved, nil
}
