package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/my2a/courseselect/internal/app/models"
	"github.com/my2a/courseselect/internal/config"
	"github.com/my2a/courseselect/internal/domain/enrollment"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gccID      = int64(1)
	imiID      = int64(2)
	parcoursID = int64(10)
	studentID  = int64(100)
)

var fixedConfirmation = uuid.MustParse("6f1c2a8e-3b7d-4c5e-9a10-2b3c4d5e6f70")

func course(id int64, code string, sem models.Semester, day time.Weekday, startH, endH int, ects float64) *models.Course {
	d := int16(day)
	start, end := int32(startH*60), int32(endH*60)
	return &models.Course{ID: id, DepartmentID: gccID, Code: code, Name: code, Semester: sem,
		ECTS: ects, Day: &d, StartMinute: &start, EndMinute: &end}
}

// fixture: A1/A2 share Tuesday 10:00, B1 and C1 are independent, CORE is the
// core course and E1 clashes with it, E2 is untimed
func newFixture() *memStore {
	m := newMemStore()
	m.departments[gccID] = &models.Department{ID: gccID, Code: "GCC", Name: "Civil engineering", EndComment: "This action is final."}
	m.departments[imiID] = &models.Department{ID: imiID, Code: "IMI", Name: "Applied maths"}
	m.parcours[parcoursID] = &models.Parcours{ID: parcoursID, DepartmentID: gccID, Name: "Structures",
		BaseECTS: 30, AcademicBaseECTS: 3}
	m.parcours[20] = &models.Parcours{ID: 20, DepartmentID: imiID, Name: "Data"}

	m.addCourse(course(1, "A1", models.SemesterS3, time.Tuesday, 10, 12, 2.5))
	m.addCourse(course(2, "A2", models.SemesterS3, time.Tuesday, 10, 12, 2.5))
	m.addCourse(course(3, "B1", models.SemesterS3, time.Tuesday, 14, 16, 2.5))
	m.addCourse(course(4, "C1", models.SemesterS4, time.Wednesday, 8, 10, 2.5))
	m.addCourse(course(5, "CORE", models.SemesterS3, time.Monday, 8, 12, 5))
	m.addCourse(course(6, "E1", models.SemesterS3, time.Monday, 10, 11, 2))
	m.addCourse(&models.Course{ID: 7, DepartmentID: gccID, Code: "E2", Name: "E2", Semester: models.SemesterS4, ECTS: 3})

	m.attach(parcoursID, models.ListOnList, 1, 2, 3, 4)
	m.attach(parcoursID, models.ListMandatory, 5)

	dep, pc := gccID, parcoursID
	m.students[studentID] = &models.Student{ID: studentID, Name: "Ada", Surname: "L", DepartmentID: &dep,
		ParcoursID: &pc, Editable: true}
	m.students[200] = &models.Student{ID: 200, Name: "Bo", Surname: "K", Editable: true}
	return m
}

func newEnrollmentService(m *memStore) *enrollmentServiceImpl {
	cfg := config.EnrollmentConfig{
		MinIndependentMandatory: 2,
		Departments: map[string]config.DepartmentRequirement{
			"GCC": {RequiredECTS: 48.5},
		},
	}
	svc := NewEnrollmentService(studentView{m}, departmentView{m}, parcoursView{m}, m, cfg, zerolog.Nop()).(*enrollmentServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 9, 15, 9, 30, 0, 0, time.UTC) }
	svc.newID = func() uuid.UUID { return fixedConfirmation }
	return svc
}

func optionIDs(opts []enrollment.Option) []int64 {
	ids := make([]int64, 0, len(opts))
	for _, o := range opts {
		ids = append(ids, o.Course.ID)
	}
	return ids
}

func TestEnrollmentService_OverviewInitial(t *testing.T) {
	svc := newEnrollmentService(newFixture())

	o, err := svc.Overview(context.Background(), studentID)
	require.NoError(t, err)

	assert.Equal(t, 38.0, o.ECTS, "core course plus base credits")
	assert.Equal(t, enrollment.Requirements{MinIndependentMandatory: 2, RequiredECTS: 48.5}, o.Requirements)

	require.NotNil(t, o.Options)
	assert.Equal(t, []int64{3, 4}, optionIDs(o.Options.Independent))
	require.Len(t, o.Options.Groups, 1)
	assert.Equal(t, []int64{1, 2}, optionIDs(o.Options.Groups[0].Options))
	assert.Equal(t, []int64{6, 7}, optionIDs(o.Options.Electives))
	assert.False(t, o.Options.Electives[0].Enabled, "E1 clashes with the core course")
	assert.True(t, o.Options.Electives[1].Enabled)

	require.NotNil(t, o.Completion)
	assert.True(t, o.Completion.InsufficientMandatory)
	assert.True(t, o.Completion.UnsatisfiedSlotGroup)
	assert.True(t, o.Completion.InsufficientECTS)
	assert.Len(t, o.Warnings(), 3)
}

func TestEnrollmentService_SelectionFlow(t *testing.T) {
	m := newFixture()
	svc := newEnrollmentService(m)
	ctx := context.Background()

	o, err := svc.UpdateChoice(ctx, studentID, 1, models.CategoryMandatory, true)
	require.NoError(t, err)
	group := o.Options.Groups[0].Options
	assert.True(t, group[0].Checked)
	assert.True(t, group[0].Enabled, "a chosen course stays editable")
	assert.False(t, group[1].Enabled, "A2 now clashes with A1")
	assert.False(t, o.Completion.UnsatisfiedSlotGroup)

	_, err = svc.UpdateChoice(ctx, studentID, 2, models.CategoryMandatory, true)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotOfferable)

	_, err = svc.UpdateChoice(ctx, studentID, 3, models.CategoryMandatory, true)
	require.NoError(t, err)
	o, err = svc.UpdateChoice(ctx, studentID, 4, models.CategoryMandatory, true)
	require.NoError(t, err)
	assert.Equal(t, 45.5, o.ECTS)
	assert.False(t, o.Completion.InsufficientMandatory)
	assert.True(t, o.Completion.InsufficientECTS)
	assert.False(t, o.Completion.Submittable())

	o, err = svc.UpdateChoice(ctx, studentID, 7, models.CategoryElective, true)
	require.NoError(t, err)
	assert.Equal(t, 48.5, o.ECTS)
	assert.True(t, o.Completion.Submittable(), "the ECTS threshold is inclusive")
	assert.Empty(t, o.Warnings())

	// choosing the same course again is a no-op
	o, err = svc.UpdateChoice(ctx, studentID, 7, models.CategoryElective, true)
	require.NoError(t, err)
	assert.Len(t, o.Enrollments, 4)

	o, err = svc.UpdateChoice(ctx, studentID, 1, "", false)
	require.NoError(t, err)
	assert.True(t, o.Completion.UnsatisfiedSlotGroup)
	assert.True(t, o.Options.Groups[0].Options[1].Enabled)
}

func TestEnrollmentService_UpdateChoiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		student  int64
		course   int64
		category models.EnrollmentCategory
		want     error
	}{
		{"unknown student", 999, 1, models.CategoryMandatory, apperrors.ErrStudentNotFound},
		{"unknown course", studentID, 999, models.CategoryElective, apperrors.ErrCourseNotFound},
		{"bad category", studentID, 1, "optional", apperrors.ErrInvalidCategory},
		{"mandatory outside list", studentID, 7, models.CategoryMandatory, apperrors.ErrCourseNotInParcours},
		{"clash with core course", studentID, 6, models.CategoryElective, apperrors.ErrCourseNotOfferable},
		{"elective on the list", studentID, 3, models.CategoryElective, apperrors.ErrCategoryMismatch},
		{"visiting on the list", studentID, 4, models.CategoryVisiting, apperrors.ErrCategoryMismatch},
		{"core course", studentID, 5, models.CategoryElective, apperrors.ErrCategoryMismatch},
		{"mandatory without parcours", 200, 1, models.CategoryMandatory, apperrors.ErrNoParcours},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newEnrollmentService(newFixture())
			_, err := svc.UpdateChoice(context.Background(), tt.student, tt.course, tt.category, true)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEnrollmentService_ListCourseCountsOnlyAsMandatory(t *testing.T) {
	m := newFixture()
	svc := newEnrollmentService(m)
	ctx := context.Background()

	_, err := svc.UpdateChoice(ctx, studentID, 3, models.CategoryElective, true)
	require.ErrorIs(t, err, apperrors.ErrCategoryMismatch)
	_, err = svc.UpdateChoice(ctx, studentID, 4, models.CategoryElective, true)
	require.ErrorIs(t, err, apperrors.ErrCategoryMismatch)
	assert.Empty(t, m.enrollments[studentID])

	o, err := svc.UpdateChoice(ctx, studentID, 3, models.CategoryMandatory, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), o.Options.Independent[0].Course.ID)
	assert.True(t, o.Options.Independent[0].Checked)
	assert.Equal(t, 1, o.Completion.ChosenIndependent)
}

func TestEnrollmentService_Recategorise(t *testing.T) {
	m := newFixture()
	// a choice stored under the wrong category is moved, not ignored
	m.enrollments[studentID] = []*models.Enrollment{
		{StudentID: studentID, CourseID: 3, Category: models.CategoryElective},
	}
	svc := newEnrollmentService(m)
	ctx := context.Background()

	o, err := svc.UpdateChoice(ctx, studentID, 3, models.CategoryMandatory, true)
	require.NoError(t, err)
	require.Len(t, o.Enrollments, 1)
	assert.Equal(t, models.CategoryMandatory, o.Enrollments[0].Category)
	assert.True(t, o.Options.Independent[0].Checked)
	assert.Equal(t, 1, o.Completion.ChosenIndependent)

	_, err = svc.UpdateChoice(ctx, studentID, 7, models.CategoryElective, true)
	require.NoError(t, err)
	o, err = svc.UpdateChoice(ctx, studentID, 7, models.CategoryVisiting, true)
	require.NoError(t, err)
	require.Len(t, o.Enrollments, 2)
	assert.Equal(t, models.CategoryVisiting, o.Enrollments[1].Category)
	assert.Equal(t, 43.5, o.ECTS, "recategorising keeps the credits")
}

func TestEnrollmentService_SubmitBetweenReadAndWrite(t *testing.T) {
	lockOnWrite := func(m *memStore) func() {
		return func() { m.students[studentID].Editable = false }
	}
	ctx := context.Background()

	t.Run("add", func(t *testing.T) {
		m := newFixture()
		m.beforeWrite = lockOnWrite(m)
		_, err := newEnrollmentService(m).UpdateChoice(ctx, studentID, 3, models.CategoryMandatory, true)
		assert.ErrorIs(t, err, apperrors.ErrEnrollmentLocked)
		assert.Empty(t, m.enrollments[studentID])
	})

	t.Run("remove", func(t *testing.T) {
		m := newFixture()
		m.enrollments[studentID] = []*models.Enrollment{
			{StudentID: studentID, CourseID: 3, Category: models.CategoryMandatory},
		}
		m.beforeWrite = lockOnWrite(m)
		_, err := newEnrollmentService(m).UpdateChoice(ctx, studentID, 3, "", false)
		assert.ErrorIs(t, err, apperrors.ErrEnrollmentLocked)
		assert.Len(t, m.enrollments[studentID], 1)
	})

	t.Run("parcours", func(t *testing.T) {
		m := newFixture()
		m.enrollments[studentID] = []*models.Enrollment{
			{StudentID: studentID, CourseID: 3, Category: models.CategoryMandatory},
		}
		m.beforeWrite = lockOnWrite(m)
		_, err := newEnrollmentService(m).SetParcours(ctx, studentID, parcoursID)
		assert.ErrorIs(t, err, apperrors.ErrEnrollmentLocked)
		assert.Len(t, m.enrollments[studentID], 1)
	})

	t.Run("department", func(t *testing.T) {
		m := newFixture()
		m.beforeWrite = lockOnWrite(m)
		_, err := newEnrollmentService(m).SetDepartment(ctx, studentID, imiID)
		assert.ErrorIs(t, err, apperrors.ErrEnrollmentLocked)
		assert.Equal(t, gccID, *m.students[studentID].DepartmentID)
	})
}

func TestEnrollmentService_LockedRecord(t *testing.T) {
	m := newFixture()
	m.students[studentID].Editable = false
	svc := newEnrollmentService(m)
	ctx := context.Background()

	o, err := svc.Overview(ctx, studentID)
	require.NoError(t, err)
	for _, opt := range o.Options.Independent {
		assert.False(t, opt.Enabled)
	}

	_, err = svc.UpdateChoice(ctx, studentID, 3, models.CategoryMandatory, true)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentLocked)
	_, err = svc.UpdateChoice(ctx, studentID, 3, "", false)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentLocked)
	_, err = svc.SetDepartment(ctx, studentID, imiID)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentLocked)
	_, err = svc.Submit(ctx, studentID, "")
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentLocked)
}

func TestEnrollmentService_Submit(t *testing.T) {
	m := newFixture()
	svc := newEnrollmentService(m)
	ctx := context.Background()

	_, err := svc.UpdateChoice(ctx, studentID, 3, models.CategoryMandatory, true)
	require.NoError(t, err)

	sub, err := svc.Submit(ctx, studentID, "Will take A1 next year")
	require.NoError(t, err)
	assert.Equal(t, fixedConfirmation, sub.ConfirmationID)
	assert.Equal(t, "This action is final.", sub.EndComment)
	assert.False(t, sub.Completion.Submittable(), "advisory flags never block submission")
	assert.True(t, sub.Completion.UnsatisfiedSlotGroup)

	st := m.students[studentID]
	assert.False(t, st.Editable)
	require.NotNil(t, st.Comment)
	assert.Equal(t, "Will take A1 next year", *st.Comment)
	require.NotNil(t, st.SubmittedAt)
	assert.Equal(t, time.Date(2024, 9, 15, 9, 30, 0, 0, time.UTC), *st.SubmittedAt)

	_, err = svc.Submit(ctx, studentID, "")
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentLocked)
}

func TestEnrollmentService_WithoutParcours(t *testing.T) {
	svc := newEnrollmentService(newFixture())
	ctx := context.Background()

	o, err := svc.Overview(ctx, 200)
	require.NoError(t, err)
	assert.Nil(t, o.Options)
	assert.Nil(t, o.Completion)
	assert.Empty(t, o.Warnings())
	assert.Equal(t, 0.0, o.ECTS)
	assert.Equal(t, 2, o.Requirements.MinIndependentMandatory)

	_, err = svc.Submit(ctx, 200, "")
	assert.ErrorIs(t, err, apperrors.ErrCannotEvaluate)
}

func TestEnrollmentService_MalformedCatalog(t *testing.T) {
	m := newFixture()
	bad := m.courses[2]
	end := *bad.StartMinute
	bad.EndMinute = &end

	svc := newEnrollmentService(m)
	_, err := svc.Overview(context.Background(), studentID)
	assert.ErrorIs(t, err, enrollment.ErrMalformedCourse)

	_, err = svc.Partition(context.Background(), parcoursID)
	assert.ErrorIs(t, err, enrollment.ErrMalformedCourse)
}

func TestEnrollmentService_StoreErrorIsWrapped(t *testing.T) {
	m := newFixture()
	boom := errors.New("connection reset")
	m.failOnList = boom

	_, err := newEnrollmentService(m).Overview(context.Background(), studentID)
	assert.ErrorIs(t, err, boom)
}

func TestEnrollmentService_SetDepartmentAndParcours(t *testing.T) {
	m := newFixture()
	svc := newEnrollmentService(m)
	ctx := context.Background()

	_, err := svc.UpdateChoice(ctx, studentID, 3, models.CategoryMandatory, true)
	require.NoError(t, err)

	_, err = svc.SetParcours(ctx, studentID, 20)
	var custom *apperrors.CustomError
	require.ErrorAs(t, err, &custom)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	st, err := svc.SetParcours(ctx, studentID, parcoursID)
	require.NoError(t, err)
	assert.Equal(t, parcoursID, *st.ParcoursID)
	assert.Empty(t, m.enrollments[studentID], "changing parcours drops every choice")

	st, err = svc.SetDepartment(ctx, studentID, imiID)
	require.NoError(t, err)
	assert.Equal(t, imiID, *st.DepartmentID)
	assert.Nil(t, st.ParcoursID, "changing department clears the parcours")

	_, err = svc.SetDepartment(ctx, studentID, 999)
	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
	_, err = svc.SetParcours(ctx, studentID, 999)
	assert.ErrorIs(t, err, apperrors.ErrParcoursNotFound)

	st, err = svc.SetParcours(ctx, studentID, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), *st.ParcoursID)
}

func TestEnrollmentService_AvailableAndElectives(t *testing.T) {
	svc := newEnrollmentService(newFixture())
	ctx := context.Background()

	available, err := svc.Available(ctx, studentID)
	require.NoError(t, err)
	codes := make([]string, 0, len(available))
	for _, c := range available {
		codes = append(codes, c.Code)
	}
	assert.Equal(t, []string{"A1", "A2", "B1", "C1", "CORE", "E2"}, codes)

	electives, err := svc.Electives(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, electives, 2)
	assert.Equal(t, "E1", electives[0].Code)
	assert.Equal(t, "E2", electives[1].Code)
}

func TestEnrollmentService_Partition(t *testing.T) {
	svc := newEnrollmentService(newFixture())

	view, err := svc.Partition(context.Background(), parcoursID)
	require.NoError(t, err)
	assert.Equal(t, "Structures", view.Parcours.Name)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, enrollment.SlotKey{Day: time.Tuesday, Start: enrollment.Clock(600)}, view.Groups[0].Key())
	assert.Len(t, view.Independent, 2)

	_, err = svc.Partition(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrParcoursNotFound)
}
