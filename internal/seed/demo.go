package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appModels "github.com/my2a/courseselect/internal/app/models"
	appRepos "github.com/my2a/courseselect/internal/app/repositories"
	"github.com/rs/zerolog"
)

// DemoDepartmentCode is the department the demo parcours is created in
const DemoDepartmentCode = "GCC"

// DepartmentFinder looks a department up by code
type DepartmentFinder interface {
	GetByCode(ctx context.Context, code string) (*appModels.Department, error)
}

// ParcoursWriter creates a parcours and fills its course lists
type ParcoursWriter interface {
	GetByDepartmentID(ctx context.Context, departmentID int64) ([]*appModels.Parcours, error)
	Create(ctx context.Context, p *appModels.Parcours) error
	AttachCourse(ctx context.Context, parcoursID, courseID int64, kind appModels.CourseListKind) error
}

// CourseCreator inserts courses
type CourseCreator interface {
	Create(ctx context.Context, c *appModels.Course) error
}

// StudentCreator inserts students
type StudentCreator interface {
	Create(ctx context.Context, s *appModels.Student) error
}

// DemoRepositories groups the writers the demo data goes through
type DemoRepositories struct {
	Departments DepartmentFinder
	Parcours    ParcoursWriter
	Courses     CourseCreator
	Students    StudentCreator
}

type demoCourse struct {
	course appModels.Course
	// list is empty for courses outside the parcours
	list appModels.CourseListKind
}

func timed(day int16, startHour, endHour int32) (*int16, *int32, *int32) {
	start, end := startHour*60, endHour*60
	return &day, &start, &end
}

func demoCourses() []demoCourse {
	course := func(code, name string, sem appModels.Semester, ects float64, day int16, startHour, endHour int32) appModels.Course {
		c := appModels.Course{Code: code, Name: name, Semester: sem, ECTS: ects}
		if day != 0 {
			c.Day, c.StartMinute, c.EndMinute = timed(day, startHour, endHour)
		}
		return c
	}
	return []demoCourse{
		{course("GCC-301", "Structural mechanics", appModels.SemesterS3, 5, 1, 8, 12), appModels.ListMandatory},
		// GCC-311 and GCC-312 share a slot, so exactly one of them is picked
		{course("GCC-311", "Soil mechanics", appModels.SemesterS3, 2.5, 2, 10, 12), appModels.ListOnList},
		{course("GCC-312", "Hydraulics", appModels.SemesterS3, 2.5, 2, 10, 12), appModels.ListOnList},
		{course("GCC-321", "Reinforced concrete design", appModels.SemesterS3, 2.5, 2, 14, 16), appModels.ListOnList},
		{course("GCC-322", "Steel structures", appModels.SemesterS4, 2.5, 3, 8, 10), appModels.ListOnList},
		{course("GCC-351", "Building information modelling", appModels.SemesterS4, 3, 4, 14, 17), ""},
		{course("GCC-352", "Technical English", appModels.SemesterS4, 2, 0, 0, 0), ""},
	}
}

// CreateDemoData fills an empty GCC department with a browsable sample
func CreateDemoData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	return Demo(ctx, DemoRepositories{
		Departments: appRepos.NewDepartmentRepository(dbPool),
		Parcours:    appRepos.NewParcoursRepository(dbPool),
		Courses:     appRepos.NewCourseRepository(dbPool),
		Students:    appRepos.NewStudentRepository(dbPool),
	}, lgr)
}

// Demo creates one parcours with core, on-list and outside courses plus an
// editable student. It does nothing once the department has a parcours.
func Demo(ctx context.Context, repos DemoRepositories, lgr zerolog.Logger) error {
	dept, err := repos.Departments.GetByCode(ctx, DemoDepartmentCode)
	if err != nil {
		return fmt.Errorf("demo department %s: %w", DemoDepartmentCode, err)
	}
	existing, err := repos.Parcours.GetByDepartmentID(ctx, dept.ID)
	if err != nil {
		return fmt.Errorf("error checking demo parcours: %w", err)
	}
	if len(existing) > 0 {
		lgr.Debug().Str("code", dept.Code).Int("parcours", len(existing)).Msg("Department already has parcours, skipping demo data")
		return nil
	}

	mandatoryText := "Choose at least two of the independent courses and one course per time slot."
	parcours := &appModels.Parcours{
		DepartmentID:     dept.ID,
		Name:             "Structures and materials",
		MandatoryText:    &mandatoryText,
		BaseECTS:         30,
		AcademicBaseECTS: 3,
	}
	if err := repos.Parcours.Create(ctx, parcours); err != nil {
		return fmt.Errorf("error creating demo parcours: %w", err)
	}

	for _, dc := range demoCourses() {
		c := dc.course
		c.DepartmentID = dept.ID
		if err := repos.Courses.Create(ctx, &c); err != nil {
			return fmt.Errorf("error creating demo course %s: %w", c.Code, err)
		}
		if dc.list == "" {
			continue
		}
		if err := repos.Parcours.AttachCourse(ctx, parcours.ID, c.ID, dc.list); err != nil {
			return fmt.Errorf("error attaching demo course %s: %w", c.Code, err)
		}
	}

	student := &appModels.Student{
		Name:         "Demo",
		Surname:      "Student",
		DepartmentID: &dept.ID,
		ParcoursID:   &parcours.ID,
		Editable:     true,
	}
	if err := repos.Students.Create(ctx, student); err != nil {
		return fmt.Errorf("error creating demo student: %w", err)
	}

	lgr.Info().Int64("parcoursID", parcours.ID).Int64("studentID", student.ID).Msg("Demo data created")
	return nil
}
