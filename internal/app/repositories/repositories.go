package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	DepartmentRepository *DepartmentRepository
	ParcoursRepository   *ParcoursRepository
	CourseRepository     *CourseRepository
	StudentRepository    *StudentRepository
	CalendarRepository   *CalendarRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		DepartmentRepository: NewDepartmentRepository(db),
		ParcoursRepository:   NewParcoursRepository(db),
		CourseRepository:     NewCourseRepository(db),
		StudentRepository:    NewStudentRepository(db),
		CalendarRepository:   NewCalendarRepository(db),
	}
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
