package models

// Semester is the teaching period of a course. Half semesters nest inside
// their full semester (S3A and S3B inside S3).
type Semester string

const (
	SemesterS3  Semester = "S3"
	SemesterS4  Semester = "S4"
	SemesterS3A Semester = "S3A"
	SemesterS3B Semester = "S3B"
	SemesterS4A Semester = "S4A"
	SemesterS4B Semester = "S4B"
)

// EnrollmentCategory tells how a chosen course counts
type EnrollmentCategory string

const (
	CategoryMandatory EnrollmentCategory = "mandatory"
	CategoryElective  EnrollmentCategory = "elective"
	CategoryVisiting  EnrollmentCategory = "visiting"
)

// Valid reports whether c is a known category
func (c EnrollmentCategory) Valid() bool {
	switch c {
	case CategoryMandatory, CategoryElective, CategoryVisiting:
		return true
	}
	return false
}

// CourseListKind selects one of the two course relations of a parcours
type CourseListKind string

const (
	// ListMandatory holds the core courses every student of the parcours takes
	ListMandatory CourseListKind = "mandatory"
	// ListOnList holds the courses the student picks from
	ListOnList CourseListKind = "on_list"
)
