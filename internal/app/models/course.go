package models

import (
	"time"

	"github.com/my2a/courseselect/internal/domain/enrollment"
)

// Course represents a course as stored. Day, StartMinute and EndMinute are all
// set or all nil; Day runs from 1 (Monday) to 5 (Friday).
type Course struct {
	ID           int64    `json:"id" db:"id"`
	DepartmentID int64    `json:"departmentId" db:"department_id"`
	Code         string   `json:"code" db:"code"`
	Name         string   `json:"name" db:"name"`
	Description  *string  `json:"description,omitempty" db:"description"`
	ECTS         float64  `json:"ects" db:"ects"`
	Semester     Semester `json:"semester" db:"semester"`
	Day          *int16   `json:"day,omitempty" db:"day"`
	StartMinute  *int32   `json:"startMinute,omitempty" db:"start_minute"`
	EndMinute    *int32   `json:"endMinute,omitempty" db:"end_minute"`
}

// ToDomain converts the row into an engine course
func (c *Course) ToDomain() enrollment.Course {
	out := enrollment.Course{
		ID:       c.ID,
		Code:     c.Code,
		Name:     c.Name,
		ECTS:     c.ECTS,
		Semester: string(c.Semester),
	}
	if c.Day != nil && c.StartMinute != nil && c.EndMinute != nil {
		out.Slot = &enrollment.Slot{
			Day:   time.Weekday(*c.Day),
			Start: enrollment.Clock(*c.StartMinute),
			End:   enrollment.Clock(*c.EndMinute),
		}
	}
	return out
}

// CoursesToDomain converts a list preserving order
func CoursesToDomain(courses []*Course) []enrollment.Course {
	out := make([]enrollment.Course, 0, len(courses))
	for _, c := range courses {
		out = append(out, c.ToDomain())
	}
	return out
}
