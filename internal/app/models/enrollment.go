package models

import "time"

// Enrollment links a student to a chosen course
type Enrollment struct {
	StudentID int64              `json:"studentId" db:"student_id"`
	CourseID  int64              `json:"courseId" db:"course_id"`
	Category  EnrollmentCategory `json:"category" db:"category"`
	CreatedAt time.Time          `json:"createdAt" db:"created_at"`
}
