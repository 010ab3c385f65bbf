package models

import (
	"time"

	"github.com/google/uuid"
)

// Student holds the enrollment-relevant part of a student record
type Student struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Surname      string  `json:"surname" db:"surname"`
	DepartmentID *int64  `json:"departmentId,omitempty" db:"department_id"`
	ParcoursID   *int64  `json:"parcoursId,omitempty" db:"parcours_id"`
	Editable     bool    `json:"editable" db:"editable"`
	Comment      *string `json:"comment,omitempty" db:"comment"`
	// ConfirmationID and SubmittedAt are set when the selection is submitted
	ConfirmationID *uuid.UUID `json:"confirmationId,omitempty" db:"confirmation_id"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty" db:"submitted_at"`
}

// StudentFilter narrows a staff listing of students; zero fields match everyone
type StudentFilter struct {
	DepartmentID *int64
	Query        string
}
