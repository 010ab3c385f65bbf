package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/my2a/courseselect/internal/app/models"
	"github.com/my2a/courseselect/internal/domain/enrollment"
)

// UpdateChoiceRequest checks or unchecks a course
type UpdateChoiceRequest struct {
	CourseID int64                     `json:"courseId" binding:"required,gt=0" example:"12"`
	Category models.EnrollmentCategory `json:"category" binding:"omitempty,oneof=mandatory elective visiting" example:"mandatory"`
	Enrolled *bool                     `json:"enrolled" binding:"required" example:"true"`
}

// SetDepartmentRequest assigns a department to a student
type SetDepartmentRequest struct {
	DepartmentID int64 `json:"departmentId" binding:"required,gt=0" example:"1"`
}

// SetParcoursRequest assigns a parcours to a student
type SetParcoursRequest struct {
	ParcoursID int64 `json:"parcoursId" binding:"required,gt=0" example:"3"`
}

// SubmitRequest confirms a selection with an optional comment
type SubmitRequest struct {
	Comment string `json:"comment" binding:"max=2000" example:"I will take the S4 project next year"`
}

// SlotGroupResponse is one pick-exactly-one group
type SlotGroupResponse struct {
	Day     string              `json:"day" example:"Tuesday"`
	Start   string              `json:"start" example:"10:00"`
	Courses []enrollment.Course `json:"courses"`
}

// PartitionResponse is the constraint structure of a parcours
type PartitionResponse struct {
	Parcours    *models.Parcours    `json:"parcours"`
	Independent []enrollment.Course `json:"independent"`
	Groups      []SlotGroupResponse `json:"groups"`
}

// NewPartitionResponse renders independent courses and slot groups
func NewPartitionResponse(p *models.Parcours, independent []enrollment.Course, groups []enrollment.ConstraintGroup) PartitionResponse {
	resp := PartitionResponse{
		Parcours:    p,
		Independent: independent,
		Groups:      make([]SlotGroupResponse, 0, len(groups)),
	}
	if resp.Independent == nil {
		resp.Independent = []enrollment.Course{}
	}
	for _, g := range groups {
		resp.Groups = append(resp.Groups, SlotGroupResponse{
			Day:     g.Key().Day.String(),
			Start:   g.Key().Start.String(),
			Courses: g.Courses(),
		})
	}
	return resp
}

// EnrollmentOverviewResponse is the selection page of a student
type EnrollmentOverviewResponse struct {
	Student      *models.Student         `json:"student"`
	Department   *models.Department      `json:"department,omitempty"`
	Parcours     *models.Parcours        `json:"parcours,omitempty"`
	Enrollments  []*models.Enrollment    `json:"enrollments"`
	Requirements enrollment.Requirements `json:"requirements"`
	ECTS         float64                 `json:"ects" example:"45.5"`
	Options      *enrollment.Options     `json:"options,omitempty"`
	Completion   *enrollment.Completion  `json:"completion,omitempty"`
	Warnings     []enrollment.Warning    `json:"warnings"`
	// Complete is true when no advisory flag is raised
	Complete bool `json:"complete" example:"false"`
	// CanSubmit is true when the record is editable and the selection could be evaluated
	CanSubmit bool `json:"canSubmit" example:"true"`
}

// SubmissionResponse is returned once a selection is confirmed
type SubmissionResponse struct {
	ConfirmationID uuid.UUID             `json:"confirmationId" example:"6f1c2a8e-3b7d-4c5e-9a10-2b3c4d5e6f70"`
	SubmittedAt    time.Time             `json:"submittedAt"`
	Completion     enrollment.Completion `json:"completion"`
	Warnings       []enrollment.Warning  `json:"warnings"`
	Complete       bool                  `json:"complete" example:"true"`
	EndComment     string                `json:"endComment,omitempty"`
}
