package dto

import "github.com/my2a/courseselect/internal/app/models"

// CourseResponse is a course with its slot rendered for display
type CourseResponse struct {
	ID          int64           `json:"id" example:"12"`
	Code        string          `json:"code" example:"MEC301"`
	Name        string          `json:"name" example:"Continuum mechanics"`
	Description *string         `json:"description,omitempty"`
	ECTS        float64         `json:"ects" example:"2.5"`
	Semester    models.Semester `json:"semester" example:"S3A"`
	Day         string          `json:"day,omitempty" example:"Tuesday"`
	Start       string          `json:"start,omitempty" example:"10:00"`
	End         string          `json:"end,omitempty" example:"12:00"`
}

// NewCourseResponse converts a stored course
func NewCourseResponse(c *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		ECTS:        c.ECTS,
		Semester:    c.Semester,
	}
	if d := c.ToDomain(); d.Slot != nil {
		resp.Day = d.Slot.Day.String()
		resp.Start = d.Slot.Start.String()
		resp.End = d.Slot.End.String()
	}
	return resp
}

// NewCourseListResponse converts a course list preserving order
func NewCourseListResponse(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}
