package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/my2a/courseselect/internal/app/models"
	"github.com/my2a/courseselect/internal/app/models/dto"
	"github.com/my2a/courseselect/internal/app/services"
	"github.com/my2a/courseselect/internal/middleware"
)

// EnrollmentController handles the course selection of a student
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

func overviewResponse(o *services.Overview) dto.EnrollmentOverviewResponse {
	resp := dto.EnrollmentOverviewResponse{
		Student:      o.Student,
		Department:   o.Department,
		Parcours:     o.Parcours,
		Enrollments:  o.Enrollments,
		Requirements: o.Requirements,
		ECTS:         o.ECTS,
		Options:      o.Options,
		Completion:   o.Completion,
		Warnings:     o.Warnings(),
	}
	if resp.Enrollments == nil {
		resp.Enrollments = []*models.Enrollment{}
	}
	resp.Complete = o.Completion != nil && o.Completion.Submittable()
	resp.CanSubmit = o.Student != nil && o.Student.Editable && o.Completion != nil
	return resp
}

// GetParcoursPartition returns the constraint structure of a parcours
// @Summary Get parcours constraint structure
// @Description Splits the on-list courses of a parcours into independent courses and pick-exactly-one time slot groups
// @Tags enrollment
// @Produce json
// @Param parcoursId path int true "Parcours ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.PartitionResponse} "Partition computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid parcours ID or malformed course list"
// @Failure 404 {object} dto.ErrorResponse "Parcours not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /parcours/{parcoursId}/partition [get]
func (c *EnrollmentController) GetParcoursPartition(ctx *gin.Context) {
	parcoursID, ok := parseIDParam(ctx, "parcoursId", "Parcours")
	if !ok {
		return
	}

	view, err := c.enrollmentService.Partition(ctx, parcoursID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewPartitionResponse(view.Parcours, view.Independent, view.Groups),
		Timestamp: time.Now(),
	})
}

// GetEnrollment returns the selection page of a student
// @Summary Get a student's selection
// @Description Returns enrollments, ECTS total, per-course options and completion warnings
// @Tags enrollment
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentOverviewResponse} "Selection retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID or malformed course list"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/enrollment [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}

	overview, err := c.enrollmentService.Overview(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      overviewResponse(overview),
		Timestamp: time.Now(),
	})
}

// UpdateChoice checks or unchecks a course
// @Summary Check or uncheck a course
// @Description Adds a course under the given category or drops it. A course can only be added when it does not clash with the current selection.
// @Tags enrollment
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.UpdateChoiceRequest true "Choice"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentOverviewResponse} "Selection updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request, category or course outside the parcours"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Selection locked or course clashes"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/enrollment/choices [put]
func (c *EnrollmentController) UpdateChoice(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}
	req, ok := requestBody[dto.UpdateChoiceRequest](ctx)
	if !ok {
		return
	}

	overview, err := c.enrollmentService.UpdateChoice(ctx, studentID, req.CourseID, req.Category, *req.Enrolled)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      overviewResponse(overview),
		Timestamp: time.Now(),
	})
}

// SetDepartment assigns the department of a student
// @Summary Set a student's department
// @Description Assigns a department and clears the parcours
// @Tags enrollment
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.SetDepartmentRequest true "Department"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Department set"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Student or department not found"
// @Failure 409 {object} dto.ErrorResponse "Selection locked"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/department [put]
func (c *EnrollmentController) SetDepartment(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}
	req, ok := requestBody[dto.SetDepartmentRequest](ctx)
	if !ok {
		return
	}

	student, err := c.enrollmentService.SetDepartment(ctx, studentID, req.DepartmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Department set"))
}

// SetParcours assigns the parcours of a student
// @Summary Set a student's parcours
// @Description Assigns a parcours of the student's department and clears every enrollment
// @Tags enrollment
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.SetParcoursRequest true "Parcours"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Parcours set"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or parcours of another department"
// @Failure 404 {object} dto.ErrorResponse "Student or parcours not found"
// @Failure 409 {object} dto.ErrorResponse "Selection locked"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/parcours [put]
func (c *EnrollmentController) SetParcours(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}
	req, ok := requestBody[dto.SetParcoursRequest](ctx)
	if !ok {
		return
	}

	student, err := c.enrollmentService.SetParcours(ctx, studentID, req.ParcoursID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Parcours set"))
}

// GetAvailableCourses lists the courses compatible with the selection
// @Summary List compatible courses
// @Description Lists every course that does not clash with the student's current selection
// @Tags enrollment
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/courses/available [get]
func (c *EnrollmentController) GetAvailableCourses(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}

	courses, err := c.enrollmentService.Available(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewCourseListResponse(courses),
		Timestamp: time.Now(),
	})
}

// GetElectiveCourses lists the courses outside the student's parcours lists
// @Summary List elective courses
// @Description Lists every course that is neither core nor on the list of the student's parcours
// @Tags enrollment
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/courses/electives [get]
func (c *EnrollmentController) GetElectiveCourses(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}

	courses, err := c.enrollmentService.Electives(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.NewCourseListResponse(courses),
		Timestamp: time.Now(),
	})
}

// Submit confirms the selection of a student
// @Summary Submit a selection
// @Description Locks the selection and returns a confirmation ID. Completion warnings are advisory and do not block the submission.
// @Tags enrollment
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.SubmitRequest false "Optional comment"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Selection submitted"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 409 {object} dto.ErrorResponse "Selection already submitted"
// @Failure 422 {object} dto.ErrorResponse "Selection cannot be evaluated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/enrollment/submit [post]
func (c *EnrollmentController) Submit(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}
	var req dto.SubmitRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req) {
		return
	}

	sub, err := c.enrollmentService.Submit(ctx, studentID, req.Comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SubmissionResponse{
		ConfirmationID: sub.ConfirmationID,
		SubmittedAt:    sub.SubmittedAt,
		Completion:     sub.Completion,
		Warnings:       sub.Completion.Warnings(),
		Complete:       sub.Completion.Submittable(),
		EndComment:     sub.EndComment,
	}, "Selection submitted"))
}
