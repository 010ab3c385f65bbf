package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/my2a/courseselect/internal/app/models"
	"github.com/my2a/courseselect/internal/app/models/dto"
	"github.com/my2a/courseselect/internal/app/services"
	"github.com/my2a/courseselect/internal/middleware"
)

// StudentController serves the staff view of student records
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// ListStudents lists and searches students
// @Summary List students
// @Description Lists students ordered by surname, optionally of one department and matching a name or surname fragment
// @Tags students
// @Produce json
// @Param departmentId query int false "Department ID" Format(int64) minimum(1)
// @Param q query string false "Name or surname fragment, case insensitive"
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	filter := models.StudentFilter{Query: ctx.Query("q")}
	if raw := ctx.Query("departmentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid Department ID")
			errorDetail = errorDetail.WithDetails("Department ID must be a positive number").WithField("departmentId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.DepartmentID = &id
	}

	students, err := c.studentService.List(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      students,
		Timestamp: time.Now(),
	})
}

// RegisterStudent creates an editable student record
// @Summary Register a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Student registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) RegisterStudent(ctx *gin.Context) {
	req, ok := requestBody[dto.RegisterStudentRequest](ctx)
	if !ok {
		return
	}

	student, err := c.studentService.Register(ctx, req.Name, req.Surname, req.DepartmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student, "Student registered"))
}

// SetStudentStatus locks or reopens a student's selection
// @Summary Lock or unlock a selection
// @Description Setting editable to true reopens a submitted selection; false locks it without a submission
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.StudentStatusRequest true "Status"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/status [put]
func (c *StudentController) SetStudentStatus(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id", "Student")
	if !ok {
		return
	}
	req, ok := requestBody[dto.StudentStatusRequest](ctx)
	if !ok {
		return
	}

	student, err := c.studentService.SetEditable(ctx, studentID, *req.Editable)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, "Status updated"))
}
