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

// CatalogController serves departments, parcours and course lists
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// GetAllDepartments retrieves all departments
// @Summary Get all departments
// @Description Retrieves every department with its end-of-selection comment
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Department} "Departments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [get]
func (c *CatalogController) GetAllDepartments(ctx *gin.Context) {
	departments, err := c.catalogService.ListDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      departments,
		Timestamp: time.Now(),
	})
}

// GetDepartmentParcours lists the parcours of a department
// @Summary List department parcours
// @Description Retrieves the parcours offered by a department
// @Tags catalog
// @Produce json
// @Param departmentId path int true "Department ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Parcours} "Parcours retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{departmentId}/parcours [get]
func (c *CatalogController) GetDepartmentParcours(ctx *gin.Context) {
	departmentID, ok := parseIDParam(ctx, "departmentId", "Department")
	if !ok {
		return
	}

	parcours, err := c.catalogService.ListParcours(ctx, departmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      parcours,
		Timestamp: time.Now(),
	})
}

// GetParcoursCourses lists the courses of a parcours
// @Summary List parcours courses
// @Description Retrieves the on-list (default) or mandatory core courses of a parcours in list order
// @Tags catalog
// @Produce json
// @Param parcoursId path int true "Parcours ID" Format(int64) minimum(1)
// @Param kind query string false "List kind" Enums(on_list, mandatory)
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid parcours ID or list kind"
// @Failure 404 {object} dto.ErrorResponse "Parcours not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /parcours/{parcoursId}/courses [get]
func (c *CatalogController) GetParcoursCourses(ctx *gin.Context) {
	parcoursID, ok := parseIDParam(ctx, "parcoursId", "Parcours")
	if !ok {
		return
	}

	kind := models.CourseListKind(ctx.Query("kind"))
	courses, err := c.catalogService.ListCourses(ctx, parcoursID, kind)
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
