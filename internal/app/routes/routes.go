package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/my2a/courseselect/internal/app/controllers"
	"github.com/my2a/courseselect/internal/app/models/dto"
	"github.com/my2a/courseselect/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	catalogController *controllers.CatalogController,
	enrollmentController *controllers.EnrollmentController,
	calendarController *controllers.CalendarController,
	studentController *controllers.StudentController,
) {
	v1 := router.Group("/api/v1")

	departments := v1.Group("/departments")
	{
		departments.GET("", catalogController.GetAllDepartments)
		departments.GET("/:departmentId/parcours", catalogController.GetDepartmentParcours)
	}

	parcours := v1.Group("/parcours/:parcoursId")
	{
		parcours.GET("/courses", catalogController.GetParcoursCourses)
		parcours.GET("/partition", enrollmentController.GetParcoursPartition)
	}

	// staff
	v1.GET("/students", studentController.ListStudents)
	v1.POST("/students", middleware.ValidateRequest(&dto.RegisterStudentRequest{}), studentController.RegisterStudent)

	students := v1.Group("/students/:id")
	{
		students.PUT("/status", middleware.ValidateRequest(&dto.StudentStatusRequest{}), studentController.SetStudentStatus)

		students.PUT("/department", middleware.ValidateRequest(&dto.SetDepartmentRequest{}), enrollmentController.SetDepartment)
		students.PUT("/parcours", middleware.ValidateRequest(&dto.SetParcoursRequest{}), enrollmentController.SetParcours)

		students.GET("/enrollment", enrollmentController.GetEnrollment)
		students.PUT("/enrollment/choices", middleware.ValidateRequest(&dto.UpdateChoiceRequest{}), enrollmentController.UpdateChoice)
		students.POST("/enrollment/submit", enrollmentController.Submit)

		students.GET("/courses/available", enrollmentController.GetAvailableCourses)
		students.GET("/courses/electives", enrollmentController.GetElectiveCourses)
	}

	cal := v1.Group("/calendar")
	{
		cal.GET("", calendarController.GetCalendar)
		cal.PUT("", calendarController.SaveCalendar)
		cal.POST("/validate", calendarController.ValidateCalendar)
	}
}
