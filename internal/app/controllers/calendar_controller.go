package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/my2a/courseselect/internal/app/models/dto"
	"github.com/my2a/courseselect/internal/app/services"
	"github.com/my2a/courseselect/internal/domain/calendar"
	"github.com/my2a/courseselect/internal/middleware"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
)

// CalendarController handles the academic calendar
type CalendarController struct {
	calendarService services.CalendarService
}

// NewCalendarController creates a new CalendarController
func NewCalendarController(calendarService services.CalendarService) *CalendarController {
	return &CalendarController{
		calendarService: calendarService,
	}
}

func reportResponse(r *services.CalendarReport) dto.CalendarResponse {
	return dto.NewCalendarResponse(r.Calendar, r.Violations, r.UpdatedAt, r.Saved)
}

// bindCalendar reads a CalendarRequest body and parses its dates
func (c *CalendarController) bindCalendar(ctx *gin.Context) (calendar.Calendar, bool) {
	var req dto.CalendarRequest
	if !bindJSON(ctx, &req) {
		return nil, false
	}
	cal, err := calendar.Parse(req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return cal, true
}

// GetCalendar retrieves the academic calendar
// @Summary Get the academic calendar
// @Description Retrieves the stored academic calendar with its current violations
// @Tags calendar
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CalendarResponse} "Calendar retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar [get]
func (c *CalendarController) GetCalendar(ctx *gin.Context) {
	report, err := c.calendarService.Get(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      reportResponse(report),
		Timestamp: time.Now(),
	})
}

// ValidateCalendar checks a calendar without storing it
// @Summary Validate an academic calendar
// @Description Checks the ordering and weekday rules of a calendar without saving it
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body dto.CalendarRequest true "Calendar dates keyed by milestone"
// @Success 200 {object} dto.APIResponse{data=dto.CalendarResponse} "Calendar checked"
// @Failure 400 {object} dto.ErrorResponse "Unknown key or malformed date"
// @Router /calendar/validate [post]
func (c *CalendarController) ValidateCalendar(ctx *gin.Context) {
	cal, ok := c.bindCalendar(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      reportResponse(c.calendarService.Validate(cal)),
		Timestamp: time.Now(),
	})
}

// SaveCalendar replaces the academic calendar
// @Summary Save the academic calendar
// @Description Stores the calendar. Violations are returned alongside the saved calendar, or refuse the save when strict saving is enabled.
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body dto.CalendarRequest true "Calendar dates keyed by milestone"
// @Success 200 {object} dto.APIResponse{data=dto.CalendarResponse} "Calendar saved"
// @Failure 400 {object} dto.ErrorResponse "Unknown key or malformed date"
// @Failure 422 {object} dto.APIResponse{data=dto.CalendarResponse} "Calendar refused because of violations"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendar [put]
func (c *CalendarController) SaveCalendar(ctx *gin.Context) {
	cal, ok := c.bindCalendar(ctx)
	if !ok {
		return
	}

	report, err := c.calendarService.Save(ctx, cal)
	if err != nil {
		if errors.Is(err, apperrors.ErrCalendarInvalid) && report != nil {
			status, detail := middleware.ResolveError(err)
			ctx.JSON(status, dto.APIResponse{
				Success:   false,
				Data:      reportResponse(report),
				Error:     detail,
				Timestamp: time.Now(),
			})
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Calendar saved"
	if !report.Valid() {
		message = "Calendar saved with violations"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reportResponse(report), message))
}
