package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/my2a/courseselect/internal/app/models/dto"
	"github.com/my2a/courseselect/internal/domain/calendar"
	"github.com/my2a/courseselect/internal/domain/enrollment"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
	"github.com/my2a/courseselect/internal/pkg/logger"
)

type errorMapping struct {
	targets []error
	status  int
	code    dto.ErrorCode
	message string
}

// checked in order; the first mapping any target matches wins
var errorMappings = []errorMapping{
	{[]error{apperrors.ErrStudentNotFound}, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{[]error{apperrors.ErrDepartmentNotFound}, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Department not found"},
	{[]error{apperrors.ErrParcoursNotFound}, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Parcours not found"},
	{[]error{apperrors.ErrCourseNotFound}, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found"},
	{[]error{apperrors.ErrCalendarNotFound, apperrors.ErrResourceNotFound}, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{[]error{apperrors.ErrEnrollmentLocked}, http.StatusConflict, dto.ErrorCodeEnrollmentLocked, "Enrollment is no longer editable"},
	{[]error{apperrors.ErrCourseNotOfferable}, http.StatusConflict, dto.ErrorCodeCourseNotOfferable, "Course clashes with the current selection"},
	{[]error{apperrors.ErrConflict}, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	{[]error{apperrors.ErrCannotEvaluate, enrollment.ErrCannotEvaluate, enrollment.ErrCatalogMissing}, http.StatusUnprocessableEntity, dto.ErrorCodeCannotEvaluate, "Selection cannot be evaluated"},
	{[]error{apperrors.ErrCalendarInvalid}, http.StatusUnprocessableEntity, dto.ErrorCodeCalendarInvalid, "Academic calendar has violations"},

	{[]error{enrollment.ErrMalformedCourse}, http.StatusBadRequest, dto.ErrorCodeMalformedCatalog, "Course catalog is malformed"},
	{[]error{calendar.ErrUnknownKey, calendar.ErrInvalidDate}, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid calendar"},
	{[]error{apperrors.ErrInvalidCategory, apperrors.ErrCourseNotInParcours, apperrors.ErrNoParcours, apperrors.ErrCategoryMismatch}, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Invalid enrollment request"},
	{[]error{apperrors.ErrValidationFailed}, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{[]error{apperrors.ErrBadRequest}, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},
}

// HandleAPIError maps service errors to status codes and error responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ResolveError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("API error")
	}
	c.JSON(status, dto.APIResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	})
}

// ResolveError returns the status code and error detail for err
func ResolveError(err error) (int, *dto.ErrorDetail) {
	for _, m := range errorMappings {
		if !apperrors.Is(err, m.targets[0], m.targets[1:]...) {
			continue
		}
		detail := dto.NewErrorDetail(m.code, m.message)
		if m.status < http.StatusInternalServerError {
			detail = detail.WithDetails(err.Error())
		}

		var custom *apperrors.CustomError
		if errors.As(err, &custom) {
			if custom.Message != "" {
				detail.Message = custom.Message
			}
			if custom.Details != nil {
				detail = detail.WithDetails(custom.Details)
			}
		}
		return m.status, detail
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}
