package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/my2a/courseselect/internal/app/models/dto"
	"github.com/my2a/courseselect/internal/middleware"
)

// parseIDParam reads a positive int64 path parameter, writing a 400 response when it is invalid
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID")
		errorDetail = errorDetail.WithDetails(label + " ID must be a positive number").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// bindJSON binds the request body, writing a 400 response on failure
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// requestBody returns the body checked by middleware.ValidateRequest, binding
// it here when the route was registered without the validator
func requestBody[T any](ctx *gin.Context) (*T, bool) {
	if body, ok := middleware.ValidatedBody[T](ctx); ok {
		return body, true
	}
	var body T
	if !bindJSON(ctx, &body) {
		return nil, false
	}
	return &body, true
}
