package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	DepartmentID int64  `validate:"required,gt=0"`
	Category     string `validate:"oneof=mandatory elective"`
}

func TestHandleValidationError(t *testing.T) {
	err := validator.New().Struct(sample{Category: "other"})
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)
	fields, ok := detail.Details.([]ErrorDetail)
	require.True(t, ok)
	require.Len(t, fields, 2)
	assert.Equal(t, "departmentID", fields[0].Field)
	assert.Equal(t, "departmentID is required", fields[0].Message)
	assert.Equal(t, "category must be one of: mandatory elective", fields[1].Message)
	assert.Empty(t, detail.Field)

	plain := HandleValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, "unexpected EOF", plain.Details)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(NewErrorDetail(ErrorCodeEnrollmentLocked, "locked").WithField("studentId"))
	assert.False(t, resp.Success)
	assert.Equal(t, "studentId", resp.Error.Field)
	assert.Equal(t, ErrorSeverityError, resp.Error.Severity)
	assert.False(t, resp.Timestamp.IsZero())
}
