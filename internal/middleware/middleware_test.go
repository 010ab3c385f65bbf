package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/my2a/courseselect/internal/app/models/dto"
	"github.com/my2a/courseselect/internal/domain/calendar"
	"github.com/my2a/courseselect/internal/domain/enrollment"
	"github.com/my2a/courseselect/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"student", fmt.Errorf("load: %w", apperrors.ErrStudentNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"generic not found", apperrors.NewResourceNotFoundError("gone"), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"locked", apperrors.ErrEnrollmentLocked, http.StatusConflict, dto.ErrorCodeEnrollmentLocked},
		{"clash", apperrors.ErrCourseNotOfferable, http.StatusConflict, dto.ErrorCodeCourseNotOfferable},
		{"duplicate", apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict},
		{"no parcours on submit", fmt.Errorf("%w: %w", apperrors.ErrCannotEvaluate, apperrors.ErrNoParcours), http.StatusUnprocessableEntity, dto.ErrorCodeCannotEvaluate},
		{"no parcours on choice", apperrors.ErrNoParcours, http.StatusBadRequest, dto.ErrorCodeBadRequest},
		{"engine", enrollment.ErrCannotEvaluate, http.StatusUnprocessableEntity, dto.ErrorCodeCannotEvaluate},
		{"malformed", fmt.Errorf("partition: %w", enrollment.ErrMalformedCourse), http.StatusBadRequest, dto.ErrorCodeMalformedCatalog},
		{"calendar key", calendar.ErrUnknownKey, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"category", apperrors.ErrInvalidCategory, http.StatusBadRequest, dto.ErrorCodeBadRequest},
		{"bad request", apperrors.NewBadRequestError("wrong department"), http.StatusBadRequest, dto.ErrorCodeBadRequest},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := ResolveError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
		})
	}
}

func TestResolveError_CustomDetails(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrCalendarInvalid, "Calendar refused").
		WithDetails(map[string]interface{}{"violations": 2})

	status, detail := ResolveError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Calendar refused", detail.Message)
	assert.Equal(t, map[string]interface{}{"violations": 2}, detail.Details)

	_, detail = ResolveError(fmt.Errorf("boom"))
	assert.Nil(t, detail.Details)
}

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) { HandleAPIError(c, apperrors.ErrEnrollmentLocked) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	var body dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, dto.ErrorCodeEnrollmentLocked, body.Error.Code)
}

type submitBody struct {
	Comment string `json:"comment" binding:"max=5"`
}

func TestValidateRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/", ValidateRequest(&submitBody{}), func(c *gin.Context) {
		body, ok := ValidatedBody[submitBody](c)
		require.True(t, ok)
		c.String(http.StatusOK, body.Comment)
	})

	post := func(payload string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"comment":"ok"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	assert.Equal(t, http.StatusBadRequest, post(`{"comment":"far too long"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{`).Code)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&logs)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Contains(t, logs.String(), generated)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))
}
