package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/edutech-cl/platform/internal/app/models/dto"
	"github.com/edutech-cl/platform/internal/pkg/apperrors"
)

func performWithError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		HandleAPIError(c, err)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation failed", err: apperrors.ErrValidationFailed, wantStatus: http.StatusBadRequest},
		{name: "bad request", err: apperrors.NewBadRequestError("no changes requested"), wantStatus: http.StatusBadRequest},
		{name: "user not found", err: apperrors.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "course not found", err: apperrors.ErrCourseNotFound, wantStatus: http.StatusNotFound},
		{name: "enrollment not found", err: apperrors.ErrEnrollmentNotFound, wantStatus: http.StatusNotFound},
		{name: "already enrolled", err: apperrors.ErrAlreadyEnrolled, wantStatus: http.StatusConflict},
		{name: "no seats available", err: apperrors.ErrNoSeatsAvailable, wantStatus: http.StatusConflict},
		{name: "duplicate run", err: apperrors.ErrRunAlreadyExists, wantStatus: http.StatusConflict},
		{name: "user has enrollments", err: apperrors.ErrUserHasEnrollments, wantStatus: http.StatusConflict},
		{name: "course has enrollments", err: apperrors.ErrCourseHasEnrollments, wantStatus: http.StatusConflict},
		{name: "invalid credentials", err: apperrors.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "permission denied", err: apperrors.ErrPermissionDenied, wantStatus: http.StatusForbidden},
		{name: "unexpected error", err: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performWithError(tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp dto.ErrorResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotNil(t, resp.Error)
		})
	}
}

func TestHandleAPIError_WrappedCustomErrorMessage(t *testing.T) {
	err := apperrors.NewCustomError(apperrors.ErrNoSeatsAvailable, "no seats available for course 5")

	w := performWithError(err)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no seats available for course 5")
}

func TestHandleAPIError_InternalDetailsHidden(t *testing.T) {
	w := performWithError(errors.New("pq: relation enrollments does not exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation enrollments")
	assert.Contains(t, w.Body.String(), "Internal server error")
}
