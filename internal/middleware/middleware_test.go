package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.APIResponse {
	t.Helper()
	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
		field  string
	}{
		{"no seats", apperrors.ErrNoSeatsAvailable, http.StatusConflict, dto.ErrorCodeNoSeatsAvailable, ""},
		{"invalid status", fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, "Enrolled"), http.StatusBadRequest, dto.ErrorCodeInvalidStatus, "status"},
		{"duplicate email", apperrors.ErrDuplicateEmail, http.StatusConflict, dto.ErrorCodeDuplicateEmail, "email"},
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, ""},
		{"applicant not found wrapped", fmt.Errorf("loading: %w", apperrors.ErrApplicantNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, ""},
		{"course exists", apperrors.ErrCourseAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, ""},
		{"validation", apperrors.NewValidationError("name", "course name is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "name"},
		{"bad request", apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			HandleAPIError(c, tt.err)

			assert.True(t, c.IsAborted())
			require.Equal(t, tt.status, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.field, resp.Error.Field)
		})
	}
}

func TestHandleAPIErrorHidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	HandleAPIError(c, errors.New("pq: password authentication failed"))

	assert.NotContains(t, rec.Body.String(), "password")
}

type sampleRequest struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"omitempty,email"`
	Day   string `json:"day" validate:"omitempty,datetime=2006-01-02"`
}

func bindRouter(got *sampleRequest) *gin.Engine {
	r := gin.New()
	r.POST("/bind", func(c *gin.Context) {
		if !BindAndValidate(c, got) {
			return
		}
		c.Status(http.StatusNoContent)
	})
	return r
}

func postJSON(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/bind", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestBindAndValidateAcceptsValidBody(t *testing.T) {
	var got sampleRequest
	rec := postJSON(bindRouter(&got), `{"name":"abc","email":"a@b.co","day":"2024-02-29"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, sampleRequest{Name: "abc", Email: "a@b.co", Day: "2024-02-29"}, got)
}

func TestBindAndValidateReportsFields(t *testing.T) {
	var got sampleRequest
	rec := postJSON(bindRouter(&got), `{"name":"toolong","email":"nope","day":"2024-13-01"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "name", resp.Error.Field)
	assert.Equal(t, "name must be at most 5", resp.Error.Message)

	details, ok := resp.Error.Details.([]interface{})
	require.True(t, ok)
	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.(map[string]interface{})["field"].(string))
	}
	assert.Equal(t, []string{"name", "email", "day"}, fields)
}

func TestBindAndValidateRejectsMalformedJSON(t *testing.T) {
	var got sampleRequest
	rec := postJSON(bindRouter(&got), `{"name":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, dto.ErrorCodeInvalidRequest, resp.Error.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, seen)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "upstream-1")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-1", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "upstream-1", seen)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/panic", func(*gin.Context) { panic("kaboom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, dto.ErrorCodeInternalServer, resp.Error.Code)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), RequestLogger(zerolog.New(&buf)))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	req := httptest.NewRequest(http.MethodGet, "/missing?x=1", nil)
	req.Header.Set(RequestIDHeader, "rid-7")
	r.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/missing?x=1", line["path"])
	assert.Equal(t, float64(404), line["status"])
	assert.Equal(t, "rid-7", line["requestID"])
}
