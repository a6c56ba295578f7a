package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/admissions/internal/app/controllers"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/app/routes"
	"github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/middleware"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCourseService struct {
	create func(input services.CourseInput) (*models.Course, error)
	update func(id int64, input services.CourseInput) (*models.Course, error)
	delete func(id int64) error
	get    func(id int64) (*models.Course, error)
	list   func(order repositories.CourseOrder) ([]*models.Course, error)
}

func (f *fakeCourseService) CreateCourse(_ context.Context, input services.CourseInput) (*models.Course, error) {
	return f.create(input)
}

func (f *fakeCourseService) UpdateCourse(_ context.Context, id int64, input services.CourseInput) (*models.Course, error) {
	return f.update(id, input)
}

func (f *fakeCourseService) DeleteCourse(_ context.Context, id int64) error {
	return f.delete(id)
}

func (f *fakeCourseService) GetCourse(_ context.Context, id int64) (*models.Course, error) {
	return f.get(id)
}

func (f *fakeCourseService) ListCourses(_ context.Context, order repositories.CourseOrder) ([]*models.Course, error) {
	return f.list(order)
}

type fakeApplicantService struct {
	create    func(input services.ApplicantInput) (*models.Applicant, error)
	setStatus func(id int64, status string, remarks *string) (*models.Applicant, error)
	delete    func(id int64) error
	get       func(id int64) (*models.Applicant, error)
	list      func() ([]*models.Applicant, error)
}

func (f *fakeApplicantService) CreateApplicant(_ context.Context, input services.ApplicantInput) (*models.Applicant, error) {
	return f.create(input)
}

func (f *fakeApplicantService) SetApplicantStatus(_ context.Context, id int64, status string, remarks *string) (*models.Applicant, error) {
	return f.setStatus(id, status, remarks)
}

func (f *fakeApplicantService) DeleteApplicant(_ context.Context, id int64) error {
	return f.delete(id)
}

func (f *fakeApplicantService) GetApplicant(_ context.Context, id int64) (*models.Applicant, error) {
	return f.get(id)
}

func (f *fakeApplicantService) ListApplicants(_ context.Context) ([]*models.Applicant, error) {
	return f.list()
}

type fakeReportService struct{}

func (fakeReportService) ApplicantCountsByCourse(context.Context) ([]models.CourseApplicantCount, error) {
	return []models.CourseApplicantCount{
		{CourseID: 2, CourseName: "Alpha", Applicants: 0},
		{CourseID: 1, CourseName: "Beta", Applicants: 3},
	}, nil
}

func (fakeReportService) ApplicantCountsByStatus(context.Context) ([]models.StatusCount, error) {
	counts := make([]models.StatusCount, 0, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		counts = append(counts, models.StatusCount{Status: s})
	}
	counts[2].Applicants = 5
	return counts, nil
}

func (fakeReportService) Summary(context.Context) (*models.Summary, error) {
	return &models.Summary{
		Courses:         []*models.Course{{ID: 1, Name: "Alpha", DurationMonths: 12, SeatsTotal: 10, SeatsTaken: 4}},
		TotalApplicants: 9,
	}, nil
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }
func (p fakePinger) Driver() string             { return "sqlite" }

type testAPI struct {
	router     *gin.Engine
	courses    *fakeCourseService
	applicants *fakeApplicantService
}

func newTestAPI(t *testing.T, pinger controllers.Pinger) *testAPI {
	t.Helper()
	api := &testAPI{
		courses:    &fakeCourseService{},
		applicants: &fakeApplicantService{},
	}
	if pinger == nil {
		pinger = fakePinger{}
	}

	api.router = gin.New()
	api.router.Use(middleware.RequestID(), middleware.Recovery())
	routes.SetupRouter(api.router, routes.Controllers{
		Course:    controllers.NewCourseController(api.courses),
		Applicant: controllers.NewApplicantController(api.applicants),
		Report:    controllers.NewReportController(fakeReportService{}),
		Health:    controllers.NewHealthController(pinger),
	})
	return api
}

type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func (api *testAPI) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestCreateCourse(t *testing.T) {
	api := newTestAPI(t, nil)
	var got services.CourseInput
	api.courses.create = func(input services.CourseInput) (*models.Course, error) {
		got = input
		return &models.Course{ID: 7, Name: input.Name, DurationMonths: 12, SeatsTotal: 30}, nil
	}

	rec, env := api.do(t, http.MethodPost, "/api/v1/courses", `{"name":"MCA","description":"two years"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Course added successfully", env.Message)
	assert.Equal(t, "MCA", got.Name)
	assert.Nil(t, got.DurationMonths)
	assert.Nil(t, got.SeatsTotal)
	require.NotNil(t, got.Description)
	assert.Equal(t, "two years", *got.Description)

	var course dto.CourseResponse
	decodeData(t, env, &course)
	assert.Equal(t, int64(7), course.ID)
	assert.Equal(t, 30, course.SeatsAvailable)
}

func TestCreateCourseRejectsInvalidBody(t *testing.T) {
	api := newTestAPI(t, nil)
	api.courses.create = func(services.CourseInput) (*models.Course, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}

	tests := []struct {
		name  string
		body  string
		code  dto.ErrorCode
		field string
	}{
		{name: "missing name", body: `{"seatsTotal":10}`, code: dto.ErrorCodeValidationFailed, field: "name"},
		{name: "negative seats", body: `{"name":"X","seatsTotal":-1}`, code: dto.ErrorCodeValidationFailed, field: "seatsTotal"},
		{name: "zero duration", body: `{"name":"X","durationMonths":0}`, code: dto.ErrorCodeValidationFailed, field: "durationMonths"},
		{name: "malformed json", body: `{"name":`, code: dto.ErrorCodeInvalidRequest},
		{name: "wrong type", body: `{"name":"X","seatsTotal":"many"}`, code: dto.ErrorCodeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(t, http.MethodPost, "/api/v1/courses", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			if tt.field != "" {
				assert.Equal(t, tt.field, env.Error.Field)
			}
		})
	}
}

func TestCreateCourseDuplicateName(t *testing.T) {
	api := newTestAPI(t, nil)
	api.courses.create = func(services.CourseInput) (*models.Course, error) {
		return nil, apperrors.ErrCourseAlreadyExists
	}

	rec, env := api.do(t, http.MethodPost, "/api/v1/courses", `{"name":"MCA"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, env.Error.Code)
}

func TestListCoursesOrder(t *testing.T) {
	api := newTestAPI(t, nil)
	var got []repositories.CourseOrder
	api.courses.list = func(order repositories.CourseOrder) ([]*models.Course, error) {
		got = append(got, order)
		return []*models.Course{{ID: 1, Name: "A", DurationMonths: 12, SeatsTotal: 2, SeatsTaken: 2}}, nil
	}

	rec, env := api.do(t, http.MethodGet, "/api/v1/courses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var courses []dto.CourseResponse
	decodeData(t, env, &courses)
	require.Len(t, courses, 1)
	assert.Equal(t, 0, courses[0].SeatsAvailable)

	rec, _ = api.do(t, http.MethodGet, "/api/v1/courses?order=name", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = api.do(t, http.MethodGet, "/api/v1/courses?order=seats", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "order", env.Error.Field)

	assert.Equal(t, []repositories.CourseOrder{repositories.CourseOrderByID, repositories.CourseOrderByName}, got)
}

func TestGetCourse(t *testing.T) {
	api := newTestAPI(t, nil)
	api.courses.get = func(id int64) (*models.Course, error) {
		if id == 1 {
			return &models.Course{ID: 1, Name: "A", DurationMonths: 12, SeatsTotal: 5, SeatsTaken: 1}, nil
		}
		return nil, apperrors.ErrCourseNotFound
	}

	rec, env := api.do(t, http.MethodGet, "/api/v1/courses/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var course dto.CourseResponse
	decodeData(t, env, &course)
	assert.Equal(t, 4, course.SeatsAvailable)

	rec, env = api.do(t, http.MethodGet, "/api/v1/courses/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)
	assert.Equal(t, "course not found", env.Error.Message)

	for _, bad := range []string{"abc", "0", "-3"} {
		rec, env = api.do(t, http.MethodGet, "/api/v1/courses/"+bad, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
		assert.Equal(t, "id", env.Error.Field, bad)
	}
}

func TestUpdateCourse(t *testing.T) {
	api := newTestAPI(t, nil)
	var gotID int64
	var got services.CourseInput
	api.courses.update = func(id int64, input services.CourseInput) (*models.Course, error) {
		gotID, got = id, input
		return &models.Course{ID: id, Name: input.Name, DurationMonths: 12, SeatsTotal: *input.SeatsTotal, SeatsTaken: *input.SeatsTotal}, nil
	}

	rec, env := api.do(t, http.MethodPut, "/api/v1/courses/3", `{"name":"A","seatsTotal":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), gotID)
	require.NotNil(t, got.SeatsTotal)
	assert.Equal(t, 2, *got.SeatsTotal)
	assert.Nil(t, got.DurationMonths)
	assert.Nil(t, got.Description)

	var course dto.CourseResponse
	decodeData(t, env, &course)
	assert.Equal(t, 2, course.SeatsTaken)
}

func TestDeleteCourse(t *testing.T) {
	api := newTestAPI(t, nil)
	api.courses.delete = func(id int64) error {
		if id == 9 {
			return apperrors.ErrCourseNotFound
		}
		return nil
	}

	rec, env := api.do(t, http.MethodDelete, "/api/v1/courses/4", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Course deleted", env.Message)

	rec, _ = api.do(t, http.MethodDelete, "/api/v1/courses/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateApplicant(t *testing.T) {
	api := newTestAPI(t, nil)
	var got services.ApplicantInput
	api.applicants.create = func(input services.ApplicantInput) (*models.Applicant, error) {
		got = input
		return &models.Applicant{
			ID:              1,
			FullName:        input.FullName,
			Email:           "alice@example.com",
			ApplicationDate: time.Date(2025, 4, 23, 12, 0, 0, 0, time.UTC),
			CourseID:        input.CourseID,
			CourseName:      "MCA",
			Status:          models.StatusApplied,
		}, nil
	}

	rec, env := api.do(t, http.MethodPost, "/api/v1/applicants",
		`{"fullName":"Alice","email":"Alice@Example.com","dob":"1999-05-23","courseId":2}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Applicant added", env.Message)
	assert.Equal(t, int64(2), got.CourseID)
	assert.Equal(t, "Alice@Example.com", got.Email)
	require.NotNil(t, got.DOB)

	var applicant dto.ApplicantResponse
	decodeData(t, env, &applicant)
	assert.Equal(t, "Applied", applicant.Status)
	assert.Equal(t, "MCA", applicant.CourseName)
}

func TestCreateApplicantErrors(t *testing.T) {
	api := newTestAPI(t, nil)
	api.applicants.create = func(input services.ApplicantInput) (*models.Applicant, error) {
		switch input.CourseID {
		case 404:
			return nil, apperrors.ErrCourseNotFound
		default:
			return nil, apperrors.ErrDuplicateEmail
		}
	}

	tests := []struct {
		name   string
		body   string
		status int
		code   dto.ErrorCode
		field  string
	}{
		{name: "bad email", body: `{"fullName":"A","email":"nope","courseId":1}`, status: http.StatusBadRequest, code: dto.ErrorCodeValidationFailed, field: "email"},
		{name: "bad dob", body: `{"fullName":"A","email":"a@b.co","dob":"23/05/1999","courseId":1}`, status: http.StatusBadRequest, code: dto.ErrorCodeValidationFailed, field: "dob"},
		{name: "missing course", body: `{"fullName":"A","email":"a@b.co"}`, status: http.StatusBadRequest, code: dto.ErrorCodeValidationFailed, field: "courseId"},
		{name: "unknown course", body: `{"fullName":"A","email":"a@b.co","courseId":404}`, status: http.StatusNotFound, code: dto.ErrorCodeResourceNotFound},
		{name: "duplicate email", body: `{"fullName":"A","email":"a@b.co","courseId":1}`, status: http.StatusConflict, code: dto.ErrorCodeDuplicateEmail, field: "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(t, http.MethodPost, "/api/v1/applicants", tt.body)
			require.Equal(t, tt.status, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
			if tt.field != "" {
				assert.Equal(t, tt.field, env.Error.Field)
			}
		})
	}
}

func TestUpdateApplicantStatus(t *testing.T) {
	api := newTestAPI(t, nil)
	type call struct {
		id      int64
		status  string
		remarks *string
	}
	var calls []call
	api.applicants.setStatus = func(id int64, status string, remarks *string) (*models.Applicant, error) {
		calls = append(calls, call{id, status, remarks})
		return &models.Applicant{ID: id, Status: models.StatusAdmitted, Remarks: remarks}, nil
	}

	rec, env := api.do(t, http.MethodPatch, "/api/v1/applicants/5/status", `{"status":"Admitted"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var applicant dto.ApplicantResponse
	decodeData(t, env, &applicant)
	assert.Equal(t, "Admitted", applicant.Status)

	rec, _ = api.do(t, http.MethodPatch, "/api/v1/applicants/5/status", `{"status":"Admitted","remarks":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, calls, 2)
	assert.Equal(t, call{5, "Admitted", nil}, calls[0])
	require.NotNil(t, calls[1].remarks)
	assert.Equal(t, "", *calls[1].remarks)
}

func TestUpdateApplicantStatusErrors(t *testing.T) {
	api := newTestAPI(t, nil)
	api.applicants.setStatus = func(id int64, status string, _ *string) (*models.Applicant, error) {
		switch {
		case id == 404:
			return nil, apperrors.ErrApplicantNotFound
		case status == "Admitted":
			return nil, apperrors.ErrNoSeatsAvailable
		default:
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, status)
		}
	}

	rec, env := api.do(t, http.MethodPatch, "/api/v1/applicants/1/status", `{"status":"Admitted"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, dto.ErrorCodeNoSeatsAvailable, env.Error.Code)

	rec, env = api.do(t, http.MethodPatch, "/api/v1/applicants/1/status", `{"status":"Enrolled"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrorCodeInvalidStatus, env.Error.Code)
	assert.Equal(t, "status", env.Error.Field)

	rec, env = api.do(t, http.MethodPatch, "/api/v1/applicants/404/status", `{"status":"Rejected"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "applicant not found", env.Error.Message)

	rec, env = api.do(t, http.MethodPatch, "/api/v1/applicants/1/status", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "status", env.Error.Field)
}

func TestListAndGetApplicants(t *testing.T) {
	api := newTestAPI(t, nil)
	api.applicants.list = func() ([]*models.Applicant, error) {
		return []*models.Applicant{{ID: 2, Status: models.StatusRejected}, {ID: 1, Status: models.StatusApplied}}, nil
	}
	api.applicants.get = func(id int64) (*models.Applicant, error) {
		return nil, apperrors.ErrApplicantNotFound
	}

	rec, env := api.do(t, http.MethodGet, "/api/v1/applicants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []dto.ApplicantResponse
	decodeData(t, env, &list)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)

	rec, _ = api.do(t, http.MethodGet, "/api/v1/applicants/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteApplicant(t *testing.T) {
	api := newTestAPI(t, nil)
	var deleted []int64
	api.applicants.delete = func(id int64) error {
		deleted = append(deleted, id)
		return nil
	}

	rec, env := api.do(t, http.MethodDelete, "/api/v1/applicants/8", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Applicant deleted", env.Message)
	assert.Equal(t, []int64{8}, deleted)
}

func TestServiceFailureIsInternalError(t *testing.T) {
	api := newTestAPI(t, nil)
	api.applicants.list = func() ([]*models.Applicant, error) {
		return nil, errors.New("connection reset")
	}

	rec, env := api.do(t, http.MethodGet, "/api/v1/applicants", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, env.Error.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestReports(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, env := api.do(t, http.MethodGet, "/api/v1/reports/applicants-by-course", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var byCourse []dto.CourseCountResponse
	decodeData(t, env, &byCourse)
	require.Len(t, byCourse, 2)
	assert.Equal(t, "Alpha", byCourse[0].CourseName)
	assert.Zero(t, byCourse[0].Applicants)

	rec, env = api.do(t, http.MethodGet, "/api/v1/reports/applicants-by-status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var byStatus []dto.StatusCountResponse
	decodeData(t, env, &byStatus)
	require.Len(t, byStatus, 4)
	assert.Equal(t, "Applied", byStatus[0].Status)
	assert.Equal(t, "Admitted", byStatus[2].Status)
	assert.Equal(t, int64(5), byStatus[2].Applicants)

	rec, env = api.do(t, http.MethodGet, "/api/v1/reports/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary dto.SummaryResponse
	decodeData(t, env, &summary)
	assert.Equal(t, int64(9), summary.TotalApplicants)
	require.Len(t, summary.Courses, 1)
	assert.Equal(t, 6, summary.Courses[0].SeatsAvailable)
}

func TestHealth(t *testing.T) {
	rec, env := newTestAPI(t, fakePinger{}).do(t, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health dto.HealthResponse
	decodeData(t, env, &health)
	assert.Equal(t, dto.HealthResponse{Status: "ok", Database: "up", Driver: "sqlite"}, health)

	rec, env = newTestAPI(t, fakePinger{err: errors.New("down")}).do(t, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.False(t, env.Success)
	decodeData(t, env, &health)
	assert.Equal(t, "down", health.Database)
}

func TestRequestIDHeader(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, _ := api.do(t, http.MethodGet, "/api/v1/reports/summary", "")
	assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/summary", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}
