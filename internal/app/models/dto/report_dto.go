package dto

import "github.com/yigit/admissions/internal/app/models"

// CourseCountResponse is one row of the applicants-per-course report
type CourseCountResponse struct {
	CourseID   int64  `json:"courseId" example:"1"`
	CourseName string `json:"courseName" example:"MCA - Computer Applications"`
	Applicants int64  `json:"applicants" example:"42"`
}

// StatusCountResponse is one row of the applicants-per-status report
type StatusCountResponse struct {
	Status     string `json:"status" example:"Admitted"`
	Applicants int64  `json:"applicants" example:"7"`
}

// SummaryResponse is the dashboard overview
type SummaryResponse struct {
	Courses         []CourseResponse `json:"courses"`
	TotalApplicants int64            `json:"totalApplicants" example:"128"`
}

// NewCourseCountResponses converts course report rows
func NewCourseCountResponses(rows []models.CourseApplicantCount) []CourseCountResponse {
	result := make([]CourseCountResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, CourseCountResponse(row))
	}
	return result
}

// NewStatusCountResponses converts status report rows
func NewStatusCountResponses(rows []models.StatusCount) []StatusCountResponse {
	result := make([]StatusCountResponse, 0, len(rows))
	for _, row := range rows {
		result = append(result, StatusCountResponse{Status: string(row.Status), Applicants: row.Applicants})
	}
	return result
}

// NewSummaryResponse converts the dashboard summary
func NewSummaryResponse(summary *models.Summary) SummaryResponse {
	return SummaryResponse{
		Courses:         NewCourseResponses(summary.Courses),
		TotalApplicants: summary.TotalApplicants,
	}
}
