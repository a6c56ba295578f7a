package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/middleware"
)

// ReportController handles report endpoints
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// ApplicantsByCourse reports applicant counts per course
// @Summary Applicants per course
// @Description Counts applicants of every course, courses without applicants included, ordered by course name
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseCountResponse}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/applicants-by-course [get]
func (c *ReportController) ApplicantsByCourse(ctx *gin.Context) {
	rows, err := c.reportService.ApplicantCountsByCourse(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseCountResponses(rows), ""))
}

// ApplicantsByStatus reports applicant counts per status
// @Summary Applicants per status
// @Description Counts applicants in each of the four statuses, zero counts included
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StatusCountResponse}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/applicants-by-status [get]
func (c *ReportController) ApplicantsByStatus(ctx *gin.Context) {
	rows, err := c.reportService.ApplicantCountsByStatus(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewStatusCountResponses(rows), ""))
}

// Summary returns the dashboard overview
// @Summary Dashboard summary
// @Description Courses by name with seat availability, plus the total number of applicants
// @Tags reports
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SummaryResponse}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/summary [get]
func (c *ReportController) Summary(ctx *gin.Context) {
	summary, err := c.reportService.Summary(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewSummaryResponse(summary), ""))
}
