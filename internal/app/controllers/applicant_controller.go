package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/models/dto"
	"github.com/yigit/admissions/internal/app/services"
	"github.com/yigit/admissions/internal/middleware"
)

// ApplicantController handles applicant endpoints
type ApplicantController struct {
	applicantService services.ApplicantService
}

// NewApplicantController creates a new ApplicantController
func NewApplicantController(applicantService services.ApplicantService) *ApplicantController {
	return &ApplicantController{
		applicantService: applicantService,
	}
}

// GetAllApplicants lists applicants
// @Summary List applicants
// @Description Lists all applicants, newest application first
// @Tags applicants
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ApplicantResponse} "Applicants retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applicants [get]
func (c *ApplicantController) GetAllApplicants(ctx *gin.Context) {
	applicants, err := c.applicantService.ListApplicants(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewApplicantResponses(applicants), ""))
}

// GetApplicantByID retrieves an applicant
// @Summary Get applicant by ID
// @Tags applicants
// @Produce json
// @Param id path int true "Applicant ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicantResponse} "Applicant retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid applicant ID"
// @Failure 404 {object} dto.ErrorResponse "Applicant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applicants/{id} [get]
func (c *ApplicantController) GetApplicantByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	applicant, err := c.applicantService.GetApplicant(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewApplicantResponse(applicant), ""))
}

// CreateApplicant registers an applicant
// @Summary Register an applicant
// @Description Registers an applicant for a course in status Applied. Emails are stored lower-cased and must be unique.
// @Tags applicants
// @Accept json
// @Produce json
// @Param request body dto.CreateApplicantRequest true "Applicant information"
// @Success 201 {object} dto.APIResponse{data=dto.ApplicantResponse} "Applicant added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applicants [post]
func (c *ApplicantController) CreateApplicant(ctx *gin.Context) {
	var req dto.CreateApplicantRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	applicant, err := c.applicantService.CreateApplicant(ctx, services.ApplicantInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		DOB:      req.DOB,
		CourseID: req.CourseID,
		Remarks:  req.Remarks,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewApplicantResponse(applicant), "Applicant added"))
}

// UpdateApplicantStatus changes the status of an applicant
// @Summary Update applicant status
// @Description Moves an applicant to a new status. Admitting takes a seat of the course and fails when none is left; leaving Admitted frees the seat.
// @Tags applicants
// @Accept json
// @Produce json
// @Param id path int true "Applicant ID"
// @Param request body dto.UpdateStatusRequest true "New status and optional remarks"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicantResponse} "Applicant status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Applicant not found"
// @Failure 409 {object} dto.ErrorResponse "No seats available"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applicants/{id}/status [patch]
func (c *ApplicantController) UpdateApplicantStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateStatusRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	applicant, err := c.applicantService.SetApplicantStatus(ctx, id, req.Status, req.Remarks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewApplicantResponse(applicant), "Applicant status updated"))
}

// DeleteApplicant deletes an applicant
// @Summary Delete an applicant
// @Description Deletes an applicant, freeing its seat when admitted. The removed row is copied to the audit table.
// @Tags applicants
// @Produce json
// @Param id path int true "Applicant ID"
// @Success 200 {object} dto.APIResponse "Applicant deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid applicant ID"
// @Failure 404 {object} dto.ErrorResponse "Applicant not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /applicants/{id} [delete]
func (c *ApplicantController) DeleteApplicant(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.applicantService.DeleteApplicant(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Applicant deleted"))
}
