package dto

import (
	"time"

	"github.com/yigit/admissions/internal/app/models"
)

// CreateApplicantRequest is the body of an applicant registration
type CreateApplicantRequest struct {
	FullName string  `json:"fullName" validate:"required,max=150" example:"Alice Kumar"`
	Email    string  `json:"email" validate:"required,email,max=120" example:"alice@example.com"`
	Phone    *string `json:"phone" validate:"omitempty,max=20" example:"9998887776"`
	DOB      *string `json:"dob" validate:"omitempty,datetime=2006-01-02" example:"1999-05-23"`
	CourseID int64   `json:"courseId" validate:"required,min=1" example:"1"`
	Remarks  *string `json:"remarks" validate:"omitempty,max=400" example:"Referred by faculty"`
}

// UpdateStatusRequest moves an applicant to a new status. Omitting remarks
// keeps the stored remarks; an empty string clears them.
type UpdateStatusRequest struct {
	Status  string  `json:"status" validate:"required" example:"Admitted" enums:"Applied,Shortlisted,Admitted,Rejected"`
	Remarks *string `json:"remarks" validate:"omitempty,max=400" example:"Scholarship candidate"`
}

// ApplicantResponse is an applicant with its course name
type ApplicantResponse struct {
	ID              int64     `json:"id" example:"1"`
	FullName        string    `json:"fullName" example:"Alice Kumar"`
	Email           string    `json:"email" example:"alice@example.com"`
	Phone           *string   `json:"phone,omitempty" example:"9998887776"`
	DOB             *string   `json:"dob,omitempty" example:"1999-05-23"`
	ApplicationDate time.Time `json:"applicationDate" example:"2025-04-23T12:01:05Z"`
	CourseID        int64     `json:"courseId" example:"1"`
	CourseName      string    `json:"courseName,omitempty" example:"MCA - Computer Applications"`
	Status          string    `json:"status" example:"Applied" enums:"Applied,Shortlisted,Admitted,Rejected"`
	Remarks         *string   `json:"remarks,omitempty" example:"Referred by faculty"`
}

// NewApplicantResponse converts an applicant model
func NewApplicantResponse(applicant *models.Applicant) ApplicantResponse {
	return ApplicantResponse{
		ID:              applicant.ID,
		FullName:        applicant.FullName,
		Email:           applicant.Email,
		Phone:           applicant.Phone,
		DOB:             applicant.DOB,
		ApplicationDate: applicant.ApplicationDate,
		CourseID:        applicant.CourseID,
		CourseName:      applicant.CourseName,
		Status:          string(applicant.Status),
		Remarks:         applicant.Remarks,
	}
}

// NewApplicantResponses converts a list of applicant models
func NewApplicantResponses(applicants []*models.Applicant) []ApplicantResponse {
	result := make([]ApplicantResponse, 0, len(applicants))
	for _, applicant := range applicants {
		result = append(result, NewApplicantResponse(applicant))
	}
	return result
}
