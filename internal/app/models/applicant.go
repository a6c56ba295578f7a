package models

import "time"

// ApplicantStatus is the admission lifecycle state of an applicant.
type ApplicantStatus string

// Status constants
const (
	StatusApplied     ApplicantStatus = "Applied"
	StatusShortlisted ApplicantStatus = "Shortlisted"
	StatusAdmitted    ApplicantStatus = "Admitted"
	StatusRejected    ApplicantStatus = "Rejected"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []ApplicantStatus{StatusApplied, StatusShortlisted, StatusAdmitted, StatusRejected}

// IsValid reports whether s is one of the known statuses.
func (s ApplicantStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseApplicantStatus accepts only the exact spelling of a known status.
func ParseApplicantStatus(raw string) (ApplicantStatus, bool) {
	status := ApplicantStatus(raw)
	return status, status.IsValid()
}

// Applicant is a person applying to exactly one course.
type Applicant struct {
	ID              int64           `json:"id" db:"id"`
	FullName        string          `json:"fullName" db:"full_name"`
	Email           string          `json:"email" db:"email"`
	Phone           *string         `json:"phone,omitempty" db:"phone"`
	DOB             *string         `json:"dob,omitempty" db:"dob"`
	ApplicationDate time.Time       `json:"applicationDate" db:"application_date"`
	CourseID        int64           `json:"courseId" db:"course_id"`
	Status          ApplicantStatus `json:"status" db:"status"`
	Remarks         *string         `json:"remarks,omitempty" db:"remarks"`

	// Populated by read queries that join the course.
	CourseName string `json:"courseName,omitempty"`
}
