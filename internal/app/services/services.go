// Package services holds the admissions business logic. Every mutating
// operation runs in one store transaction, so a failed call leaves no
// partial state behind.
package services

// CourseInput carries course fields. On create, nil numbers fall back to
// the course defaults; on update, nil fields keep the stored value.
type CourseInput struct {
	Name           string
	DurationMonths *int
	SeatsTotal     *int
	Description    *string
}

// ApplicantInput carries the fields of a new applicant.
type ApplicantInput struct {
	FullName string
	Email    string
	Phone    *string
	DOB      *string
	CourseID int64
	Remarks  *string
}
