package validation

// Field limits mirrored by the column sizes of the course and applicant
// tables and by the request DTO tags.
const (
	CourseNameMaxLength        = 120
	CourseDescriptionMaxLength = 500
	MinDurationMonths          = 1

	ApplicantNameMaxLength    = 150
	ApplicantEmailMaxLength   = 120
	ApplicantPhoneMaxLength   = 20
	ApplicantRemarksMaxLength = 400
)
