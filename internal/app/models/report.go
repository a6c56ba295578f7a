package models

// CourseApplicantCount is one row of the applicants-per-course report.
type CourseApplicantCount struct {
	CourseID   int64  `json:"courseId"`
	CourseName string `json:"courseName"`
	Applicants int64  `json:"applicants"`
}

// StatusCount is one row of the applicants-per-status report.
type StatusCount struct {
	Status     ApplicantStatus `json:"status"`
	Applicants int64           `json:"applicants"`
}

// Summary is the dashboard view: every course by name with its seat
// availability, plus the total number of applicants.
type Summary struct {
	Courses         []*Course `json:"courses"`
	TotalApplicants int64     `json:"totalApplicants"`
}
