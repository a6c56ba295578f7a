package models

import "time"

// DeletedApplicant is a shadow copy of an applicant row written by the
// delete trigger. Source ids are plain values, not references.
type DeletedApplicant struct {
	BackupID        int64      `json:"backupId" db:"backup_id"`
	ApplicantID     int64      `json:"applicantId" db:"applicant_id"`
	FullName        string     `json:"fullName" db:"full_name"`
	Email           string     `json:"email" db:"email"`
	Phone           *string    `json:"phone,omitempty" db:"phone"`
	DOB             *string    `json:"dob,omitempty" db:"dob"`
	ApplicationDate *time.Time `json:"applicationDate,omitempty" db:"application_date"`
	CourseID        int64      `json:"courseId" db:"course_id"`
	Status          string     `json:"status" db:"status"`
	Remarks         *string    `json:"remarks,omitempty" db:"remarks"`
	DeletedAt       time.Time  `json:"deletedAt" db:"deleted_at"`
}

// DeletedCourse is a shadow copy of a course row written by the delete trigger.
type DeletedCourse struct {
	BackupID       int64     `json:"backupId" db:"backup_id"`
	CourseID       int64     `json:"courseId" db:"course_id"`
	Name           string    `json:"name" db:"name"`
	DurationMonths int       `json:"durationMonths" db:"duration_months"`
	SeatsTotal     int       `json:"seatsTotal" db:"seats_total"`
	SeatsTaken     int       `json:"seatsTaken" db:"seats_taken"`
	Description    *string   `json:"description,omitempty" db:"description"`
	DeletedAt      time.Time `json:"deletedAt" db:"deleted_at"`
}
