package sqlite

import (
	"time"

	"github.com/yigit/admissions/internal/app/models"
)

// courseRecord is the gorm mapping of the course table.
type courseRecord struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	Name           string  `gorm:"type:varchar(120);not null;uniqueIndex:uq_course_name"`
	DurationMonths int     `gorm:"not null;check:chk_course_duration,duration_months > 0"`
	SeatsTotal     int     `gorm:"not null"`
	SeatsTaken     int     `gorm:"not null;check:chk_course_seats,seats_taken >= 0 AND seats_taken <= seats_total"`
	Description    *string `gorm:"type:varchar(500)"`
}

func (courseRecord) TableName() string { return "course" }

func newCourseRecord(c *models.Course) *courseRecord {
	return &courseRecord{
		ID:             c.ID,
		Name:           c.Name,
		DurationMonths: c.DurationMonths,
		SeatsTotal:     c.SeatsTotal,
		SeatsTaken:     c.SeatsTaken,
		Description:    c.Description,
	}
}

func (r *courseRecord) toModel() *models.Course {
	return &models.Course{
		ID:             r.ID,
		Name:           r.Name,
		DurationMonths: r.DurationMonths,
		SeatsTotal:     r.SeatsTotal,
		SeatsTaken:     r.SeatsTaken,
		Description:    r.Description,
	}
}

// applicantRecord is the gorm mapping of the applicant table.
type applicantRecord struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	FullName        string    `gorm:"type:varchar(150);not null"`
	Email           string    `gorm:"type:varchar(120);not null;uniqueIndex:uq_applicant_email"`
	Phone           *string   `gorm:"type:varchar(20)"`
	DOB             *string   `gorm:"column:dob;type:varchar(20)"`
	ApplicationDate time.Time `gorm:"not null;index:idx_applicant_application_date,sort:desc"`
	CourseID        int64     `gorm:"not null;index:idx_applicant_course_id"`
	Status          string    `gorm:"type:varchar(30);not null;check:chk_applicant_status,status IN ('Applied', 'Shortlisted', 'Admitted', 'Rejected')"`
	Remarks         *string   `gorm:"type:varchar(400)"`

	Course *courseRecord `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (applicantRecord) TableName() string { return "applicant" }

func newApplicantRecord(a *models.Applicant) *applicantRecord {
	return &applicantRecord{
		ID:              a.ID,
		FullName:        a.FullName,
		Email:           a.Email,
		Phone:           a.Phone,
		DOB:             a.DOB,
		ApplicationDate: a.ApplicationDate,
		CourseID:        a.CourseID,
		Status:          string(a.Status),
		Remarks:         a.Remarks,
	}
}

// applicantRow is an applicant read together with its course name.
type applicantRow struct {
	ID              int64
	FullName        string
	Email           string
	Phone           *string
	DOB             *string `gorm:"column:dob"`
	ApplicationDate time.Time
	CourseID        int64
	Status          string
	Remarks         *string
	CourseName      string
}

func (r *applicantRow) toModel() *models.Applicant {
	return &models.Applicant{
		ID:              r.ID,
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		DOB:             r.DOB,
		ApplicationDate: r.ApplicationDate,
		CourseID:        r.CourseID,
		Status:          models.ApplicantStatus(r.Status),
		Remarks:         r.Remarks,
		CourseName:      r.CourseName,
	}
}
