package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/dberrors"
	"github.com/yigit/admissions/internal/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const applicantWithCourseColumns = "a.id, a.full_name, a.email, a.phone, a.dob, a.application_date, " +
	"a.course_id, a.status, a.remarks, c.name AS course_name"

// ApplicantRepository handles applicant database operations
type ApplicantRepository struct {
	db *gorm.DB
}

// NewApplicantRepository creates a new ApplicantRepository
func NewApplicantRepository(db *gorm.DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

func (r *ApplicantRepository) withCourse(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("applicant a").
		Select(applicantWithCourseColumns).
		Joins("JOIN course c ON c.id = a.course_id")
}

// Create creates a new applicant
func (r *ApplicantRepository) Create(ctx context.Context, applicant *models.Applicant) error {
	record := newApplicantRecord(applicant)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error; err != nil {
		switch {
		case dberrors.IsSQLiteUniqueError(err, "applicant.email"):
			return apperrors.ErrDuplicateEmail
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrCourseNotFound
		case dberrors.IsCheckViolation(err):
			return apperrors.ErrInvalidStatus
		}
		logger.Error().Err(err).Str("email", applicant.Email).Msg("Error creating applicant")
		return fmt.Errorf("error creating applicant: %w", err)
	}
	applicant.ID = record.ID
	return nil
}

// GetByID retrieves an applicant with its course name
func (r *ApplicantRepository) GetByID(ctx context.Context, id int64) (*models.Applicant, error) {
	var rows []applicantRow
	if err := r.withCourse(ctx).Where("a.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		logger.Error().Err(err).Int64("applicantID", id).Msg("Error getting applicant")
		return nil, fmt.Errorf("error getting applicant by ID: %w", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrApplicantNotFound
	}
	return rows[0].toModel(), nil
}

// GetByIDForUpdate retrieves an applicant without its course name. The
// surrounding IMMEDIATE transaction already holds the database write lock.
func (r *ApplicantRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Applicant, error) {
	var record applicantRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicantNotFound
		}
		logger.Error().Err(err).Int64("applicantID", id).Msg("Error reading applicant")
		return nil, fmt.Errorf("error reading applicant: %w", err)
	}
	row := applicantRow{
		ID:              record.ID,
		FullName:        record.FullName,
		Email:           record.Email,
		Phone:           record.Phone,
		DOB:             record.DOB,
		ApplicationDate: record.ApplicationDate,
		CourseID:        record.CourseID,
		Status:          record.Status,
		Remarks:         record.Remarks,
	}
	return row.toModel(), nil
}

// EmailExists checks if an applicant with this email exists
func (r *ApplicantRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&applicantRecord{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("error checking applicant email: %w", err)
	}
	return count > 0, nil
}

// UpdateStatus sets the status and remarks of an applicant
func (r *ApplicantRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicantStatus, remarks *string) error {
	result := r.db.WithContext(ctx).Model(&applicantRecord{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":  string(status),
		"remarks": remarks,
	})
	if result.Error != nil {
		if dberrors.IsCheckViolation(result.Error) {
			return apperrors.ErrInvalidStatus
		}
		logger.Error().Err(result.Error).Int64("applicantID", id).Msg("Error updating applicant status")
		return fmt.Errorf("error updating applicant status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrApplicantNotFound
	}
	return nil
}

// Delete deletes an applicant; the delete trigger writes its audit copy
func (r *ApplicantRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&applicantRecord{}, id)
	if result.Error != nil {
		logger.Error().Err(result.Error).Int64("applicantID", id).Msg("Error deleting applicant")
		return fmt.Errorf("error deleting applicant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrApplicantNotFound
	}
	return nil
}

// LockByCourse returns the ids of a course's applicants. The database write
// lock held by the transaction covers them.
func (r *ApplicantRepository) LockByCourse(ctx context.Context, courseID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&applicantRecord{}).Where("course_id = ?", courseID).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("error reading course applicants: %w", err)
	}
	return ids, nil
}

// List retrieves all applicants, newest application first
func (r *ApplicantRepository) List(ctx context.Context) ([]*models.Applicant, error) {
	var rows []applicantRow
	if err := r.withCourse(ctx).Order("a.application_date DESC, a.id DESC").Scan(&rows).Error; err != nil {
		logger.Error().Err(err).Msg("Error listing applicants")
		return nil, fmt.Errorf("error querying applicants: %w", err)
	}

	applicants := make([]*models.Applicant, 0, len(rows))
	for i := range rows {
		applicants = append(applicants, rows[i].toModel())
	}
	return applicants, nil
}

// Count returns the number of applicants
func (r *ApplicantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&applicantRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("error counting applicants: %w", err)
	}
	return count, nil
}
