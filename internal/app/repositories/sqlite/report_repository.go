package sqlite

import (
	"context"
	"fmt"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/logger"
	"gorm.io/gorm"
)

// ReportRepository runs aggregate queries over applicants
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// ApplicantCountsByCourse counts applicants per course, courses without applicants included
func (r *ReportRepository) ApplicantCountsByCourse(ctx context.Context) ([]models.CourseApplicantCount, error) {
	counts := []models.CourseApplicantCount{}
	err := r.db.WithContext(ctx).
		Table("course c").
		Select("c.id AS course_id, c.name AS course_name, COUNT(a.id) AS applicants").
		Joins("LEFT JOIN applicant a ON a.course_id = c.id").
		Group("c.id, c.name").
		Order("c.name ASC").
		Scan(&counts).Error
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course report query")
		return nil, fmt.Errorf("error querying applicants by course: %w", err)
	}
	return counts, nil
}

// ApplicantCountsByStatus counts applicants per status present in the table
func (r *ReportRepository) ApplicantCountsByStatus(ctx context.Context) ([]models.StatusCount, error) {
	counts := []models.StatusCount{}
	err := r.db.WithContext(ctx).
		Table("applicant").
		Select("status, COUNT(*) AS applicants").
		Group("status").
		Order("status ASC").
		Scan(&counts).Error
	if err != nil {
		logger.Error().Err(err).Msg("Error executing status report query")
		return nil, fmt.Errorf("error querying applicants by status: %w", err)
	}
	return counts, nil
}
