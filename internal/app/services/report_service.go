package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/repositories"
)

// ReportService defines the interface for read-only reports
type ReportService interface {
	ApplicantCountsByCourse(ctx context.Context) ([]models.CourseApplicantCount, error)
	// ApplicantCountsByStatus returns one row per known status in lifecycle
	// order, zero counts included.
	ApplicantCountsByStatus(ctx context.Context) ([]models.StatusCount, error)
	Summary(ctx context.Context) (*models.Summary, error)
}

// reportServiceImpl implements ReportService
type reportServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(store repositories.Store, logger zerolog.Logger) ReportService {
	return &reportServiceImpl{
		store:  store,
		logger: logger,
	}
}

// ApplicantCountsByCourse counts applicants of every course, ordered by course name
func (s *reportServiceImpl) ApplicantCountsByCourse(ctx context.Context) ([]models.CourseApplicantCount, error) {
	counts, err := s.store.Reports().ApplicantCountsByCourse(ctx)
	if err != nil {
		return nil, fmt.Errorf("error building course report: %w", err)
	}
	return counts, nil
}

// ApplicantCountsByStatus counts applicants per status
func (s *reportServiceImpl) ApplicantCountsByStatus(ctx context.Context) ([]models.StatusCount, error) {
	rows, err := s.store.Reports().ApplicantCountsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("error building status report: %w", err)
	}

	byStatus := make(map[models.ApplicantStatus]int64, len(rows))
	for _, row := range rows {
		if !row.Status.IsValid() {
			s.logger.Warn().Str("status", string(row.Status)).Int64("applicants", row.Applicants).Msg("Unknown status in applicant table")
			continue
		}
		byStatus[row.Status] = row.Applicants
	}

	counts := make([]models.StatusCount, 0, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		counts = append(counts, models.StatusCount{Status: status, Applicants: byStatus[status]})
	}
	return counts, nil
}

// Summary returns every course by name together with the applicant total
func (s *reportServiceImpl) Summary(ctx context.Context) (*models.Summary, error) {
	courses, err := s.store.Courses().List(ctx, repositories.CourseOrderByName)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	total, err := s.store.Applicants().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting applicants: %w", err)
	}
	return &models.Summary{Courses: courses, TotalApplicants: total}, nil
}
