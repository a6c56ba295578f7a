package postgres

import (
	"context"
	"fmt"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/logger"
)

// ReportRepository runs aggregate queries over applicants
type ReportRepository struct {
	db querier
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db querier) *ReportRepository {
	return &ReportRepository{db: db}
}

// ApplicantCountsByCourse counts applicants per course, courses without applicants included
func (r *ReportRepository) ApplicantCountsByCourse(ctx context.Context) ([]models.CourseApplicantCount, error) {
	sql, args, err := psql.Select("c.id", "c.name", "COUNT(a.id)").
		From("course c").
		LeftJoin("applicant a ON a.course_id = c.id").
		GroupBy("c.id", "c.name").
		OrderBy("c.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course report query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing course report query")
		return nil, fmt.Errorf("error querying applicants by course: %w", err)
	}
	defer rows.Close()

	counts := []models.CourseApplicantCount{}
	for rows.Next() {
		var c models.CourseApplicantCount
		if err := rows.Scan(&c.CourseID, &c.CourseName, &c.Applicants); err != nil {
			return nil, fmt.Errorf("error scanning course report row: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course report rows: %w", err)
	}
	return counts, nil
}

// ApplicantCountsByStatus counts applicants per status present in the table
func (r *ReportRepository) ApplicantCountsByStatus(ctx context.Context) ([]models.StatusCount, error) {
	sql, args, err := psql.Select("status", "COUNT(*)").
		From("applicant").
		GroupBy("status").
		OrderBy("status ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build status report query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing status report query")
		return nil, fmt.Errorf("error querying applicants by status: %w", err)
	}
	defer rows.Close()

	counts := []models.StatusCount{}
	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.Status, &c.Applicants); err != nil {
			return nil, fmt.Errorf("error scanning status report row: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status report rows: %w", err)
	}
	return counts, nil
}
