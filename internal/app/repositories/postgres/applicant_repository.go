package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/dberrors"
	"github.com/yigit/admissions/internal/pkg/logger"
)

const applicantEmailConstraint = "uq_applicant_email"

var applicantColumns = []string{
	"a.id", "a.full_name", "a.email", "a.phone", "a.dob",
	"a.application_date", "a.course_id", "a.status", "a.remarks",
}

// ApplicantRepository handles applicant database operations
type ApplicantRepository struct {
	db querier
}

// NewApplicantRepository creates a new ApplicantRepository
func NewApplicantRepository(db querier) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// scanApplicant scans the applicant columns, followed by the course name when withCourse is set.
func scanApplicant(row pgx.Row, withCourse bool) (*models.Applicant, error) {
	a := &models.Applicant{}
	dest := []any{
		&a.ID,
		&a.FullName,
		&a.Email,
		&a.Phone,
		&a.DOB,
		&a.ApplicationDate,
		&a.CourseID,
		&a.Status,
		&a.Remarks,
	}
	if withCourse {
		dest = append(dest, &a.CourseName)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return a, nil
}

func selectApplicantsWithCourse() squirrel.SelectBuilder {
	return psql.Select(append(applicantColumns, "c.name")...).
		From("applicant a").
		Join("course c ON c.id = a.course_id")
}

// Create creates a new applicant
func (r *ApplicantRepository) Create(ctx context.Context, applicant *models.Applicant) error {
	sql, args, err := psql.Insert("applicant").
		Columns("full_name", "email", "phone", "dob", "application_date", "course_id", "status", "remarks").
		Values(
			applicant.FullName,
			applicant.Email,
			applicant.Phone,
			applicant.DOB,
			applicant.ApplicationDate,
			applicant.CourseID,
			applicant.Status,
			applicant.Remarks,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create applicant query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&applicant.ID); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, applicantEmailConstraint):
			return apperrors.ErrDuplicateEmail
		case dberrors.IsForeignKeyViolation(err):
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("email", applicant.Email).Msg("Error executing create applicant query")
		return fmt.Errorf("error creating applicant: %w", err)
	}

	return nil
}

// GetByID retrieves an applicant with its course name
func (r *ApplicantRepository) GetByID(ctx context.Context, id int64) (*models.Applicant, error) {
	sql, args, err := selectApplicantsWithCourse().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get applicant query: %w", err)
	}

	applicant, err := scanApplicant(r.db.QueryRow(ctx, sql, args...), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicantNotFound
		}
		logger.Error().Err(err).Int64("applicantID", id).Msg("Error scanning applicant row")
		return nil, fmt.Errorf("error getting applicant by ID: %w", err)
	}

	return applicant, nil
}

// GetByIDForUpdate retrieves an applicant and locks its row
func (r *ApplicantRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Applicant, error) {
	sql, args, err := psql.Select(applicantColumns...).
		From("applicant a").
		Where(squirrel.Eq{"a.id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lock applicant query: %w", err)
	}

	applicant, err := scanApplicant(r.db.QueryRow(ctx, sql, args...), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicantNotFound
		}
		logger.Error().Err(err).Int64("applicantID", id).Msg("Error locking applicant row")
		return nil, fmt.Errorf("error locking applicant: %w", err)
	}

	return applicant, nil
}

// EmailExists checks if an applicant with this email exists
func (r *ApplicantRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applicant WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking applicant email: %w", err)
	}
	return exists, nil
}

// UpdateStatus sets the status and remarks of an applicant
func (r *ApplicantRepository) UpdateStatus(ctx context.Context, id int64, status models.ApplicantStatus, remarks *string) error {
	sql, args, err := psql.Update("applicant").
		Set("status", status).
		Set("remarks", remarks).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.ErrInvalidStatus
		}
		logger.Error().Err(err).Int64("applicantID", id).Msg("Error updating applicant status")
		return fmt.Errorf("error updating applicant status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicantNotFound
	}

	return nil
}

// Delete deletes an applicant; the delete trigger writes its audit copy
func (r *ApplicantRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM applicant WHERE id = $1`, id)
	if err != nil {
		logger.Error().Err(err).Int64("applicantID", id).Msg("Error deleting applicant")
		return fmt.Errorf("error deleting applicant: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicantNotFound
	}
	return nil
}

// LockByCourse locks all applicant rows of a course
func (r *ApplicantRepository) LockByCourse(ctx context.Context, courseID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM applicant WHERE course_id = $1 ORDER BY id FOR UPDATE`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error locking course applicants: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("error collecting course applicants: %w", err)
	}
	return ids, nil
}

// List retrieves all applicants, newest application first
func (r *ApplicantRepository) List(ctx context.Context) ([]*models.Applicant, error) {
	sql, args, err := selectApplicantsWithCourse().
		OrderBy("a.application_date DESC", "a.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applicants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list applicants query")
		return nil, fmt.Errorf("error querying applicants: %w", err)
	}
	defer rows.Close()

	applicants := []*models.Applicant{}
	for rows.Next() {
		applicant, err := scanApplicant(rows, true)
		if err != nil {
			return nil, fmt.Errorf("error scanning applicant row: %w", err)
		}
		applicants = append(applicants, applicant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applicant rows: %w", err)
	}

	return applicants, nil
}

// Count returns the number of applicants
func (r *ApplicantRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applicant`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting applicants: %w", err)
	}
	return count, nil
}
