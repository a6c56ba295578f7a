package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/helpers"
	"github.com/yigit/admissions/internal/pkg/validation"
)

// ApplicantService defines the interface for applicant operations
type ApplicantService interface {
	CreateApplicant(ctx context.Context, input ApplicantInput) (*models.Applicant, error)
	// SetApplicantStatus moves an applicant to a new status and keeps the
	// course seat counter in step. A nil remarks keeps the stored remarks.
	SetApplicantStatus(ctx context.Context, id int64, status string, remarks *string) (*models.Applicant, error)
	DeleteApplicant(ctx context.Context, id int64) error
	GetApplicant(ctx context.Context, id int64) (*models.Applicant, error)
	ListApplicants(ctx context.Context) ([]*models.Applicant, error)
}

// applicantServiceImpl implements ApplicantService
type applicantServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewApplicantService creates a new ApplicantService
func NewApplicantService(store repositories.Store, logger zerolog.Logger) ApplicantService {
	return &applicantServiceImpl{
		store:  store,
		logger: logger,
	}
}

func validateApplicant(applicant *models.Applicant) error {
	if applicant.FullName == "" {
		return apperrors.NewValidationError("fullName", "full name is required")
	}
	if len(applicant.FullName) > validation.ApplicantNameMaxLength {
		return apperrors.NewValidationError("fullName", "full name must be at most 150 characters")
	}
	if applicant.Email == "" {
		return apperrors.NewValidationError("email", "email is required")
	}
	if len(applicant.Email) > validation.ApplicantEmailMaxLength {
		return apperrors.NewValidationError("email", "email must be at most 120 characters")
	}
	if applicant.Phone != nil && len(*applicant.Phone) > validation.ApplicantPhoneMaxLength {
		return apperrors.NewValidationError("phone", "phone must be at most 20 characters")
	}
	if applicant.DOB != nil && !helpers.IsDate(*applicant.DOB) {
		return apperrors.NewValidationError("dob", "date of birth must be formatted as YYYY-MM-DD")
	}
	if applicant.CourseID <= 0 {
		return apperrors.NewValidationError("courseId", "course is required")
	}
	if applicant.Remarks != nil && len(*applicant.Remarks) > validation.ApplicantRemarksMaxLength {
		return apperrors.NewValidationError("remarks", "remarks must be at most 400 characters")
	}
	return nil
}

// CreateApplicant registers an applicant in status Applied
func (s *applicantServiceImpl) CreateApplicant(ctx context.Context, input ApplicantInput) (*models.Applicant, error) {
	applicant := &models.Applicant{
		FullName:        strings.TrimSpace(input.FullName),
		Email:           helpers.NormalizeEmail(input.Email),
		Phone:           helpers.TrimToNil(input.Phone),
		DOB:             helpers.TrimToNil(input.DOB),
		ApplicationDate: helpers.NowUTC(),
		CourseID:        input.CourseID,
		Status:          models.StatusApplied,
		Remarks:         helpers.TrimToNil(input.Remarks),
	}
	if err := validateApplicant(applicant); err != nil {
		return nil, err
	}

	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		course, err := repos.Courses().GetByID(ctx, applicant.CourseID)
		if err != nil {
			return err
		}

		exists, err := repos.Applicants().EmailExists(ctx, applicant.Email)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrDuplicateEmail
		}

		if err := repos.Applicants().Create(ctx, applicant); err != nil {
			return err
		}
		applicant.CourseName = course.Name
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicantID", applicant.ID).
		Int64("courseID", applicant.CourseID).
		Msg("Applicant created")
	return applicant, nil
}

// SetApplicantStatus changes the status of an applicant. The applicant row
// is locked first, then its course, and the seat counter, status and
// remarks are written in the same transaction. A missing applicant is
// reported before an unknown status.
func (s *applicantServiceImpl) SetApplicantStatus(ctx context.Context, id int64, rawStatus string, remarks *string) (*models.Applicant, error) {
	if remarks != nil && len(strings.TrimSpace(*remarks)) > validation.ApplicantRemarksMaxLength {
		return nil, apperrors.NewValidationError("remarks", "remarks must be at most 400 characters")
	}

	var result *models.Applicant
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		applicant, err := repos.Applicants().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		status, ok := models.ParseApplicantStatus(rawStatus)
		if !ok {
			return fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, rawStatus)
		}
		course, err := repos.Courses().GetByIDForUpdate(ctx, applicant.CourseID)
		if err != nil {
			return err
		}

		before := course.SeatsTaken
		changed, err := course.ApplyTransition(applicant.Status, status)
		if err != nil {
			s.logger.Debug().
				Int64("applicantID", id).
				Int64("courseID", course.ID).
				Int("seatsTotal", course.SeatsTotal).
				Msg("Admission rejected, course is full")
			return err
		}
		if changed {
			if err := repos.Courses().UpdateSeatsTaken(ctx, course.ID, course.SeatsTaken); err != nil {
				return err
			}
			s.logger.Debug().
				Int64("courseID", course.ID).
				Int("seatsTakenBefore", before).
				Int("seatsTakenAfter", course.SeatsTaken).
				Msg("Seat counter updated")
		}

		newRemarks := applicant.Remarks
		if remarks != nil {
			newRemarks = helpers.TrimToNil(remarks)
		}
		if err := repos.Applicants().UpdateStatus(ctx, id, status, newRemarks); err != nil {
			return err
		}

		result, err = repos.Applicants().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("applicantID", id).
		Str("status", string(result.Status)).
		Msg("Applicant status updated")
	return result, nil
}

// DeleteApplicant removes an applicant, freeing its seat when it was admitted
func (s *applicantServiceImpl) DeleteApplicant(ctx context.Context, id int64) error {
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		applicant, err := repos.Applicants().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if applicant.Status == models.StatusAdmitted {
			course, err := repos.Courses().GetByIDForUpdate(ctx, applicant.CourseID)
			if err != nil {
				return err
			}
			course.Release()
			if err := repos.Courses().UpdateSeatsTaken(ctx, course.ID, course.SeatsTaken); err != nil {
				return err
			}
		}

		return repos.Applicants().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("applicantID", id).Msg("Applicant deleted")
	return nil
}

// GetApplicant retrieves an applicant with its course name
func (s *applicantServiceImpl) GetApplicant(ctx context.Context, id int64) (*models.Applicant, error) {
	return s.store.Applicants().GetByID(ctx, id)
}

// ListApplicants retrieves all applicants, newest application first
func (s *applicantServiceImpl) ListApplicants(ctx context.Context) ([]*models.Applicant, error) {
	applicants, err := s.store.Applicants().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing applicants: %w", err)
	}
	return applicants, nil
}
