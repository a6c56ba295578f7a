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

// CourseService defines the interface for course operations
type CourseService interface {
	CreateCourse(ctx context.Context, input CourseInput) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, input CourseInput) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	ListCourses(ctx context.Context, order repositories.CourseOrder) ([]*models.Course, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(store repositories.Store, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		store:  store,
		logger: logger,
	}
}

// validateCourse checks the fields of a course about to be written
func validateCourse(course *models.Course) error {
	if course.Name == "" {
		return apperrors.NewValidationError("name", "course name is required")
	}
	if len(course.Name) > validation.CourseNameMaxLength {
		return apperrors.NewValidationError("name", "course name must be at most 120 characters")
	}
	if course.DurationMonths < validation.MinDurationMonths {
		return apperrors.NewValidationError("durationMonths", "duration must be at least one month")
	}
	if course.SeatsTotal < 0 {
		return apperrors.NewValidationError("seatsTotal", "total seats cannot be negative")
	}
	if course.Description != nil && len(*course.Description) > validation.CourseDescriptionMaxLength {
		return apperrors.NewValidationError("description", "description must be at most 500 characters")
	}
	return nil
}

// CreateCourse creates a new course with no seats taken
func (s *courseServiceImpl) CreateCourse(ctx context.Context, input CourseInput) (*models.Course, error) {
	course := &models.Course{
		Name:           strings.TrimSpace(input.Name),
		DurationMonths: models.DefaultDurationMonths,
		SeatsTotal:     models.DefaultSeatsTotal,
		Description:    helpers.TrimToNil(input.Description),
	}
	if input.DurationMonths != nil {
		course.DurationMonths = *input.DurationMonths
	}
	if input.SeatsTotal != nil {
		course.SeatsTotal = *input.SeatsTotal
	}

	if err := validateCourse(course); err != nil {
		return nil, err
	}

	if err := s.store.Courses().Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Str("name", course.Name).Msg("Course created")
	return course, nil
}

// UpdateCourse changes course fields. Lowering the capacity below the seats
// already taken clamps the counter; admitted applicants keep their status.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, input CourseInput) (*models.Course, error) {
	var updated *models.Course
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		course, err := repos.Courses().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		course.Name = strings.TrimSpace(input.Name)
		if input.DurationMonths != nil {
			course.DurationMonths = *input.DurationMonths
		}
		if input.Description != nil {
			course.Description = helpers.TrimToNil(input.Description)
		}
		if input.SeatsTotal != nil {
			before := course.SeatsTaken
			if course.Resize(*input.SeatsTotal) {
				s.logger.Warn().
					Int64("courseID", id).
					Int("seatsTakenBefore", before).
					Int("seatsTotal", course.SeatsTotal).
					Msg("Seat capacity reduced below seats taken, counter clamped")
			}
		}

		if err := validateCourse(course); err != nil {
			return err
		}
		if err := repos.Courses().Update(ctx, course); err != nil {
			return err
		}
		updated = course
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", id).Msg("Course updated")
	return updated, nil
}

// DeleteCourse removes a course together with its applicants. Applicant
// rows are locked before the course row, the same order status changes use.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	var removed int
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		applicantIDs, err := repos.Applicants().LockByCourse(ctx, id)
		if err != nil {
			return err
		}
		if _, err := repos.Courses().GetByIDForUpdate(ctx, id); err != nil {
			return err
		}
		if err := repos.Courses().Delete(ctx, id); err != nil {
			return err
		}
		removed = len(applicantIDs)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("courseID", id).Int("applicantsRemoved", removed).Msg("Course deleted")
	return nil
}

// GetCourse retrieves a course by ID
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.store.Courses().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// ListCourses retrieves all courses
func (s *courseServiceImpl) ListCourses(ctx context.Context, order repositories.CourseOrder) ([]*models.Course, error) {
	courses, err := s.store.Courses().List(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, nil
}
