package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/dberrors"
	"github.com/yigit/admissions/internal/pkg/logger"
	"gorm.io/gorm"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func mapCourseWriteError(err error) error {
	if dberrors.IsSQLiteUniqueError(err, "course.name") {
		return apperrors.ErrCourseAlreadyExists
	}
	return nil
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	record := newCourseRecord(course)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if mapped := mapCourseWriteError(err); mapped != nil {
			return mapped
		}
		logger.Error().Err(err).Str("name", course.Name).Msg("Error creating course")
		return fmt.Errorf("error creating course: %w", err)
	}
	course.ID = record.ID
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var record courseRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error getting course")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}
	return record.toModel(), nil
}

// GetByIDForUpdate retrieves a course by ID. SQLite has no row locks; the
// surrounding IMMEDIATE transaction already holds the database write lock.
func (r *CourseRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Course, error) {
	return r.GetByID(ctx, id)
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	result := r.db.WithContext(ctx).Model(&courseRecord{}).Where("id = ?", course.ID).Updates(map[string]interface{}{
		"name":            course.Name,
		"duration_months": course.DurationMonths,
		"seats_total":     course.SeatsTotal,
		"seats_taken":     course.SeatsTaken,
		"description":     course.Description,
	})
	if result.Error != nil {
		if mapped := mapCourseWriteError(result.Error); mapped != nil {
			return mapped
		}
		logger.Error().Err(result.Error).Int64("courseID", course.ID).Msg("Error updating course")
		return fmt.Errorf("error updating course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// UpdateSeatsTaken sets the seat counter of a course
func (r *CourseRepository) UpdateSeatsTaken(ctx context.Context, id int64, seatsTaken int) error {
	result := r.db.WithContext(ctx).Model(&courseRecord{}).Where("id = ?", id).Update("seats_taken", seatsTaken)
	if result.Error != nil {
		logger.Error().Err(result.Error).Int64("courseID", id).Int("seatsTaken", seatsTaken).Msg("Error updating seats taken")
		return fmt.Errorf("error updating seats taken: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete deletes a course by ID. Its applicants are removed by the foreign
// key cascade, and the delete triggers copy every removed row.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&courseRecord{}, id)
	if result.Error != nil {
		logger.Error().Err(result.Error).Int64("courseID", id).Msg("Error deleting course")
		return fmt.Errorf("error deleting course: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// List retrieves all courses in the requested order
func (r *CourseRepository) List(ctx context.Context, order repositories.CourseOrder) ([]*models.Course, error) {
	orderBy := "id ASC"
	if order == repositories.CourseOrderByName {
		orderBy = "name ASC"
	}

	var records []courseRecord
	if err := r.db.WithContext(ctx).Order(orderBy).Find(&records).Error; err != nil {
		logger.Error().Err(err).Msg("Error listing courses")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}

	courses := make([]*models.Course, 0, len(records))
	for i := range records {
		courses = append(courses, records[i].toModel())
	}
	return courses, nil
}

// Count returns the number of courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&courseRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}
