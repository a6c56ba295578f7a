package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/pkg/apperrors"
	"github.com/yigit/admissions/internal/pkg/dberrors"
	"github.com/yigit/admissions/internal/pkg/logger"
)

const courseNameConstraint = "uq_course_name"

var courseColumns = []string{"id", "name", "duration_months", "seats_total", "seats_taken", "description"}

// CourseRepository handles course database operations
type CourseRepository struct {
	db querier
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db querier) *CourseRepository {
	return &CourseRepository{db: db}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID,
		&course.Name,
		&course.DurationMonths,
		&course.SeatsTotal,
		&course.SeatsTaken,
		&course.Description,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := psql.Insert("course").
		Columns("name", "duration_months", "seats_total", "seats_taken", "description").
		Values(course.Name, course.DurationMonths, course.SeatsTotal, course.SeatsTaken, course.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, courseNameConstraint) {
			return apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Str("name", course.Name).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	return r.get(ctx, id, "")
}

// GetByIDForUpdate retrieves a course by ID and locks its row
func (r *CourseRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Course, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

func (r *CourseRepository) get(ctx context.Context, id int64, suffix string) (*models.Course, error) {
	builder := psql.Select(courseColumns...).
		From("course").
		Where(squirrel.Eq{"id": id})
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := psql.Update("course").
		SetMap(map[string]interface{}{
			"name":            course.Name,
			"duration_months": course.DurationMonths,
			"seats_total":     course.SeatsTotal,
			"seats_taken":     course.SeatsTaken,
			"description":     course.Description,
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, courseNameConstraint) {
			return apperrors.ErrCourseAlreadyExists
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// UpdateSeatsTaken sets the seat counter of a course
func (r *CourseRepository) UpdateSeatsTaken(ctx context.Context, id int64, seatsTaken int) error {
	sql, args, err := psql.Update("course").
		Set("seats_taken", seatsTaken).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update seats query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Int("seatsTaken", seatsTaken).Msg("Error updating seats taken")
		return fmt.Errorf("error updating seats taken: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete deletes a course by ID. Applicants go with it through ON DELETE
// CASCADE, and the delete triggers copy every removed row.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete("course").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error deleting course")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
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

	sql, args, err := psql.Select(courseColumns...).From("course").OrderBy(orderBy).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// Count returns the number of courses
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM course`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting courses: %w", err)
	}
	return count, nil
}
