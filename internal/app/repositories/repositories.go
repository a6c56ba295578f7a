package repositories

import (
	"context"

	"github.com/yigit/admissions/internal/app/models"
)

// CourseOrder selects the ordering of course listings.
type CourseOrder int

const (
	// CourseOrderByID lists courses in creation order.
	CourseOrderByID CourseOrder = iota
	// CourseOrderByName lists courses alphabetically.
	CourseOrderByName
)

// CourseRepository handles course rows.
type CourseRepository interface {
	// Create inserts the course and sets its ID.
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	// GetByIDForUpdate reads the course and locks its row until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Course, error)
	// Update writes every mutable column, seats_taken included.
	Update(ctx context.Context, course *models.Course) error
	UpdateSeatsTaken(ctx context.Context, id int64, seatsTaken int) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, order CourseOrder) ([]*models.Course, error)
	Count(ctx context.Context) (int64, error)
}

// ApplicantRepository handles applicant rows.
type ApplicantRepository interface {
	// Create inserts the applicant and sets its ID.
	Create(ctx context.Context, applicant *models.Applicant) error
	// GetByID returns the applicant with its course name.
	GetByID(ctx context.Context, id int64) (*models.Applicant, error)
	// GetByIDForUpdate reads the applicant and locks its row until the
	// surrounding transaction ends. CourseName is not populated.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Applicant, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// UpdateStatus sets status and remarks together; a nil remarks stores NULL.
	UpdateStatus(ctx context.Context, id int64, status models.ApplicantStatus, remarks *string) error
	Delete(ctx context.Context, id int64) error
	// LockByCourse locks every applicant row of a course and returns their ids.
	LockByCourse(ctx context.Context, courseID int64) ([]int64, error)
	// List returns all applicants, newest application first.
	List(ctx context.Context) ([]*models.Applicant, error)
	Count(ctx context.Context) (int64, error)
}

// AuditRepository manages the delete-audit shadow tables and their triggers.
// Rows are only ever written by the triggers.
type AuditRepository interface {
	// EnsureInfrastructure creates the shadow tables and delete triggers.
	// Calling it again is a no-op.
	EnsureInfrastructure(ctx context.Context) error
	ListDeletedApplicants(ctx context.Context) ([]*models.DeletedApplicant, error)
	ListDeletedCourses(ctx context.Context) ([]*models.DeletedCourse, error)
}

// ReportRepository runs aggregate queries.
type ReportRepository interface {
	// ApplicantCountsByCourse returns one row per course, including courses
	// without applicants, ordered by course name.
	ApplicantCountsByCourse(ctx context.Context) ([]models.CourseApplicantCount, error)
	// ApplicantCountsByStatus returns one row per status present in the table.
	ApplicantCountsByStatus(ctx context.Context) ([]models.StatusCount, error)
}

// Repositories groups repositories bound to the same database handle, either
// the pool or a single transaction.
type Repositories interface {
	Courses() CourseRepository
	Applicants() ApplicantRepository
	Audit() AuditRepository
	Reports() ReportRepository
}

// TxFunc is run by Store.WithinTransaction with repositories bound to the transaction.
type TxFunc func(ctx context.Context, repos Repositories) error

// Store is the persistence boundary the services depend on.
type Store interface {
	Repositories

	// WithinTransaction runs fn in one transaction, committing when it
	// returns nil and rolling back otherwise.
	WithinTransaction(ctx context.Context, fn TxFunc) error
	// Migrate brings the live schema up to date.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Driver() string
	Close()
}
