package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	appMigrations "github.com/yigit/admissions/internal/app/migrations"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/config"
	"github.com/yigit/admissions/internal/db"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same
// repository code runs inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql builds statements with PostgreSQL placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// repositorySet binds every repository to one querier.
type repositorySet struct {
	courses    *CourseRepository
	applicants *ApplicantRepository
	audit      *AuditRepository
	reports    *ReportRepository
}

func newRepositorySet(q querier) *repositorySet {
	return &repositorySet{
		courses:    NewCourseRepository(q),
		applicants: NewApplicantRepository(q),
		audit:      NewAuditRepository(q),
		reports:    NewReportRepository(q),
	}
}

func (r *repositorySet) Courses() repositories.CourseRepository       { return r.courses }
func (r *repositorySet) Applicants() repositories.ApplicantRepository { return r.applicants }
func (r *repositorySet) Audit() repositories.AuditRepository          { return r.audit }
func (r *repositorySet) Reports() repositories.ReportRepository       { return r.reports }

// Store is the PostgreSQL implementation of repositories.Store.
type Store struct {
	*repositorySet
	db *db.PostgresDB
}

var _ repositories.Store = (*Store)(nil)

// NewStore wraps an open connection pool.
func NewStore(database *db.PostgresDB) *Store {
	return &Store{
		repositorySet: newRepositorySet(database.Pool),
		db:            database,
	}
}

// Open connects using the application config.
func Open(cfg *config.Config) (*Store, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}
	return NewStore(database), nil
}

// WithinTransaction runs fn with repositories bound to a single transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn repositories.TxFunc) error {
	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, newRepositorySet(tx))
	})
}

// Migrate applies pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	if err := appMigrations.NewMigrator(s.db.Pool).Migrate(ctx); err != nil {
		return fmt.Errorf("database migrations failed: %w", err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Pool.Ping(ctx)
}

// Driver names the backend.
func (s *Store) Driver() string {
	return config.DriverPostgres
}

// Close releases the pool.
func (s *Store) Close() {
	s.db.Close()
}
