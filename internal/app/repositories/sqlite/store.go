// Package sqlite implements repositories.Store on an embedded SQLite file
// through gorm. Transactions begin IMMEDIATE, so a transaction that reads a
// row it is about to change already holds the write lock.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/config"
	"github.com/yigit/admissions/internal/db"
	"github.com/yigit/admissions/internal/pkg/logger"
	"gorm.io/gorm"
)

type repositorySet struct {
	courses    *CourseRepository
	applicants *ApplicantRepository
	audit      *AuditRepository
	reports    *ReportRepository
}

func newRepositorySet(gdb *gorm.DB) *repositorySet {
	return &repositorySet{
		courses:    NewCourseRepository(gdb),
		applicants: NewApplicantRepository(gdb),
		audit:      NewAuditRepository(gdb),
		reports:    NewReportRepository(gdb),
	}
}

func (r *repositorySet) Courses() repositories.CourseRepository       { return r.courses }
func (r *repositorySet) Applicants() repositories.ApplicantRepository { return r.applicants }
func (r *repositorySet) Audit() repositories.AuditRepository          { return r.audit }
func (r *repositorySet) Reports() repositories.ReportRepository       { return r.reports }

// Store is the SQLite implementation of repositories.Store.
type Store struct {
	*repositorySet
	db *db.SQLiteDB
}

var _ repositories.Store = (*Store)(nil)

// NewStore wraps an open database.
func NewStore(database *db.SQLiteDB) *Store {
	return &Store{
		repositorySet: newRepositorySet(database.DB),
		db:            database,
	}
}

// Open opens the database file named by the application config.
func Open(cfg *config.Config) (*Store, error) {
	lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}
	return OpenPath(cfg.Database.Path, cfg.Database.MaxOpenConns, lifetime)
}

// OpenPath opens the database file at path.
func OpenPath(path string, maxOpenConns int, connMaxLifetime time.Duration) (*Store, error) {
	database, err := db.NewSQLiteDB(path, maxOpenConns, connMaxLifetime)
	if err != nil {
		return nil, err
	}
	return NewStore(database), nil
}

// WithinTransaction runs fn with repositories bound to a single transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn repositories.TxFunc) error {
	return s.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, newRepositorySet(tx))
	})
}

// Migrate creates the live tables with their indexes and constraints.
// Existing tables are left as they are: rebuilding a table in SQLite drops
// the triggers attached to it.
func (s *Store) Migrate(ctx context.Context) error {
	migrator := s.db.DB.WithContext(ctx).Migrator()
	for _, record := range []any{&courseRecord{}, &applicantRecord{}} {
		if migrator.HasTable(record) {
			continue
		}
		if err := migrator.CreateTable(record); err != nil {
			return fmt.Errorf("database migrations failed: %w", err)
		}
		logger.Info().Str("table", tableName(record)).Msg("Table created")
	}
	return nil
}

func tableName(record any) string {
	if t, ok := record.(interface{ TableName() string }); ok {
		return t.TableName()
	}
	return fmt.Sprintf("%T", record)
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Driver names the backend.
func (s *Store) Driver() string {
	return config.DriverSQLite
}

// Close closes the database.
func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		logger.Warn().Err(err).Msg("Error closing sqlite database")
	}
}
