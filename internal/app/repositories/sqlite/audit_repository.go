package sqlite

import (
	"context"
	"fmt"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/logger"
	"gorm.io/gorm"
)

var auditStatements = []string{
	`CREATE TABLE IF NOT EXISTS deleted_applicants (
		backup_id        INTEGER PRIMARY KEY AUTOINCREMENT,
		applicant_id     INTEGER,
		full_name        TEXT,
		email            TEXT,
		phone            TEXT,
		dob              TEXT,
		application_date DATETIME,
		course_id        INTEGER,
		status           TEXT,
		remarks          TEXT,
		deleted_at       DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TRIGGER IF NOT EXISTS trg_backup_applicant_delete
	AFTER DELETE ON applicant
	FOR EACH ROW
	BEGIN
		INSERT INTO deleted_applicants (
			applicant_id, full_name, email, phone, dob,
			application_date, course_id, status, remarks, deleted_at
		) VALUES (
			OLD.id, OLD.full_name, OLD.email, OLD.phone, OLD.dob,
			OLD.application_date, OLD.course_id, OLD.status, OLD.remarks, CURRENT_TIMESTAMP
		);
	END`,
	`CREATE TABLE IF NOT EXISTS deleted_courses (
		backup_id        INTEGER PRIMARY KEY AUTOINCREMENT,
		course_id        INTEGER,
		name             TEXT,
		duration_months  INTEGER,
		seats_total      INTEGER,
		seats_taken      INTEGER,
		description      TEXT,
		deleted_at       DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TRIGGER IF NOT EXISTS trg_backup_course_delete
	AFTER DELETE ON course
	FOR EACH ROW
	BEGIN
		INSERT INTO deleted_courses (
			course_id, name, duration_months, seats_total, seats_taken, description, deleted_at
		) VALUES (
			OLD.id, OLD.name, OLD.duration_months, OLD.seats_total, OLD.seats_taken, OLD.description, CURRENT_TIMESTAMP
		);
	END`,
}

// AuditRepository manages the delete-audit tables and triggers
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureInfrastructure creates the shadow tables and delete triggers. Every
// statement is IF NOT EXISTS, so repeated calls change nothing.
func (r *AuditRepository) EnsureInfrastructure(ctx context.Context) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range auditStatements {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error creating audit infrastructure")
		return fmt.Errorf("error creating audit infrastructure: %w", err)
	}

	logger.Info().Msg("Audit tables and delete triggers are in place")
	return nil
}

// ListDeletedApplicants returns audit copies of deleted applicants, oldest first
func (r *AuditRepository) ListDeletedApplicants(ctx context.Context) ([]*models.DeletedApplicant, error) {
	result := []*models.DeletedApplicant{}
	if err := r.db.WithContext(ctx).Table("deleted_applicants").Order("backup_id").Find(&result).Error; err != nil {
		return nil, fmt.Errorf("error querying deleted applicants: %w", err)
	}
	return result, nil
}

// ListDeletedCourses returns audit copies of deleted courses, oldest first
func (r *AuditRepository) ListDeletedCourses(ctx context.Context) ([]*models.DeletedCourse, error) {
	result := []*models.DeletedCourse{}
	if err := r.db.WithContext(ctx).Table("deleted_courses").Order("backup_id").Find(&result).Error; err != nil {
		return nil, fmt.Errorf("error querying deleted courses: %w", err)
	}
	return result, nil
}
