package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/pkg/logger"
)

// auditLockKey serialises concurrent EnsureInfrastructure calls.
const auditLockKey int64 = 0x61756469740001

const auditTablesSQL = `
CREATE TABLE IF NOT EXISTS deleted_applicants (
	backup_id        BIGSERIAL PRIMARY KEY,
	applicant_id     BIGINT,
	full_name        TEXT,
	email            TEXT,
	phone            TEXT,
	dob              TEXT,
	application_date TIMESTAMPTZ,
	course_id        BIGINT,
	status           TEXT,
	remarks          TEXT,
	deleted_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS deleted_courses (
	backup_id        BIGSERIAL PRIMARY KEY,
	course_id        BIGINT,
	name             TEXT,
	duration_months  INTEGER,
	seats_total      INTEGER,
	seats_taken      INTEGER,
	description      TEXT,
	deleted_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

const auditFunctionsSQL = `
CREATE OR REPLACE FUNCTION backup_applicant_delete() RETURNS trigger AS $$
BEGIN
	INSERT INTO deleted_applicants (
		applicant_id, full_name, email, phone, dob,
		application_date, course_id, status, remarks, deleted_at
	) VALUES (
		OLD.id, OLD.full_name, OLD.email, OLD.phone, OLD.dob,
		OLD.application_date, OLD.course_id, OLD.status, OLD.remarks, CURRENT_TIMESTAMP
	);
	RETURN OLD;
END;
$$ LANGUAGE plpgsql;

CREATE OR REPLACE FUNCTION backup_course_delete() RETURNS trigger AS $$
BEGIN
	INSERT INTO deleted_courses (
		course_id, name, duration_months, seats_total, seats_taken, description, deleted_at
	) VALUES (
		OLD.id, OLD.name, OLD.duration_months, OLD.seats_total, OLD.seats_taken, OLD.description, CURRENT_TIMESTAMP
	);
	RETURN OLD;
END;
$$ LANGUAGE plpgsql;`

const auditTriggersSQL = `
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_trigger
		WHERE tgname = 'trg_backup_applicant_delete' AND tgrelid = 'applicant'::regclass) THEN
		CREATE TRIGGER trg_backup_applicant_delete
		AFTER DELETE ON applicant
		FOR EACH ROW EXECUTE FUNCTION backup_applicant_delete();
	END IF;

	IF NOT EXISTS (SELECT 1 FROM pg_trigger
		WHERE tgname = 'trg_backup_course_delete' AND tgrelid = 'course'::regclass) THEN
		CREATE TRIGGER trg_backup_course_delete
		AFTER DELETE ON course
		FOR EACH ROW EXECUTE FUNCTION backup_course_delete();
	END IF;
END;
$$;`

// AuditRepository manages the delete-audit tables and triggers
type AuditRepository struct {
	db querier
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db querier) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureInfrastructure creates the shadow tables, trigger functions and
// triggers. Safe to call on every start.
func (r *AuditRepository) EnsureInfrastructure(ctx context.Context) error {
	beginner, ok := r.db.(interface {
		Begin(ctx context.Context) (pgx.Tx, error)
	})
	if !ok {
		return fmt.Errorf("audit setup requires a transaction-capable connection")
	}

	err := pgx.BeginFunc(ctx, beginner, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, auditLockKey); err != nil {
			return fmt.Errorf("failed to acquire audit setup lock: %w", err)
		}
		for _, stmt := range []string{auditTablesSQL, auditFunctionsSQL, auditTriggersSQL} {
			if _, err := tx.Exec(ctx, stmt); err != nil {
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
	rows, err := r.db.Query(ctx, `
		SELECT backup_id, applicant_id, full_name, email, phone, dob,
		       application_date, course_id, status, remarks, deleted_at
		FROM deleted_applicants
		ORDER BY backup_id`)
	if err != nil {
		return nil, fmt.Errorf("error querying deleted applicants: %w", err)
	}
	defer rows.Close()

	result := []*models.DeletedApplicant{}
	for rows.Next() {
		d := &models.DeletedApplicant{}
		if err := rows.Scan(
			&d.BackupID, &d.ApplicantID, &d.FullName, &d.Email, &d.Phone, &d.DOB,
			&d.ApplicationDate, &d.CourseID, &d.Status, &d.Remarks, &d.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning deleted applicant row: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deleted applicant rows: %w", err)
	}
	return result, nil
}

// ListDeletedCourses returns audit copies of deleted courses, oldest first
func (r *AuditRepository) ListDeletedCourses(ctx context.Context) ([]*models.DeletedCourse, error) {
	rows, err := r.db.Query(ctx, `
		SELECT backup_id, course_id, name, duration_months, seats_total,
		       seats_taken, description, deleted_at
		FROM deleted_courses
		ORDER BY backup_id`)
	if err != nil {
		return nil, fmt.Errorf("error querying deleted courses: %w", err)
	}
	defer rows.Close()

	result := []*models.DeletedCourse{}
	for rows.Next() {
		d := &models.DeletedCourse{}
		if err := rows.Scan(
			&d.BackupID, &d.CourseID, &d.Name, &d.DurationMonths, &d.SeatsTotal,
			&d.SeatsTaken, &d.Description, &d.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning deleted course row: %w", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deleted course rows: %w", err)
	}
	return result, nil
}
