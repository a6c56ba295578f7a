package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/admissions/internal/app/repositories"
)

// AuditService sets up the delete-audit trail. Audit rows themselves are
// written by database triggers, never by this package.
type AuditService interface {
	// EnsureAuditTrail creates the shadow tables and delete triggers when
	// they are missing. Repeated calls are no-ops.
	EnsureAuditTrail(ctx context.Context) error
}

type auditServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(store repositories.Store, logger zerolog.Logger) AuditService {
	return &auditServiceImpl{store: store, logger: logger}
}

func (s *auditServiceImpl) EnsureAuditTrail(ctx context.Context) error {
	if err := s.store.Audit().EnsureInfrastructure(ctx); err != nil {
		return err
	}
	s.logger.Debug().Str("driver", s.store.Driver()).Msg("Audit trail ensured")
	return nil
}
