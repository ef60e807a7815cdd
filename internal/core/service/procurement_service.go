package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
	"github.com/kgl-groceries/produce-api/internal/core/ports"
)

type ProcurementService struct {
	repo ports.ProcurementRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewProcurementService(repo ports.ProcurementRepository, log zerolog.Logger) *ProcurementService {
	return &ProcurementService{repo: repo, log: log, now: time.Now}
}

// Record stores p stamped with the identity that recorded it.
func (s *ProcurementService) Record(ctx context.Context, by domain.Identity, p domain.Procurement) (*domain.Procurement, error) {
	now := s.now().UTC()
	p.ID = ""
	p.RecordedBy = domain.ActorOf(by)
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.repo.Create(ctx, &p)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to record procurement")
		return nil, err
	}
	s.log.Info().
		Str("procurement_id", created.ID).
		Str("branch", string(created.Branch)).
		Str("recorded_by", by.Username).
		Msg("procurement recorded")
	return created, nil
}

func (s *ProcurementService) Get(ctx context.Context, id string) (*domain.Procurement, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProcurementService) List(ctx context.Context) ([]*domain.Procurement, error) {
	return s.repo.List(ctx)
}

// Update replaces the editable fields of a procurement. The recording
// identity and creation time are kept.
func (s *ProcurementService) Update(ctx context.Context, id string, p domain.Procurement) (*domain.Procurement, error) {
	p.ID = ""
	p.RecordedBy = domain.Actor{}
	p.CreatedAt = time.Time{}
	p.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, id, &p)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("procurement_id", id).Msg("procurement updated")
	return updated, nil
}

func (s *ProcurementService) Delete(ctx context.Context, id string) (*domain.Procurement, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("procurement_id", id).Msg("procurement deleted")
	return deleted, nil
}
