package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
	"github.com/kgl-groceries/produce-api/internal/core/ports"
)

type SaleService struct {
	repo ports.SaleRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewSaleService(repo ports.SaleRepository, log zerolog.Logger) *SaleService {
	return &SaleService{repo: repo, log: log, now: time.Now}
}

func (s *SaleService) RecordCash(ctx context.Context, by domain.Identity, sale domain.Sale) (*domain.Sale, error) {
	return s.record(ctx, by, domain.SaleCash, sale)
}

func (s *SaleService) RecordCredit(ctx context.Context, by domain.Identity, sale domain.Sale) (*domain.Sale, error) {
	return s.record(ctx, by, domain.SaleCredit, sale)
}

func (s *SaleService) record(ctx context.Context, by domain.Identity, kind domain.SaleType, sale domain.Sale) (*domain.Sale, error) {
	now := s.now().UTC()
	sale.ID = ""
	sale.SaleType = kind
	sale.SalesAgent = domain.ActorOf(by)
	sale.CreatedAt = now
	sale.UpdatedAt = now

	created, err := s.repo.Create(ctx, &sale)
	if err != nil {
		s.log.Error().Err(err).Str("sale_type", string(kind)).Msg("failed to record sale")
		return nil, err
	}
	s.log.Info().
		Str("sale_id", created.ID).
		Str("sale_type", string(kind)).
		Str("sales_agent", by.Username).
		Msg("sale recorded")
	return created, nil
}

func (s *SaleService) Get(ctx context.Context, id string) (*domain.Sale, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SaleService) List(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
	return s.repo.List(ctx, filter)
}

// Update replaces the editable fields of a sale. The sale type, the agent
// stamp and the creation time cannot change.
func (s *SaleService) Update(ctx context.Context, id string, sale domain.Sale) (*domain.Sale, error) {
	sale.ID = ""
	sale.SaleType = ""
	sale.SalesAgent = domain.Actor{}
	sale.CreatedAt = time.Time{}
	sale.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, id, &sale)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("sale_id", id).Msg("sale updated")
	return updated, nil
}

func (s *SaleService) Delete(ctx context.Context, id string) (*domain.Sale, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("sale_id", id).Msg("sale deleted")
	return deleted, nil
}
