package ports

import (
	"context"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

// ProcurementRepository defines persistence operations for procurements.
// Lookups by an unknown id return a domain.NotFoundError.
type ProcurementRepository interface {
	Create(ctx context.Context, p *domain.Procurement) (*domain.Procurement, error)
	FindByID(ctx context.Context, id string) (*domain.Procurement, error)
	List(ctx context.Context) ([]*domain.Procurement, error)
	Update(ctx context.Context, id string, p *domain.Procurement) (*domain.Procurement, error)
	Delete(ctx context.Context, id string) (*domain.Procurement, error)
}

// SaleRepository defines persistence operations for cash and credit sales.
type SaleRepository interface {
	Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error)
	FindByID(ctx context.Context, id string) (*domain.Sale, error)
	List(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error)
	Update(ctx context.Context, id string, s *domain.Sale) (*domain.Sale, error)
	Delete(ctx context.Context, id string) (*domain.Sale, error)
}
