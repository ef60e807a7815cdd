package ports

import (
	"context"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

// ProcurementService defines use-case operations for procurements.
type ProcurementService interface {
	Record(ctx context.Context, by domain.Identity, p domain.Procurement) (*domain.Procurement, error)
	Get(ctx context.Context, id string) (*domain.Procurement, error)
	List(ctx context.Context) ([]*domain.Procurement, error)
	Update(ctx context.Context, id string, p domain.Procurement) (*domain.Procurement, error)
	Delete(ctx context.Context, id string) (*domain.Procurement, error)
}

// SaleService defines use-case operations for sales.
type SaleService interface {
	RecordCash(ctx context.Context, by domain.Identity, s domain.Sale) (*domain.Sale, error)
	RecordCredit(ctx context.Context, by domain.Identity, s domain.Sale) (*domain.Sale, error)
	Get(ctx context.Context, id string) (*domain.Sale, error)
	List(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error)
	Update(ctx context.Context, id string, s domain.Sale) (*domain.Sale, error)
	Delete(ctx context.Context, id string) (*domain.Sale, error)
}
