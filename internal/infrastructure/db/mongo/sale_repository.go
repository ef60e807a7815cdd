package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

const collectionSales = "sales"

// Fields an update never overwrites.
var saleFixedFields = []string{"sale_type", "sales_agent", "created_at"}

type SaleRepository struct {
	store *recordStore[domain.Sale]
}

func NewSaleRepository(db *mongo.Database) *SaleRepository {
	return &SaleRepository{store: newRecordStore[domain.Sale](db, collectionSales, "Sale")}
}

func (r *SaleRepository) Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	created, err := r.store.create(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}
	return created, nil
}

func (r *SaleRepository) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	return r.store.findByID(ctx, id)
}

func (r *SaleRepository) List(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
	return r.store.findAll(ctx, saleFilter(filter))
}

func (r *SaleRepository) Update(ctx context.Context, id string, s *domain.Sale) (*domain.Sale, error) {
	set, err := toSetDocument(s, saleFixedFields...)
	if err != nil {
		return nil, fmt.Errorf("update sale: %w", err)
	}
	return r.store.update(ctx, id, set)
}

func (r *SaleRepository) Delete(ctx context.Context, id string) (*domain.Sale, error) {
	return r.store.delete(ctx, id)
}

func saleFilter(f domain.SaleFilter) bson.M {
	filter := bson.M{}
	if f.Type != "" {
		filter["sale_type"] = string(f.Type)
	}
	return filter
}
