package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

const collectionProcurements = "procurements"

// Fields an update never overwrites.
var procurementFixedFields = []string{"recorded_by", "created_at"}

type ProcurementRepository struct {
	store *recordStore[domain.Procurement]
}

func NewProcurementRepository(db *mongo.Database) *ProcurementRepository {
	return &ProcurementRepository{store: newRecordStore[domain.Procurement](db, collectionProcurements, "Procurement")}
}

func (r *ProcurementRepository) Create(ctx context.Context, p *domain.Procurement) (*domain.Procurement, error) {
	created, err := r.store.create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("insert procurement: %w", err)
	}
	return created, nil
}

func (r *ProcurementRepository) FindByID(ctx context.Context, id string) (*domain.Procurement, error) {
	return r.store.findByID(ctx, id)
}

func (r *ProcurementRepository) List(ctx context.Context) ([]*domain.Procurement, error) {
	return r.store.findAll(ctx, nil)
}

func (r *ProcurementRepository) Update(ctx context.Context, id string, p *domain.Procurement) (*domain.Procurement, error) {
	set, err := toSetDocument(p, procurementFixedFields...)
	if err != nil {
		return nil, fmt.Errorf("update procurement: %w", err)
	}
	return r.store.update(ctx, id, set)
}

func (r *ProcurementRepository) Delete(ctx context.Context, id string) (*domain.Procurement, error) {
	return r.store.delete(ctx, id)
}
