package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
)

func TestToSetDocument_DropsFixedFields(t *testing.T) {
	p := &domain.Procurement{
		ID:          "ignored",
		ProduceName: "Maize",
		Tonnage:     150,
		Branch:      domain.BranchMatugga,
		RecordedBy:  domain.Actor{ID: "x"},
		CreatedAt:   time.Now(),
	}

	set, err := toSetDocument(p, procurementFixedFields...)
	if err != nil {
		t.Fatalf("toSetDocument: %v", err)
	}
	for _, key := range []string{"_id", "recorded_by", "created_at"} {
		if _, ok := set[key]; ok {
			t.Fatalf("key %q must not be set", key)
		}
	}
	if set["produce_name"] != "Maize" || set["branch"] != "Matugga" {
		t.Fatalf("unexpected set document: %v", set)
	}
}

func TestToSetDocument_SaleOmitsEmptyVariantFields(t *testing.T) {
	s := &domain.Sale{ProduceName: "Beans", AmountPaid: 50000, Time: "10:00"}

	set, err := toSetDocument(s, saleFixedFields...)
	if err != nil {
		t.Fatalf("toSetDocument: %v", err)
	}
	for _, key := range []string{"nin", "amount_due", "due_date", "sale_type", "sales_agent"} {
		if _, ok := set[key]; ok {
			t.Fatalf("key %q must not be set on a cash update", key)
		}
	}
	if set["amount_paid"] != float64(50000) {
		t.Fatalf("unexpected amount_paid: %v", set["amount_paid"])
	}
}

func TestSaleFilter(t *testing.T) {
	if f := saleFilter(domain.SaleFilter{}); len(f) != 0 {
		t.Fatalf("zero filter must match everything, got %v", f)
	}
	if f := saleFilter(domain.SaleFilter{Type: domain.SaleCredit}); f["sale_type"] != "Credit" {
		t.Fatalf("unexpected filter: %v", f)
	}
}

func TestUserSetDocument(t *testing.T) {
	if set := userSetDocument(domain.UserUpdate{}); len(set) != 0 {
		t.Fatalf("empty update must produce empty set, got %v", set)
	}

	pw := "raw-password"
	digest := "$2a$10$digest"
	role := domain.RoleSalesAgent
	set := userSetDocument(domain.UserUpdate{Password: &pw, PasswordHash: &digest, Role: &role})
	if set["password_hash"] != digest || set["role"] != "Sales Agent" {
		t.Fatalf("unexpected set document: %v", set)
	}
	for _, v := range set {
		if v == pw {
			t.Fatalf("raw password must never be written")
		}
	}
	if _, ok := set["updated_at"]; !ok {
		t.Fatalf("updated_at must be bumped")
	}
}

func TestRecordStore_InvalidIDIsNotFound(t *testing.T) {
	// A malformed id is rejected before the collection is touched.
	s := &recordStore[domain.Sale]{kind: "Sale"}

	if _, err := s.findByID(context.Background(), "not-an-object-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("findByID: expected ErrNotFound, got %v", err)
	}
	if _, err := s.delete(context.Background(), "xyz"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
	_, err := s.update(context.Background(), "xyz", nil)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Error() != "Sale not found" {
		t.Fatalf("update: expected 'Sale not found', got %v", err)
	}
}

func TestMongoUser_ToDomain(t *testing.T) {
	u, err := (&mongoUser{ID: "abc", Username: "amy", Role: "Sales Agent"}).toDomain()
	if err != nil || u.Role != domain.RoleSalesAgent {
		t.Fatalf("unexpected result: %+v, %v", u, err)
	}
	if _, err := (&mongoUser{ID: "abc", Role: "Admin"}).toDomain(); err == nil {
		t.Fatalf("expected error for unknown stored role")
	}
}
