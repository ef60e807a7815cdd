package handler

import (
	"testing"
	"time"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
	"github.com/kgl-groceries/produce-api/internal/core/validation"
)

func TestUserUpdateFromRecord_OnlyPresentFields(t *testing.T) {
	u := userUpdateFromRecord(validation.Record{"email": "new@kgl.example", "role": "Sales Agent"})

	if u.Username != nil || u.Password != nil || u.Contact != nil {
		t.Fatalf("absent fields must stay nil: %+v", u)
	}
	if u.Email == nil || *u.Email != "new@kgl.example" {
		t.Fatalf("email not mapped: %+v", u.Email)
	}
	if u.Role == nil || *u.Role != domain.RoleSalesAgent {
		t.Fatalf("role not mapped: %+v", u.Role)
	}
}

func TestCreditSaleFromRecord(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := creditSaleFromRecord(validation.Record{
		"buyerName": "Kato Traders",
		"nin":       "12345678901234",
		"amountDue": float64(120000),
		"dueDate":   due,
	})

	if s.NIN != "12345678901234" || s.AmountDue != 120000 {
		t.Fatalf("unexpected sale: %+v", s)
	}
	if s.DueDate == nil || !s.DueDate.Equal(due) {
		t.Fatalf("due date not mapped: %v", s.DueDate)
	}
	if s.DispatchDate != nil || s.Date != nil {
		t.Fatalf("absent dates must stay nil")
	}
}

func TestProcurementFromRecord(t *testing.T) {
	p := procurementFromRecord(validation.Record{"branch": "Matugga", "tonnage": float64(150)})
	if p.Branch != domain.BranchMatugga || p.Tonnage != 150 {
		t.Fatalf("unexpected procurement: %+v", p)
	}
}
