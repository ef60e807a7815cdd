package handler

import (
	"time"

	"github.com/kgl-groceries/produce-api/internal/core/domain"
	"github.com/kgl-groceries/produce-api/internal/core/validation"
)

// The functions below read validated records; every field they touch has
// already passed its schema, so parse failures cannot occur here.

func procurementFromRecord(r validation.Record) domain.Procurement {
	branch, _ := domain.ParseBranch(r.String("branch"))
	return domain.Procurement{
		ProduceName:  r.String("produceName"),
		ProduceType:  r.String("produceType"),
		Date:         r.Time("date"),
		Time:         r.String("time"),
		Tonnage:      r.Float("tonnage"),
		Cost:         r.Float("cost"),
		DealerName:   r.String("dealerName"),
		Branch:       branch,
		Contact:      r.String("contact"),
		SellingPrice: r.Float("sellingPrice"),
	}
}

func cashSaleFromRecord(r validation.Record) domain.Sale {
	return domain.Sale{
		ProduceName:    r.String("produceName"),
		Tonnage:        r.Float("tonnage"),
		AmountPaid:     r.Float("amountPaid"),
		BuyerName:      r.String("buyerName"),
		SalesAgentName: r.String("salesAgentName"),
		Date:           timePtr(r, "date"),
		Time:           r.String("time"),
	}
}

func creditSaleFromRecord(r validation.Record) domain.Sale {
	return domain.Sale{
		BuyerName:      r.String("buyerName"),
		NIN:            r.String("nin"),
		Location:       r.String("location"),
		Contact:        r.String("contact"),
		AmountDue:      r.Float("amountDue"),
		SalesAgentName: r.String("salesAgentName"),
		DueDate:        timePtr(r, "dueDate"),
		ProduceName:    r.String("produceName"),
		ProduceType:    r.String("produceType"),
		Tonnage:        r.Float("tonnage"),
		DispatchDate:   timePtr(r, "dispatchDate"),
	}
}

func newUserFromRecord(r validation.Record) domain.NewUser {
	role, _ := domain.ParseRole(r.String("role"))
	return domain.NewUser{
		Username: r.String("username"),
		Email:    r.String("email"),
		Password: r.String("password"),
		Role:     role,
		Contact:  r.String("contact"),
	}
}

func userUpdateFromRecord(r validation.Record) domain.UserUpdate {
	var u domain.UserUpdate
	u.Username = stringPtr(r, "username")
	u.Email = stringPtr(r, "email")
	u.Password = stringPtr(r, "password")
	u.Contact = stringPtr(r, "contact")
	if r.Has("role") {
		role, _ := domain.ParseRole(r.String("role"))
		u.Role = &role
	}
	return u
}

func stringPtr(r validation.Record, name string) *string {
	if !r.Has(name) {
		return nil
	}
	s := r.String(name)
	return &s
}

func timePtr(r validation.Record, name string) *time.Time {
	if !r.Has(name) {
		return nil
	}
	t := r.Time(name)
	return &t
}
