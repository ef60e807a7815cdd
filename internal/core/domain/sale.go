package domain

import (
	"fmt"
	"time"
)

// SaleType distinguishes cash sales from credit (deferred payment) sales.
type SaleType string

const (
	SaleCash   SaleType = "Cash"
	SaleCredit SaleType = "Credit"
)

// ParseSaleType validates a sale type name.
func ParseSaleType(s string) (SaleType, error) {
	switch t := SaleType(s); t {
	case SaleCash, SaleCredit:
		return t, nil
	default:
		return "", fmt.Errorf("unknown sale type %q", s)
	}
}

// Sale is a cash or credit sale. Credit-only fields are empty on cash sales
// and vice versa.
type Sale struct {
	ID             string   `json:"id" bson:"_id,omitempty"`
	SaleType       SaleType `json:"saleType" bson:"sale_type"`
	ProduceName    string   `json:"produceName" bson:"produce_name"`
	ProduceType    string   `json:"produceType,omitempty" bson:"produce_type,omitempty"`
	Tonnage        float64  `json:"tonnage" bson:"tonnage"`
	BuyerName      string   `json:"buyerName" bson:"buyer_name"`
	SalesAgentName string   `json:"salesAgentName" bson:"sales_agent_name"`
	SalesAgent     Actor    `json:"salesAgent" bson:"sales_agent"`

	// Cash
	AmountPaid float64    `json:"amountPaid,omitempty" bson:"amount_paid,omitempty"`
	Date       *time.Time `json:"date,omitempty" bson:"date,omitempty"`
	Time       string     `json:"time,omitempty" bson:"time,omitempty"`

	// Credit
	NIN          string     `json:"nin,omitempty" bson:"nin,omitempty"`
	Location     string     `json:"location,omitempty" bson:"location,omitempty"`
	Contact      string     `json:"contact,omitempty" bson:"contact,omitempty"`
	AmountDue    float64    `json:"amountDue,omitempty" bson:"amount_due,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty" bson:"due_date,omitempty"`
	DispatchDate *time.Time `json:"dispatchDate,omitempty" bson:"dispatch_date,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// SaleFilter narrows sale listings. The zero value matches every sale.
type SaleFilter struct {
	Type SaleType
}
