package domain

import (
	"fmt"
	"time"
)

// Branch is one of the two trading branches.
type Branch string

const (
	BranchMaganjo Branch = "Maganjo"
	BranchMatugga Branch = "Matugga"
)

// ParseBranch validates a branch name.
func ParseBranch(s string) (Branch, error) {
	switch b := Branch(s); b {
	case BranchMaganjo, BranchMatugga:
		return b, nil
	default:
		return "", fmt.Errorf("unknown branch %q", s)
	}
}

// Procurement records produce bought from a dealer.
type Procurement struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	ProduceName  string    `json:"produceName" bson:"produce_name"`
	ProduceType  string    `json:"produceType" bson:"produce_type"`
	Date         time.Time `json:"date" bson:"date"`
	Time         string    `json:"time" bson:"time"`
	Tonnage      float64   `json:"tonnage" bson:"tonnage"`
	Cost         float64   `json:"cost" bson:"cost"`
	DealerName   string    `json:"dealerName" bson:"dealer_name"`
	Branch       Branch    `json:"branch" bson:"branch"`
	Contact      string    `json:"contact" bson:"contact"`
	SellingPrice float64   `json:"sellingPrice" bson:"selling_price"`
	RecordedBy   Actor     `json:"recordedBy" bson:"recorded_by"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}
