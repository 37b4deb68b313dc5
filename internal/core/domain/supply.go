package domain

import "time"

// SupplyKind distinguishes the two stocked input types.
type SupplyKind string

const (
	SupplyFertilizer SupplyKind = "fertilizer"
	SupplyPesticide  SupplyKind = "pesticide"
)

// SupplyItem is a stocked farm input (fertilizer or pesticide).
type SupplyItem struct {
	ID        int64      `json:"id"`
	Kind      SupplyKind `json:"kind"`
	Name      string     `json:"name"`
	Type      string     `json:"type,omitempty"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit,omitempty"`
	CreatedAt time.Time  `json:"created_date"`
}
