package domain

import "time"

// Field is a plot of land crops are planted on.
type Field struct {
	ID           int64     `json:"f_id"`
	Name         string    `json:"f_name"`
	Location     string    `json:"location,omitempty"`
	SizeHectares float64   `json:"size_hectares,omitempty"`
	CreatedAt    time.Time `json:"created_date"`
}

// Crop is a planting on a field, tracked until harvest.
type Crop struct {
	ID              int64      `json:"c_id"`
	Name            string     `json:"c_name"`
	Variety         string     `json:"variety,omitempty"`
	FieldID         *int64     `json:"field_id,omitempty"`
	PlantedDate     *time.Time `json:"planted_date,omitempty"`
	ExpectedHarvest *time.Time `json:"exp_harvest,omitempty"`
	IsHarvested     bool       `json:"is_harvested"`
	CreatedAt       time.Time  `json:"created_date"`
}

// CropStats summarises the crop table for the dashboard.
type CropStats struct {
	Total     int `json:"total"`
	Harvested int `json:"harvested"`
	Growing   int `json:"growing"`
	Overdue   int `json:"overdue"`
	DueSoon   int `json:"due_soon"`
}
