package models

import "time"

// AnalysisRecord is one classified tray photo: which dish was served,
// on which day, and whether the tray came back as waste. Records are
// produced by the remote classification service and never mutated by
// the aggregation side.
type AnalysisRecord struct {
	ID           string    `json:"id"`
	ImageURL     string    `json:"image_url"`
	FoodCategory string    `json:"food_category"`
	FoodType     string    `json:"food_type"`
	IsWaste      bool      `json:"is_waste"`
	PhotoDay     string    `json:"photo_day,omitempty"`
	AnalysisDate string    `json:"analysis_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category returns the record's category in normalized slug form.
func (r AnalysisRecord) Category() Category {
	return NormalizeCategory(r.FoodCategory)
}
