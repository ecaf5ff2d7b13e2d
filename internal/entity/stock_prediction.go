package entity

import "time"

// StockPrediction is a single forecast point for a ticker, with optional
// confidence bounds.
type StockPrediction struct {
	Ticker     string    `gorm:"primaryKey;type:varchar(20)" json:"ticker"`
	Date       time.Time `gorm:"primaryKey;type:date" json:"date"`
	Price      float64   `json:"price"`
	UpperBound *float64  `json:"upper_bound"`
	LowerBound *float64  `json:"lower_bound"`
	IsPublic   bool      `gorm:"default:true" json:"is_public"`
}

// TableName specifies the table name for the StockPrediction model.
func (StockPrediction) TableName() string {
	return "stock_predictions"
}
