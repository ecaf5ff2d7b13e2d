package entity

import "time"

// StockPrice is a single point of a ticker's historical price series.
type StockPrice struct {
	Ticker   string    `gorm:"primaryKey;type:varchar(20)" json:"ticker"`
	Date     time.Time `gorm:"primaryKey;type:date" json:"date"`
	Price    float64   `json:"price"`
	IsPublic bool      `gorm:"default:true" json:"is_public"`
}

// TableName specifies the table name for the StockPrice model.
func (StockPrice) TableName() string {
	return "stock_prices"
}
