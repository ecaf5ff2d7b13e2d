package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Stock represents the analysis result for a single ticker.
type Stock struct {
	Ticker            string         `gorm:"primaryKey;type:varchar(20)" json:"ticker"`
	Name              string         `json:"name"`
	SentimentScore    float64        `json:"sentiment_score"`
	SentimentCategory string         `gorm:"type:varchar(50)" json:"sentiment_category"`
	Sentiment         datatypes.JSON `gorm:"type:jsonb" json:"sentiment"`
	NewsCount         int            `json:"news_count"`
	Rank              int            `json:"rank"`
	InvestmentScore   float64        `json:"investment_score"`
	LastUpdated       time.Time      `json:"last_updated"`
	IsPublic          bool           `gorm:"default:true" json:"is_public"`

	Prices      []StockPrice      `gorm:"foreignKey:Ticker;references:Ticker" json:"prices,omitempty"`
	Predictions []StockPrediction `gorm:"foreignKey:Ticker;references:Ticker" json:"predictions,omitempty"`
}

// TableName specifies the table name for the Stock model.
func (Stock) TableName() string {
	return "stocks"
}

// StockSnapshot groups the full row set persisted for one ticker.
type StockSnapshot struct {
	Stock       Stock
	Prices      []StockPrice
	Predictions []StockPrediction
}
