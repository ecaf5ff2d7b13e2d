package dto

import "time"

// StockResponse is the list-view representation of a stored stock.
type StockResponse struct {
	Ticker            string    `json:"ticker"`
	Name              string    `json:"name"`
	SentimentScore    float64   `json:"sentiment_score"`
	SentimentCategory string    `json:"sentiment_category"`
	InvestmentScore   float64   `json:"investment_score"`
	NewsCount         int       `json:"news_count"`
	Rank              int       `json:"rank"`
	LastUpdated       time.Time `json:"last_updated"`
}

// PricePointResponse is a dated price value in API responses.
type PricePointResponse struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// PredictionPointResponse is a forecast point in API responses.
type PredictionPointResponse struct {
	Date       string   `json:"date"`
	Price      float64  `json:"price"`
	UpperBound *float64 `json:"upper_bound"`
	LowerBound *float64 `json:"lower_bound"`
}

// StockDetailResponse is the detail-view representation including the full
// price history and forecast.
type StockDetailResponse struct {
	StockResponse
	Prices      []PricePointResponse      `json:"prices"`
	Predictions []PredictionPointResponse `json:"predictions"`
}
