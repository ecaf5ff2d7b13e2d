package dto

// PricePoint is a single dated price value as produced by the analysis
// pipeline.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// PredictionSeries carries the forecast series and its optional confidence
// bounds. Bound slices are index-aligned with Data; either may be empty.
type PredictionSeries struct {
	Data       []PricePoint `json:"data"`
	UpperBound []PricePoint `json:"upper_bound"`
	LowerBound []PricePoint `json:"lower_bound"`
}

// AnalysisRecord is the loosely structured per-ticker result emitted by an
// analysis run. All fields except Ticker are optional.
type AnalysisRecord struct {
	Ticker            string            `json:"ticker"`
	Name              string            `json:"name"`
	SentimentScore    float64           `json:"sentiment_score"`
	SentimentCategory string            `json:"sentiment_category"`
	InvestmentScore   float64           `json:"investment_score"`
	NewsCount         int               `json:"news_count"`
	Rank              int               `json:"rank"`
	HistoricalData    []PricePoint      `json:"historical_data"`
	Prediction        *PredictionSeries `json:"prediction"`
}

// AnalysisBatch is a ranked collection of analysis records submitted for
// persistence in one pass.
type AnalysisBatch struct {
	Records []AnalysisRecord `json:"records"`
}

// SentimentBlob mirrors the jsonb sentiment column on the stocks table.
type SentimentBlob struct {
	Score           float64 `json:"score"`
	Category        string  `json:"category"`
	InvestmentScore float64 `json:"investment_score"`
}

// WriteSummary tallies the outcome of a batch write.
type WriteSummary struct {
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`
}
