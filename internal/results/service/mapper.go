package service

import (
	"encoding/json"
	"fmt"
	"time"

	"golang-stock-resultstore/internal/entity"
	"golang-stock-resultstore/internal/results/dto"
	"golang-stock-resultstore/pkg/common"
)

const dateLayout = "2006-01-02"

// MapAnalysisRecord normalizes an analysis record into the row set persisted
// for its ticker. Missing optional fields fall back to zero scores, the
// "Neutral" sentiment category and empty series.
func MapAnalysisRecord(record *dto.AnalysisRecord, now time.Time) (*entity.StockSnapshot, error) {
	if record.Ticker == "" {
		return nil, fmt.Errorf("analysis record has no ticker")
	}

	category := record.SentimentCategory
	if category == "" {
		category = common.SentimentCategoryNeutral
	}

	sentiment, err := json.Marshal(dto.SentimentBlob{
		Score:           record.SentimentScore,
		Category:        category,
		InvestmentScore: record.InvestmentScore,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sentiment for %s: %w", record.Ticker, err)
	}

	snapshot := &entity.StockSnapshot{
		Stock: entity.Stock{
			Ticker:            record.Ticker,
			Name:              record.Name,
			SentimentScore:    record.SentimentScore,
			SentimentCategory: category,
			Sentiment:         sentiment,
			NewsCount:         record.NewsCount,
			Rank:              record.Rank,
			InvestmentScore:   record.InvestmentScore,
			LastUpdated:       now,
			IsPublic:          true,
		},
	}

	for _, point := range record.HistoricalData {
		date, err := time.Parse(dateLayout, point.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid price date %q for %s: %w", point.Date, record.Ticker, err)
		}
		snapshot.Prices = append(snapshot.Prices, entity.StockPrice{
			Ticker:   record.Ticker,
			Date:     date,
			Price:    point.Price,
			IsPublic: true,
		})
	}

	if record.Prediction != nil {
		for i, point := range record.Prediction.Data {
			date, err := time.Parse(dateLayout, point.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid prediction date %q for %s: %w", point.Date, record.Ticker, err)
			}
			prediction := entity.StockPrediction{
				Ticker:   record.Ticker,
				Date:     date,
				Price:    point.Price,
				IsPublic: true,
			}
			if i < len(record.Prediction.UpperBound) {
				upper := record.Prediction.UpperBound[i].Price
				prediction.UpperBound = &upper
			}
			if i < len(record.Prediction.LowerBound) {
				lower := record.Prediction.LowerBound[i].Price
				prediction.LowerBound = &lower
			}
			snapshot.Predictions = append(snapshot.Predictions, prediction)
		}
	}

	return snapshot, nil
}
