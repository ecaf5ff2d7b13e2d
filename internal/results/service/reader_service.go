package service

import (
	"context"

	"golang-stock-resultstore/internal/entity"
	"golang-stock-resultstore/internal/results/dto"
	"golang-stock-resultstore/internal/results/repository"
	"golang-stock-resultstore/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

const cacheKeyRankedStocks = "stocks:ranked"

// ReaderService serves stored analysis results.
type ReaderService interface {
	GetStocks(ctx context.Context) ([]dto.StockResponse, error)
	GetStock(ctx context.Context, ticker string) (*dto.StockDetailResponse, error)
	DeleteStock(ctx context.Context, ticker string) error
}

// NewReaderService creates a new ReaderService backed by the given cache.
func NewReaderService(snapshotRepo repository.StockSnapshotRepository, log *logger.Logger, cache *gocache.Cache) ReaderService {
	return &readerService{
		snapshotRepo: snapshotRepo,
		logger:       log,
		cache:        cache,
	}
}

type readerService struct {
	snapshotRepo repository.StockSnapshotRepository
	logger       *logger.Logger
	cache        *gocache.Cache
}

// GetStocks returns the ranked stock list, served from cache when warm.
func (s *readerService) GetStocks(ctx context.Context) ([]dto.StockResponse, error) {
	if cached, found := s.cache.Get(cacheKeyRankedStocks); found {
		return cached.([]dto.StockResponse), nil
	}

	stocks, err := s.snapshotRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list stocks", logger.ErrorField(err))
		return nil, err
	}

	responses := make([]dto.StockResponse, 0, len(stocks))
	for i := range stocks {
		responses = append(responses, mapToStockResponse(&stocks[i]))
	}

	s.cache.SetDefault(cacheKeyRankedStocks, responses)
	return responses, nil
}

// GetStock returns a stock with its full series, or nil when absent.
func (s *readerService) GetStock(ctx context.Context, ticker string) (*dto.StockDetailResponse, error) {
	stock, err := s.snapshotRepo.FindByTicker(ctx, ticker)
	if err != nil {
		s.logger.Error("Failed to get stock", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}
	if stock == nil {
		return nil, nil
	}

	detail := &dto.StockDetailResponse{
		StockResponse: mapToStockResponse(stock),
		Prices:        make([]dto.PricePointResponse, 0, len(stock.Prices)),
		Predictions:   make([]dto.PredictionPointResponse, 0, len(stock.Predictions)),
	}
	for _, price := range stock.Prices {
		detail.Prices = append(detail.Prices, dto.PricePointResponse{
			Date:  price.Date.Format(dateLayout),
			Price: price.Price,
		})
	}
	for _, prediction := range stock.Predictions {
		detail.Predictions = append(detail.Predictions, dto.PredictionPointResponse{
			Date:       prediction.Date.Format(dateLayout),
			Price:      prediction.Price,
			UpperBound: prediction.UpperBound,
			LowerBound: prediction.LowerBound,
		})
	}
	return detail, nil
}

// DeleteStock removes a ticker's row set and invalidates the list cache.
func (s *readerService) DeleteStock(ctx context.Context, ticker string) error {
	if err := s.snapshotRepo.DeleteByTicker(ctx, ticker); err != nil {
		s.logger.Error("Failed to delete stock", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return err
	}
	s.cache.Delete(cacheKeyRankedStocks)
	s.logger.Info("Stock deleted", logger.StringField("ticker", ticker))
	return nil
}

func mapToStockResponse(stock *entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		Ticker:            stock.Ticker,
		Name:              stock.Name,
		SentimentScore:    stock.SentimentScore,
		SentimentCategory: stock.SentimentCategory,
		InvestmentScore:   stock.InvestmentScore,
		NewsCount:         stock.NewsCount,
		Rank:              stock.Rank,
		LastUpdated:       stock.LastUpdated,
	}
}
