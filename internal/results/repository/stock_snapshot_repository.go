package repository

import (
	"context"
	"time"

	"golang-stock-resultstore/internal/entity"

	"gorm.io/gorm"
)

// StockSnapshotRepository defines the interface for persisting and reading
// per-ticker analysis row sets.
type StockSnapshotRepository interface {
	Replace(ctx context.Context, snapshot *entity.StockSnapshot) error
	FindAll(ctx context.Context) ([]entity.Stock, error)
	FindByTicker(ctx context.Context, ticker string) (*entity.Stock, error)
	DeleteByTicker(ctx context.Context, ticker string) error
	DeleteStale(ctx context.Context, before time.Time) ([]string, error)
}

// NewStockSnapshotRepository creates a new GORM-based snapshot repository.
func NewStockSnapshotRepository(db *gorm.DB) StockSnapshotRepository {
	return &stockSnapshotRepository{db: db}
}

type stockSnapshotRepository struct {
	db *gorm.DB
}

// Replace swaps the stored row set for the snapshot's ticker with the given
// one. Delete and insert run in a single transaction so a failure anywhere
// leaves the previous row set intact.
func (r *stockSnapshotRepository) Replace(ctx context.Context, snapshot *entity.StockSnapshot) error {
	ticker := snapshot.Stock.Ticker
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticker = ?", ticker).Delete(&entity.StockPrice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ticker = ?", ticker).Delete(&entity.StockPrediction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ticker = ?", ticker).Delete(&entity.Stock{}).Error; err != nil {
			return err
		}

		if err := tx.Omit("Prices", "Predictions").Create(&snapshot.Stock).Error; err != nil {
			return err
		}
		if len(snapshot.Prices) > 0 {
			if err := tx.Create(&snapshot.Prices).Error; err != nil {
				return err
			}
		}
		if len(snapshot.Predictions) > 0 {
			if err := tx.Create(&snapshot.Predictions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindAll retrieves all stocks ordered by rank.
func (r *stockSnapshotRepository) FindAll(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := r.db.WithContext(ctx).Order("rank asc").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// FindByTicker retrieves a stock with its price history and predictions.
// Returns (nil, nil) when the ticker is not stored.
func (r *stockSnapshotRepository) FindByTicker(ctx context.Context, ticker string) (*entity.Stock, error) {
	var stock entity.Stock
	result := r.db.WithContext(ctx).
		Preload("Prices", func(db *gorm.DB) *gorm.DB { return db.Order("date asc") }).
		Preload("Predictions", func(db *gorm.DB) *gorm.DB { return db.Order("date asc") }).
		Where("ticker = ?", ticker).
		First(&stock)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &stock, nil
}

// DeleteByTicker removes a ticker's full row set across all three tables.
func (r *stockSnapshotRepository) DeleteByTicker(ctx context.Context, ticker string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticker = ?", ticker).Delete(&entity.StockPrice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ticker = ?", ticker).Delete(&entity.StockPrediction{}).Error; err != nil {
			return err
		}
		return tx.Where("ticker = ?", ticker).Delete(&entity.Stock{}).Error
	})
}

// DeleteStale removes the full row sets of tickers whose last_updated is
// older than the given cutoff and returns the affected tickers.
func (r *stockSnapshotRepository) DeleteStale(ctx context.Context, before time.Time) ([]string, error) {
	var tickers []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Stock{}).Where("last_updated < ?", before).Pluck("ticker", &tickers).Error; err != nil {
			return err
		}
		if len(tickers) == 0 {
			return nil
		}
		if err := tx.Where("ticker IN ?", tickers).Delete(&entity.StockPrice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("ticker IN ?", tickers).Delete(&entity.StockPrediction{}).Error; err != nil {
			return err
		}
		return tx.Where("ticker IN ?", tickers).Delete(&entity.Stock{}).Error
	})
	if err != nil {
		return nil, err
	}
	return tickers, nil
}
