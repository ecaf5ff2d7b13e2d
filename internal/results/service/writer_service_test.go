package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang-stock-resultstore/internal/entity"
	"golang-stock-resultstore/internal/results/dto"
	"golang-stock-resultstore/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSnapshotRepository struct {
	replaced    []*entity.StockSnapshot
	failTickers map[string]bool
}

func (r *stubSnapshotRepository) Replace(ctx context.Context, snapshot *entity.StockSnapshot) error {
	if r.failTickers[snapshot.Stock.Ticker] {
		return fmt.Errorf("replace failed for %s", snapshot.Stock.Ticker)
	}
	r.replaced = append(r.replaced, snapshot)
	return nil
}

func (r *stubSnapshotRepository) FindAll(ctx context.Context) ([]entity.Stock, error) {
	return nil, nil
}

func (r *stubSnapshotRepository) FindByTicker(ctx context.Context, ticker string) (*entity.Stock, error) {
	return nil, nil
}

func (r *stubSnapshotRepository) DeleteByTicker(ctx context.Context, ticker string) error {
	return nil
}

func (r *stubSnapshotRepository) DeleteStale(ctx context.Context, before time.Time) ([]string, error) {
	return nil, nil
}

type stubNotifier struct {
	messages []string
}

func (n *stubNotifier) SendMessage(text string) error {
	n.messages = append(n.messages, text)
	return nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func TestWriteBatchTalliesSuccessAndErrors(t *testing.T) {
	repo := &stubSnapshotRepository{failTickers: map[string]bool{"BAD": true}}
	notifier := &stubNotifier{}
	svc := NewWriterService(repo, testLogger(t), nil, nil, notifier, nil)

	records := []dto.AnalysisRecord{
		{Ticker: "AAPL"},
		{Ticker: "BAD"},
		{Ticker: "MSFT"},
	}

	summary := svc.WriteBatch(context.Background(), records)

	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
	require.Len(t, repo.replaced, 2)
	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "2")
}

func TestWriteBatchAssignsPositionalRank(t *testing.T) {
	repo := &stubSnapshotRepository{}
	svc := NewWriterService(repo, testLogger(t), nil, nil, nil, nil)

	records := []dto.AnalysisRecord{
		{Ticker: "AAPL"},
		{Ticker: "MSFT"},
		{Ticker: "GOOG", Rank: 7},
	}

	summary := svc.WriteBatch(context.Background(), records)

	assert.Equal(t, 3, summary.SuccessCount)
	require.Len(t, repo.replaced, 3)
	assert.Equal(t, 1, repo.replaced[0].Stock.Rank)
	assert.Equal(t, 2, repo.replaced[1].Stock.Rank)
	// An explicit rank is kept as-is.
	assert.Equal(t, 7, repo.replaced[2].Stock.Rank)
}

func TestWriteBatchCountsMapperFailures(t *testing.T) {
	repo := &stubSnapshotRepository{}
	svc := NewWriterService(repo, testLogger(t), nil, nil, nil, nil)

	records := []dto.AnalysisRecord{
		{Ticker: "AAPL"},
		{}, // no ticker
	}

	summary := svc.WriteBatch(context.Background(), records)

	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
}

func TestWriteBatchFlushesListCache(t *testing.T) {
	repo := &stubSnapshotRepository{}
	listCache := gocache.New(time.Minute, time.Minute)
	listCache.SetDefault(cacheKeyRankedStocks, []dto.StockResponse{{Ticker: "STALE"}})

	svc := NewWriterService(repo, testLogger(t), listCache, nil, nil, nil)
	svc.WriteBatch(context.Background(), []dto.AnalysisRecord{{Ticker: "AAPL"}})

	_, found := listCache.Get(cacheKeyRankedStocks)
	assert.False(t, found)
}
