package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang-stock-resultstore/internal/results/dto"
	"golang-stock-resultstore/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReaderService struct {
	stocks  []dto.StockResponse
	detail  *dto.StockDetailResponse
	deleted []string
	err     error
}

func (s *stubReaderService) GetStocks(ctx context.Context) ([]dto.StockResponse, error) {
	return s.stocks, s.err
}

func (s *stubReaderService) GetStock(ctx context.Context, ticker string) (*dto.StockDetailResponse, error) {
	return s.detail, s.err
}

func (s *stubReaderService) DeleteStock(ctx context.Context, ticker string) error {
	s.deleted = append(s.deleted, ticker)
	return s.err
}

type stubWriterService struct {
	lastBatch []dto.AnalysisRecord
}

func (s *stubWriterService) Write(ctx context.Context, record *dto.AnalysisRecord) error {
	return nil
}

func (s *stubWriterService) WriteBatch(ctx context.Context, records []dto.AnalysisRecord) *dto.WriteSummary {
	s.lastBatch = records
	return &dto.WriteSummary{SuccessCount: len(records)}
}

func (s *stubWriterService) ProcessTask(ctx context.Context) {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return log
}

func TestGetStocks(t *testing.T) {
	reader := &stubReaderService{stocks: []dto.StockResponse{
		{Ticker: "AAPL", Rank: 1},
		{Ticker: "MSFT", Rank: 2},
	}}
	handler := NewStockHandler(reader, testLogger(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stocks", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.GetStocks(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []dto.StockResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "AAPL", got[0].Ticker)
}

func TestGetStockNotFound(t *testing.T) {
	handler := NewStockHandler(&stubReaderService{}, testLogger(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stocks/NOPE", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("ticker")
	c.SetParamValues("NOPE")

	require.NoError(t, handler.GetStock(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetStockDetail(t *testing.T) {
	reader := &stubReaderService{detail: &dto.StockDetailResponse{
		StockResponse: dto.StockResponse{Ticker: "AAPL"},
		Prices:        []dto.PricePointResponse{{Date: "2026-08-20", Price: 231.1}},
	}}
	handler := NewStockHandler(reader, testLogger(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stocks/AAPL", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("ticker")
	c.SetParamValues("AAPL")

	require.NoError(t, handler.GetStock(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got dto.StockDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "AAPL", got.Ticker)
	require.Len(t, got.Prices, 1)
}

func TestDeleteStock(t *testing.T) {
	reader := &stubReaderService{}
	handler := NewStockHandler(reader, testLogger(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/stocks/AAPL", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("ticker")
	c.SetParamValues("AAPL")

	require.NoError(t, handler.DeleteStock(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"AAPL"}, reader.deleted)
}

func TestSubmitBatch(t *testing.T) {
	writer := &stubWriterService{}
	handler := NewAnalysisHandler(writer, testLogger(t))

	body := `{"records":[{"ticker":"AAPL"},{"ticker":"MSFT"}]}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.SubmitBatch(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, writer.lastBatch, 2)

	var summary dto.WriteSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.SuccessCount)
}

func TestSubmitBatchEmpty(t *testing.T) {
	handler := NewAnalysisHandler(&stubWriterService{}, testLogger(t))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analysis", strings.NewReader(`{"records":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.SubmitBatch(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
