package http

import (
	"net/http"

	"golang-stock-resultstore/internal/results/service"
	"golang-stock-resultstore/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles HTTP requests for stored stocks.
type StockHandler struct {
	readerService service.ReaderService
	logger        *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(readerService service.ReaderService, logger *logger.Logger) *StockHandler {
	return &StockHandler{readerService: readerService, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetStocks)
	g.GET("/:ticker", h.GetStock)
	g.DELETE("/:ticker", h.DeleteStock)
}

// GetStocks returns the ranked stock list.
func (h *StockHandler) GetStocks(c echo.Context) error {
	stocks, err := h.readerService.GetStocks(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get stocks", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get stocks"})
	}
	return c.JSON(http.StatusOK, stocks)
}

// GetStock returns a single stock with its price history and predictions.
func (h *StockHandler) GetStock(c echo.Context) error {
	ticker := c.Param("ticker")

	stock, err := h.readerService.GetStock(c.Request().Context(), ticker)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if stock == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Stock not found"})
	}

	return c.JSON(http.StatusOK, stock)
}

// DeleteStock removes a ticker's full row set.
func (h *StockHandler) DeleteStock(c echo.Context) error {
	ticker := c.Param("ticker")

	if err := h.readerService.DeleteStock(c.Request().Context(), ticker); err != nil {
		// The service layer already logs the error
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete stock"})
	}

	return c.NoContent(http.StatusNoContent)
}
