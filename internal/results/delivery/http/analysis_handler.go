package http

import (
	"net/http"

	"golang-stock-resultstore/internal/results/dto"
	"golang-stock-resultstore/internal/results/service"
	"golang-stock-resultstore/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler handles HTTP submission of analysis batches.
type AnalysisHandler struct {
	writerService service.WriterService
	logger        *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(writerService service.WriterService, logger *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{writerService: writerService, logger: logger}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.SubmitBatch)
}

// SubmitBatch persists a batch of analysis records and returns the write
// summary. Individual record failures are tallied, not surfaced as HTTP
// errors.
func (h *AnalysisHandler) SubmitBatch(c echo.Context) error {
	var batch dto.AnalysisBatch
	if err := c.Bind(&batch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if len(batch.Records) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Batch contains no records"})
	}

	summary := h.writerService.WriteBatch(c.Request().Context(), batch.Records)
	return c.JSON(http.StatusOK, summary)
}
