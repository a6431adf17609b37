package http

import (
	"errors"
	"net/http"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/service"
	"golang-stock-advisor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StockHandler handles HTTP requests for instruments and quote ingest.
type StockHandler struct {
	stockService service.StockService
	alertService service.PriceAlertService
	logger       *logger.Logger
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(stockService service.StockService, alertService service.PriceAlertService, logger *logger.Logger) *StockHandler {
	return &StockHandler{stockService: stockService, alertService: alertService, logger: logger}
}

// RegisterRoutes registers the stock routes to the Echo group.
func (h *StockHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetStocks)
	g.GET("/:symbol", h.GetStock)
	g.POST("/:symbol/quote", h.ApplyQuote)
}

// GetStocks godoc
// @Summary List tracked stocks
// @Tags stocks
// @Produce  json
// @Success 200 {array} entity.Stock
// @Failure 500 {object} dto.ErrorResponse
// @Router /stocks [get]
func (h *StockHandler) GetStocks(c echo.Context) error {
	stocks, err := h.stockService.GetStocks(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stocks)
}

// GetStock godoc
// @Summary Get one stock by symbol
// @Tags stocks
// @Produce  json
// @Param   symbol  path    string true    "Instrument symbol"
// @Success 200 {object} entity.Stock
// @Failure 404 {object} dto.ErrorResponse
// @Router /stocks/{symbol} [get]
func (h *StockHandler) GetStock(c echo.Context) error {
	stock, err := h.stockService.GetStock(c.Request().Context(), c.Param("symbol"))
	if err != nil {
		if errors.Is(err, service.ErrStockNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Stock not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stock)
}

// ApplyQuote godoc
// @Summary Apply an OHLC quote update
// @Description Evaluates the price change, conditionally emits a notification, and refreshes the stock row
// @Tags stocks
// @Accept  json
// @Produce  json
// @Param   symbol  path    string true    "Instrument symbol"
// @Param   quote   body    dto.QuoteUpdateRequest true "Latest OHLC quote"
// @Success 200 {object} dto.PriceAlertPayload
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/quote [post]
func (h *StockHandler) ApplyQuote(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing or invalid X-User-ID header"})
	}

	var req dto.QuoteUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	symbol := c.Param("symbol")
	change, err := h.alertService.ApplyQuote(c.Request().Context(), symbol, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuote):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Quote is missing a required OHLC field"})
		case errors.Is(err, service.ErrStockNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Stock not found"})
		case errors.Is(err, service.ErrConcurrentUpdate):
			return c.JSON(http.StatusConflict, echo.Map{"error": "Stock was updated concurrently, retry"})
		default:
			h.logger.Error("Failed to apply quote", logger.ErrorField(err), logger.StringField("symbol", symbol))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"change":         change.Change,
		"percent_change": change.PercentChange,
		"direction":      change.Direction,
	})
}
