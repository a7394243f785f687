package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.setExchangeRate)
		exchangeRates.GET("/:currency", h.getExchangeRate)
	}
}

// setExchangeRate records a new rate for a (currency, date) pair. Rates are
// append-only: posting the same pair twice is a conflict.
func (h *exchangeRateHandler) setExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.exchangeRateService.SetRate(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Attempted to overwrite exchange rate", slog.String("currency_code", req.CurrencyCode), slog.String("rate_date", req.RateDate))
			c.JSON(http.StatusConflict, gin.H{"error": "Rate for this currency and date already exists"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to set exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate recorded", slog.String("currency_code", rate.CurrencyCode), slog.String("rate_date", rate.RateDate.Format(dto.DateLayout)))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// getExchangeRate resolves the rate of a currency against the base currency
// for a given date (today when the date query parameter is omitted).
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := strings.ToUpper(c.Param("currency"))

	if len(currencyCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code must be 3 letters"})
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dto.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		parsed = parsed.UTC()
		date = &parsed
	}

	rate, err := h.exchangeRateService.GetRate(c.Request.Context(), currencyCode, date)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRateUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No rate recorded for this currency and date"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		default:
			logger.Error("Failed to get exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	resolvedDate := time.Now().UTC()
	if date != nil {
		resolvedDate = *date
	}
	c.JSON(http.StatusOK, dto.RateResponse{
		CurrencyCode: currencyCode,
		Date:         resolvedDate.Format(dto.DateLayout),
		Rate:         rate,
	})
}
