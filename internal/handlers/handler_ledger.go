package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/middleware"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/export"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for the two ledger operations and the
// transaction log.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers the ledger operation and log query routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	wallets := rg.Group("/wallets")
	{
		wallets.POST("/replenishment", h.replenish)
		wallets.POST("/transfer", h.transfer)
	}
	rg.POST("/transactions", h.listTransactions)
}

// replenish funds a wallet from outside the system.
func (h *ledgerHandler) replenish(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReplenishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Replenish", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallet, err := h.ledgerService.Replenish(c.Request.Context(), req)
	if err != nil {
		h.writeLedgerError(c, err, "Failed to replenish wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// transfer moves funds between two wallets.
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallets, err := h.ledgerService.Transfer(c.Request.Context(), req)
	if err != nil {
		h.writeLedgerError(c, err, "Failed to transfer funds")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponses(wallets))
}

// listTransactions returns the customer's transaction history as JSON, or as
// a CSV or XML download when a format is requested.
func (h *ledgerHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ListTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	transactions, err := h.ledgerService.ListTransactions(c.Request.Context(), req)
	if err != nil {
		h.writeLedgerError(c, err, "Failed to list transactions")
		return
	}

	switch req.Format {
	case dto.FormatCSV:
		out, err := export.TransactionsToCSV(transactions)
		if err != nil {
			logger.Error("Failed to render CSV", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render transactions"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="transactions.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
	case dto.FormatXML:
		out, err := export.TransactionsToXML(transactions)
		if err != nil {
			logger.Error("Failed to render XML", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render transactions"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="transactions.xml"`)
		c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(out))
	default:
		c.JSON(http.StatusOK, dto.ToTransactionResponses(transactions))
	}
}

// writeLedgerError maps service errors onto HTTP statuses shared by the
// ledger endpoints.
func (h *ledgerHandler) writeLedgerError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
