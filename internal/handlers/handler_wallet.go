package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// walletHandler handles HTTP requests related to customer wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

// newWalletHandler creates a new walletHandler.
func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{
		walletService: ws,
	}
}

// registerWalletRoutes registers routes related to wallets.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallets := rg.Group("/wallets")
	{
		wallets.POST("", h.createWallet)
		wallets.GET("/:name", h.getWalletByName)
	}
}

// createWallet onboards a new customer wallet with a zero balance.
func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWallet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Attempted to create duplicate wallet", slog.String("name", req.Name))
			c.JSON(http.StatusConflict, gin.H{"error": "Wallet with this name already exists"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create wallet", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wallet"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

// getWalletByName retrieves a wallet, including its current balance, by the
// owner's name.
func (h *walletHandler) getWalletByName(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	wallet, err := h.walletService.GetWalletByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		} else {
			logger.Error("Failed to get wallet", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wallet"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}
