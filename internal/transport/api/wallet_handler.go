package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/praise456/cryptovault-backend/internal/domain"
)

type WalletHandler struct {
	svs WalletServicer
}

func NewWalletHandler(svs WalletServicer) *WalletHandler {
	return &WalletHandler{
		svs: svs,
	}
}

type WalletMoveParams struct {
	Coin   string          `binding:"required,max=32" json:"coin"`
	Amount decimal.Decimal `json:"amount"`
}

func bindWalletMoveParams(c *gin.Context) (*WalletMoveParams, bool) {
	var params WalletMoveParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return nil, false
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return nil, false
	}
	return &params, true
}

// Deposit POST RouteGroup + WalletDepositRoute. Entry and balance move
// together or not at all.
func (h *WalletHandler) Deposit(c *gin.Context) {
	currentAccountID := getAccountIDFromContext(c)

	params, ok := bindWalletMoveParams(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, entry, err := h.svs.Deposit(reqCtx, currentAccountID, params.Coin, params.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "amount must be positive"})
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balance": account.Balance.InexactFloat64(),
		"entry": WalletEntryResponse{
			ID:     entry.ID,
			Coin:   entry.Coin,
			Amount: entry.Amount.InexactFloat64(),
			Date:   entry.CreatedAt,
		},
	})
}

// History GET RouteGroup + WalletHistoryRoute.
func (h *WalletHandler) History(c *gin.Context) {
	currentAccountID := getAccountIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	entries, balance, err := h.svs.History(reqCtx, currentAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wallet":  newWalletEntryResponses(entries),
		"balance": balance.InexactFloat64(),
	})
}

// WithdrawRequest POST RouteGroup + WalletWithdrawRoute. The balance must
// cover the amount at submit time but nothing is debited until approval.
func (h *WalletHandler) WithdrawRequest(c *gin.Context) {
	currentAccountID := getAccountIDFromContext(c)

	params, ok := bindWalletMoveParams(c)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	withdrawal, err := h.svs.RequestWithdrawal(reqCtx, currentAccountID, params.Coin, params.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "amount must be positive"})
		case errors.Is(err, domain.ErrNotEnoughBalance):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"withdrawal": newWithdrawalResponse(withdrawal)})
}

// Withdrawals GET RouteGroup + WalletWithdrawalsRoute.
func (h *WalletHandler) Withdrawals(c *gin.Context) {
	currentAccountID := getAccountIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	withdrawals, err := h.svs.Withdrawals(reqCtx, currentAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"withdrawals": newWithdrawalResponses(withdrawals)})
}
