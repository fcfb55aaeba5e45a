package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/praise456/cryptovault-backend/internal/domain"
)

type AdminHandler struct {
	accountService    AccountServicer
	walletService     WalletServicer
	investmentService InvestmentServicer
}

func NewAdminHandler(
	accountService AccountServicer,
	walletService WalletServicer,
	investmentService InvestmentServicer,
) *AdminHandler {
	return &AdminHandler{
		accountService:    accountService,
		walletService:     walletService,
		investmentService: investmentService,
	}
}

func bindAdminParams(c *gin.Context, params any) bool {
	if bindErr := c.ShouldBindJSON(params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return false
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}

// Users GET RouteGroup + AdminUsersRoute. Paginated account listing.
func (h *AdminHandler) Users(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	accounts, total, err := h.accountService.ListAccounts(reqCtx, page, limit)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	users := make([]AccountResponse, len(accounts))
	for i := range accounts {
		users[i] = newAccountResponse(&accounts[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"meta": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

type CreditParams struct {
	UserID int64           `binding:"required" json:"userId"`
	Amount decimal.Decimal `json:"amount"`
}

// Credit POST RouteGroup + AdminCreditRoute. Out-of-band balance adjustment,
// leaves no wallet entry.
func (h *AdminHandler) Credit(c *gin.Context) {
	var params CreditParams
	if !bindAdminParams(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.accountService.Credit(reqCtx, params.UserID, params.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "amount must be positive"})
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newAccountResponse(account)})
}

type InvestmentStatusParams struct {
	UserID       int64  `binding:"required" json:"userId"`
	InvestmentID int64  `binding:"required" json:"investmentId"`
	Status       string `binding:"required" json:"status"`
}

// SetInvestmentStatus POST RouteGroup + AdminStatusRoute.
func (h *AdminHandler) SetInvestmentStatus(c *gin.Context) {
	var params InvestmentStatusParams
	if !bindAdminParams(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	investment, err := h.investmentService.SetStatus(
		reqCtx, params.UserID, params.InvestmentID, domain.InvestmentStatusType(params.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInvestmentStatus):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid investment status"})
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "investment not found"})
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": newInvestmentResponse(investment)})
}

type AdminWithdrawalResponseItem struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"userId"`
	Email  string    `json:"email"`
	Coin   string    `json:"coin"`
	Amount float64   `json:"amount"`
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
}

// Withdrawals GET RouteGroup + AdminWithdrawalsRoute. Every request across all
// accounts, newest first.
func (h *AdminHandler) Withdrawals(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	withdrawals, err := h.walletService.ListAllWithdrawals(reqCtx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]AdminWithdrawalResponseItem, len(withdrawals))
	for i, withdrawal := range withdrawals {
		response[i] = AdminWithdrawalResponseItem{
			ID:     withdrawal.ID,
			UserID: withdrawal.AccountID,
			Email:  withdrawal.Email,
			Coin:   withdrawal.Coin,
			Amount: withdrawal.Amount.InexactFloat64(),
			Status: string(withdrawal.Status),
			Date:   withdrawal.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{"withdrawals": response})
}

type WithdrawalUpdateParams struct {
	UserID       int64  `binding:"required" json:"userId"`
	WithdrawalID int64  `binding:"required" json:"withdrawalId"`
	Status       string `binding:"required" json:"status"`
}

// ReviewWithdrawal POST RouteGroup + AdminWithdrawalsUpdateRoute. Approving
// debits the balance; either way the request is resolved for good.
func (h *AdminHandler) ReviewWithdrawal(c *gin.Context) {
	var params WithdrawalUpdateParams
	if !bindAdminParams(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	withdrawal, err := h.walletService.ReviewWithdrawal(
		reqCtx, params.UserID, params.WithdrawalID, domain.WithdrawalStatusType(params.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDecision):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "status must be approved or rejected"})
		case errors.Is(err, domain.ErrWithdrawalResolved):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "withdrawal already resolved"})
		case errors.Is(err, domain.ErrNotEnoughBalance):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "insufficient balance"})
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "withdrawal not found"})
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"withdrawal": newWithdrawalResponse(withdrawal)})
}
