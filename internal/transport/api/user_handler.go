package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/praise456/cryptovault-backend/internal/domain"
)

type UserHandler struct {
	accountService AccountServicer
}

func NewUserHandler(accountService AccountServicer) *UserHandler {
	return &UserHandler{
		accountService: accountService,
	}
}

// Dashboard GET RouteGroup + UserRoute. The account together with its wallet,
// investment and withdrawal histories.
func (h *UserHandler) Dashboard(c *gin.Context) {
	currentAccountID := getAccountIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.accountService.GetDashboard(reqCtx, currentAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":        newAccountResponse(account),
		"wallet":      newWalletEntryResponses(account.Wallet),
		"investments": newInvestmentResponses(account.Investments),
		"withdrawals": newWithdrawalResponses(account.Withdrawals),
	})
}
