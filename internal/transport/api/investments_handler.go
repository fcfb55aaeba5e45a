package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/service"
)

type InvestmentsHandler struct {
	svs InvestmentServicer
}

func NewInvestmentsHandler(svs InvestmentServicer) *InvestmentsHandler {
	return &InvestmentsHandler{
		svs: svs,
	}
}

type CreateInvestmentParams struct {
	Plan         string          `binding:"required,max=64" json:"plan"`
	Amount       decimal.Decimal `json:"amount"`
	Rate         decimal.Decimal `json:"rate"`
	DurationDays int64           `json:"durationDays"`
}

// Create POST RouteGroup + InvestmentsCreateRoute. Records the plan only,
// funds never move.
func (h *InvestmentsHandler) Create(c *gin.Context) {
	currentAccountID := getAccountIDFromContext(c)

	var params CreateInvestmentParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	investment, err := h.svs.Create(reqCtx, service.CreateInvestmentArgs{
		AccountID:    currentAccountID,
		Plan:         params.Plan,
		Amount:       params.Amount,
		Rate:         params.Rate,
		DurationDays: params.DurationDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid investment parameters"})
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"investment": newInvestmentResponse(investment)})
}

// Index GET RouteGroup + InvestmentsRoute.
func (h *InvestmentsHandler) Index(c *gin.Context) {
	currentAccountID := getAccountIDFromContext(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	investments, err := h.svs.GetByAccountID(reqCtx, currentAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investments": newInvestmentResponses(investments)})
}
