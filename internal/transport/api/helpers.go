package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/transport/api/middlewares"
)

// getAccountIDFromContext reads the current account id placed into the gin
// context by middlewares.AuthRequired. Returns 0 when absent or of the wrong
// type.
func getAccountIDFromContext(c *gin.Context) int64 {
	raw, exist := c.Get(middlewares.CurrentAccountIDKey)
	if !exist {
		return 0
	}
	id, ok := raw.(int64)
	if !ok {
		return 0
	}
	return id
}

// AccountResponse is the outward account shape. Credential material never
// appears here.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WalletEntryResponse struct {
	ID     int64     `json:"id"`
	Coin   string    `json:"coin"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

type WithdrawalResponse struct {
	ID     int64     `json:"id"`
	Coin   string    `json:"coin"`
	Amount float64   `json:"amount"`
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
}

type InvestmentResponse struct {
	ID     int64     `json:"id"`
	Plan   string    `json:"plan"`
	Amount float64   `json:"amount"`
	Rate   float64   `json:"rate"`
	Profit float64   `json:"profit"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

func newAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Role:      string(account.Role),
		Verified:  account.Verified,
		Balance:   account.Balance.InexactFloat64(),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func newWalletEntryResponses(entries []domain.WalletEntry) []WalletEntryResponse {
	result := make([]WalletEntryResponse, len(entries))
	for i, entry := range entries {
		result[i] = WalletEntryResponse{
			ID:     entry.ID,
			Coin:   entry.Coin,
			Amount: entry.Amount.InexactFloat64(),
			Date:   entry.CreatedAt,
		}
	}
	return result
}

func newWithdrawalResponse(withdrawal *domain.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:     withdrawal.ID,
		Coin:   withdrawal.Coin,
		Amount: withdrawal.Amount.InexactFloat64(),
		Status: string(withdrawal.Status),
		Date:   withdrawal.CreatedAt,
	}
}

func newWithdrawalResponses(withdrawals []domain.Withdrawal) []WithdrawalResponse {
	result := make([]WithdrawalResponse, len(withdrawals))
	for i := range withdrawals {
		result[i] = newWithdrawalResponse(&withdrawals[i])
	}
	return result
}

func newInvestmentResponse(investment *domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:     investment.ID,
		Plan:   investment.Plan,
		Amount: investment.Amount.InexactFloat64(),
		Rate:   investment.Rate.InexactFloat64(),
		Profit: investment.Profit.InexactFloat64(),
		Start:  investment.StartAt,
		End:    investment.EndAt,
		Status: string(investment.Status),
	}
}

func newInvestmentResponses(investments []domain.Investment) []InvestmentResponse {
	result := make([]InvestmentResponse, len(investments))
	for i := range investments {
		result[i] = newInvestmentResponse(&investments[i])
	}
	return result
}
