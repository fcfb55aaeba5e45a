package repoargs

import (
	"github.com/shopspring/decimal"

	"github.com/praise456/cryptovault-backend/internal/domain"
)

type WithdrawalCreate struct {
	AccountID int64
	Coin      string
	Amount    decimal.Decimal
}

// AccountWithdrawal is a withdrawal joined with its owner's email, the shape
// the admin review screen consumes.
type AccountWithdrawal struct {
	domain.Withdrawal
	Email string
}
