package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID                int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Name              string
	Email             string
	EncryptedPassword string
	Role              RoleType
	Verified          bool
	Balance           decimal.Decimal

	// Histories are loaded on demand; a bare account row leaves them nil.
	Wallet      []WalletEntry
	Investments []Investment
	Withdrawals []Withdrawal
}

// WalletEntry is an immutable deposit record. Entries are only ever appended.
type WalletEntry struct {
	ID        int64
	AccountID int64
	CreatedAt time.Time
	Coin      string
	Amount    decimal.Decimal
}

// Investment is a fixed-term principal/profit record. It is not linked to the
// wallet balance: creating one neither debits nor credits the account.
type Investment struct {
	ID        int64
	AccountID int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Plan      string
	Amount    decimal.Decimal
	Rate      decimal.Decimal
	Profit    decimal.Decimal
	StartAt   time.Time
	EndAt     time.Time
	Status    InvestmentStatusType
}

type Withdrawal struct {
	ID        int64
	AccountID int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Coin      string
	Amount    decimal.Decimal
	Status    WithdrawalStatusType
}
