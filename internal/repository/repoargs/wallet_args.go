package repoargs

import "github.com/shopspring/decimal"

type WalletEntryCreate struct {
	AccountID int64
	Coin      string
	Amount    decimal.Decimal
}
