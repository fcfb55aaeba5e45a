package repoargs

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/praise456/cryptovault-backend/internal/domain"
)

type InvestmentCreate struct {
	AccountID int64
	Plan      string
	Amount    decimal.Decimal
	Rate      decimal.Decimal
	Profit    decimal.Decimal
	StartAt   time.Time
	EndAt     time.Time
	Status    domain.InvestmentStatusType
}
