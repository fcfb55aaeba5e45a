package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type AccountRepository interface {
	Create(ctx context.Context, args repoargs.CreateAccount) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	IncrementBalance(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error)
	DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error)
	SetEncryptedPassword(ctx context.Context, id int64, encryptedPassword string) (*domain.Account, error)
	SetVerified(ctx context.Context, id int64, verified bool) (*domain.Account, error)
	List(ctx context.Context, skip, limit int64) ([]domain.Account, error)
	Count(ctx context.Context) (int64, error)
}

type WalletRepository interface {
	CreateEntry(ctx context.Context, args repoargs.WalletEntryCreate) (*domain.WalletEntry, error)
	GetByAccountID(ctx context.Context, accountID int64) ([]domain.WalletEntry, error)
}

type WithdrawalRepository interface {
	Create(ctx context.Context, args repoargs.WithdrawalCreate) (*domain.Withdrawal, error)
	GetByAccountID(ctx context.Context, accountID int64) ([]domain.Withdrawal, error)
	FindForUpdate(ctx context.Context, id int64) (*domain.Withdrawal, error)
	SetStatus(ctx context.Context, id int64, status domain.WithdrawalStatusType) (*domain.Withdrawal, error)
	ListAll(ctx context.Context) ([]repoargs.AccountWithdrawal, error)
}

type InvestmentRepository interface {
	Create(ctx context.Context, args repoargs.InvestmentCreate) (*domain.Investment, error)
	GetByAccountID(ctx context.Context, accountID int64) ([]domain.Investment, error)
	SetStatus(ctx context.Context, accountID, id int64, status domain.InvestmentStatusType) (*domain.Investment, error)
}
