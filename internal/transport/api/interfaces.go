package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
	"github.com/praise456/cryptovault-backend/internal/service"
)

type AccountServicer interface {
	Register(ctx context.Context, args service.RegisterAccountArgs) (*domain.Account, string, error)
	Login(ctx context.Context, args service.LoginAccountArgs) (*domain.Account, string, error)
	GetDashboard(ctx context.Context, id int64) (*domain.Account, error)
	GetRole(ctx context.Context, id int64) (domain.RoleType, error)
	ListAccounts(ctx context.Context, page, limit int64) ([]domain.Account, int64, error)
	Credit(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error)
	SendVerification(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, token string) (*domain.Account, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) (*domain.Account, error)
}

type WalletServicer interface {
	Deposit(ctx context.Context, accountID int64, coin string, amount decimal.Decimal) (*domain.Account, *domain.WalletEntry, error)
	History(ctx context.Context, accountID int64) ([]domain.WalletEntry, decimal.Decimal, error)
	RequestWithdrawal(ctx context.Context, accountID int64, coin string, amount decimal.Decimal) (*domain.Withdrawal, error)
	Withdrawals(ctx context.Context, accountID int64) ([]domain.Withdrawal, error)
	ListAllWithdrawals(ctx context.Context) ([]repoargs.AccountWithdrawal, error)
	ReviewWithdrawal(ctx context.Context, accountID, withdrawalID int64, decision domain.WithdrawalStatusType) (*domain.Withdrawal, error)
}

type InvestmentServicer interface {
	Create(ctx context.Context, args service.CreateInvestmentArgs) (*domain.Investment, error)
	GetByAccountID(ctx context.Context, accountID int64) ([]domain.Investment, error)
	SetStatus(ctx context.Context, accountID, investmentID int64, status domain.InvestmentStatusType) (*domain.Investment, error)
}
