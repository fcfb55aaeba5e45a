package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
	"github.com/praise456/cryptovault-backend/pkg/uow"
)

type InvestmentService struct {
	uow            uow.UOW
	accountRepo    AccountRepository
	investmentRepo InvestmentRepository
}

func NewInvestmentService(u uow.UOW) (*InvestmentService, error) {
	accountRepo, accountRepoErr := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if accountRepoErr != nil {
		return nil, accountRepoErr
	}
	investmentRepo, investmentRepoErr := uow.GetRepositoryAs[InvestmentRepository](u, uow.RepositoryName(repoargs.InvestmentRepoName))
	if investmentRepoErr != nil {
		return nil, investmentRepoErr
	}
	return &InvestmentService{
		uow:            u,
		accountRepo:    accountRepo,
		investmentRepo: investmentRepo,
	}, nil
}

type CreateInvestmentArgs struct {
	AccountID    int64
	Plan         string
	Amount       decimal.Decimal
	Rate         decimal.Decimal
	DurationDays int64
}

// Create records an investment plan. Profit is fixed at creation time as
// round2(amount * rate / 100) and never recomputed. The wallet balance is not
// touched: investments are records, not fund movements. There is no scheduler
// either — an investment stays active past its end date until an admin moves
// it.
func (s *InvestmentService) Create(ctx context.Context, args CreateInvestmentArgs) (*domain.Investment, error) {
	if !args.Amount.IsPositive() || args.DurationDays <= 0 || args.Rate.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	if _, findErr := s.accountRepo.FindByID(ctx, args.AccountID); findErr != nil {
		return nil, fmt.Errorf("creating investment: %w", findErr)
	}

	start := time.Now().UTC()
	end := start.Add(time.Duration(args.DurationDays) * 24 * time.Hour)
	profit := args.Amount.Mul(args.Rate).Div(decimal.NewFromInt(100)).Round(2)

	investment, createErr := s.investmentRepo.Create(ctx, repoargs.InvestmentCreate{
		AccountID: args.AccountID,
		Plan:      args.Plan,
		Amount:    args.Amount,
		Rate:      args.Rate,
		Profit:    profit,
		StartAt:   start,
		EndAt:     end,
		Status:    domain.InvestmentStatusActive,
	})
	if createErr != nil {
		return nil, fmt.Errorf("creating investment: %w", createErr)
	}
	return investment, nil
}

// GetByAccountID returns the account's investments in creation order.
func (s *InvestmentService) GetByAccountID(ctx context.Context, accountID int64) ([]domain.Investment, error) {
	if _, findErr := s.accountRepo.FindByID(ctx, accountID); findErr != nil {
		return nil, findErr //nolint:wrapcheck
	}
	investments, err := s.investmentRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return investments, nil
}

// SetStatus moves an investment to a status from the closed set
// {active, completed, cancelled}. Anything else fails with
// domain.ErrInvalidInvestmentStatus before the store is touched.
func (s *InvestmentService) SetStatus(
	ctx context.Context,
	accountID, investmentID int64,
	status domain.InvestmentStatusType,
) (*domain.Investment, error) {
	if !domain.ValidInvestmentStatus(status) {
		return nil, fmt.Errorf("setting status of investment %d to %q: %w",
			investmentID, status, domain.ErrInvalidInvestmentStatus)
	}

	investment, err := s.investmentRepo.SetStatus(ctx, accountID, investmentID, status)
	if err != nil {
		return nil, fmt.Errorf("setting status of investment %d: %w", investmentID, err)
	}
	return investment, nil
}
