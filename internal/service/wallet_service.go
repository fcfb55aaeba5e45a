package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
	"github.com/praise456/cryptovault-backend/pkg/uow"
)

type WalletService struct {
	uow            uow.UOW
	accountRepo    AccountRepository
	walletRepo     WalletRepository
	withdrawalRepo WithdrawalRepository
}

func NewWalletService(u uow.UOW) (*WalletService, error) {
	accountRepo, accountRepoErr := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if accountRepoErr != nil {
		return nil, accountRepoErr
	}
	walletRepo, walletRepoErr := uow.GetRepositoryAs[WalletRepository](u, uow.RepositoryName(repoargs.WalletRepoName))
	if walletRepoErr != nil {
		return nil, walletRepoErr
	}
	withdrawalRepo, withdrawalRepoErr := uow.GetRepositoryAs[WithdrawalRepository](u, uow.RepositoryName(repoargs.WithdrawalRepoName))
	if withdrawalRepoErr != nil {
		return nil, withdrawalRepoErr
	}
	return &WalletService{
		uow:            u,
		accountRepo:    accountRepo,
		walletRepo:     walletRepo,
		withdrawalRepo: withdrawalRepo,
	}, nil
}

// Deposit increments the balance and appends the wallet entry in one
// transaction; a reader never observes one without the other. There is no
// upper bound on deposit amounts.
func (s *WalletService) Deposit(
	ctx context.Context,
	accountID int64,
	coin string,
	amount decimal.Decimal,
) (*domain.Account, *domain.WalletEntry, error) {
	if !amount.IsPositive() {
		return nil, nil, domain.ErrInvalidAmount
	}

	var account *domain.Account
	var entry *domain.WalletEntry
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accountRepo, accountRepoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if accountRepoErr != nil {
			return accountRepoErr //nolint:wrapcheck
		}
		walletRepo, walletRepoErr := uow.GetAs[WalletRepository](tx, uow.RepositoryName(repoargs.WalletRepoName))
		if walletRepoErr != nil {
			return walletRepoErr //nolint:wrapcheck
		}

		var incErr error
		account, incErr = accountRepo.IncrementBalance(c, accountID, amount)
		if incErr != nil {
			return incErr //nolint:wrapcheck
		}

		var entryErr error
		entry, entryErr = walletRepo.CreateEntry(c, repoargs.WalletEntryCreate{
			AccountID: accountID,
			Coin:      coin,
			Amount:    amount,
		})
		return entryErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, nil, fmt.Errorf("depositing to account %d: %w", accountID, txErr)
	}
	return account, entry, nil
}

// History returns the wallet entries in chronological order together with the
// current balance.
func (s *WalletService) History(ctx context.Context, accountID int64) ([]domain.WalletEntry, decimal.Decimal, error) {
	account, findErr := s.accountRepo.FindByID(ctx, accountID)
	if findErr != nil {
		return nil, decimal.Decimal{}, findErr //nolint:wrapcheck
	}
	entries, entriesErr := s.walletRepo.GetByAccountID(ctx, accountID)
	if entriesErr != nil {
		return nil, decimal.Decimal{}, entriesErr //nolint:wrapcheck
	}
	return entries, account.Balance, nil
}

// RequestWithdrawal appends a pending withdrawal after checking the balance
// covers the amount at submit time. The balance is NOT debited and no funds
// are reserved: several pending requests may together exceed the balance, each
// one only had to pass the check against the balance it saw. Approval is where
// funds actually move.
func (s *WalletService) RequestWithdrawal(
	ctx context.Context,
	accountID int64,
	coin string,
	amount decimal.Decimal,
) (*domain.Withdrawal, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var withdrawal *domain.Withdrawal
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accountRepo, accountRepoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if accountRepoErr != nil {
			return accountRepoErr //nolint:wrapcheck
		}
		withdrawalRepo, withdrawalRepoErr := uow.GetAs[WithdrawalRepository](tx, uow.RepositoryName(repoargs.WithdrawalRepoName))
		if withdrawalRepoErr != nil {
			return withdrawalRepoErr //nolint:wrapcheck
		}

		account, findErr := accountRepo.FindByIDForUpdate(c, accountID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if account.Balance.LessThan(amount) {
			return domain.ErrNotEnoughBalance
		}

		var createErr error
		withdrawal, createErr = withdrawalRepo.Create(c, repoargs.WithdrawalCreate{
			AccountID: accountID,
			Coin:      coin,
			Amount:    amount,
		})
		return createErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, fmt.Errorf("requesting withdrawal for account %d: %w", accountID, txErr)
	}
	return withdrawal, nil
}

// Withdrawals lists the account's withdrawal requests in creation order.
func (s *WalletService) Withdrawals(ctx context.Context, accountID int64) ([]domain.Withdrawal, error) {
	if _, findErr := s.accountRepo.FindByID(ctx, accountID); findErr != nil {
		return nil, findErr //nolint:wrapcheck
	}
	withdrawals, err := s.withdrawalRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return withdrawals, nil
}

// ListAllWithdrawals returns every request with the owner's email, newest
// first. Admin view.
func (s *WalletService) ListAllWithdrawals(ctx context.Context) ([]repoargs.AccountWithdrawal, error) {
	withdrawals, err := s.withdrawalRepo.ListAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return withdrawals, nil
}

// ReviewWithdrawal resolves a pending withdrawal. pending -> approved debits
// the balance atomically with the status change; pending -> rejected touches
// nothing but the status. Both outcomes are terminal: a resolved withdrawal
// yields domain.ErrWithdrawalResolved, so approving twice can never debit
// twice. The row lock plus the conditional debit make concurrent approvals of
// two different withdrawals on one account safe as well — the second one
// re-checks against the committed balance and fails with
// domain.ErrNotEnoughBalance rather than overdrawing.
func (s *WalletService) ReviewWithdrawal(
	ctx context.Context,
	accountID, withdrawalID int64,
	decision domain.WithdrawalStatusType,
) (*domain.Withdrawal, error) {
	if decision != domain.WithdrawalStatusApproved && decision != domain.WithdrawalStatusRejected {
		return nil, fmt.Errorf("reviewing withdrawal %d: decision %q: %w",
			withdrawalID, decision, domain.ErrInvalidDecision)
	}

	var withdrawal *domain.Withdrawal
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accountRepo, accountRepoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if accountRepoErr != nil {
			return accountRepoErr //nolint:wrapcheck
		}
		withdrawalRepo, withdrawalRepoErr := uow.GetAs[WithdrawalRepository](tx, uow.RepositoryName(repoargs.WithdrawalRepoName))
		if withdrawalRepoErr != nil {
			return withdrawalRepoErr //nolint:wrapcheck
		}

		locked, findErr := withdrawalRepo.FindForUpdate(c, withdrawalID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if locked.AccountID != accountID {
			return domain.ErrRecordNotFound
		}
		if locked.Status != domain.WithdrawalStatusPending {
			return domain.ErrWithdrawalResolved
		}

		if decision == domain.WithdrawalStatusApproved {
			if _, debitErr := accountRepo.DebitBalance(c, accountID, locked.Amount); debitErr != nil {
				return debitErr //nolint:wrapcheck
			}
		}

		var statusErr error
		withdrawal, statusErr = withdrawalRepo.SetStatus(c, withdrawalID, decision)
		return statusErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, fmt.Errorf("reviewing withdrawal %d: %w", withdrawalID, txErr)
	}
	return withdrawal, nil
}
