package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
	"github.com/praise456/cryptovault-backend/internal/service/mocks"
	"github.com/praise456/cryptovault-backend/pkg/uow"
	uowmocks "github.com/praise456/cryptovault-backend/pkg/uow/mocks"
)

type WalletServiceTestSuite struct {
	suite.Suite
	mockUOW            *uowmocks.MockUOW
	mockTX             *uowmocks.MockTX
	mockAccountRepo    *mocks.MockAccountRepository
	mockWalletRepo     *mocks.MockWalletRepository
	mockWithdrawalRepo *mocks.MockWithdrawalRepository
	walletService      *WalletService
}

func TestWalletServiceSuite(t *testing.T) {
	suite.Run(t, new(WalletServiceTestSuite))
}

func (s *WalletServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockAccountRepo = mocks.NewMockAccountRepository(mockCtrl)
	s.mockWalletRepo = mocks.NewMockWalletRepository(mockCtrl)
	s.mockWithdrawalRepo = mocks.NewMockWithdrawalRepository(mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAccountRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.WalletRepoName)).
		Return(s.mockWalletRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.WithdrawalRepoName)).
		Return(s.mockWithdrawalRepo, nil).AnyTimes()

	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAccountRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.WalletRepoName)).
		Return(s.mockWalletRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.WithdrawalRepoName)).
		Return(s.mockWithdrawalRepo, nil).AnyTimes()

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()

	walletService, servErr := NewWalletService(s.mockUOW)
	s.Require().NoError(servErr)
	s.walletService = walletService
}

func (s *WalletServiceTestSuite) TestDeposit() {
	var accountID int64 = 1
	amount := decimal.NewFromInt(50)

	s.mockAccountRepo.EXPECT().
		IncrementBalance(gomock.Any(), accountID, amount).
		Return(&domain.Account{ID: accountID, Balance: decimal.NewFromInt(150)}, nil)

	s.mockWalletRepo.EXPECT().
		CreateEntry(gomock.Any(), gomock.Eq(repoargs.WalletEntryCreate{
			AccountID: accountID,
			Coin:      "BTC",
			Amount:    amount,
		})).
		Return(&domain.WalletEntry{ID: 1, AccountID: accountID, Coin: "BTC", Amount: amount}, nil)

	account, entry, err := s.walletService.Deposit(s.T().Context(), accountID, "BTC", amount)
	s.Require().NoError(err)
	s.True(account.Balance.Equal(decimal.NewFromInt(150)))
	s.True(entry.Amount.Equal(amount))

	// non-positive amounts never start a transaction
	_, _, err = s.walletService.Deposit(s.T().Context(), accountID, "BTC", decimal.Zero)
	s.Require().ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *WalletServiceTestSuite) TestDepositMissingAccount() {
	var accountID int64 = 404
	amount := decimal.NewFromInt(10)

	s.mockAccountRepo.EXPECT().
		IncrementBalance(gomock.Any(), accountID, amount).
		Return(nil, domain.ErrRecordNotFound)

	_, _, err := s.walletService.Deposit(s.T().Context(), accountID, "ETH", amount)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *WalletServiceTestSuite) TestRequestWithdrawal() {
	var accountID int64 = 2
	account := domain.Account{ID: accountID, Balance: decimal.NewFromInt(100)}

	okAmount := decimal.NewFromInt(30)
	tooMuch := decimal.NewFromInt(1000)

	s.mockAccountRepo.EXPECT().
		FindByIDForUpdate(gomock.Any(), accountID).
		Return(&account, nil).Times(2)

	s.mockWithdrawalRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(repoargs.WithdrawalCreate{
			AccountID: accountID,
			Coin:      "BTC",
			Amount:    okAmount,
		})).
		Return(&domain.Withdrawal{
			ID:        1,
			AccountID: accountID,
			Coin:      "BTC",
			Amount:    okAmount,
			Status:    domain.WithdrawalStatusPending,
		}, nil)

	withdrawal, err := s.walletService.RequestWithdrawal(s.T().Context(), accountID, "BTC", okAmount)
	s.Require().NoError(err)
	s.Equal(domain.WithdrawalStatusPending, withdrawal.Status)

	// over the balance: no withdrawal row is created
	_, err = s.walletService.RequestWithdrawal(s.T().Context(), accountID, "BTC", tooMuch)
	s.Require().ErrorIs(err, domain.ErrNotEnoughBalance)
}

func (s *WalletServiceTestSuite) TestReviewWithdrawalApprove() {
	var accountID int64 = 3
	var withdrawalID int64 = 10
	amount := decimal.NewFromInt(30)

	pending := domain.Withdrawal{
		ID:        withdrawalID,
		AccountID: accountID,
		Amount:    amount,
		Status:    domain.WithdrawalStatusPending,
	}

	s.mockWithdrawalRepo.EXPECT().
		FindForUpdate(gomock.Any(), withdrawalID).
		Return(&pending, nil)
	s.mockAccountRepo.EXPECT().
		DebitBalance(gomock.Any(), accountID, amount).
		Return(&domain.Account{ID: accountID, Balance: decimal.NewFromInt(70)}, nil)
	s.mockWithdrawalRepo.EXPECT().
		SetStatus(gomock.Any(), withdrawalID, domain.WithdrawalStatusApproved).
		Return(&domain.Withdrawal{ID: withdrawalID, AccountID: accountID, Amount: amount, Status: domain.WithdrawalStatusApproved}, nil)

	withdrawal, err := s.walletService.ReviewWithdrawal(
		s.T().Context(), accountID, withdrawalID, domain.WithdrawalStatusApproved)
	s.Require().NoError(err)
	s.Equal(domain.WithdrawalStatusApproved, withdrawal.Status)
}

func (s *WalletServiceTestSuite) TestReviewWithdrawalReject() {
	var accountID int64 = 3
	var withdrawalID int64 = 11

	pending := domain.Withdrawal{
		ID:        withdrawalID,
		AccountID: accountID,
		Amount:    decimal.NewFromInt(30),
		Status:    domain.WithdrawalStatusPending,
	}

	s.mockWithdrawalRepo.EXPECT().
		FindForUpdate(gomock.Any(), withdrawalID).
		Return(&pending, nil)
	// rejection must not touch the balance
	s.mockAccountRepo.EXPECT().
		DebitBalance(gomock.Any(), gomock.Any(), gomock.Any()).
		Times(0)
	s.mockWithdrawalRepo.EXPECT().
		SetStatus(gomock.Any(), withdrawalID, domain.WithdrawalStatusRejected).
		Return(&domain.Withdrawal{ID: withdrawalID, AccountID: accountID, Status: domain.WithdrawalStatusRejected}, nil)

	withdrawal, err := s.walletService.ReviewWithdrawal(
		s.T().Context(), accountID, withdrawalID, domain.WithdrawalStatusRejected)
	s.Require().NoError(err)
	s.Equal(domain.WithdrawalStatusRejected, withdrawal.Status)
}

func (s *WalletServiceTestSuite) TestReviewWithdrawalGuards() {
	var accountID int64 = 4
	var withdrawalID int64 = 12

	resolved := domain.Withdrawal{
		ID:        withdrawalID,
		AccountID: accountID,
		Amount:    decimal.NewFromInt(30),
		Status:    domain.WithdrawalStatusApproved,
	}
	foreign := domain.Withdrawal{
		ID:        withdrawalID,
		AccountID: accountID + 1,
		Amount:    decimal.NewFromInt(30),
		Status:    domain.WithdrawalStatusPending,
	}

	s.mockWithdrawalRepo.EXPECT().
		FindForUpdate(gomock.Any(), withdrawalID).
		Return(&resolved, nil)

	// approving twice can never debit twice
	_, err := s.walletService.ReviewWithdrawal(
		s.T().Context(), accountID, withdrawalID, domain.WithdrawalStatusApproved)
	s.Require().ErrorIs(err, domain.ErrWithdrawalResolved)

	s.mockWithdrawalRepo.EXPECT().
		FindForUpdate(gomock.Any(), withdrawalID).
		Return(&foreign, nil)

	// a withdrawal addressed through the wrong account looks absent
	_, err = s.walletService.ReviewWithdrawal(
		s.T().Context(), accountID, withdrawalID, domain.WithdrawalStatusApproved)
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)

	// decisions outside approved/rejected are rejected up front
	_, err = s.walletService.ReviewWithdrawal(
		s.T().Context(), accountID, withdrawalID, domain.WithdrawalStatusPending)
	s.Require().ErrorIs(err, domain.ErrInvalidDecision)
}
