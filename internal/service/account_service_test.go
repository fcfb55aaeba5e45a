package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
	"github.com/praise456/cryptovault-backend/internal/service/mocks"
	"github.com/praise456/cryptovault-backend/internal/service/tokens"
	"github.com/praise456/cryptovault-backend/pkg/uow"
	uowmocks "github.com/praise456/cryptovault-backend/pkg/uow/mocks"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockUOW            *uowmocks.MockUOW
	mockTX             *uowmocks.MockTX
	mockAccountRepo    *mocks.MockAccountRepository
	mockWalletRepo     *mocks.MockWalletRepository
	mockWithdrawalRepo *mocks.MockWithdrawalRepository
	mockInvestmentRepo *mocks.MockInvestmentRepository
	mockPsswd          *mocks.MockPasswordHasher
	mockMailer         *mocks.MockMailer
	jwtSecret          []byte
	accountService     *AccountService
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (s *AccountServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockAccountRepo = mocks.NewMockAccountRepository(mockCtrl)
	s.mockWalletRepo = mocks.NewMockWalletRepository(mockCtrl)
	s.mockWithdrawalRepo = mocks.NewMockWithdrawalRepository(mockCtrl)
	s.mockInvestmentRepo = mocks.NewMockInvestmentRepository(mockCtrl)
	s.mockPsswd = mocks.NewMockPasswordHasher(mockCtrl)
	s.mockMailer = mocks.NewMockMailer(mockCtrl)

	s.jwtSecret = []byte("secret")

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAccountRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.WalletRepoName)).
		Return(s.mockWalletRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.WithdrawalRepoName)).
		Return(s.mockWithdrawalRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.InvestmentRepoName)).
		Return(s.mockInvestmentRepo, nil).AnyTimes()

	accountService, servErr := NewAccountService(
		s.mockUOW, s.jwtSecret, s.mockPsswd, s.mockMailer, "http://localhost:8080")
	s.Require().NoError(servErr)
	s.accountService = accountService
}

func (s *AccountServiceTestSuite) expectTransaction() {
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.AccountRepoName)).
		Return(s.mockAccountRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()
}

func (s *AccountServiceTestSuite) TestRegister() {
	argsOk := RegisterAccountArgs{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "<PASSWORD>",
	}
	argsDuplicate := RegisterAccountArgs{
		Email:    "taken@example.com",
		Password: "<PASSWORD>",
	}

	validHashedPassword := "hashedPassword"

	createdAccount := domain.Account{
		ID:        1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Name:      "Alice",
		Email:     "alice@example.com",
		Role:      domain.RoleUser,
		Balance:   decimal.Zero,
	}

	s.expectTransaction()

	s.mockPsswd.EXPECT().HashPassword(argsOk.Password).Return(validHashedPassword, nil)
	s.mockPsswd.EXPECT().HashPassword(argsDuplicate.Password).Return(validHashedPassword, nil)

	// lookups run against the normalized email
	s.mockAccountRepo.EXPECT().
		FindByEmail(gomock.Any(), "alice@example.com").
		Return(nil, domain.ErrRecordNotFound)
	s.mockAccountRepo.EXPECT().
		FindByEmail(gomock.Any(), "taken@example.com").
		Return(&domain.Account{ID: 7, Email: "taken@example.com"}, nil)

	s.mockAccountRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(repoargs.CreateAccount{
			Name:              "Alice",
			Email:             "alice@example.com",
			EncryptedPassword: validHashedPassword,
		})).
		Return(&createdAccount, nil)

	cases := []struct {
		name      string
		args      RegisterAccountArgs
		wantErr   error
		wantToken bool
	}{
		{name: "ok", args: argsOk, wantToken: true},
		{name: "duplicate email", args: argsDuplicate, wantErr: domain.ErrDuplicateKey},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			account, tokenStr, err := s.accountService.Register(s.T().Context(), t.args)
			s.Require().ErrorIs(err, t.wantErr)

			if t.wantToken {
				s.Require().NotNil(account)
				s.Equal(createdAccount.ID, account.ID)

				claims, claimsErr := tokens.ValidateAccountJWT(tokenStr, tokens.PurposeAuth, s.jwtSecret)
				s.Require().NoError(claimsErr)
				s.Equal(createdAccount.ID, claims.ID)
			} else {
				s.Empty(tokenStr)
			}
		})
	}
}

func (s *AccountServiceTestSuite) TestLogin() {
	savedEmail := "bob@example.com"
	validHashPassword := "hash ok"

	savedAccount := domain.Account{
		ID:                3,
		Email:             savedEmail,
		EncryptedPassword: validHashPassword,
		Role:              domain.RoleUser,
	}

	argsOk := LoginAccountArgs{Email: "Bob@Example.com", Password: "<PASSWORD>"}
	argsWrongEmail := LoginAccountArgs{Email: "nobody@example.com", Password: "<PASSWORD>"}
	argsWrongPass := LoginAccountArgs{Email: savedEmail, Password: "wrong pass"}

	s.mockPsswd.EXPECT().ComparePassword(argsOk.Password, validHashPassword).Return(true)
	s.mockPsswd.EXPECT().ComparePassword(argsWrongPass.Password, validHashPassword).Return(false)

	s.mockAccountRepo.EXPECT().
		FindByEmail(gomock.Any(), savedEmail).
		Return(&savedAccount, nil).Times(2)
	s.mockAccountRepo.EXPECT().
		FindByEmail(gomock.Any(), argsWrongEmail.Email).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name    string
		args    LoginAccountArgs
		wantErr error
	}{
		{name: "ok", args: argsOk},
		{name: "unknown email", args: argsWrongEmail, wantErr: domain.ErrRecordNotFound},
		{name: "wrong password", args: argsWrongPass, wantErr: domain.ErrPasswordMissMatch},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			account, tokenStr, err := s.accountService.Login(s.T().Context(), t.args)
			s.Require().ErrorIs(err, t.wantErr)

			if t.wantErr == nil {
				s.Require().NotNil(account)
				s.NotEmpty(tokenStr)

				claims, claimsErr := tokens.ValidateAccountJWT(tokenStr, tokens.PurposeAuth, s.jwtSecret)
				s.Require().NoError(claimsErr)
				s.Equal(savedAccount.ID, claims.ID)
			}
		})
	}
}

func (s *AccountServiceTestSuite) TestGetDashboard() {
	var accountID int64 = 5
	account := domain.Account{ID: accountID, Email: "carol@example.com"}
	wallet := []domain.WalletEntry{{ID: 1, AccountID: accountID, Coin: "BTC", Amount: decimal.NewFromInt(10)}}
	investments := []domain.Investment{{ID: 2, AccountID: accountID, Plan: "starter"}}
	withdrawals := []domain.Withdrawal{{ID: 3, AccountID: accountID, Status: domain.WithdrawalStatusPending}}

	s.mockAccountRepo.EXPECT().FindByID(gomock.Any(), accountID).Return(&account, nil)
	s.mockWalletRepo.EXPECT().GetByAccountID(gomock.Any(), accountID).Return(wallet, nil)
	s.mockInvestmentRepo.EXPECT().GetByAccountID(gomock.Any(), accountID).Return(investments, nil)
	s.mockWithdrawalRepo.EXPECT().GetByAccountID(gomock.Any(), accountID).Return(withdrawals, nil)

	got, err := s.accountService.GetDashboard(s.T().Context(), accountID)
	s.Require().NoError(err)
	s.Equal(wallet, got.Wallet)
	s.Equal(investments, got.Investments)
	s.Equal(withdrawals, got.Withdrawals)
}

func (s *AccountServiceTestSuite) TestListAccountsClampsPaging() {
	accounts := []domain.Account{{ID: 1}, {ID: 2}}

	// page 0 falls back to page 1, limit 0 to the default
	s.mockAccountRepo.EXPECT().List(gomock.Any(), int64(0), int64(100)).Return(accounts, nil)
	// oversized limit is clamped, skip follows the clamped value
	s.mockAccountRepo.EXPECT().List(gomock.Any(), int64(200), int64(200)).Return(accounts, nil)
	s.mockAccountRepo.EXPECT().Count(gomock.Any()).Return(int64(2), nil).Times(2)

	got, total, err := s.accountService.ListAccounts(s.T().Context(), 0, 0)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(got, 2)

	_, _, err = s.accountService.ListAccounts(s.T().Context(), 2, 500)
	s.Require().NoError(err)
}

func (s *AccountServiceTestSuite) TestCredit() {
	var accountID int64 = 9
	amount := decimal.NewFromInt(50)

	s.mockAccountRepo.EXPECT().
		IncrementBalance(gomock.Any(), accountID, amount).
		Return(&domain.Account{ID: accountID, Balance: decimal.NewFromInt(50)}, nil)

	account, err := s.accountService.Credit(s.T().Context(), accountID, amount)
	s.Require().NoError(err)
	s.True(account.Balance.Equal(decimal.NewFromInt(50)))

	// non-positive amounts never reach the repository
	_, err = s.accountService.Credit(s.T().Context(), accountID, decimal.Zero)
	s.Require().ErrorIs(err, domain.ErrInvalidAmount)

	_, err = s.accountService.Credit(s.T().Context(), accountID, decimal.NewFromInt(-5))
	s.Require().ErrorIs(err, domain.ErrInvalidAmount)
}

func (s *AccountServiceTestSuite) TestVerificationFlow() {
	account := domain.Account{ID: 11, Email: "dave@example.com"}

	s.mockAccountRepo.EXPECT().
		FindByEmail(gomock.Any(), account.Email).
		Return(&account, nil)

	var mailedBody string
	s.mockMailer.EXPECT().
		Send(gomock.Any(), account.Email, "Verify Your Email", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, htmlBody string) error {
			mailedBody = htmlBody
			return nil
		})

	s.Require().NoError(s.accountService.SendVerification(s.T().Context(), account.Email))
	s.Contains(mailedBody, "http://localhost:8080/verify.html?token=")

	// pull the token back out of the mailed link
	start := strings.Index(mailedBody, "token=") + len("token=")
	end := strings.Index(mailedBody[start:], `"`)
	tokenStr := mailedBody[start : start+end]

	s.mockAccountRepo.EXPECT().
		SetVerified(gomock.Any(), account.ID, true).
		Return(&domain.Account{ID: account.ID, Verified: true}, nil)

	verified, err := s.accountService.VerifyEmail(s.T().Context(), tokenStr)
	s.Require().NoError(err)
	s.True(verified.Verified)

	// an auth token must not pass as a verification token
	authToken, tokenErr := tokens.GenerateAccountJWT(account.ID, tokens.PurposeAuth, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)
	_, err = s.accountService.VerifyEmail(s.T().Context(), authToken)
	s.Require().ErrorIs(err, tokens.ErrWrongPurpose)
}

func (s *AccountServiceTestSuite) TestResetPassword() {
	account := domain.Account{ID: 13, Email: "erin@example.com"}

	resetToken, tokenErr := tokens.GenerateAccountJWT(account.ID, tokens.PurposeResetPassword, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.mockPsswd.EXPECT().HashPassword("new password").Return("new hash", nil)
	s.mockAccountRepo.EXPECT().
		SetEncryptedPassword(gomock.Any(), account.ID, "new hash").
		Return(&account, nil)

	got, err := s.accountService.ResetPassword(s.T().Context(), resetToken, "new password")
	s.Require().NoError(err)
	s.Equal(account.ID, got.ID)

	// verification tokens are not accepted here
	verifyToken, vErr := tokens.GenerateAccountJWT(account.ID, tokens.PurposeVerifyEmail, time.Hour, s.jwtSecret)
	s.Require().NoError(vErr)
	_, err = s.accountService.ResetPassword(s.T().Context(), verifyToken, "new password")
	s.Require().ErrorIs(err, tokens.ErrWrongPurpose)
}
