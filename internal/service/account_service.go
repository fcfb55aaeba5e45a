package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
	"github.com/praise456/cryptovault-backend/internal/service/tokens"
	"github.com/praise456/cryptovault-backend/pkg/uow"
)

// JWTTokenExpire applies to every issued token: auth, email verification and
// password reset alike.
const JWTTokenExpire = 1 * time.Hour

const (
	accountsDefaultLimit int64 = 100
	accountsMaxLimit     int64 = 200
)

type AccountService struct {
	uow            uow.UOW
	accountRepo    AccountRepository
	walletRepo     WalletRepository
	withdrawalRepo WithdrawalRepository
	investmentRepo InvestmentRepository
	psswd          PasswordHasher
	mailer         Mailer
	jwtTokenSecret []byte
	baseURL        string
}

func NewAccountService(
	u uow.UOW,
	jwtTokenSecret []byte,
	psswd PasswordHasher,
	mailer Mailer,
	baseURL string,
) (*AccountService, error) {
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
	investmentRepo, investmentRepoErr := uow.GetRepositoryAs[InvestmentRepository](u, uow.RepositoryName(repoargs.InvestmentRepoName))
	if investmentRepoErr != nil {
		return nil, investmentRepoErr
	}
	return &AccountService{
		uow:            u,
		accountRepo:    accountRepo,
		walletRepo:     walletRepo,
		withdrawalRepo: withdrawalRepo,
		investmentRepo: investmentRepo,
		psswd:          psswd,
		mailer:         mailer,
		jwtTokenSecret: jwtTokenSecret,
		baseURL:        baseURL,
	}, nil
}

type RegisterAccountArgs struct {
	Name     string
	Email    string
	Password string
}

// Register creates an account and authenticates it. Returns the created
// account, an auth token and an error. A normalized-email collision yields
// domain.ErrDuplicateKey: the lookup below is only a fast pre-check, the
// unique index makes the guarantee hold under races.
func (s *AccountService) Register(ctx context.Context, args RegisterAccountArgs) (*domain.Account, string, error) {
	encrypted, hashErr := s.psswd.HashPassword(args.Password)
	if hashErr != nil {
		return nil, "", fmt.Errorf("registering account: %s", hashErr.Error())
	}

	email := NormalizeEmail(args.Email)

	var account *domain.Account
	var token string
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accountRepo, repoErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		if _, findErr := accountRepo.FindByEmail(c, email); findErr == nil {
			return domain.ErrDuplicateKey
		} else if !errors.Is(findErr, domain.ErrRecordNotFound) {
			return findErr //nolint:wrapcheck
		}

		var createErr error
		account, createErr = accountRepo.Create(c, repoargs.CreateAccount{
			Name:              strings.TrimSpace(args.Name),
			Email:             email,
			EncryptedPassword: encrypted,
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}

		var tokenErr error
		token, tokenErr = tokens.GenerateAccountJWT(account.ID, tokens.PurposeAuth, JWTTokenExpire, s.jwtTokenSecret)
		return tokenErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, "", fmt.Errorf("registering account: %w", txErr)
	}
	return account, token, nil
}

type LoginAccountArgs struct {
	Email    string
	Password string
}

// Login authenticates by email/password. An unknown email returns
// domain.ErrRecordNotFound and a wrong password domain.ErrPasswordMissMatch;
// the transport collapses both into one generic response so callers cannot
// probe which emails are registered.
func (s *AccountService) Login(ctx context.Context, args LoginAccountArgs) (*domain.Account, string, error) {
	account, findErr := s.accountRepo.FindByEmail(ctx, NormalizeEmail(args.Email))
	if findErr != nil {
		return nil, "", fmt.Errorf("logging in: %w", findErr)
	}

	if !s.psswd.ComparePassword(args.Password, account.EncryptedPassword) {
		return nil, "", fmt.Errorf("logging in: %w", domain.ErrPasswordMissMatch)
	}

	token, tokenErr := tokens.GenerateAccountJWT(account.ID, tokens.PurposeAuth, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("logging in: %w", tokenErr)
	}
	return account, token, nil
}

// GetDashboard returns the account with its wallet, investment and withdrawal
// histories loaded.
func (s *AccountService) GetDashboard(ctx context.Context, id int64) (*domain.Account, error) {
	account, findErr := s.accountRepo.FindByID(ctx, id)
	if findErr != nil {
		return nil, findErr //nolint:wrapcheck
	}

	wallet, walletErr := s.walletRepo.GetByAccountID(ctx, id)
	if walletErr != nil {
		return nil, walletErr //nolint:wrapcheck
	}
	investments, investErr := s.investmentRepo.GetByAccountID(ctx, id)
	if investErr != nil {
		return nil, investErr //nolint:wrapcheck
	}
	withdrawals, wdErr := s.withdrawalRepo.GetByAccountID(ctx, id)
	if wdErr != nil {
		return nil, wdErr //nolint:wrapcheck
	}

	account.Wallet = wallet
	account.Investments = investments
	account.Withdrawals = withdrawals
	return account, nil
}

// GetRole is the lookup behind the admin gate.
func (s *AccountService) GetRole(ctx context.Context, id int64) (domain.RoleType, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	return account.Role, nil
}

// ListAccounts returns a page of accounts plus the total count across all
// accounts. page starts at 1; limit is clamped to [1, 200] with a default of
// 100 when non-positive.
func (s *AccountService) ListAccounts(ctx context.Context, page, limit int64) ([]domain.Account, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = accountsDefaultLimit
	}
	if limit > accountsMaxLimit {
		limit = accountsMaxLimit
	}
	skip := (page - 1) * limit

	accounts, listErr := s.accountRepo.List(ctx, skip, limit)
	if listErr != nil {
		return nil, 0, listErr //nolint:wrapcheck
	}
	total, countErr := s.accountRepo.Count(ctx)
	if countErr != nil {
		return nil, 0, countErr //nolint:wrapcheck
	}
	return accounts, total, nil
}

// Credit is the admin out-of-band balance adjustment. Unlike a deposit it
// leaves no wallet entry behind.
func (s *AccountService) Credit(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	account, err := s.accountRepo.IncrementBalance(ctx, id, amount)
	if err != nil {
		return nil, fmt.Errorf("crediting account %d: %w", id, err)
	}
	return account, nil
}

// SendVerification mails a signed verification link to the account's address.
func (s *AccountService) SendVerification(ctx context.Context, email string) error {
	return s.sendAccountLink(ctx, email, tokens.PurposeVerifyEmail,
		"Verify Your Email", "Verify your email", "/verify.html?token=")
}

// VerifyEmail consumes a verification token and marks the account verified.
func (s *AccountService) VerifyEmail(ctx context.Context, token string) (*domain.Account, error) {
	claims, claimsErr := tokens.ValidateAccountJWT(token, tokens.PurposeVerifyEmail, s.jwtTokenSecret)
	if claimsErr != nil {
		return nil, fmt.Errorf("verifying email: %w", claimsErr)
	}
	account, err := s.accountRepo.SetVerified(ctx, claims.ID, true)
	if err != nil {
		return nil, fmt.Errorf("verifying email: %w", err)
	}
	return account, nil
}

// ForgotPassword mails a signed reset link to the account's address.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	return s.sendAccountLink(ctx, email, tokens.PurposeResetPassword,
		"Reset Password", "Reset your password", "/reset-password.html?token=")
}

// ResetPassword consumes a reset token and replaces the credential material.
func (s *AccountService) ResetPassword(ctx context.Context, token, password string) (*domain.Account, error) {
	claims, claimsErr := tokens.ValidateAccountJWT(token, tokens.PurposeResetPassword, s.jwtTokenSecret)
	if claimsErr != nil {
		return nil, fmt.Errorf("resetting password: %w", claimsErr)
	}
	encrypted, hashErr := s.psswd.HashPassword(password)
	if hashErr != nil {
		return nil, fmt.Errorf("resetting password: %s", hashErr.Error())
	}
	account, err := s.accountRepo.SetEncryptedPassword(ctx, claims.ID, encrypted)
	if err != nil {
		return nil, fmt.Errorf("resetting password: %w", err)
	}
	return account, nil
}

func (s *AccountService) sendAccountLink(
	ctx context.Context,
	email string,
	purpose tokens.Purpose,
	subject, heading, path string,
) error {
	account, findErr := s.accountRepo.FindByEmail(ctx, NormalizeEmail(email))
	if findErr != nil {
		return fmt.Errorf("sending %s link: %w", purpose, findErr)
	}

	token, tokenErr := tokens.GenerateAccountJWT(account.ID, purpose, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return fmt.Errorf("sending %s link: %w", purpose, tokenErr)
	}

	link := s.baseURL + path + token
	html := fmt.Sprintf(`<h3>%s</h3><p><a href="%s">Click here</a></p>`, heading, link)
	if sendErr := s.mailer.Send(ctx, account.Email, subject, html); sendErr != nil {
		return fmt.Errorf("sending %s link: %w", purpose, sendErr)
	}
	return nil
}

// NormalizeEmail is the canonical email form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
