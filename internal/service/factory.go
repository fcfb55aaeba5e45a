package service

import (
	"fmt"

	"github.com/praise456/cryptovault-backend/pkg/uow"
)

type AppServices struct {
	AccountService    *AccountService
	WalletService     *WalletService
	InvestmentService *InvestmentService
}

type FactoryArgs struct {
	UOW       uow.UOW
	JWTSecret []byte
	Hasher    PasswordHasher
	Mailer    Mailer
	BaseURL   string
}

func Factory(args FactoryArgs) (*AppServices, error) {
	accountService, accountServiceErr := NewAccountService(
		args.UOW, args.JWTSecret, args.Hasher, args.Mailer, args.BaseURL)
	if accountServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", accountServiceErr.Error())
	}

	walletService, walletServiceErr := NewWalletService(args.UOW)
	if walletServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", walletServiceErr.Error())
	}

	investmentService, investmentServiceErr := NewInvestmentService(args.UOW)
	if investmentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", investmentServiceErr.Error())
	}

	return &AppServices{
		AccountService:    accountService,
		WalletService:     walletService,
		InvestmentService: investmentService,
	}, nil
}
