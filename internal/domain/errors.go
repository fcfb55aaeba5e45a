package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")

	ErrNotEnoughBalance = errors.New("not enough balance")
	// ErrWithdrawalResolved means the withdrawal already left the pending
	// state; approved/rejected are terminal, re-reviewing must not double-debit.
	ErrWithdrawalResolved      = errors.New("withdrawal already resolved")
	ErrInvalidInvestmentStatus = errors.New("invalid investment status")
	ErrInvalidDecision         = errors.New("invalid withdrawal decision")
	ErrInvalidAmount           = errors.New("invalid amount")
)
