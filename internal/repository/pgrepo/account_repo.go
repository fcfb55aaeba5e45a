package pgrepo

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
	"github.com/praise456/cryptovault-backend/pkg/uow"
)

const accountColumns = `id, created_at, updated_at, name, email, encrypted_password, role, verified, balance`

type AccountRepository struct {
	db uow.DBTX
}

func NewAccountRepository(db uow.DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts an account with zero balance and the user role. A normalized
// email collision returns domain.ErrDuplicateKey (enforced by the unique
// index, so concurrent registrations cannot both succeed).
func (r *AccountRepository) Create(ctx context.Context, args repoargs.CreateAccount) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO accounts (name, email, encrypted_password)
		VALUES ($1, $2, $3)
		RETURNING `+accountColumns,
		args.Name, args.Email, args.EncryptedPassword)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "creating account %s", args.Email)
	}
	return account, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "finding account by id %d", id)
	}
	return account, nil
}

// FindByIDForUpdate locks the account row for the rest of the transaction.
// Balance checks that precede a mutation read through this method so that two
// concurrent operations on one account serialize instead of both passing a
// stale check.
func (r *AccountRepository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "locking account by id %d", id)
	}
	return account, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "finding account by email %s", email)
	}
	return account, nil
}

// IncrementBalance adds amount to the balance and returns the updated account.
// Used for deposits and admin credits; amount is validated positive upstream.
func (r *AccountRepository) IncrementBalance(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE accounts SET balance = balance + $2, updated_at = now()
		WHERE id = $1
		RETURNING `+accountColumns,
		id, amount)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "incrementing balance of account %d", id)
	}
	return account, nil
}

// DebitBalance subtracts amount from the balance only if the balance covers
// it. The condition is part of the UPDATE itself, so a concurrent debit that
// committed first makes this one fail with domain.ErrNotEnoughBalance instead
// of overdrawing.
func (r *AccountRepository) DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE accounts SET balance = balance - $2, updated_at = now()
		WHERE id = $1 AND balance >= $2
		RETURNING `+accountColumns,
		id, amount)

	account, err := scanAccount(row)
	if err == nil {
		return account, nil
	}

	// No row matched: either the account is gone or the guard failed.
	var exists bool
	if existsErr := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id).
		Scan(&exists); existsErr != nil {
		return nil, convertErr(existsErr, "debiting balance of account %d", id)
	}
	if exists {
		return nil, domain.ErrNotEnoughBalance
	}
	return nil, convertErr(err, "debiting balance of account %d", id)
}

func (r *AccountRepository) SetEncryptedPassword(ctx context.Context, id int64, encryptedPassword string) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE accounts SET encrypted_password = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+accountColumns,
		id, encryptedPassword)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "updating password of account %d", id)
	}
	return account, nil
}

func (r *AccountRepository) SetVerified(ctx context.Context, id int64, verified bool) (*domain.Account, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE accounts SET verified = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+accountColumns,
		id, verified)

	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "updating verified flag of account %d", id)
	}
	return account, nil
}

// List returns a page of accounts ordered by id. Credential material stays in
// the row; stripping it is the transport layer's job.
func (r *AccountRepository) List(ctx context.Context, skip, limit int64) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts ORDER BY id LIMIT $1 OFFSET $2`,
		limit, skip)
	if err != nil {
		return nil, convertErr(err, "listing accounts")
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "listing accounts")
		}
		accounts = append(accounts, *account)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing accounts")
	}
	return accounts, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM accounts`).Scan(&total); err != nil {
		return 0, convertErr(err, "counting accounts")
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	var role string
	err := row.Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.Name,
		&account.Email,
		&account.EncryptedPassword,
		&role,
		&account.Verified,
		&account.Balance,
	)
	if err != nil {
		return nil, err
	}
	account.Role = domain.RoleType(role)
	return &account, nil
}
