package pgrepo

import (
	"context"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
	"github.com/praise456/cryptovault-backend/pkg/uow"
)

const withdrawalColumns = `id, account_id, created_at, updated_at, coin, amount, status`

type WithdrawalRepository struct {
	db uow.DBTX
}

func NewWithdrawalRepository(db uow.DBTX) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// Create appends a withdrawal request in the pending state. The balance is not
// touched here: funds are debited only on approval.
func (r *WithdrawalRepository) Create(ctx context.Context, args repoargs.WithdrawalCreate) (*domain.Withdrawal, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO withdrawals (account_id, coin, amount)
		VALUES ($1, $2, $3)
		RETURNING `+withdrawalColumns,
		args.AccountID, args.Coin, args.Amount)

	withdrawal, err := scanWithdrawal(row)
	if err != nil {
		return nil, convertErr(err, "creating withdrawal for account %d", args.AccountID)
	}
	return withdrawal, nil
}

func (r *WithdrawalRepository) GetByAccountID(ctx context.Context, accountID int64) ([]domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+withdrawalColumns+` FROM withdrawals WHERE account_id = $1 ORDER BY id`,
		accountID)
	if err != nil {
		return nil, convertErr(err, "getting withdrawals of account %d", accountID)
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		withdrawal, scanErr := scanWithdrawal(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting withdrawals of account %d", accountID)
		}
		withdrawals = append(withdrawals, *withdrawal)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting withdrawals of account %d", accountID)
	}
	return withdrawals, nil
}

// FindForUpdate locks the withdrawal row for the rest of the transaction, so
// two concurrent reviews of the same request serialize and the loser sees the
// terminal status instead of double-debiting.
func (r *WithdrawalRepository) FindForUpdate(ctx context.Context, id int64) (*domain.Withdrawal, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1 FOR UPDATE`,
		id)
	withdrawal, err := scanWithdrawal(row)
	if err != nil {
		return nil, convertErr(err, "locking withdrawal %d", id)
	}
	return withdrawal, nil
}

func (r *WithdrawalRepository) SetStatus(ctx context.Context, id int64, status domain.WithdrawalStatusType) (*domain.Withdrawal, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE withdrawals SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+withdrawalColumns,
		id, string(status))

	withdrawal, err := scanWithdrawal(row)
	if err != nil {
		return nil, convertErr(err, "updating status of withdrawal %d", id)
	}
	return withdrawal, nil
}

// ListAll returns every withdrawal request joined with the owner's email,
// newest first. Feeds the admin review screen.
func (r *WithdrawalRepository) ListAll(ctx context.Context) ([]repoargs.AccountWithdrawal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT w.id, w.account_id, w.created_at, w.updated_at, w.coin, w.amount, w.status, a.email
		FROM withdrawals w
		JOIN accounts a ON a.id = w.account_id
		ORDER BY w.id DESC`)
	if err != nil {
		return nil, convertErr(err, "listing withdrawals")
	}
	defer rows.Close()

	var result []repoargs.AccountWithdrawal
	for rows.Next() {
		var item repoargs.AccountWithdrawal
		var status string
		if scanErr := rows.Scan(
			&item.ID, &item.AccountID, &item.CreatedAt, &item.UpdatedAt,
			&item.Coin, &item.Amount, &status, &item.Email,
		); scanErr != nil {
			return nil, convertErr(scanErr, "listing withdrawals")
		}
		item.Status = domain.WithdrawalStatusType(status)
		result = append(result, item)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "listing withdrawals")
	}
	return result, nil
}

func scanWithdrawal(row rowScanner) (*domain.Withdrawal, error) {
	var withdrawal domain.Withdrawal
	var status string
	err := row.Scan(
		&withdrawal.ID,
		&withdrawal.AccountID,
		&withdrawal.CreatedAt,
		&withdrawal.UpdatedAt,
		&withdrawal.Coin,
		&withdrawal.Amount,
		&status,
	)
	if err != nil {
		return nil, err
	}
	withdrawal.Status = domain.WithdrawalStatusType(status)
	return &withdrawal, nil
}
