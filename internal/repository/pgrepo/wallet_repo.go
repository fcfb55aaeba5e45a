package pgrepo

import (
	"context"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
	"github.com/praise456/cryptovault-backend/pkg/uow"
)

const walletColumns = `id, account_id, created_at, coin, amount`

type WalletRepository struct {
	db uow.DBTX
}

func NewWalletRepository(db uow.DBTX) *WalletRepository {
	return &WalletRepository{db: db}
}

// CreateEntry appends a deposit record. Entries are append-only; there is no
// update or delete on this table.
func (r *WalletRepository) CreateEntry(ctx context.Context, args repoargs.WalletEntryCreate) (*domain.WalletEntry, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO wallet_entries (account_id, coin, amount)
		VALUES ($1, $2, $3)
		RETURNING `+walletColumns,
		args.AccountID, args.Coin, args.Amount)

	var entry domain.WalletEntry
	if err := row.Scan(&entry.ID, &entry.AccountID, &entry.CreatedAt, &entry.Coin, &entry.Amount); err != nil {
		return nil, convertErr(err, "creating wallet entry for account %d", args.AccountID)
	}
	return &entry, nil
}

// GetByAccountID returns the account's entries in insertion order, which is
// chronological order by construction.
func (r *WalletRepository) GetByAccountID(ctx context.Context, accountID int64) ([]domain.WalletEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+walletColumns+` FROM wallet_entries WHERE account_id = $1 ORDER BY id`,
		accountID)
	if err != nil {
		return nil, convertErr(err, "getting wallet entries of account %d", accountID)
	}
	defer rows.Close()

	var entries []domain.WalletEntry
	for rows.Next() {
		var entry domain.WalletEntry
		if scanErr := rows.Scan(&entry.ID, &entry.AccountID, &entry.CreatedAt, &entry.Coin, &entry.Amount); scanErr != nil {
			return nil, convertErr(scanErr, "getting wallet entries of account %d", accountID)
		}
		entries = append(entries, entry)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting wallet entries of account %d", accountID)
	}
	return entries, nil
}
