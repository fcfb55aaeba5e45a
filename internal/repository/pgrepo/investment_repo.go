package pgrepo

import (
	"context"

	"github.com/praise456/cryptovault-backend/internal/domain"
	"github.com/praise456/cryptovault-backend/internal/repository/repoargs"
	"github.com/praise456/cryptovault-backend/pkg/uow"
)

const investmentColumns = `id, account_id, created_at, updated_at, plan, amount, rate, profit, start_at, end_at, status`

type InvestmentRepository struct {
	db uow.DBTX
}

func NewInvestmentRepository(db uow.DBTX) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(ctx context.Context, args repoargs.InvestmentCreate) (*domain.Investment, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO investments (account_id, plan, amount, rate, profit, start_at, end_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+investmentColumns,
		args.AccountID, args.Plan, args.Amount, args.Rate, args.Profit,
		args.StartAt, args.EndAt, string(args.Status))

	investment, err := scanInvestment(row)
	if err != nil {
		return nil, convertErr(err, "creating investment for account %d", args.AccountID)
	}
	return investment, nil
}

func (r *InvestmentRepository) GetByAccountID(ctx context.Context, accountID int64) ([]domain.Investment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+investmentColumns+` FROM investments WHERE account_id = $1 ORDER BY id`,
		accountID)
	if err != nil {
		return nil, convertErr(err, "getting investments of account %d", accountID)
	}
	defer rows.Close()

	var investments []domain.Investment
	for rows.Next() {
		investment, scanErr := scanInvestment(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, "getting investments of account %d", accountID)
		}
		investments = append(investments, *investment)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting investments of account %d", accountID)
	}
	return investments, nil
}

// SetStatus updates the status of the investment addressed by its stable id.
// The account id is part of the predicate so an admin cannot move an
// investment across accounts by mistake.
func (r *InvestmentRepository) SetStatus(
	ctx context.Context,
	accountID, id int64,
	status domain.InvestmentStatusType,
) (*domain.Investment, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE investments SET status = $3, updated_at = now()
		WHERE id = $1 AND account_id = $2
		RETURNING `+investmentColumns,
		id, accountID, string(status))

	investment, err := scanInvestment(row)
	if err != nil {
		return nil, convertErr(err, "updating status of investment %d", id)
	}
	return investment, nil
}

func scanInvestment(row rowScanner) (*domain.Investment, error) {
	var investment domain.Investment
	var status string
	err := row.Scan(
		&investment.ID,
		&investment.AccountID,
		&investment.CreatedAt,
		&investment.UpdatedAt,
		&investment.Plan,
		&investment.Amount,
		&investment.Rate,
		&investment.Profit,
		&investment.StartAt,
		&investment.EndAt,
		&status,
	)
	if err != nil {
		return nil, err
	}
	investment.Status = domain.InvestmentStatusType(status)
	return &investment, nil
}
