package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/expense-ledger/shared/models"
)

const transactionViewColumns = `
	t.id, t.user_id, t.amount, t.type, t.category, t.description,
	t.occurred_at, t.created_at, t.updated_at, u.name, u.email
`

// TransactionReadRepository serves list, export and aggregate reads. Rows are
// joined with their owner's name and email.
type TransactionReadRepository struct {
	db *sql.DB
}

func NewTransactionReadRepository(db *sql.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

func (r *TransactionReadRepository) GetByID(ctx context.Context, id int64) (*models.TransactionView, error) {
	query := `SELECT ` + transactionViewColumns + `
		FROM transactions t
		JOIN users u ON u.id = t.user_id
		WHERE t.id = $1
	`
	view, err := scanTransactionView(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return view, nil
}

// List returns one page ordered by date, newest first, with id as tie-breaker
// so consecutive pages never overlap. A limit of 0 returns every row.
func (r *TransactionReadRepository) List(ctx context.Context, scope models.Scope, filter models.TransactionFilter, limit, offset int) ([]models.TransactionView, error) {
	w := scopeAndFilter(scope, filter)
	query := `SELECT ` + transactionViewColumns + `
		FROM transactions t
		JOIN users u ON u.id = t.user_id` + w.String() + `
		ORDER BY t.occurred_at DESC, t.id DESC`
	if limit > 0 {
		query += ` LIMIT ` + w.next(limit) + ` OFFSET ` + w.next(offset)
	}

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	views := []models.TransactionView{}
	for rows.Next() {
		view, err := scanTransactionView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return views, nil
}

func (r *TransactionReadRepository) Count(ctx context.Context, scope models.Scope, filter models.TransactionFilter) (int64, error) {
	w := scopeAndFilter(scope, filter)
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions t`+w.String(), w.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

// Aggregate sums amounts per owner and type.
func (r *TransactionReadRepository) Aggregate(ctx context.Context, scope models.Scope, filter models.TransactionFilter) ([]models.TypeTotal, error) {
	w := scopeAndFilter(scope, filter)
	query := `
		SELECT t.user_id, t.type, COALESCE(SUM(t.amount), 0), COUNT(*)
		FROM transactions t` + w.String() + `
		GROUP BY t.user_id, t.type
		ORDER BY t.user_id, t.type`

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	defer rows.Close()

	var totals []models.TypeTotal
	for rows.Next() {
		var tt models.TypeTotal
		if err := rows.Scan(&tt.UserID, &tt.Type, &tt.Total, &tt.Count); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate: %w", err)
		}
		tt.Total = tt.Total.Round(2)
		totals = append(totals, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}
	return totals, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransactionView(row rowScanner) (*models.TransactionView, error) {
	var v models.TransactionView
	if err := row.Scan(
		&v.ID, &v.UserID, &v.Amount, &v.Type, &v.Category, &v.Description,
		&v.Date, &v.CreatedAt, &v.UpdatedAt, &v.User.Name, &v.User.Email,
	); err != nil {
		return nil, err
	}
	normalizeTransaction(&v.Transaction)
	return &v, nil
}
