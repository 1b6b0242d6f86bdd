package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/expense-ledger/shared/errs"
	"github.com/eaglebank/expense-ledger/shared/models"
)

var errTransactionNotFound = errs.NotFound("Transaction not found")

// TransactionWriteRepository handles all state-mutating operations for transactions.
type TransactionWriteRepository struct {
	db *sql.DB
}

func NewTransactionWriteRepository(db *sql.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

func (r *TransactionWriteRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, amount, type, category, description, occurred_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		transaction.UserID, transaction.Amount, string(transaction.Type),
		transaction.Category, transaction.Description,
		transaction.Date.UTC(), transaction.CreatedAt.UTC(), transaction.UpdatedAt.UTC(),
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID fetches the write model used for ownership checks and audit snapshots.
func (r *TransactionWriteRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, amount, type, category, description, occurred_at, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`
	var t models.Transaction
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Category, &t.Description,
		&t.Date, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	normalizeTransaction(&t)
	return &t, nil
}

// Update replaces amount, type, category and description. The date is kept.
func (r *TransactionWriteRepository) Update(ctx context.Context, transaction *models.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $2, type = $3, category = $4, description = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		transaction.ID, transaction.Amount, string(transaction.Type),
		transaction.Category, transaction.Description, transaction.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return expectOneRow(result, errTransactionNotFound)
}

func (r *TransactionWriteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return expectOneRow(result, errTransactionNotFound)
}

func expectOneRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// normalizeTransaction pins store values to UTC and two decimal places so both
// dialects read back identical values.
func normalizeTransaction(t *models.Transaction) {
	t.Amount = t.Amount.Round(2)
	t.Date = t.Date.UTC()
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
}
