package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eaglebank/expense-ledger/shared/models"
)

// UserReadRepository serves the public user projections.
type UserReadRepository struct {
	db *sql.DB
}

func NewUserReadRepository(db *sql.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// List returns every user, newest first.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserView, error) {
	query := `
		SELECT id, name, email, role, created_at
		FROM users
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	views := []models.UserView{}
	for rows.Next() {
		var v models.UserView
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Role, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		v.CreatedAt = v.CreatedAt.UTC()
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return views, nil
}

func (r *UserReadRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}
