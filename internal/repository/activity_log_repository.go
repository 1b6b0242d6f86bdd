package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eaglebank/expense-ledger/shared/models"
)

// ActivityLogRepository appends and reads the audit trail. There is no update
// or delete: entries are immutable once written.
type ActivityLogRepository struct {
	db *sql.DB
}

func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Append(ctx context.Context, entry *models.ActivityLog) error {
	payload, err := entry.Details.Payload()
	if err != nil {
		return fmt.Errorf("failed to encode activity details: %w", err)
	}
	query := `
		INSERT INTO activity_logs (user_id, user_name, action, entity_type, entity_id, details_kind, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err = r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.UserName, string(entry.Action), entry.EntityType, entry.EntityID,
		string(entry.Details.Kind), string(payload), entry.CreatedAt.UTC(),
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

// List returns the newest entries visible in scope.
func (r *ActivityLogRepository) List(ctx context.Context, scope models.Scope, limit int) ([]models.ActivityLog, error) {
	w := &where{}
	if !scope.IsAll() {
		w.add("user_id = ?", scope.UserID)
	}
	query := `
		SELECT id, user_id, user_name, action, entity_type, entity_id, details_kind, details, created_at
		FROM activity_logs` + w.String() + `
		ORDER BY created_at DESC, id DESC
		LIMIT ` + w.next(limit)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	defer rows.Close()

	logs := []models.ActivityLog{}
	for rows.Next() {
		var (
			entry   models.ActivityLog
			kind    string
			payload string
		)
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.UserName, &entry.Action, &entry.EntityType,
			&entry.EntityID, &kind, &payload, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity log: %w", err)
		}
		details, err := models.DecodeActivityDetails(models.DetailsKind(kind), []byte(payload))
		if err != nil {
			// Unreadable rows are shown as their raw payload.
			details = models.FreeformDetails(payload)
		}
		entry.Details = details
		entry.CreatedAt = entry.CreatedAt.UTC()
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list activity logs: %w", err)
	}
	return logs, nil
}
