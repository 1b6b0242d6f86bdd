package query

import (
	"context"

	"github.com/eaglebank/expense-ledger/internal/repository"
	"github.com/eaglebank/expense-ledger/shared/authz"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/models"
)

const (
	DefaultActivityLimit = 10
	MaxActivityLimit     = 100
)

type ActivityQueryService struct {
	logRepo *repository.ActivityLogRepository
}

func NewActivityQueryService(logRepo *repository.ActivityLogRepository) *ActivityQueryService {
	return &ActivityQueryService{logRepo: logRepo}
}

// ListActivityLogs returns the newest entries. Owners see every actor, anyone
// else only the entries they authored.
func (s *ActivityQueryService) ListActivityLogs(ctx context.Context, q cqrs.ListActivityLogsQuery) ([]models.ActivityLog, error) {
	limit := q.Limit
	if limit < 1 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	return s.logRepo.List(ctx, authz.ScopeFor(q.Viewer, authz.ListAllActivity, 0), limit)
}
