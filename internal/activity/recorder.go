// Package activity writes the audit trail of mutations. Recording is best
// effort: a failed append is reported on the operational log and never reaches
// the caller.
package activity

import (
	"context"
	"time"

	"github.com/eaglebank/expense-ledger/shared/models"
	"go.uber.org/zap"
)

// Store is the append side of the activity log.
type Store interface {
	Append(ctx context.Context, entry *models.ActivityLog) error
}

type Recorder struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewRecorder(store Store, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{store: store, log: log, now: time.Now}
}

// Record appends one entry for actor. It returns once the append has been
// attempted, whatever the outcome.
func (r *Recorder) Record(ctx context.Context, actor models.Identity, action models.Action, entityType string, entityID int64, details models.ActivityDetails) {
	entry := &models.ActivityLog{
		UserID:     actor.ID,
		UserName:   actorName(actor),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  r.now().UTC(),
	}
	if err := r.store.Append(ctx, entry); err != nil {
		r.log.Error("activity log write failed",
			zap.String("action", string(action)),
			zap.String("entityType", entityType),
			zap.Int64("entityId", entityID),
			zap.Int64("actorId", actor.ID),
			zap.String("detailsKind", string(details.Kind)),
			zap.Error(err),
		)
	}
}

func actorName(actor models.Identity) string {
	if actor.Name == "" {
		return "Unknown User"
	}
	return actor.Name
}
