package command

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/eaglebank/expense-ledger/internal/activity"
	"github.com/eaglebank/expense-ledger/internal/repository"
	"github.com/eaglebank/expense-ledger/shared/authz"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/errs"
	"github.com/eaglebank/expense-ledger/shared/events"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionCommandService writes transactions. Every mutation leaves an
// activity entry, drops the affected dashboard summaries and emits an event.
type TransactionCommandService struct {
	writeRepo *repository.TransactionWriteRepository
	readRepo  *repository.TransactionReadRepository
	recorder  *activity.Recorder
	cache     *repository.DashboardCache
	publisher events.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewTransactionCommandService(
	writeRepo *repository.TransactionWriteRepository,
	readRepo *repository.TransactionReadRepository,
	recorder *activity.Recorder,
	cache *repository.DashboardCache,
	publisher events.Publisher,
	log *zap.Logger,
) *TransactionCommandService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TransactionCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		recorder:  recorder,
		cache:     cache,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// transactionFields holds the normalized user-supplied fields shared by
// create and update.
type transactionFields struct {
	amount      decimal.Decimal
	typ         models.TransactionType
	category    string
	description string
}

func validateFields(amount decimal.Decimal, typ models.TransactionType, category, description string) (transactionFields, error) {
	f := transactionFields{
		amount:      amount.Round(2),
		typ:         models.TransactionType(strings.ToUpper(strings.TrimSpace(string(typ)))),
		category:    strings.TrimSpace(category),
		description: strings.TrimSpace(description),
	}
	if f.typ == "" || f.category == "" || f.description == "" {
		return f, errs.Validation("Amount, description, type, and category are required")
	}
	if !f.typ.Valid() {
		return f, errs.Validation("Type must be one of: INCOME, EXPENSE, OTHER")
	}
	if !f.amount.IsPositive() {
		return f, errs.Validation("Amount must be greater than zero")
	}
	if f.amount.GreaterThan(models.MaxAmount) {
		return f, errs.Validation("Amount must not exceed " + models.MaxAmount.StringFixed(2))
	}
	if utf8.RuneCountInString(f.category) > models.MaxCategoryLength {
		return f, errs.Validation(fmt.Sprintf("Category must be at most %d characters", models.MaxCategoryLength))
	}
	if utf8.RuneCountInString(f.description) > models.MaxDescriptionLength {
		return f, errs.Validation(fmt.Sprintf("Description must be at most %d characters", models.MaxDescriptionLength))
	}
	return f, nil
}

func (s *TransactionCommandService) CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.TransactionView, error) {
	f, err := validateFields(cmd.Amount, cmd.Type, cmd.Category, cmd.Description)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	date := now
	if cmd.Date != nil {
		date = cmd.Date.UTC()
	}
	transaction := &models.Transaction{
		UserID:      cmd.Actor.ID,
		Amount:      f.amount,
		Type:        f.typ,
		Category:    f.category,
		Description: f.description,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.writeRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, cmd.Actor, models.ActionCreate, models.EntityTransaction, transaction.ID,
		models.FreeformDetails(fmt.Sprintf("Created %s transaction of %s in %s",
			transaction.Type, transaction.Amount.StringFixed(2), transaction.Category)))
	s.afterWrite(ctx, events.TransactionCreated, transaction, cmd.Actor)

	return &models.TransactionView{
		Transaction: *transaction,
		User:        models.OwnerRef{Name: cmd.Actor.Name, Email: cmd.Actor.Email},
	}, nil
}

// UpdateTransaction replaces amount, type, category and description. The
// activity entry carries the row as it was before and after the write.
func (s *TransactionCommandService) UpdateTransaction(ctx context.Context, cmd cqrs.UpdateTransactionCommand) (*models.TransactionView, error) {
	current, err := s.writeRepo.GetByID(ctx, cmd.TransactionID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(cmd.Actor, authz.Resource{Action: authz.UpdateTransaction, OwnerID: current.UserID}); err != nil {
		return nil, err
	}
	f, err := validateFields(cmd.Amount, cmd.Type, cmd.Category, cmd.Description)
	if err != nil {
		return nil, err
	}

	before := current.Snapshot()
	updated := *current
	updated.Amount = f.amount
	updated.Type = f.typ
	updated.Category = f.category
	updated.Description = f.description
	updated.UpdatedAt = s.now().UTC()
	if err := s.writeRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	after := updated.Snapshot()
	view, viewErr := s.readRepo.GetByID(ctx, updated.ID)
	if viewErr == nil {
		after = view.Snapshot()
	}
	s.recorder.Record(ctx, cmd.Actor, models.ActionUpdate, models.EntityTransaction, updated.ID,
		models.UpdateDetails(before, after))
	s.afterWrite(ctx, events.TransactionUpdated, &updated, cmd.Actor)

	if viewErr != nil {
		return nil, viewErr
	}
	return view, nil
}

// DeleteTransaction records the deleted row before removing it, so the
// snapshot is read while the row still exists.
func (s *TransactionCommandService) DeleteTransaction(ctx context.Context, cmd cqrs.DeleteTransactionCommand) error {
	current, err := s.writeRepo.GetByID(ctx, cmd.TransactionID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(cmd.Actor, authz.Resource{Action: authz.DeleteTransaction, OwnerID: current.UserID}); err != nil {
		return err
	}

	s.recorder.Record(ctx, cmd.Actor, models.ActionDelete, models.EntityTransaction, current.ID,
		models.DeleteDetails(current.Snapshot()))

	if err := s.writeRepo.Delete(ctx, current.ID); err != nil {
		return err
	}
	s.afterWrite(ctx, events.TransactionDeleted, current, cmd.Actor)
	return nil
}

func (s *TransactionCommandService) afterWrite(ctx context.Context, eventType string, t *models.Transaction, actor models.Identity) {
	s.cache.Invalidate(ctx, t.UserID)
	if err := s.publisher.Publish(ctx, events.TransactionEventsStream, eventType, events.TransactionEvent{
		TransactionID: t.ID,
		UserID:        t.UserID,
		ActorID:       actor.ID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Category:      t.Category,
	}); err != nil {
		s.log.Warn("failed to publish event", zap.String("type", eventType), zap.Int64("transactionId", t.ID), zap.Error(err))
	}
}
