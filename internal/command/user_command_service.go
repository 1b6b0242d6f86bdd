package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eaglebank/expense-ledger/internal/activity"
	"github.com/eaglebank/expense-ledger/internal/repository"
	"github.com/eaglebank/expense-ledger/shared/authz"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/errs"
	"github.com/eaglebank/expense-ledger/shared/events"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/eaglebank/expense-ledger/shared/utils"
	"go.uber.org/zap"
)

// UserCommandService registers and removes accounts.
type UserCommandService struct {
	writeRepo *repository.UserWriteRepository
	txRepo    *repository.TransactionReadRepository
	recorder  *activity.Recorder
	cache     *repository.DashboardCache
	publisher events.Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewUserCommandService(
	writeRepo *repository.UserWriteRepository,
	txRepo *repository.TransactionReadRepository,
	recorder *activity.Recorder,
	cache *repository.DashboardCache,
	publisher events.Publisher,
	log *zap.Logger,
) *UserCommandService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &UserCommandService{
		writeRepo: writeRepo,
		txRepo:    txRepo,
		recorder:  recorder,
		cache:     cache,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Register creates a USER account. Roles are never taken from the client.
func (s *UserCommandService) Register(ctx context.Context, cmd cqrs.RegisterUserCommand) (*models.User, error) {
	return s.create(ctx, cmd.Name, cmd.Email, cmd.Password, models.RoleUser)
}

// BootstrapOwner creates the OWNER account unless a user with that email
// already exists, in which case the stored account is returned unchanged.
func (s *UserCommandService) BootstrapOwner(ctx context.Context, cmd cqrs.BootstrapOwnerCommand) (*models.User, bool, error) {
	existing, err := s.writeRepo.GetByEmail(ctx, cmd.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, false, err
	}
	user, err := s.create(ctx, cmd.Name, cmd.Email, cmd.Password, models.RoleOwner)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserCommandService) create(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, errs.Validation("Name, email and password are required")
	}

	if _, err := s.writeRepo.GetByEmail(ctx, email); err == nil {
		return nil, errs.Conflict("User with this email already exists")
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	now := s.now().UTC()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.writeRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserRegistered, events.UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   string(user.Role),
	}); err != nil {
		s.log.Warn("failed to publish event", zap.String("type", events.UserRegistered), zap.Int64("userId", user.ID), zap.Error(err))
	}
	return user, nil
}

// DeleteUser removes a user together with every transaction they own. Only
// owners may do this. The activity entry is written before the cascade.
func (s *UserCommandService) DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) (*models.UserView, error) {
	if err := authz.Authorize(cmd.Actor, authz.Resource{Action: authz.ManageUsers}); err != nil {
		return nil, err
	}
	target, err := s.writeRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	owned, err := s.txRepo.Count(ctx, models.OwnedBy(target.ID), models.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, cmd.Actor, models.ActionDelete, models.EntityUser, target.ID,
		models.FreeformDetails(fmt.Sprintf("Deleted user %s (%s) and %d transaction(s)", target.Name, target.Email, owned)))

	removed, err := s.writeRepo.DeleteCascade(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, target.ID)
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserDeleted, events.UserDeletedEvent{
		UserID:              target.ID,
		DeletedBy:           cmd.Actor.ID,
		TransactionsRemoved: removed,
	}); err != nil {
		s.log.Warn("failed to publish event", zap.String("type", events.UserDeleted), zap.Int64("userId", target.ID), zap.Error(err))
	}

	view := target.View()
	return &view, nil
}
