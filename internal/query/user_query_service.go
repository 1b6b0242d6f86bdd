package query

import (
	"context"

	"github.com/eaglebank/expense-ledger/internal/repository"
	"github.com/eaglebank/expense-ledger/shared/authz"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/models"
)

// UserQueryService reads the user directory.
type UserQueryService struct {
	readRepo *repository.UserReadRepository
}

func NewUserQueryService(readRepo *repository.UserReadRepository) *UserQueryService {
	return &UserQueryService{readRepo: readRepo}
}

// ListUsers returns every account, newest first. Only owners may list users.
func (s *UserQueryService) ListUsers(ctx context.Context, q cqrs.ListUsersQuery) ([]models.UserView, error) {
	if err := authz.Authorize(q.Viewer, authz.Resource{Action: authz.ManageUsers}); err != nil {
		return nil, err
	}
	return s.readRepo.List(ctx)
}
