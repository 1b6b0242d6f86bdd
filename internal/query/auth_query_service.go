package query

import (
	"context"
	"errors"
	"time"

	"github.com/eaglebank/expense-ledger/internal/repository"
	"github.com/eaglebank/expense-ledger/shared/auth"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/errs"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/eaglebank/expense-ledger/shared/utils"
)

var errInvalidCredentials = errs.Unauthenticated("Invalid credentials")

// LoginResult carries the issued session token and the public user record.
type LoginResult struct {
	User      models.UserView
	Token     string
	ExpiresAt time.Time
}

// AuthQueryService handles login and profile lookups. There's no CommandService
// for auth because these operations don't mutate application state.
type AuthQueryService struct {
	userRepo *repository.UserWriteRepository
	tokens   *auth.TokenManager
}

func NewAuthQueryService(userRepo *repository.UserWriteRepository, tokens *auth.TokenManager) *AuthQueryService {
	return &AuthQueryService{userRepo: userRepo, tokens: tokens}
}

// Login checks the credentials and issues a session token. Unknown email and
// wrong password fail identically.
func (s *AuthQueryService) Login(ctx context.Context, cmd cqrs.LoginCommand) (*LoginResult, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, errs.Validation("Email and password are required")
	}
	user, err := s.userRepo.GetByEmail(ctx, cmd.Email)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(cmd.Password, user.PasswordHash) {
		return nil, errInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user.View(), Token: token, ExpiresAt: expiresAt}, nil
}

// Profile reloads the caller from the store, so a deleted account is reported
// even while its token is still valid.
func (s *AuthQueryService) Profile(ctx context.Context, q cqrs.GetProfileQuery) (*models.UserView, error) {
	user, err := s.userRepo.GetByID(ctx, q.Viewer.ID)
	if err != nil {
		return nil, err
	}
	view := user.View()
	return &view, nil
}
