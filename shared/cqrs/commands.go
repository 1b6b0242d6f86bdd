package cqrs

import (
	"time"

	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/shopspring/decimal"
)

// RegisterUserCommand creates a USER account. Role is set by the service,
// never by the client.
type RegisterUserCommand struct {
	Name     string
	Email    string
	Password string
}

// BootstrapOwnerCommand ensures an OWNER account exists at startup.
type BootstrapOwnerCommand struct {
	Name     string
	Email    string
	Password string
}

type DeleteUserCommand struct {
	UserID int64
	Actor  models.Identity
}

type CreateTransactionCommand struct {
	Actor       models.Identity
	Amount      decimal.Decimal
	Type        models.TransactionType
	Category    string
	Description string
	Date        *time.Time
}

// UpdateTransactionCommand replaces every mutable field.
type UpdateTransactionCommand struct {
	TransactionID int64
	Actor         models.Identity
	Amount        decimal.Decimal
	Type          models.TransactionType
	Category      string
	Description   string
}

type DeleteTransactionCommand struct {
	TransactionID int64
	Actor         models.Identity
}

type LoginCommand struct {
	Email    string
	Password string
}
