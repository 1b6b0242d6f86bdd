package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	UserRegistered = "user.registered"
	UserDeleted    = "user.deleted"

	TransactionCreated = "transaction.created"
	TransactionUpdated = "transaction.updated"
	TransactionDeleted = "transaction.deleted"
)

// Stream names
const (
	UserEventsStream        = "user.events"
	TransactionEventsStream = "transaction.events"
)

// Base event structure
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// User events
type UserRegisteredEvent struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type UserDeletedEvent struct {
	UserID              int64 `json:"userId"`
	DeletedBy           int64 `json:"deletedBy"`
	TransactionsRemoved int64 `json:"transactionsRemoved"`
}

// Transaction events
type TransactionEvent struct {
	TransactionID int64           `json:"transactionId"`
	UserID        int64           `json:"userId"`
	ActorID       int64           `json:"actorId"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
}
