package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
	RoleOwner Role = "OWNER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
	TypeOther   TransactionType = "OTHER"
)

// MaxAmount is the largest amount a NUMERIC(14,2) column holds.
var MaxAmount = decimal.RequireFromString("999999999999.99")

const (
	MaxCategoryLength    = 100
	MaxDescriptionLength = 500
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeOther:
		return true
	}
	return false
}

// Identity is the caller decoded from a session token. It lives for one request.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Snapshot captures the mutable fields of a transaction for the audit trail.
func (t *Transaction) Snapshot() TransactionSnapshot {
	return TransactionSnapshot{
		ID:          t.ID,
		Amount:      t.Amount,
		Type:        t.Type,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
	}
}

// TransactionFilter holds the list and export predicates. Empty strings and nil
// times match everything.
type TransactionFilter struct {
	Category  string
	Type      TransactionType
	StartDate *time.Time
	EndDate   *time.Time
}

// Scope restricts a read to a single owner. The zero value reads every owner.
type Scope struct {
	UserID int64
}

func AllUsers() Scope { return Scope{} }

func OwnedBy(userID int64) Scope { return Scope{UserID: userID} }

func (s Scope) IsAll() bool { return s.UserID == 0 }

// TypeTotal is one row of the store-side aggregate: the summed amount and row count
// of one owner's transactions of one type.
type TypeTotal struct {
	UserID int64
	Type   TransactionType
	Total  decimal.Decimal
	Count  int64
}

// SuggestedCategories is offered to clients per type. The store accepts any
// non-empty category.
var SuggestedCategories = map[TransactionType][]string{
	TypeExpense: {
		"Groceries", "Water Bill", "Electricity", "Building Rental", "Furnitures",
		"Glass and Crock", "Staff Salary", "Staff Service Charge", "Other",
	},
	TypeIncome: {"Restaurant", "Surf Lessons", "Surf Board Rental", "Other"},
	TypeOther:  {"Other"},
}
