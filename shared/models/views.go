package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserView is the public projection of a user. It never exposes PasswordHash.
type UserView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

type OwnerRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TransactionView is a transaction joined with its owner's name and email.
type TransactionView struct {
	Transaction
	User OwnerRef `json:"user"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

type TransactionPage struct {
	Transactions []TransactionView `json:"transactions"`
	Pagination   Pagination        `json:"pagination"`
}

type UserSummary struct {
	UserID   int64           `json:"userId"`
	UserName string          `json:"userName"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Balance  decimal.Decimal `json:"balance"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type MonthlyBucket struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// DashboardSummary is cached per viewer scope. TotalUsers and UserSummaries are
// only filled for the global view.
type DashboardSummary struct {
	Global            bool            `json:"global"`
	TotalUsers        *int64          `json:"totalUsers,omitempty"`
	TotalTransactions int64           `json:"totalTransactions"`
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	Balance           decimal.Decimal `json:"balance"`
	UserSummaries     []UserSummary   `json:"userSummaries,omitempty"`
	TopCategories     []CategoryTotal `json:"topCategories"`
	Monthly           []MonthlyBucket `json:"monthly"`
	GeneratedAt       time.Time       `json:"generatedAt"`
}
