// Package dashboard derives summary statistics from already-fetched
// transactions and aggregate rows. Everything here is pure.
package dashboard

import (
	"sort"
	"time"

	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/shopspring/decimal"
)

const (
	TopCategoryCount = 5
	WindowMonths     = 6
	monthLabel       = "Jan 2006"
)

// signed returns the contribution of amount to a balance: INCOME and OTHER
// add, EXPENSE subtracts.
func signed(t models.TransactionType, amount decimal.Decimal) decimal.Decimal {
	if t == models.TypeExpense {
		return amount.Neg()
	}
	return amount
}

func CalculateBalance(txs []models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range txs {
		balance = balance.Add(signed(t.Type, t.Amount))
	}
	return balance
}

// Totals folds aggregate rows into overall figures.
type Totals struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Balance      decimal.Decimal
	Transactions int64
}

func SumTotals(rows []models.TypeTotal) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero, Balance: decimal.Zero}
	for _, r := range rows {
		switch r.Type {
		case models.TypeIncome:
			t.Income = t.Income.Add(r.Total)
		case models.TypeExpense:
			t.Expense = t.Expense.Add(r.Total)
		}
		t.Balance = t.Balance.Add(signed(r.Type, r.Total))
		t.Transactions += r.Count
	}
	return t
}

// UserTotals builds one income/expense/balance triple per listed user, in the
// order given, including users without transactions.
func UserTotals(rows []models.TypeTotal, users []models.UserView) []models.UserSummary {
	byUser := make(map[int64][]models.TypeTotal)
	for _, r := range rows {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}
	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		t := SumTotals(byUser[u.ID])
		summaries = append(summaries, models.UserSummary{
			UserID:   u.ID,
			UserName: u.Name,
			Income:   t.Income,
			Expense:  t.Expense,
			Balance:  t.Balance,
		})
	}
	return summaries
}

// TopExpenseCategories sums EXPENSE amounts per category and returns the n
// largest. Equal sums are ordered by category name.
func TopExpenseCategories(txs []models.Transaction, n int) []models.CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != models.TypeExpense {
			continue
		}
		if cur, ok := sums[t.Category]; ok {
			sums[t.Category] = cur.Add(t.Amount)
		} else {
			sums[t.Category] = t.Amount
		}
	}

	out := make([]models.CategoryTotal, 0, len(sums))
	for category, amount := range sums {
		out = append(out, models.CategoryTotal{Category: category, Amount: amount})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// MonthlyWindow returns exactly months buckets, oldest first, ending with the
// calendar month of now. The buckets exist before any data is scanned, so
// empty months report zeros. Only INCOME and EXPENSE are bucketed.
func MonthlyWindow(txs []models.Transaction, now time.Time, months int) []models.MonthlyBucket {
	if months <= 0 {
		return []models.MonthlyBucket{}
	}
	now = now.UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	buckets := make([]models.MonthlyBucket, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		start := current.AddDate(0, i-(months-1), 0)
		label := start.Format(monthLabel)
		buckets[i] = models.MonthlyBucket{Month: label, Income: decimal.Zero, Expense: decimal.Zero}
		index[label] = i
	}

	for _, t := range txs {
		i, ok := index[t.Date.UTC().Format(monthLabel)]
		if !ok {
			continue
		}
		switch t.Type {
		case models.TypeIncome:
			buckets[i].Income = buckets[i].Income.Add(t.Amount)
		case models.TypeExpense:
			buckets[i].Expense = buckets[i].Expense.Add(t.Amount)
		}
	}
	return buckets
}
