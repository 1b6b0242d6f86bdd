package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}

// where accumulates predicates with sequentially numbered $N placeholders.
type where struct {
	clauses []string
	args    []any
}

// add appends clause, replacing its single ? with the next placeholder.
func (w *where) add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.Replace(clause, "?", fmt.Sprintf("$%d", len(w.args)), 1))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// next returns the placeholder for an argument appended after the predicates.
func (w *where) next(arg any) string {
	w.args = append(w.args, arg)
	return fmt.Sprintf("$%d", len(w.args))
}

func scopeAndFilter(scope models.Scope, filter models.TransactionFilter) *where {
	w := &where{}
	if !scope.IsAll() {
		w.add("t.user_id = ?", scope.UserID)
	}
	if filter.Category != "" {
		w.add("t.category = ?", filter.Category)
	}
	if filter.Type != "" {
		w.add("t.type = ?", string(filter.Type))
	}
	if filter.StartDate != nil {
		w.add("t.occurred_at >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		w.add("t.occurred_at <= ?", filter.EndDate.UTC())
	}
	return w
}
