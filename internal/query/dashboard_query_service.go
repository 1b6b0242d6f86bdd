package query

import (
	"context"
	"time"

	"github.com/eaglebank/expense-ledger/internal/dashboard"
	"github.com/eaglebank/expense-ledger/internal/repository"
	"github.com/eaglebank/expense-ledger/shared/authz"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/models"
)

// DashboardQueryService builds dashboard summaries. Results are cached per
// scope until a mutation invalidates them.
type DashboardQueryService struct {
	txRepo   *repository.TransactionReadRepository
	userRepo *repository.UserReadRepository
	cache    *repository.DashboardCache
	now      func() time.Time
}

func NewDashboardQueryService(
	txRepo *repository.TransactionReadRepository,
	userRepo *repository.UserReadRepository,
	cache *repository.DashboardCache,
) *DashboardQueryService {
	return &DashboardQueryService{txRepo: txRepo, userRepo: userRepo, cache: cache, now: time.Now}
}

// Summary returns the global view to owners and a self-scoped view to
// everyone else.
func (s *DashboardQueryService) Summary(ctx context.Context, q cqrs.DashboardSummaryQuery) (*models.DashboardSummary, error) {
	scope := authz.ScopeFor(q.Viewer, authz.GlobalDashboard, 0)
	if cached, ok := s.cache.Get(ctx, scope); ok {
		return cached, nil
	}

	rows, err := s.txRepo.Aggregate(ctx, scope, models.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	txs, err := s.txRepo.List(ctx, scope, models.TransactionFilter{}, 0, 0)
	if err != nil {
		return nil, err
	}
	plain := make([]models.Transaction, len(txs))
	for i := range txs {
		plain[i] = txs[i].Transaction
	}

	now := s.now().UTC()
	totals := dashboard.SumTotals(rows)
	summary := &models.DashboardSummary{
		Global:            scope.IsAll(),
		TotalTransactions: totals.Transactions,
		TotalIncome:       totals.Income,
		TotalExpenses:     totals.Expense,
		Balance:           totals.Balance,
		TopCategories:     dashboard.TopExpenseCategories(plain, dashboard.TopCategoryCount),
		Monthly:           dashboard.MonthlyWindow(plain, now, dashboard.WindowMonths),
		GeneratedAt:       now,
	}

	if scope.IsAll() {
		totalUsers, err := s.userRepo.Count(ctx)
		if err != nil {
			return nil, err
		}
		summary.TotalUsers = &totalUsers
		users, err := s.userRepo.List(ctx)
		if err != nil {
			return nil, err
		}

		regular := make([]models.UserView, 0, len(users))
		for _, u := range users {
			if u.Role != models.RoleOwner {
				regular = append(regular, u)
			}
		}
		summary.UserSummaries = dashboard.UserTotals(rows, regular)
	}

	s.cache.Set(ctx, scope, summary)
	return summary, nil
}
