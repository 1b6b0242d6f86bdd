package query

import (
	"context"

	"github.com/eaglebank/expense-ledger/internal/repository"
	"github.com/eaglebank/expense-ledger/shared/authz"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/errs"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/eaglebank/expense-ledger/shared/utils"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// TransactionQueryService serves transaction lists and exports. Callers without
// the list-all grant only ever see their own rows.
type TransactionQueryService struct {
	readRepo *repository.TransactionReadRepository
}

func NewTransactionQueryService(readRepo *repository.TransactionReadRepository) *TransactionQueryService {
	return &TransactionQueryService{readRepo: readRepo}
}

func (s *TransactionQueryService) ListTransactions(ctx context.Context, q cqrs.ListTransactionsQuery) (*models.TransactionPage, error) {
	page, pageSize := normalizePage(q.Page, q.PageSize)
	scope := authz.ScopeFor(q.Viewer, authz.ListAllTransactions, q.TargetUserID)

	total, err := s.readRepo.Count(ctx, scope, q.Filter)
	if err != nil {
		return nil, err
	}
	totalPages := utils.TotalPages(total, pageSize)
	transactions := []models.TransactionView{}
	// Pages past the last one are empty. Comparing page numbers instead of
	// offsets keeps (page-1)*pageSize from overflowing.
	if page <= totalPages {
		transactions, err = s.readRepo.List(ctx, scope, q.Filter, pageSize, (page-1)*pageSize)
		if err != nil {
			return nil, err
		}
	}

	return &models.TransactionPage{
		Transactions: transactions,
		Pagination: models.Pagination{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  totalPages,
		},
	}, nil
}

// ExportTransactions returns every matching row. An empty result is reported
// as not found so no empty file is produced.
func (s *TransactionQueryService) ExportTransactions(ctx context.Context, q cqrs.ExportTransactionsQuery) ([]models.TransactionView, error) {
	scope := authz.ScopeFor(q.Viewer, authz.ListAllTransactions, q.TargetUserID)
	transactions, err := s.readRepo.List(ctx, scope, q.Filter, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, errs.NotFound("No transactions found")
	}
	return transactions, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
