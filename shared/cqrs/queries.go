package cqrs

import "github.com/eaglebank/expense-ledger/shared/models"

// ---------- User queries ----------

// ListUsersQuery is restricted to the owner role.
type ListUsersQuery struct {
	Viewer models.Identity
}

// GetProfileQuery loads the stored profile of the caller.
type GetProfileQuery struct {
	Viewer models.Identity
}

// ---------- Transaction queries ----------

// ListTransactionsQuery fetches one page. TargetUserID 0 means every user the
// viewer may see.
type ListTransactionsQuery struct {
	Viewer       models.Identity
	TargetUserID int64
	Filter       models.TransactionFilter
	Page         int
	PageSize     int
}

// ExportTransactionsQuery has the list semantics without pagination.
type ExportTransactionsQuery struct {
	Viewer       models.Identity
	TargetUserID int64
	Filter       models.TransactionFilter
}

// ---------- Activity and dashboard queries ----------

type ListActivityLogsQuery struct {
	Viewer models.Identity
	Limit  int
}

type DashboardSummaryQuery struct {
	Viewer models.Identity
}
