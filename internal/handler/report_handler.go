package handler

import (
	"context"
	"net/http"

	"github.com/eaglebank/expense-ledger/internal/query"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/middleware"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/eaglebank/expense-ledger/shared/utils"
	"github.com/gin-gonic/gin"
)

// ReportQuerier defines the read-only views used by ReportHandler.
type ReportQuerier interface {
	ListActivityLogs(context.Context, cqrs.ListActivityLogsQuery) ([]models.ActivityLog, error)
	Summary(context.Context, cqrs.DashboardSummaryQuery) (*models.DashboardSummary, error)
}

// ReportHandler serves the activity log, the dashboard and category suggestions.
type ReportHandler struct {
	queries ReportQuerier
}

type CategoriesResponse struct {
	Categories map[models.TransactionType][]string `json:"categories"`
}

func NewReportHandler(queries ReportQuerier) *ReportHandler {
	return &ReportHandler{queries: queries}
}

// ListActivityLogs godoc
// @Summary Recent activity
// @Tags activity
// @Produce json
// @Param limit query int false "Max entries" default(10)
// @Success 200 {array} models.ActivityLog
// @Router /activity-logs [get]
func (h *ReportHandler) ListActivityLogs(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	logs, err := h.queries.ListActivityLogs(c.Request.Context(), cqrs.ListActivityLogsQuery{
		Viewer: identity,
		Limit:  utils.IntOrDefault(c.Query("limit"), query.DefaultActivityLimit, 1),
	})
	if err != nil {
		middleware.RespondWithAppError(c, err, "Failed to fetch activity logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}

// DashboardSummary godoc
// @Summary Dashboard summary
// @Description Owners get global totals with a per-user breakdown.
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.DashboardSummary
// @Router /dashboard/summary [get]
func (h *ReportHandler) DashboardSummary(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	summary, err := h.queries.Summary(c.Request.Context(), cqrs.DashboardSummaryQuery{Viewer: identity})
	if err != nil {
		middleware.RespondWithAppError(c, err, "Failed to fetch dashboard summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListCategories godoc
// @Summary Suggested categories per type
// @Tags transactions
// @Produce json
// @Success 200 {object} CategoriesResponse
// @Router /categories [get]
func (h *ReportHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{Categories: models.SuggestedCategories})
}
