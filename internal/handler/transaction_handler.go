package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eaglebank/expense-ledger/internal/export"
	"github.com/eaglebank/expense-ledger/internal/query"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/middleware"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/eaglebank/expense-ledger/shared/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionCommander defines the write-side operations used by TransactionHandler.
type TransactionCommander interface {
	CreateTransaction(context.Context, cqrs.CreateTransactionCommand) (*models.TransactionView, error)
	UpdateTransaction(context.Context, cqrs.UpdateTransactionCommand) (*models.TransactionView, error)
	DeleteTransaction(context.Context, cqrs.DeleteTransactionCommand) error
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	ListTransactions(context.Context, cqrs.ListTransactionsQuery) (*models.TransactionPage, error)
	ExportTransactions(context.Context, cqrs.ExportTransactionsQuery) ([]models.TransactionView, error)
}

type TransactionHandler struct {
	commands TransactionCommander
	queries  TransactionQuerier
	now      func() time.Time
}

type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0,lte=999999999999.99"`
	Type        string          `json:"type" validate:"required,oneof=INCOME EXPENSE OTHER"`
	Category    string          `json:"category" validate:"required,notblank,max=100"`
	Description string          `json:"description" validate:"required,notblank,max=500"`
	Date        string          `json:"date"`
}

// UpdateTransactionRequest is checked by the command service after the
// existence and ownership checks, so a missing or foreign row answers 404 or
// 403 whatever the body holds.
type UpdateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries, now: time.Now}
}

// ListTransactions godoc
// @Summary List transactions
// @Description Owners may pass userId to pick one user; everyone else only sees their own rows.
// @Tags transactions
// @Produce json
// @Param page query int false "Page" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Param category query string false "Category or all"
// @Param type query string false "INCOME, EXPENSE, OTHER or all"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param userId query int false "Owner filter"
// @Success 200 {object} models.TransactionPage
// @Failure 400 {object} middleware.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	filter, target, ok := parseTransactionFilter(c)
	if !ok {
		return
	}

	page, err := h.queries.ListTransactions(c.Request.Context(), cqrs.ListTransactionsQuery{
		Viewer:       identity,
		TargetUserID: target,
		Filter:       filter,
		Page:         utils.IntOrDefault(c.Query("page"), 1, 1),
		PageSize:     utils.IntOrDefault(c.Query("pageSize"), query.DefaultPageSize, 1),
	})
	if err != nil {
		middleware.RespondWithAppError(c, err, "Failed to fetch transactions")
		return
	}

	c.JSON(http.StatusOK, page)
}

// CreateTransaction godoc
// @Summary Record a transaction for the caller
// @Tags transactions
// @Accept json
// @Produce json
// @Param body body CreateTransactionRequest true "Transaction"
// @Success 201 {object} models.TransactionView
// @Failure 400 {object} middleware.BadRequestErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	cmd := cqrs.CreateTransactionCommand{
		Actor:       identity,
		Amount:      req.Amount,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		Description: req.Description,
	}
	if req.Date != "" {
		date, err := utils.ParseDate(req.Date)
		if err != nil {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
			return
		}
		cmd.Date = &date
	}

	transaction, err := h.commands.CreateTransaction(c.Request.Context(), cmd)
	if err != nil {
		middleware.RespondWithAppError(c, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param body body UpdateTransactionRequest true "New values"
// @Success 200 {object} models.TransactionView
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	transaction, err := h.commands.UpdateTransaction(c.Request.Context(), cqrs.UpdateTransactionCommand{
		TransactionID: id,
		Actor:         identity,
		Amount:        req.Amount,
		Type:          models.TransactionType(req.Type),
		Category:      req.Category,
		Description:   req.Description,
	})
	if err != nil {
		middleware.RespondWithAppError(c, err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	if err := h.commands.DeleteTransaction(c.Request.Context(), cqrs.DeleteTransactionCommand{
		TransactionID: id,
		Actor:         identity,
	}); err != nil {
		middleware.RespondWithAppError(c, err, "Failed to delete transaction")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// ExportTransactions godoc
// @Summary Export transactions
// @Description Same filters as the list, without pagination.
// @Tags transactions
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 404 {object} middleware.ErrorResponse
// @Router /transactions/export [get]
func (h *TransactionHandler) ExportTransactions(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	format, ok := export.ParseFormat(c.Query("format"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Unsupported export format")
		return
	}
	filter, target, ok := parseTransactionFilter(c)
	if !ok {
		return
	}

	rows, err := h.queries.ExportTransactions(c.Request.Context(), cqrs.ExportTransactionsQuery{
		Viewer:       identity,
		TargetUserID: target,
		Filter:       filter,
	})
	if err != nil {
		middleware.RespondWithAppError(c, err, "Failed to export transactions")
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, rows); err != nil {
		middleware.RespondWithAppError(c, err, "Failed to export transactions")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(h.now())))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// parseTransactionFilter reads the shared list and export query parameters.
// On failure it has already written the response.
func parseTransactionFilter(c *gin.Context) (models.TransactionFilter, int64, bool) {
	var filter models.TransactionFilter

	if category := strings.TrimSpace(c.Query("category")); category != "" && !strings.EqualFold(category, "all") {
		filter.Category = category
	}
	if typ := strings.TrimSpace(c.Query("type")); typ != "" && !strings.EqualFold(typ, "all") {
		filter.Type = models.TransactionType(strings.ToUpper(typ))
		if !filter.Type.Valid() {
			middleware.RespondWithError(c, http.StatusBadRequest, "Type must be one of: INCOME, EXPENSE, OTHER")
			return filter, 0, false
		}
	}
	if v := c.Query("startDate"); v != "" {
		start, err := utils.ParseDate(v)
		if err != nil {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid startDate")
			return filter, 0, false
		}
		start = utils.StartOfDay(start)
		filter.StartDate = &start
	}
	if v := c.Query("endDate"); v != "" {
		end, err := utils.ParseDate(v)
		if err != nil {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid endDate")
			return filter, 0, false
		}
		end = utils.EndOfDay(end)
		filter.EndDate = &end
	}

	var target int64
	if v := c.Query("userId"); v != "" && v != "all" {
		id, ok := utils.ParseID(v)
		if !ok {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid userId")
			return filter, 0, false
		}
		target = id
	}
	return filter, target, true
}
