package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eaglebank/expense-ledger/internal/database/dbtest"
	"github.com/eaglebank/expense-ledger/internal/repository"
	"github.com/eaglebank/expense-ledger/shared/auth"
	"github.com/eaglebank/expense-ledger/shared/cqrs"
	"github.com/eaglebank/expense-ledger/shared/middleware"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/eaglebank/expense-ledger/shared/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const password = "secret123"

type app struct {
	t      *testing.T
	engine *gin.Engine
	users  *repository.UserWriteRepository
	svc    *Services
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.New(t)
	tokens := auth.NewTokenManager("test-secret", "expense-ledger", auth.DefaultTokenTTL)
	svc := NewServices(db, nil, 0, nil, tokens, nil)
	engine := New(svc, Options{Tokens: tokens, AllowedOrigins: []string{"http://localhost:3000"}})
	return &app{t: t, engine: engine, users: repository.NewUserWriteRepository(db), svc: svc}
}

// session is a logged-in client carrying the auth-token cookie.
type session struct {
	app    *app
	cookie *http.Cookie
	id     models.UserView
}

func (a *app) do(method, url string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *app) register(name string) *session {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/register", map[string]string{
		"name": name, "email": name + "@example.com", "password": password,
	}, nil)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return a.login(name + "@example.com")
}

func (a *app) bootstrapOwner(name string) *session {
	a.t.Helper()
	_, _, err := a.svc.UserCommands.BootstrapOwner(context.Background(), cqrs.BootstrapOwnerCommand{
		Name: name, Email: name + "@example.com", Password: password,
	})
	require.NoError(a.t, err)
	return a.login(name + "@example.com")
}

func (a *app) admin(name string) *session {
	a.t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(a.t, err)
	now := time.Now().UTC()
	u := &models.User{Name: name, Email: name + "@example.com", PasswordHash: hash, Role: models.RoleAdmin, CreatedAt: now, UpdatedAt: now}
	require.NoError(a.t, a.users.Create(context.Background(), u))
	return a.login(u.Email)
}

func (a *app) login(email string) *session {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		User models.UserView `json:"user"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return &session{app: a, cookie: c, id: resp.User}
		}
	}
	a.t.Fatalf("login for %s set no session cookie", email)
	return nil
}

func (s *session) do(method, url string, body any) *httptest.ResponseRecorder {
	s.app.t.Helper()
	return s.app.do(method, url, body, s.cookie)
}

func (s *session) create(amount float64, typ, category, date string) models.TransactionView {
	s.app.t.Helper()
	body := map[string]any{"amount": amount, "type": typ, "category": category, "description": "x"}
	if date != "" {
		body["date"] = date
	}
	w := s.do(http.MethodPost, "/transactions", body)
	require.Equal(s.app.t, http.StatusCreated, w.Code, w.Body.String())
	var view models.TransactionView
	require.NoError(s.app.t, json.Unmarshal(w.Body.Bytes(), &view))
	return view
}

func (s *session) list(url string) models.TransactionPage {
	s.app.t.Helper()
	w := s.do(http.MethodGet, url, nil)
	require.Equal(s.app.t, http.StatusOK, w.Code, w.Body.String())
	var page models.TransactionPage
	require.NoError(s.app.t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func (s *session) activity() []models.ActivityLog {
	s.app.t.Helper()
	w := s.do(http.MethodGet, "/activity-logs?limit=50", nil)
	require.Equal(s.app.t, http.StatusOK, w.Code, w.Body.String())
	var logs []models.ActivityLog
	require.NoError(s.app.t, json.Unmarshal(w.Body.Bytes(), &logs))
	return logs
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	w := a.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	a := newApp(t)
	for _, path := range []string{"/transactions", "/users", "/activity-logs", "/dashboard/summary", "/auth/me", "/categories"} {
		w := a.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w := a.do(http.MethodGet, "/transactions", nil, &http.Cookie{Name: middleware.SessionCookie, Value: "forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatedTransactionIsScopedToOwner(t *testing.T) {
	a := newApp(t)
	ana := a.register("ana")
	ben := a.register("ben")
	owner := a.bootstrapOwner("olga")

	created := ana.create(100, "INCOME", "Restaurant", "")

	page := ana.list("/transactions")
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, created.ID, page.Transactions[0].ID)
	assert.Equal(t, "100", page.Transactions[0].Amount.String())

	assert.Empty(t, ben.list("/transactions").Transactions)

	// userId is ignored for non-owners.
	assert.Empty(t, ben.list(fmt.Sprintf("/transactions?userId=%d", ana.id.ID)).Transactions)

	all := owner.list("/transactions")
	require.NotEmpty(t, all.Transactions)
	assert.Equal(t, ana.id.ID, all.Transactions[0].UserID)
}

func TestOwnershipGuardsMutations(t *testing.T) {
	a := newApp(t)
	ana := a.register("ana")
	ben := a.register("ben")
	adm := a.admin("adam")

	tx := ana.create(20, "EXPENSE", "Groceries", "")
	url := fmt.Sprintf("/transactions/%d", tx.ID)
	update := map[string]any{"amount": 25, "type": "EXPENSE", "category": "Groceries", "description": "y"}

	assert.Equal(t, http.StatusForbidden, ben.do(http.MethodPut, url, update).Code)
	assert.Equal(t, http.StatusForbidden, ben.do(http.MethodDelete, url, nil).Code)

	assert.Equal(t, http.StatusOK, adm.do(http.MethodPut, url, update).Code)
	assert.Equal(t, http.StatusOK, ana.do(http.MethodDelete, url, nil).Code)
	assert.Equal(t, http.StatusNotFound, ana.do(http.MethodDelete, url, nil).Code)
}

func TestUpdateLogsBeforeAndAfter(t *testing.T) {
	a := newApp(t)
	ana := a.register("ana")
	tx := ana.create(100, "INCOME", "Restaurant", "")

	w := ana.do(http.MethodPut, fmt.Sprintf("/transactions/%d", tx.ID), map[string]any{
		"amount": 150, "type": "INCOME", "category": "Restaurant", "description": "x",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	logs := ana.activity()
	require.NotEmpty(t, logs)
	entry := logs[0]
	assert.Equal(t, models.ActionUpdate, entry.Action)
	require.NotNil(t, entry.Details.Before)
	require.NotNil(t, entry.Details.After)
	assert.Equal(t, "100", entry.Details.Before.Amount.String())
	assert.Equal(t, "150", entry.Details.After.Amount.String())
	assert.Equal(t, tx.ID, entry.Details.Before.ID)
}

func TestDeleteLogsSnapshot(t *testing.T) {
	a := newApp(t)
	ana := a.register("ana")
	tx := ana.create(42.5, "EXPENSE", "Utilities", "2024-02-10")

	require.Equal(t, http.StatusOK, ana.do(http.MethodDelete, fmt.Sprintf("/transactions/%d", tx.ID), nil).Code)

	logs := ana.activity()
	require.NotEmpty(t, logs)
	entry := logs[0]
	assert.Equal(t, models.ActionDelete, entry.Action)
	require.NotNil(t, entry.Details.DeletedTransaction)
	assert.Equal(t, tx.ID, entry.Details.DeletedTransaction.ID)
	assert.Equal(t, "42.5", entry.Details.DeletedTransaction.Amount.String())
	assert.Equal(t, "Utilities", entry.Details.DeletedTransaction.Category)
}

func TestPaginationCoversEveryRowOnce(t *testing.T) {
	a := newApp(t)
	ana := a.register("ana")
	for i := 1; i <= 7; i++ {
		ana.create(float64(i), "EXPENSE", "Groceries", fmt.Sprintf("2024-01-%02d", i))
	}

	first := ana.list("/transactions?pageSize=3")
	again := ana.list("/transactions?pageSize=3")
	assert.Equal(t, first, again)
	assert.Equal(t, int64(7), first.Pagination.TotalItems)
	assert.Equal(t, 3, first.Pagination.TotalPages)

	seen := map[int64]bool{}
	var dates []time.Time
	for p := 1; p <= first.Pagination.TotalPages; p++ {
		page := ana.list(fmt.Sprintf("/transactions?pageSize=3&page=%d", p))
		for _, tx := range page.Transactions {
			assert.False(t, seen[tx.ID], "duplicate id %d", tx.ID)
			seen[tx.ID] = true
			dates = append(dates, tx.Date)
		}
	}
	assert.Len(t, seen, 7)
	for i := 1; i < len(dates); i++ {
		assert.False(t, dates[i].After(dates[i-1]), "rows must be ordered by date descending")
	}
}

func TestListFilters(t *testing.T) {
	a := newApp(t)
	ana := a.register("ana")
	ana.create(10, "EXPENSE", "Groceries", "2024-03-01")
	ana.create(20, "EXPENSE", "Utilities", "2024-03-15")
	ana.create(300, "INCOME", "Salary", "2024-04-01")

	assert.Len(t, ana.list("/transactions?type=expense").Transactions, 2)
	assert.Len(t, ana.list("/transactions?type=all&category=Utilities").Transactions, 1)
	assert.Len(t, ana.list("/transactions?startDate=2024-03-15&endDate=2024-03-15").Transactions, 1)
	assert.Equal(t, http.StatusBadRequest, ana.do(http.MethodGet, "/transactions?type=GIFT", nil).Code)
}

func TestExportCSV(t *testing.T) {
	a := newApp(t)
	ana := a.register("ana")

	assert.Equal(t, http.StatusNotFound, ana.do(http.MethodGet, "/transactions/export", nil).Code)

	ana.create(12.5, "EXPENSE", "Groceries", "2024-03-01")
	w := ana.do(http.MethodGet, "/transactions/export?type=EXPENSE", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "Groceries")
	assert.Contains(t, w.Body.String(), "12.50")
}

func TestUserManagement(t *testing.T) {
	a := newApp(t)
	ana := a.register("ana")
	adm := a.admin("adam")
	owner := a.bootstrapOwner("olga")

	for i := 0; i < 3; i++ {
		ana.create(10, "EXPENSE", "Groceries", "")
	}

	assert.Equal(t, http.StatusForbidden, ana.do(http.MethodGet, "/users", nil).Code, "edge rejects USER")
	assert.Equal(t, http.StatusForbidden, adm.do(http.MethodGet, "/users", nil).Code, "resource check rejects ADMIN")

	w := owner.do(http.MethodDelete, fmt.Sprintf("/users/%d", ana.id.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	remaining := owner.list(fmt.Sprintf("/transactions?userId=%d", ana.id.ID))
	assert.Empty(t, remaining.Transactions)

	w = owner.do(http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []models.UserView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	for _, u := range users {
		assert.NotEqual(t, ana.id.ID, u.ID)
	}
	assert.Equal(t, http.StatusNotFound, owner.do(http.MethodDelete, fmt.Sprintf("/users/%d", ana.id.ID), nil).Code)
}

func TestActivityLogScope(t *testing.T) {
	a := newApp(t)
	ana := a.register("ana")
	ben := a.register("ben")
	owner := a.bootstrapOwner("olga")

	ana.create(10, "EXPENSE", "Groceries", "")
	ben.create(20, "INCOME", "Salary", "")

	for _, entry := range ben.activity() {
		assert.Equal(t, ben.id.ID, entry.UserID)
	}
	assert.Len(t, owner.activity(), 2)
}

func TestDashboardSummary(t *testing.T) {
	a := newApp(t)
	ana := a.register("ana")
	ben := a.register("ben")
	owner := a.bootstrapOwner("olga")

	ana.create(100, "INCOME", "Salary", "")
	ana.create(30, "EXPENSE", "Groceries", "")
	ben.create(5, "OTHER", "Gift", "")

	var mine models.DashboardSummary
	w := ana.do(http.MethodGet, "/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	assert.False(t, mine.Global)
	assert.Equal(t, "70", mine.Balance.String())
	assert.Len(t, mine.Monthly, 6)
	assert.Nil(t, mine.TotalUsers)

	var global models.DashboardSummary
	w = owner.do(http.MethodGet, "/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &global))
	assert.True(t, global.Global)
	assert.Equal(t, "75", global.Balance.String())
	require.NotNil(t, global.TotalUsers)
	assert.Equal(t, int64(3), *global.TotalUsers)
	assert.Len(t, global.UserSummaries, 2)
}

func TestSessionRoundTrip(t *testing.T) {
	a := newApp(t)
	ana := a.register("ana")

	w := ana.do(http.MethodGet, "/auth/session", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		User models.Identity `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ana.id.ID, resp.User.ID)
	assert.Equal(t, models.RoleUser, resp.User.Role)

	w = ana.do(http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	a := newApp(t)
	req := httptest.NewRequest(http.MethodOptions, "/transactions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
