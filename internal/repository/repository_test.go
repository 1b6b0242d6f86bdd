package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/eaglebank/expense-ledger/internal/database/dbtest"
	"github.com/eaglebank/expense-ledger/shared/errs"
	"github.com/eaglebank/expense-ledger/shared/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ctx  = context.Background()
	base = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
)

func seedUser(t *testing.T, db *sql.DB, name string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    base,
		UpdatedAt:    base,
	}
	require.NoError(t, NewUserWriteRepository(db).Create(ctx, u))
	return u
}

func seedTx(t *testing.T, db *sql.DB, userID int64, amount int64, typ models.TransactionType, category string, date time.Time) *models.Transaction {
	t.Helper()
	tx := &models.Transaction{
		UserID:      userID,
		Amount:      decimal.NewFromInt(amount),
		Type:        typ,
		Category:    category,
		Description: fmt.Sprintf("%s %d", category, amount),
		Date:        date,
		CreatedAt:   base,
		UpdatedAt:   base,
	}
	require.NoError(t, NewTransactionWriteRepository(db).Create(ctx, tx))
	return tx
}

func TestTransactionWriteLifecycle(t *testing.T) {
	db := dbtest.New(t)
	repo := NewTransactionWriteRepository(db)
	u := seedUser(t, db, "ana", models.RoleUser)

	created := seedTx(t, db, u.ID, 100, models.TypeIncome, "Restaurant", base)
	require.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Amount))
	assert.Equal(t, models.TypeIncome, got.Type)
	assert.True(t, base.Equal(got.Date))

	got.Amount = decimal.RequireFromString("150.25")
	got.Type = models.TypeOther
	got.Category = "Tips"
	got.Description = "updated"
	got.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "150.25", again.Amount.StringFixed(2))
	assert.Equal(t, "Tips", again.Category)
	assert.True(t, base.Equal(again.Date), "date is not part of the update")

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), errs.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, got), errs.ErrNotFound)
}

func TestTransactionListScopeAndFilters(t *testing.T) {
	db := dbtest.New(t)
	read := NewTransactionReadRepository(db)
	ana := seedUser(t, db, "ana", models.RoleUser)
	ben := seedUser(t, db, "ben", models.RoleUser)

	seedTx(t, db, ana.ID, 100, models.TypeIncome, "Restaurant", base)
	seedTx(t, db, ana.ID, 40, models.TypeExpense, "Groceries", base.AddDate(0, 0, 1))
	seedTx(t, db, ben.ID, 70, models.TypeExpense, "Groceries", base.AddDate(0, 0, 2))
	lastMinute := time.Date(2024, 5, 13, 23, 59, 59, 500_000_000, time.UTC)
	seedTx(t, db, ben.ID, 5, models.TypeOther, "Other", lastMinute)

	all, err := read.List(ctx, models.AllUsers(), models.TransactionFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "ben", all[0].User.Name)
	assert.Equal(t, "ben@example.com", all[0].User.Email)

	own, err := read.List(ctx, models.OwnedBy(ana.ID), models.TransactionFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, v := range own {
		assert.Equal(t, ana.ID, v.UserID)
	}

	groceries, err := read.List(ctx, models.AllUsers(), models.TransactionFilter{Category: "Groceries", Type: models.TypeExpense}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, groceries, 2)

	start := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 13, 23, 59, 59, 999_000_000, time.UTC)
	ranged, err := read.List(ctx, models.AllUsers(), models.TransactionFilter{StartDate: &start, EndDate: &end}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, ranged, 3, "range is inclusive of the whole end day")

	count, err := read.Count(ctx, models.AllUsers(), models.TransactionFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestTransactionListPagination(t *testing.T) {
	db := dbtest.New(t)
	read := NewTransactionReadRepository(db)
	u := seedUser(t, db, "ana", models.RoleUser)

	const n = 23
	for i := 0; i < n; i++ {
		// Pairs share a date so the id tie-breaker matters.
		seedTx(t, db, u.ID, int64(i+1), models.TypeExpense, "Groceries", base.AddDate(0, 0, i/2))
	}

	const pageSize = 5
	total, err := read.Count(ctx, models.OwnedBy(u.ID), models.TransactionFilter{})
	require.NoError(t, err)
	require.EqualValues(t, n, total)

	seen := map[int64]bool{}
	var concatenated []models.TransactionView
	for page := 1; page <= 5; page++ {
		rows, err := read.List(ctx, models.OwnedBy(u.ID), models.TransactionFilter{}, pageSize, (page-1)*pageSize)
		require.NoError(t, err)
		for _, r := range rows {
			assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
			seen[r.ID] = true
		}
		concatenated = append(concatenated, rows...)
	}
	require.Len(t, concatenated, n)
	for i := 1; i < len(concatenated); i++ {
		prev, cur := concatenated[i-1], concatenated[i]
		assert.False(t, cur.Date.After(prev.Date), "dates must not increase")
		if cur.Date.Equal(prev.Date) {
			assert.Less(t, cur.ID, prev.ID)
		}
	}

	again, err := read.List(ctx, models.OwnedBy(u.ID), models.TransactionFilter{}, pageSize, 0)
	require.NoError(t, err)
	first, err := read.List(ctx, models.OwnedBy(u.ID), models.TransactionFilter{}, pageSize, 0)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestTransactionAggregate(t *testing.T) {
	db := dbtest.New(t)
	read := NewTransactionReadRepository(db)
	ana := seedUser(t, db, "ana", models.RoleUser)
	ben := seedUser(t, db, "ben", models.RoleUser)

	seedTx(t, db, ana.ID, 100, models.TypeIncome, "Restaurant", base)
	seedTx(t, db, ana.ID, 50, models.TypeIncome, "Surf Lessons", base)
	seedTx(t, db, ana.ID, 30, models.TypeExpense, "Groceries", base)
	seedTx(t, db, ben.ID, 20, models.TypeExpense, "Electricity", base)

	totals, err := read.Aggregate(ctx, models.AllUsers(), models.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.Equal(t, ana.ID, totals[0].UserID)
	assert.Equal(t, models.TypeExpense, totals[0].Type)
	assert.Equal(t, "30", totals[0].Total.String())
	assert.Equal(t, models.TypeIncome, totals[1].Type)
	assert.Equal(t, "150", totals[1].Total.String())
	assert.EqualValues(t, 2, totals[1].Count)

	own, err := read.Aggregate(ctx, models.OwnedBy(ben.ID), models.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "20", own[0].Total.String())

	empty, err := read.Aggregate(ctx, models.OwnedBy(9999), models.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUserRepositories(t *testing.T) {
	db := dbtest.New(t)
	write := NewUserWriteRepository(db)
	read := NewUserReadRepository(db)

	ana := seedUser(t, db, "ana", models.RoleUser)
	dup := &models.User{Name: "Ana 2", Email: " ANA@example.com ", PasswordHash: "x", Role: models.RoleUser, CreatedAt: base, UpdatedAt: base}
	err := write.Create(ctx, dup)
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.EqualError(t, err, "User with this email already exists")

	byEmail, err := write.GetByEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, ana.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	_, err = write.GetByID(ctx, 404)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	later := &models.User{Name: "ben", Email: "ben@example.com", PasswordHash: "x", Role: models.RoleOwner, CreatedAt: base.Add(time.Hour), UpdatedAt: base}
	require.NoError(t, write.Create(ctx, later))

	users, err := read.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ben", users[0].Name, "newest first")
	assert.Equal(t, models.RoleOwner, users[0].Role)

	count, err := read.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestUserDeleteCascade(t *testing.T) {
	db := dbtest.New(t)
	write := NewUserWriteRepository(db)
	read := NewTransactionReadRepository(db)
	logs := NewActivityLogRepository(db)

	ana := seedUser(t, db, "ana", models.RoleUser)
	ben := seedUser(t, db, "ben", models.RoleUser)
	for i := 0; i < 3; i++ {
		seedTx(t, db, ana.ID, 10, models.TypeExpense, "Groceries", base)
	}
	seedTx(t, db, ben.ID, 10, models.TypeExpense, "Groceries", base)
	require.NoError(t, logs.Append(ctx, &models.ActivityLog{
		UserID: ana.ID, UserName: "ana", Action: models.ActionCreate, EntityType: models.EntityTransaction,
		EntityID: 1, Details: models.FreeformDetails("created"), CreatedAt: base,
	}))

	removed, err := write.DeleteCascade(ctx, ana.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)

	left, err := read.List(ctx, models.OwnedBy(ana.ID), models.TransactionFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, left)
	others, err := read.List(ctx, models.AllUsers(), models.TransactionFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, others, 1)

	_, err = write.GetByID(ctx, ana.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	history, err := logs.List(ctx, models.OwnedBy(ana.ID), 10)
	require.NoError(t, err)
	assert.Len(t, history, 1, "audit entries outlive the actor")

	_, err = write.DeleteCascade(ctx, ana.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestActivityLogRepository(t *testing.T) {
	db := dbtest.New(t)
	repo := NewActivityLogRepository(db)

	before := models.TransactionSnapshot{Amount: decimal.NewFromInt(100), Type: models.TypeIncome, Category: "Restaurant", Description: "x", Date: base}
	after := before
	after.Amount = decimal.NewFromInt(150)

	entries := []*models.ActivityLog{
		{UserID: 1, UserName: "ana", Action: models.ActionUpdate, EntityType: models.EntityTransaction, EntityID: 7, Details: models.UpdateDetails(before, after), CreatedAt: base},
		{UserID: 2, UserName: "ben", Action: models.ActionDelete, EntityType: models.EntityTransaction, EntityID: 8, Details: models.DeleteDetails(before), CreatedAt: base.Add(time.Minute)},
		{UserID: 1, UserName: "ana", Action: models.ActionCreate, EntityType: models.EntityTransaction, EntityID: 9, Details: models.FreeformDetails("hello"), CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Append(ctx, e))
		require.NotZero(t, e.ID)
	}

	all, err := repo.List(ctx, models.AllUsers(), 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, models.DetailsFreeform, all[0].Details.Kind)
	assert.Equal(t, "hello", all[0].Details.Text)
	assert.Equal(t, models.DetailsDelete, all[1].Details.Kind)
	require.NotNil(t, all[1].Details.DeletedTransaction)
	assert.Equal(t, "Restaurant", all[1].Details.DeletedTransaction.Category)

	update := all[2].Details
	assert.Equal(t, models.DetailsUpdate, update.Kind)
	assert.True(t, update.Before.Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, update.After.Amount.Equal(decimal.NewFromInt(150)))

	own, err := repo.List(ctx, models.OwnedBy(1), 10)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	limited, err := repo.List(ctx, models.AllUsers(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	bad := &models.ActivityLog{UserID: 1, Action: models.ActionUpdate, Details: models.ActivityDetails{Kind: models.DetailsUpdate}, CreatedAt: base}
	assert.Error(t, repo.Append(ctx, bad))
}

func TestActivityLogListKeepsUnreadableRows(t *testing.T) {
	db := dbtest.New(t)
	repo := NewActivityLogRepository(db)

	insert := `
		INSERT INTO activity_logs (user_id, user_name, action, entity_type, entity_id, details_kind, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := db.ExecContext(ctx, insert, 1, "ana", "UPDATE", models.EntityTransaction, 7, "legacy", "amount changed", base)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, insert, 1, "ana", "DELETE", models.EntityTransaction, 8, string(models.DetailsDelete), "{not json", base.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, &models.ActivityLog{
		UserID: 1, UserName: "ana", Action: models.ActionCreate, EntityType: models.EntityTransaction, EntityID: 9,
		Details: models.FreeformDetails("fine"), CreatedAt: base.Add(2 * time.Minute),
	}))

	logs, err := repo.List(ctx, models.AllUsers(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "fine", logs[0].Details.Text)
	assert.Equal(t, models.DetailsFreeform, logs[1].Details.Kind)
	assert.Equal(t, "{not json", logs[1].Details.Text)
	assert.Equal(t, models.DetailsFreeform, logs[2].Details.Kind)
	assert.Equal(t, "amount changed", logs[2].Details.Text)
}
