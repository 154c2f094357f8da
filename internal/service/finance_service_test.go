package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceService_Validation(t *testing.T) {
	store := newTestStore(t)
	svc := NewFinanceService(store)
	ctx := context.Background()

	_, err := svc.AddIncome(ctx, "alice", "  ", 100)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddIncome(ctx, "alice", "Salary", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddBill(ctx, "alice", "", 50, time.Now(), false, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFinanceService_ExpenseDefaultCategory(t *testing.T) {
	store := newTestStore(t)
	svc := NewFinanceService(store)
	ctx := context.Background()

	expense, err := svc.AddExpense(ctx, "alice", "  ", 25, "coffee")
	require.NoError(t, err)
	assert.Equal(t, "General", expense.Category)
}

func TestFinanceService_Summarize(t *testing.T) {
	store := newTestStore(t)
	svc := NewFinanceService(store)
	ctx := context.Background()

	_, err := svc.AddIncome(ctx, "alice", "Salary", 5000)
	require.NoError(t, err)
	_, err = svc.AddIncome(ctx, "alice", "Freelance", 800)
	require.NoError(t, err)
	_, err = svc.AddExpense(ctx, "alice", "Food", 350, "groceries")
	require.NoError(t, err)

	due := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	rent, err := svc.AddBill(ctx, "alice", "Rent", 1200, due, true, "Housing")
	require.NoError(t, err)
	_, err = svc.AddBill(ctx, "alice", "Internet", 60, due, true, "Utilities")
	require.NoError(t, err)

	// Another user's records must not leak into the summary.
	_, err = svc.AddIncome(ctx, "bob", "Salary", 9000)
	require.NoError(t, err)

	summary, err := svc.Summarize(ctx, "alice")
	require.NoError(t, err)
	assert.InDelta(t, 5800, summary.TotalIncome, 0.01)
	assert.InDelta(t, 350, summary.TotalExpenses, 0.01)
	assert.InDelta(t, 5450, summary.Net, 0.01)
	assert.Equal(t, 2, summary.UnpaidBills)
	assert.InDelta(t, 1260, summary.UnpaidAmount, 0.01)

	require.NoError(t, svc.SetBillPaid(ctx, "alice", rent.ID, true))

	summary, err = svc.Summarize(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.UnpaidBills)
	assert.InDelta(t, 60, summary.UnpaidAmount, 0.01)
}
