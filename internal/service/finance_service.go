package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

// FinanceService manages personal incomes, expenses and bills, independent
// of any group.
type FinanceService struct {
	store storage.Store
}

// NewFinanceService creates a new FinanceService with the given storage
// backend.
func NewFinanceService(store storage.Store) *FinanceService {
	return &FinanceService{store: store}
}

// AddIncome records a personal income entry.
func (s *FinanceService) AddIncome(ctx context.Context, userID, source string, amount float64) (*models.Income, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("%w: income source cannot be empty", ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: income amount must be positive", ErrInvalidInput)
	}

	income := &models.Income{UserID: userID, Source: source, Amount: amount}
	if err := s.store.CreateIncome(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

// ListIncomes retrieves a user's incomes, newest first.
func (s *FinanceService) ListIncomes(ctx context.Context, userID string) ([]*models.Income, error) {
	return s.store.ListIncomesByUser(ctx, userID)
}

// DeleteIncome removes an income entry owned by the user.
func (s *FinanceService) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	return s.store.DeleteIncome(ctx, userID, incomeID)
}

// AddExpense records a personal expense entry.
func (s *FinanceService) AddExpense(ctx context.Context, userID, category string, amount float64, description string) (*models.PersonalExpense, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: expense amount must be positive", ErrInvalidInput)
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = "General"
	}

	expense := &models.PersonalExpense{
		UserID:      userID,
		Category:    category,
		Amount:      amount,
		Description: strings.TrimSpace(description),
	}
	if err := s.store.CreatePersonalExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses retrieves a user's personal expenses, newest first.
func (s *FinanceService) ListExpenses(ctx context.Context, userID string) ([]*models.PersonalExpense, error) {
	return s.store.ListPersonalExpensesByUser(ctx, userID)
}

// DeleteExpense removes a personal expense owned by the user.
func (s *FinanceService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	return s.store.DeletePersonalExpense(ctx, userID, expenseID)
}

// AddBill records a personal bill.
func (s *FinanceService) AddBill(ctx context.Context, userID, name string, amount float64, dueDate time.Time, isRecurring bool, category string) (*models.Bill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: bill name cannot be empty", ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: bill amount must be positive", ErrInvalidInput)
	}

	bill := &models.Bill{
		UserID:      userID,
		Name:        name,
		Amount:      amount,
		DueDate:     dueDate.Unix(),
		IsRecurring: isRecurring,
		Category:    strings.TrimSpace(category),
	}
	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// ListBills retrieves a user's bills, soonest due first.
func (s *FinanceService) ListBills(ctx context.Context, userID string) ([]*models.Bill, error) {
	return s.store.ListBillsByUser(ctx, userID)
}

// SetBillPaid flips a bill's paid flag.
func (s *FinanceService) SetBillPaid(ctx context.Context, userID, billID string, paid bool) error {
	return s.store.SetBillPaid(ctx, userID, billID, paid)
}

// DeleteBill removes a bill owned by the user.
func (s *FinanceService) DeleteBill(ctx context.Context, userID, billID string) error {
	return s.store.DeleteBill(ctx, userID, billID)
}

// Summary is a snapshot of a user's personal finances.
type Summary struct {
	TotalIncome   float64
	TotalExpenses float64
	Net           float64
	UnpaidBills   int
	UnpaidAmount  float64
}

// Summarize totals a user's incomes, expenses and outstanding bills.
func (s *FinanceService) Summarize(ctx context.Context, userID string) (*Summary, error) {
	incomes, err := s.store.ListIncomesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListPersonalExpensesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	bills, err := s.store.ListBillsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, income := range incomes {
		summary.TotalIncome += income.Amount
	}
	for _, expense := range expenses {
		summary.TotalExpenses += expense.Amount
	}
	for _, bill := range bills {
		if !bill.IsPaid {
			summary.UnpaidBills++
			summary.UnpaidAmount += bill.Amount
		}
	}
	summary.Net = summary.TotalIncome - summary.TotalExpenses
	return summary, nil
}
