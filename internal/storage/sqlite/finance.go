package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

// CreateIncome persists a personal income entry.
func (s *SQLiteStore) CreateIncome(ctx context.Context, income *models.Income) error {
	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	if income.Date == 0 {
		income.Date = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO incomes (id, user_id, source, amount, date) VALUES (?, ?, ?, ?, ?)",
		income.ID, income.UserID, income.Source, income.Amount, income.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert income: %w", err)
	}
	return nil
}

// ListIncomesByUser retrieves a user's incomes, newest first.
func (s *SQLiteStore) ListIncomesByUser(ctx context.Context, userID string) ([]*models.Income, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, source, amount, date FROM incomes WHERE user_id = ? ORDER BY date DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	var incomes []*models.Income
	for rows.Next() {
		income := &models.Income{}
		if err := rows.Scan(&income.ID, &income.UserID, &income.Source, &income.Amount, &income.Date); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, income)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate incomes: %w", err)
	}
	return incomes, nil
}

// DeleteIncome removes an income entry owned by the user.
func (s *SQLiteStore) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	return s.deleteOwned(ctx, "incomes", userID, incomeID)
}

// CreatePersonalExpense persists a personal expense entry.
func (s *SQLiteStore) CreatePersonalExpense(ctx context.Context, expense *models.PersonalExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Date == 0 {
		expense.Date = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO personal_expenses (id, user_id, category, amount, description, date) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.UserID, expense.Category, expense.Amount, expense.Description, expense.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert personal expense: %w", err)
	}
	return nil
}

// ListPersonalExpensesByUser retrieves a user's personal expenses, newest
// first.
func (s *SQLiteStore) ListPersonalExpensesByUser(ctx context.Context, userID string) ([]*models.PersonalExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, category, amount, description, date FROM personal_expenses WHERE user_id = ? ORDER BY date DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.PersonalExpense
	for rows.Next() {
		expense := &models.PersonalExpense{}
		if err := rows.Scan(&expense.ID, &expense.UserID, &expense.Category,
			&expense.Amount, &expense.Description, &expense.Date); err != nil {
			return nil, fmt.Errorf("failed to scan personal expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate personal expenses: %w", err)
	}
	return expenses, nil
}

// DeletePersonalExpense removes a personal expense owned by the user.
func (s *SQLiteStore) DeletePersonalExpense(ctx context.Context, userID, expenseID string) error {
	return s.deleteOwned(ctx, "personal_expenses", userID, expenseID)
}

// CreateBill persists a personal bill.
func (s *SQLiteStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	if bill.CreatedAt == 0 {
		bill.CreatedAt = time.Now().Unix()
	}
	if bill.Category == "" {
		bill.Category = "General"
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bills (id, user_id, name, amount, due_date, is_recurring, category, is_paid, paid_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bill.ID, bill.UserID, bill.Name, bill.Amount, bill.DueDate,
		bill.IsRecurring, bill.Category, bill.IsPaid, bill.PaidAt, bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill: %w", err)
	}
	return nil
}

// ListBillsByUser retrieves a user's bills, soonest due first.
func (s *SQLiteStore) ListBillsByUser(ctx context.Context, userID string) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, name, amount, due_date, is_recurring, category, is_paid, paid_at, created_at
		 FROM bills WHERE user_id = ? ORDER BY due_date ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	var bills []*models.Bill
	for rows.Next() {
		bill := &models.Bill{}
		var paidAt sql.NullInt64
		if err := rows.Scan(&bill.ID, &bill.UserID, &bill.Name, &bill.Amount, &bill.DueDate,
			&bill.IsRecurring, &bill.Category, &bill.IsPaid, &paidAt, &bill.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		if paidAt.Valid {
			bill.PaidAt = &paidAt.Int64
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}
	return bills, nil
}

// SetBillPaid flips a bill's paid flag, recording or clearing PaidAt.
func (s *SQLiteStore) SetBillPaid(ctx context.Context, userID, billID string, paid bool) error {
	var paidAt any
	if paid {
		paidAt = time.Now().Unix()
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE bills SET is_paid = ?, paid_at = ? WHERE id = ? AND user_id = ?",
		paid, paidAt, billID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return nil
}

// DeleteBill removes a bill owned by the user.
func (s *SQLiteStore) DeleteBill(ctx context.Context, userID, billID string) error {
	return s.deleteOwned(ctx, "bills", userID, billID)
}

func (s *SQLiteStore) deleteOwned(ctx context.Context, table, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = ? AND user_id = ?", table),
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrNotFound)
	}
	return nil
}
