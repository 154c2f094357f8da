// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/tallyup/tallyup/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for Tallyup's storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateGroup persists a new group. The ID and CreatedAt fields are
	// populated by the store if unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, including its member set.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsByMember retrieves all groups the member belongs to.
	ListGroupsByMember(ctx context.Context, memberID string) ([]*models.Group, error)

	// AddGroupMembers adds the given members to a group, ignoring ones
	// already present.
	AddGroupMembers(ctx context.Context, groupID string, members []string) error

	// RemoveGroupMember removes a member from a group. Historical
	// transactions referencing the member are left untouched.
	RemoveGroupMember(ctx context.Context, groupID, memberID string) error

	// DeleteGroup removes a group and, cascading, every transaction that
	// belongs to it.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateTransaction persists a new transaction. The ID and CreatedAt
	// fields are populated by the store if unset.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// GetTransaction retrieves a transaction by ID, including its
	// participants and exact shares.
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)

	// ListTransactionsByGroup retrieves all transactions for a group,
	// newest first.
	ListTransactionsByGroup(ctx context.Context, groupID string) ([]*models.Transaction, error)

	// UpdateTransaction replaces the mutable fields of a transaction:
	// amount, payer, participants, split method and exact shares.
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error

	// DeleteTransaction removes a transaction by ID.
	DeleteTransaction(ctx context.Context, txID string) error

	// CreateIncome persists a personal income entry.
	CreateIncome(ctx context.Context, income *models.Income) error

	// ListIncomesByUser retrieves a user's incomes, newest first.
	ListIncomesByUser(ctx context.Context, userID string) ([]*models.Income, error)

	// DeleteIncome removes an income entry owned by the user.
	DeleteIncome(ctx context.Context, userID, incomeID string) error

	// CreatePersonalExpense persists a personal expense entry.
	CreatePersonalExpense(ctx context.Context, expense *models.PersonalExpense) error

	// ListPersonalExpensesByUser retrieves a user's personal expenses,
	// newest first.
	ListPersonalExpensesByUser(ctx context.Context, userID string) ([]*models.PersonalExpense, error)

	// DeletePersonalExpense removes a personal expense owned by the user.
	DeletePersonalExpense(ctx context.Context, userID, expenseID string) error

	// CreateBill persists a personal bill.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// ListBillsByUser retrieves a user's bills, soonest due first.
	ListBillsByUser(ctx context.Context, userID string) ([]*models.Bill, error)

	// SetBillPaid flips a bill's paid flag, recording or clearing PaidAt.
	SetBillPaid(ctx context.Context, userID, billID string, paid bool) error

	// DeleteBill removes a bill owned by the user.
	DeleteBill(ctx context.Context, userID, billID string) error

	// Close releases any resources held by the store.
	Close() error
}
