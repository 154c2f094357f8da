package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tallyup/tallyup/internal/ledger"
	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

// ExpenseService manages shared expenses and payments within groups.
// Every write is validated through the ledger's split calculator first; a
// validation failure blocks the write.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// ExpenseParams carries the caller-supplied fields of a shared expense.
type ExpenseParams struct {
	GroupID      string
	Description  string
	Amount       float64
	PaidBy       string
	Participants []string
	SplitMethod  models.SplitMethod
	ExactShares  map[string]float64
	CreatedBy    string
}

// AddExpense validates and records a shared expense. Participants and payer
// must be current group members; exact shares must sum to the amount within
// the ledger epsilon.
func (s *ExpenseService) AddExpense(ctx context.Context, params ExpenseParams) (*models.Transaction, error) {
	group, err := s.store.GetGroup(ctx, params.GroupID)
	if err != nil {
		return nil, err
	}

	tx, err := buildExpense(group, params)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	slog.Info("expense recorded",
		"transaction_id", tx.ID, "group_id", tx.GroupID,
		"amount", tx.Amount, "split_method", tx.SplitMethod)
	return tx, nil
}

// UpdateExpense validates and applies an edit to an existing expense.
// Payments are immutable: the only way to undo one is to delete it.
func (s *ExpenseService) UpdateExpense(ctx context.Context, txID string, params ExpenseParams) (*models.Transaction, error) {
	existing, err := s.store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if existing.Kind == models.KindPayment {
		return nil, ErrPaymentImmutable
	}

	group, err := s.store.GetGroup(ctx, existing.GroupID)
	if err != nil {
		return nil, err
	}

	params.GroupID = existing.GroupID
	tx, err := buildExpense(group, params)
	if err != nil {
		return nil, err
	}
	tx.ID = existing.ID
	tx.CreatedBy = existing.CreatedBy
	tx.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	slog.Info("expense updated", "transaction_id", tx.ID, "group_id", tx.GroupID)
	return tx, nil
}

// buildExpense validates params against the group and assembles the
// transaction. Exact shares are taken from the split calculator's output so
// only validated, participant-scoped shares are ever stored.
func buildExpense(group *models.Group, params ExpenseParams) (*models.Transaction, error) {
	if params.PaidBy == "" {
		return nil, fmt.Errorf("%w: payer is required", ErrInvalidInput)
	}
	if !group.HasMember(params.PaidBy) {
		return nil, fmt.Errorf("%w: payer %q is not a group member", ErrInvalidInput, params.PaidBy)
	}
	for _, p := range params.Participants {
		if !group.HasMember(p) {
			return nil, fmt.Errorf("%w: participant %q is not a group member", ErrInvalidInput, p)
		}
	}

	shares, err := ledger.ComputeSplit(params.Amount, params.Participants, params.SplitMethod, params.ExactShares)
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		GroupID:      params.GroupID,
		Description:  strings.TrimSpace(params.Description),
		Amount:       params.Amount,
		PaidBy:       params.PaidBy,
		Participants: params.Participants,
		SplitMethod:  params.SplitMethod,
		Kind:         models.KindExpense,
		CreatedBy:    params.CreatedBy,
	}
	if params.SplitMethod == models.SplitExact {
		tx.ExactShares = shares
	}
	return tx, nil
}

// RecordPayment records a direct transfer from one member to another as a
// degenerate exact-split transaction: a single participant (the receiver)
// whose share is the full amount. In the ledger the payer is debited and the
// receiver credited, so a settlement instruction is cleared by a payment
// whose payer is the instruction's creditor.
func (s *ExpenseService) RecordPayment(ctx context.Context, groupID, from, to string, amount float64, createdBy string) (*models.Transaction, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("%w: payer and receiver must differ", ErrInvalidInput)
	}
	if !group.HasMember(from) {
		return nil, fmt.Errorf("%w: payer %q is not a group member", ErrInvalidInput, from)
	}
	if !group.HasMember(to) {
		return nil, fmt.Errorf("%w: receiver %q is not a group member", ErrInvalidInput, to)
	}

	shares, err := ledger.ComputeSplit(amount, []string{to}, models.SplitExact, map[string]float64{to: amount})
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		GroupID:      groupID,
		Description:  fmt.Sprintf("Payment from %s to %s", from, to),
		Amount:       amount,
		PaidBy:       from,
		Participants: []string{to},
		SplitMethod:  models.SplitExact,
		ExactShares:  shares,
		Kind:         models.KindPayment,
		CreatedBy:    createdBy,
	}
	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	slog.Info("payment recorded",
		"transaction_id", tx.ID, "group_id", groupID,
		"from", from, "to", to, "amount", amount)
	return tx, nil
}

// DeleteTransaction removes an expense or payment.
func (s *ExpenseService) DeleteTransaction(ctx context.Context, txID string) error {
	if err := s.store.DeleteTransaction(ctx, txID); err != nil {
		return err
	}
	slog.Info("transaction deleted", "transaction_id", txID)
	return nil
}

// ListTransactions retrieves a group's transactions, newest first.
func (s *ExpenseService) ListTransactions(ctx context.Context, groupID string) ([]*models.Transaction, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListTransactionsByGroup(ctx, groupID)
}
