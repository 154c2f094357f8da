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

// CreateTransaction persists a new transaction with its participants and,
// for exact splits, the per-participant shares.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	if transaction.CreatedAt == 0 {
		transaction.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, group_id, description, amount, paid_by, split_method, kind, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		transaction.ID, transaction.GroupID, transaction.Description, transaction.Amount,
		transaction.PaidBy, transaction.SplitMethod, transaction.Kind,
		transaction.CreatedBy, transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := insertParticipants(ctx, tx, transaction); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, transaction *models.Transaction) error {
	for _, member := range transaction.Participants {
		var share any
		if transaction.SplitMethod == models.SplitExact {
			if v, ok := transaction.ExactShares[member]; ok {
				share = v
			}
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO transaction_participants (transaction_id, member, exact_share) VALUES (?, ?, ?)",
			transaction.ID, member, share,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction participant: %w", err)
		}
	}
	return nil
}

// GetTransaction retrieves a transaction by ID, including participants and
// exact shares.
func (s *SQLiteStore) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	transaction := &models.Transaction{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, description, amount, paid_by, split_method, kind, created_by, created_at
		 FROM transactions WHERE id = ?`,
		txID,
	).Scan(&transaction.ID, &transaction.GroupID, &transaction.Description, &transaction.Amount,
		&transaction.PaidBy, &transaction.SplitMethod, &transaction.Kind,
		&transaction.CreatedBy, &transaction.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction %s: %w", txID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := s.loadParticipants(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, transaction *models.Transaction) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member, exact_share FROM transaction_participants WHERE transaction_id = ? ORDER BY member",
		transaction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get transaction participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member string
		var share sql.NullFloat64
		if err := rows.Scan(&member, &share); err != nil {
			return fmt.Errorf("failed to scan transaction participant: %w", err)
		}
		transaction.Participants = append(transaction.Participants, member)
		if share.Valid {
			if transaction.ExactShares == nil {
				transaction.ExactShares = make(map[string]float64)
			}
			transaction.ExactShares[member] = share.Float64
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate transaction participants: %w", err)
	}
	return nil
}

// ListTransactionsByGroup retrieves all transactions for a group, newest
// first.
func (s *SQLiteStore) ListTransactionsByGroup(ctx context.Context, groupID string) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, paid_by, split_method, kind, created_by, created_at
		 FROM transactions WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by group: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		transaction := &models.Transaction{}
		if err := rows.Scan(&transaction.ID, &transaction.GroupID, &transaction.Description,
			&transaction.Amount, &transaction.PaidBy, &transaction.SplitMethod,
			&transaction.Kind, &transaction.CreatedBy, &transaction.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	for _, transaction := range transactions {
		if err := s.loadParticipants(ctx, transaction); err != nil {
			return nil, err
		}
	}
	return transactions, nil
}

// UpdateTransaction replaces the mutable fields of a transaction along with
// its participant rows.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, transaction *models.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE transactions
		 SET description = ?, amount = ?, paid_by = ?, split_method = ?
		 WHERE id = ?`,
		transaction.Description, transaction.Amount, transaction.PaidBy,
		transaction.SplitMethod, transaction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", transaction.ID, storage.ErrNotFound)
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM transaction_participants WHERE transaction_id = ?",
		transaction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear transaction participants: %w", err)
	}

	if err := insertParticipants(ctx, tx, transaction); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction by ID.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, txID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", txID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", txID, storage.ErrNotFound)
	}
	return nil
}
