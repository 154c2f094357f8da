package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGroupStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and timestamp", func(t *testing.T) {
		group := &models.Group{
			Name:      "Flat 4B",
			CreatedBy: "alice",
			Members:   []string{"alice", "bob"},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if group.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetGroup retrieves members", func(t *testing.T) {
		group := &models.Group{
			Name:      "Goa Trip",
			CreatedBy: "carol",
			Members:   []string{"alice", "bob", "carol"},
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Name != "Goa Trip" || got.CreatedBy != "carol" {
			t.Errorf("got group %+v, want name=Goa Trip created_by=carol", got)
		}
		if len(got.Members) != 3 {
			t.Errorf("got %d members, want 3", len(got.Members))
		}
	})

	t.Run("GetGroup returns ErrNotFound for unknown id", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AddGroupMembers ignores existing members", func(t *testing.T) {
		group := &models.Group{Name: "Lunch", CreatedBy: "alice", Members: []string{"alice"}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		if err := store.AddGroupMembers(ctx, group.ID, []string{"alice", "bob"}); err != nil {
			t.Fatalf("AddGroupMembers failed: %v", err)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.Members) != 2 {
			t.Errorf("got %d members, want 2 (%v)", len(got.Members), got.Members)
		}
	})

	t.Run("RemoveGroupMember keeps transactions", func(t *testing.T) {
		group := &models.Group{Name: "Trip", CreatedBy: "alice", Members: []string{"alice", "bob"}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		tx := &models.Transaction{
			GroupID:      group.ID,
			Description:  "Fuel",
			Amount:       40,
			PaidBy:       "bob",
			Participants: []string{"alice", "bob"},
			SplitMethod:  models.SplitEqual,
			Kind:         models.KindExpense,
			CreatedBy:    "bob",
		}
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		if err := store.RemoveGroupMember(ctx, group.ID, "bob"); err != nil {
			t.Fatalf("RemoveGroupMember failed: %v", err)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.Members) != 1 || got.Members[0] != "alice" {
			t.Errorf("got members %v, want [alice]", got.Members)
		}

		txs, err := store.ListTransactionsByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListTransactionsByGroup failed: %v", err)
		}
		if len(txs) != 1 {
			t.Errorf("got %d transactions after member removal, want 1", len(txs))
		}
	})

	t.Run("DeleteGroup cascades to transactions", func(t *testing.T) {
		group := &models.Group{Name: "Dinner", CreatedBy: "alice", Members: []string{"alice", "bob"}}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		tx := &models.Transaction{
			GroupID:      group.ID,
			Description:  "Pizza",
			Amount:       30,
			PaidBy:       "alice",
			Participants: []string{"alice", "bob"},
			SplitMethod:  models.SplitEqual,
			Kind:         models.KindExpense,
			CreatedBy:    "alice",
		}
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		if err := store.DeleteGroup(ctx, group.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}

		if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected group gone, got %v", err)
		}
		if _, err := store.GetTransaction(ctx, tx.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected transaction cascaded away, got %v", err)
		}
	})
}

func TestTransactionStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Flat", CreatedBy: "alice", Members: []string{"alice", "bob", "carol"}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("exact transaction round trip", func(t *testing.T) {
		original := &models.Transaction{
			GroupID:      group.ID,
			Description:  "Groceries",
			Amount:       90,
			PaidBy:       "bob",
			Participants: []string{"alice", "bob"},
			SplitMethod:  models.SplitExact,
			ExactShares:  map[string]float64{"alice": 60, "bob": 30},
			Kind:         models.KindExpense,
			CreatedBy:    "bob",
		}
		if err := store.CreateTransaction(ctx, original); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		got, err := store.GetTransaction(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetTransaction failed: %v", err)
		}
		if got.Amount != 90 || got.PaidBy != "bob" || got.SplitMethod != models.SplitExact {
			t.Errorf("got transaction %+v", got)
		}
		if len(got.Participants) != 2 {
			t.Errorf("got %d participants, want 2", len(got.Participants))
		}
		if got.ExactShares["alice"] != 60 || got.ExactShares["bob"] != 30 {
			t.Errorf("got exact shares %v, want alice=60 bob=30", got.ExactShares)
		}
	})

	t.Run("equal transaction stores no shares", func(t *testing.T) {
		tx := &models.Transaction{
			GroupID:      group.ID,
			Description:  "Cab",
			Amount:       45,
			PaidBy:       "carol",
			Participants: []string{"alice", "bob", "carol"},
			SplitMethod:  models.SplitEqual,
			Kind:         models.KindExpense,
			CreatedBy:    "carol",
		}
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		got, err := store.GetTransaction(ctx, tx.ID)
		if err != nil {
			t.Fatalf("GetTransaction failed: %v", err)
		}
		if got.ExactShares != nil {
			t.Errorf("equal split stored shares %v, want none", got.ExactShares)
		}
	})

	t.Run("UpdateTransaction replaces participants", func(t *testing.T) {
		tx := &models.Transaction{
			GroupID:      group.ID,
			Description:  "Snacks",
			Amount:       20,
			PaidBy:       "alice",
			Participants: []string{"alice", "bob"},
			SplitMethod:  models.SplitEqual,
			Kind:         models.KindExpense,
			CreatedBy:    "alice",
		}
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		tx.Amount = 30
		tx.Participants = []string{"alice", "bob", "carol"}
		if err := store.UpdateTransaction(ctx, tx); err != nil {
			t.Fatalf("UpdateTransaction failed: %v", err)
		}

		got, err := store.GetTransaction(ctx, tx.ID)
		if err != nil {
			t.Fatalf("GetTransaction failed: %v", err)
		}
		if got.Amount != 30 || len(got.Participants) != 3 {
			t.Errorf("got amount=%v participants=%v, want 30 and 3 participants", got.Amount, got.Participants)
		}
	})

	t.Run("DeleteTransaction", func(t *testing.T) {
		tx := &models.Transaction{
			GroupID:      group.ID,
			Description:  "Coffee",
			Amount:       5,
			PaidBy:       "alice",
			Participants: []string{"bob"},
			SplitMethod:  models.SplitExact,
			ExactShares:  map[string]float64{"bob": 5},
			Kind:         models.KindPayment,
			CreatedBy:    "alice",
		}
		if err := store.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		if err := store.DeleteTransaction(ctx, tx.ID); err != nil {
			t.Fatalf("DeleteTransaction failed: %v", err)
		}
		if err := store.DeleteTransaction(ctx, tx.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on double delete, got %v", err)
		}
	})
}

func TestFinanceStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("income round trip and ownership", func(t *testing.T) {
		income := &models.Income{UserID: "alice", Source: "Salary", Amount: 5000}
		if err := store.CreateIncome(ctx, income); err != nil {
			t.Fatalf("CreateIncome failed: %v", err)
		}

		incomes, err := store.ListIncomesByUser(ctx, "alice")
		if err != nil {
			t.Fatalf("ListIncomesByUser failed: %v", err)
		}
		if len(incomes) != 1 || incomes[0].Source != "Salary" {
			t.Errorf("got incomes %v, want one Salary entry", incomes)
		}

		if err := store.DeleteIncome(ctx, "bob", income.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound deleting another user's income, got %v", err)
		}
		if err := store.DeleteIncome(ctx, "alice", income.ID); err != nil {
			t.Fatalf("DeleteIncome failed: %v", err)
		}
	})

	t.Run("personal expense round trip", func(t *testing.T) {
		expense := &models.PersonalExpense{UserID: "alice", Category: "Food", Amount: 12.5, Description: "Lunch"}
		if err := store.CreatePersonalExpense(ctx, expense); err != nil {
			t.Fatalf("CreatePersonalExpense failed: %v", err)
		}

		expenses, err := store.ListPersonalExpensesByUser(ctx, "alice")
		if err != nil {
			t.Fatalf("ListPersonalExpensesByUser failed: %v", err)
		}
		if len(expenses) != 1 || expenses[0].Category != "Food" {
			t.Errorf("got expenses %v, want one Food entry", expenses)
		}
	})

	t.Run("bill paid toggle", func(t *testing.T) {
		bill := &models.Bill{UserID: "alice", Name: "Rent", Amount: 1200, DueDate: 1700000000}
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if bill.Category != "General" {
			t.Errorf("got category %q, want default General", bill.Category)
		}

		if err := store.SetBillPaid(ctx, "alice", bill.ID, true); err != nil {
			t.Fatalf("SetBillPaid failed: %v", err)
		}
		bills, err := store.ListBillsByUser(ctx, "alice")
		if err != nil {
			t.Fatalf("ListBillsByUser failed: %v", err)
		}
		if len(bills) != 1 || !bills[0].IsPaid || bills[0].PaidAt == nil {
			t.Errorf("got bill %+v, want paid with PaidAt set", bills[0])
		}

		if err := store.SetBillPaid(ctx, "alice", bill.ID, false); err != nil {
			t.Fatalf("SetBillPaid(false) failed: %v", err)
		}
		bills, err = store.ListBillsByUser(ctx, "alice")
		if err != nil {
			t.Fatalf("ListBillsByUser failed: %v", err)
		}
		if bills[0].IsPaid || bills[0].PaidAt != nil {
			t.Errorf("got bill %+v, want unpaid with PaidAt cleared", bills[0])
		}
	})
}
