package service

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tallyup/tallyup/internal/ledger"
	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/storage"
)

var recomputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "tallyup",
	Subsystem: "ledger",
	Name:      "recompute_duration_seconds",
	Help:      "Time spent recomputing a group's balances from its full transaction history.",
	Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
})

// LedgerService exposes derived balance and settlement views of a group.
// Results are recomputed from the full transaction history on every call and
// never cached; computation is cheap for realistic group sizes.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage
// backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// Balances computes each member's net position in the group. Positive means
// owed money, negative means owing.
func (s *LedgerService) Balances(ctx context.Context, groupID string) (map[string]float64, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactionsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	transactions := make([]models.Transaction, len(txs))
	for i, tx := range txs {
		transactions[i] = *tx
	}

	start := time.Now()
	balances := ledger.ComputeBalances(transactions, group.Members)
	recomputeDuration.Observe(time.Since(start).Seconds())
	return balances, nil
}

// Settlements reduces the group's balances to a short list of payments that
// settle everyone up.
func (s *LedgerService) Settlements(ctx context.Context, groupID string) ([]ledger.Settlement, error) {
	balances, err := s.Balances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ledger.ComputeSettlements(balances), nil
}
