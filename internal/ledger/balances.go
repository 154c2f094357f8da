package ledger

import (
	"log/slog"

	"github.com/tallyup/tallyup/internal/models"
)

// ComputeBalances folds a group's transaction list into a net balance per
// member. Positive means the member is owed money, negative means the member
// owes. The fold is commutative: the result does not depend on transaction
// order.
//
// Every current member gets an entry, zero if untouched. Members who appear
// in historical transactions but have since left the group are kept as
// floating entries rather than dropped, so the map always sums to zero; each
// such member is logged once as a data integrity warning.
//
// Malformed records never abort the fold: a payment without participants is
// skipped, a payment with extra participants credits only the first, and a
// missing exact share counts as zero. All three are logged and the remaining
// transactions still produce a best-effort result.
func ComputeBalances(transactions []models.Transaction, members []string) map[string]float64 {
	balances := make(map[string]float64, len(members))
	for _, m := range members {
		balances[m] = 0
	}

	current := make(map[string]bool, len(members))
	for _, m := range members {
		current[m] = true
	}
	warned := make(map[string]bool)

	touch := func(tx *models.Transaction, member string) {
		if _, ok := balances[member]; ok {
			return
		}
		balances[member] = 0
		if !current[member] && !warned[member] {
			warned[member] = true
			slog.Warn("transaction references member outside group",
				"transaction_id", tx.ID,
				"group_id", tx.GroupID,
				"member", member,
			)
		}
	}

	for i := range transactions {
		tx := &transactions[i]

		if tx.Kind == models.KindPayment {
			if len(tx.Participants) == 0 {
				slog.Warn("payment has no participants, skipping",
					"transaction_id", tx.ID, "group_id", tx.GroupID)
				continue
			}
			if len(tx.Participants) > 1 {
				slog.Warn("payment has multiple participants, crediting first",
					"transaction_id", tx.ID, "group_id", tx.GroupID,
					"participants", len(tx.Participants))
			}
			receiver := tx.Participants[0]
			touch(tx, tx.PaidBy)
			touch(tx, receiver)
			balances[tx.PaidBy] -= tx.Amount
			balances[receiver] += tx.Amount
			continue
		}

		if len(tx.Participants) == 0 {
			slog.Warn("expense has no participants, skipping",
				"transaction_id", tx.ID, "group_id", tx.GroupID)
			continue
		}

		touch(tx, tx.PaidBy)
		balances[tx.PaidBy] += tx.Amount

		var shares map[string]float64
		if tx.SplitMethod == models.SplitExact {
			shares = make(map[string]float64, len(tx.Participants))
			for _, p := range tx.Participants {
				share, ok := tx.ExactShares[p]
				if !ok {
					slog.Warn("missing exact share for participant, counting zero",
						"transaction_id", tx.ID, "group_id", tx.GroupID, "member", p)
				}
				shares[p] = share
			}
		} else {
			shares = equalShares(tx.Amount, tx.Participants)
		}

		for _, p := range tx.Participants {
			touch(tx, p)
			balances[p] -= shares[p]
		}
	}

	// Suppress floating-point noise accumulated over the fold.
	for m, b := range balances {
		balances[m] = round2(b)
	}
	return balances
}
