package ledger

import "sort"

// Settlement is a directed payment recommendation: From pays To Amount.
type Settlement struct {
	From   string
	To     string
	Amount float64
}

type party struct {
	member    string
	remaining float64
}

// ComputeSettlements reduces a balance map to a short list of pairwise
// payments that return every member to zero. Members within Epsilon of zero
// are already settled and ignored.
//
// Greedy largest-pair matching: debtors and creditors are sorted descending
// by magnitude (ties broken by member ID, so output is deterministic) and
// matched with two pointers, settling min(debt, credit) each step. The list
// has at most debtors+creditors-1 entries. This is a heuristic, not a
// minimum-transfer-count solver; greedy matching is good in practice but not
// guaranteed optimal for every distribution.
func ComputeSettlements(balances map[string]float64) []Settlement {
	var debtors, creditors []party
	for member, balance := range balances {
		switch {
		case balance < -Epsilon:
			debtors = append(debtors, party{member, -balance})
		case balance > Epsilon:
			creditors = append(creditors, party{member, balance})
		}
	}

	byMagnitude := func(parties []party) func(i, j int) bool {
		return func(i, j int) bool {
			if parties[i].remaining != parties[j].remaining {
				return parties[i].remaining > parties[j].remaining
			}
			return parties[i].member < parties[j].member
		}
	}
	sort.Slice(debtors, byMagnitude(debtors))
	sort.Slice(creditors, byMagnitude(creditors))

	var settlements []Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := debtor.remaining
		if creditor.remaining < amount {
			amount = creditor.remaining
		}

		if amount > Epsilon {
			settlements = append(settlements, Settlement{
				From:   debtor.member,
				To:     creditor.member,
				Amount: round2(amount),
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining <= Epsilon {
			i++
		}
		if creditor.remaining <= Epsilon {
			j++
		}
	}
	return settlements
}
