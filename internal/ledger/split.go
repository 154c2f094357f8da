// Package ledger implements the shared-expense ledger and settlement engine:
// split calculation, balance aggregation and greedy debt reduction. All
// functions are pure and operate on in-memory data; derived results are never
// cached or persisted.
package ledger

import (
	"math"

	"github.com/tallyup/tallyup/internal/models"
)

// round2 rounds to 2 decimal places, half away from zero.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeSplit produces the authoritative per-participant share mapping for a
// transaction. The result has exactly one entry per participant and no
// extras.
//
// For the equal method, each share is amount/n rounded to 2 decimals and the
// leftover cents are assigned to the lowest member ID, so shares always sum
// exactly to amount regardless of participant order. For the exact method
// the supplied shares are validated:
// every participant needs a non-negative entry and the entries must sum to
// amount within Epsilon.
func ComputeSplit(amount float64, participants []string, method models.SplitMethod, exactShares map[string]float64) (map[string]float64, error) {
	if amount <= 0 {
		return nil, invalidAmountf("amount must be positive, got %.2f", amount)
	}
	if len(participants) == 0 {
		return nil, invalidParticipantsf("at least one participant is required")
	}

	switch method {
	case models.SplitEqual:
		return equalShares(amount, participants), nil
	case models.SplitExact:
		shares := make(map[string]float64, len(participants))
		sum := 0.0
		for _, p := range participants {
			share, ok := exactShares[p]
			if !ok {
				return nil, splitMismatchf("missing exact share for participant %q", p)
			}
			if share < 0 {
				return nil, splitMismatchf("exact share for participant %q is negative: %.2f", p, share)
			}
			shares[p] = share
			sum += share
		}
		if math.Abs(sum-amount) > Epsilon {
			return nil, splitMismatchf("exact shares sum to %.2f, expected %.2f", sum, amount)
		}
		return shares, nil
	default:
		return nil, invalidParticipantsf("unknown split method %q", method)
	}
}

// equalShares divides amount evenly, assigning rounding leftovers to the
// lowest member ID. Participants are a set, and the store does not preserve
// slice order, so the remainder holder must not depend on it. Shared by
// ComputeSplit and the balance aggregator so an equal split debits
// identically whether shares are stored or re-derived.
func equalShares(amount float64, participants []string) map[string]float64 {
	n := len(participants)
	share := round2(amount / float64(n))
	shares := make(map[string]float64, n)
	first := participants[0]
	for _, p := range participants {
		shares[p] = share
		if p < first {
			first = p
		}
	}
	shares[first] = round2(amount - share*float64(n-1))
	return shares
}
