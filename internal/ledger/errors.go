package ledger

import "fmt"

// Epsilon is the tolerance, in currency units, below which amounts are
// treated as zero. Exact-split validation, balance filtering and settlement
// emission all use it.
const Epsilon = 0.01

// ErrorKind classifies validation failures raised by the ledger.
type ErrorKind string

const (
	// KindSplitMismatch means exact-split shares do not sum to the
	// transaction amount within Epsilon.
	KindSplitMismatch ErrorKind = "split_mismatch"

	// KindInvalidParticipants means the participant set is empty, or a
	// payment has more than one participant.
	KindInvalidParticipants ErrorKind = "invalid_participants"

	// KindInvalidAmount means the amount is zero or negative.
	KindInvalidAmount ErrorKind = "invalid_amount"
)

// ValidationError is raised synchronously when a transaction is created or
// edited. It must block the write; it is never raised during aggregation,
// which trusts already-validated transactions.
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func splitMismatchf(format string, args ...any) *ValidationError {
	return &ValidationError{Kind: KindSplitMismatch, Message: fmt.Sprintf(format, args...)}
}

func invalidParticipantsf(format string, args ...any) *ValidationError {
	return &ValidationError{Kind: KindInvalidParticipants, Message: fmt.Sprintf(format, args...)}
}

func invalidAmountf(format string, args ...any) *ValidationError {
	return &ValidationError{Kind: KindInvalidAmount, Message: fmt.Sprintf(format, args...)}
}
