package models

// SplitMethod is the rule for dividing a transaction's amount among its
// participants.
type SplitMethod string

const (
	// SplitEqual divides the amount evenly among participants.
	SplitEqual SplitMethod = "equal"

	// SplitExact uses a caller-supplied per-participant share mapping.
	SplitExact SplitMethod = "exact"
)

// TransactionKind distinguishes shared expenses from direct payments.
type TransactionKind string

const (
	// KindExpense is a shared expense fronted by one member and split
	// among the participants.
	KindExpense TransactionKind = "expense"

	// KindPayment is a direct transfer from the payer to a single
	// participant, recorded to settle debt. Payments are degenerate
	// exact-split transactions: one participant whose share equals the
	// full amount.
	KindPayment TransactionKind = "payment"
)

// Transaction represents a shared expense or a payment within a group.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// GroupID is the group this transaction belongs to.
	GroupID string

	// Description is a human-readable note ("Groceries", "Payment to Bob").
	Description string

	// Amount is the transaction total. Always positive.
	Amount float64

	// PaidBy is the member who fronted the money (credited).
	PaidBy string

	// Participants are the members who benefit from the transaction
	// (debited). Never empty. For payments, exactly one entry: the
	// receiver.
	Participants []string

	// SplitMethod is how Amount is divided among Participants.
	SplitMethod SplitMethod

	// ExactShares maps participant to owed share. Populated only when
	// SplitMethod is SplitExact; equal shares are derived at computation
	// time.
	ExactShares map[string]float64

	// Kind is expense or payment. Payments are not editable, only
	// deletable.
	Kind TransactionKind

	// CreatedBy is the member who recorded this transaction.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the transaction was recorded.
	// Used for ordering and display only, never in balance math.
	CreatedAt int64
}
