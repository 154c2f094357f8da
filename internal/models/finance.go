package models

// Income represents a personal income entry.
type Income struct {
	// ID is the unique identifier for the income (UUID format).
	ID string

	// UserID is the owner of this entry.
	UserID string

	// Source describes where the money came from ("Salary", "Refund").
	Source string

	// Amount received. Always positive.
	Amount float64

	// Date is the Unix timestamp of the income.
	Date int64
}

// PersonalExpense represents a personal spending entry, unrelated to any
// group.
type PersonalExpense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// UserID is the owner of this entry.
	UserID string

	// Category buckets the expense ("Food", "Transport", "General").
	Category string

	// Amount spent. Always positive.
	Amount float64

	// Description is an optional free-form note.
	Description string

	// Date is the Unix timestamp of the expense.
	Date int64
}

// Bill represents a personal bill with a due date.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// UserID is the owner of this bill.
	UserID string

	// Name of the bill ("Rent", "Electricity").
	Name string

	// Amount due. Always positive.
	Amount float64

	// DueDate is the Unix timestamp the bill is due.
	DueDate int64

	// IsRecurring marks bills that repeat every cycle.
	IsRecurring bool

	// Category buckets the bill (defaults to "General").
	Category string

	// IsPaid marks whether the bill has been paid.
	IsPaid bool

	// PaidAt is the Unix timestamp the bill was marked paid, nil while
	// unpaid.
	PaidAt *int64

	// CreatedAt is the Unix timestamp when the bill was created.
	CreatedAt int64
}
