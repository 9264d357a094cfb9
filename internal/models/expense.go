package models

// Expense represents money spent from a room's shared pool.
//
// The amount is split equally among SplitAmong. Under the pooled-fund model
// the payer is not reimbursed: they spent the pool's money, not their own,
// so paying an expense does not improve the payer's balance.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// RoomID is the room whose pool the money came from.
	RoomID string

	// Amount is the total spent. Never negative. Editable.
	Amount float64

	// Description says what the money was spent on. Editable.
	Description string

	// PaidBy is the member who physically handed over the money.
	// Immutable after creation.
	PaidBy string

	// SplitAmong is the non-empty set of member IDs sharing this expense.
	// Immutable after creation.
	SplitAmong []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
