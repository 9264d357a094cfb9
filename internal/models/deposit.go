package models

// Deposit represents money added to a room's shared pool by a member.
// Deposits are immutable; the only correction is deletion.
type Deposit struct {
	// ID is the unique identifier for the deposit (UUID format).
	ID string

	// RoomID is the room whose pool received the money.
	RoomID string

	// MemberID is the member who made the deposit.
	MemberID string

	// Amount is the deposited amount. Never negative.
	Amount float64

	// CreatedAt is the Unix timestamp when the deposit was recorded.
	CreatedAt int64
}
