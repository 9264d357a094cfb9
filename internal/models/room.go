package models

// CodeLength is the length of the human-facing room code.
const CodeLength = 6

// Room represents an isolated pooled-fund group.
type Room struct {
	// ID is the unique identifier for the room (UUID format).
	ID string

	// Code is the short human-entered code used to address the room
	// (e.g., "4E2WNP"). Stored uppercase, compared case-insensitively,
	// globally unique. Immutable after creation.
	Code string

	// Name is the display name of the room (e.g., "Flat 302").
	// The only mutable room field.
	Name string

	// CreatedAt is the Unix timestamp when the room was created.
	CreatedAt int64
}
