package models

// Role is a member's permission level within a room.
type Role string

const (
	// RoleAdmin grants member management and ledger correction rights.
	RoleAdmin Role = "admin"
	// RoleMember is the default role for added members.
	RoleMember Role = "member"
)

// Member represents a participant in a room.
//
// The ID doubles as the member's bearer credential ("access key"); there is
// no separate password. Every room keeps at least one non-deleted admin at
// all times.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// RoomID is the room this member belongs to.
	RoomID string

	// Name is the display name of the member.
	Name string

	// Role is either RoleAdmin or RoleMember.
	Role Role

	// IsDeleted marks the member as removed. Tombstoned members cannot act
	// on the room or appear in new ledger records, but their ID remains
	// valid in historical deposits and expense splits.
	IsDeleted bool

	// JoinedAt is the Unix timestamp when the member was added.
	JoinedAt int64
}
