// Package service implements the business rules on top of the storage layer:
// room creation, membership lifecycle, and the deposit/expense ledger.
package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNegativeAmount is returned for deposits or expenses with amount < 0.
	ErrNegativeAmount = errors.New("amount must be non-negative")

	// ErrEmptySplit is returned when an expense names nobody to split among.
	ErrEmptySplit = errors.New("expense must be split among at least one member")

	// ErrNameRequired is returned when a room, admin or member name is blank.
	ErrNameRequired = errors.New("name is required")

	// ErrInvalidCode is returned when a room code is not six alphanumeric
	// characters.
	ErrInvalidCode = errors.New("room code must be six alphanumeric characters")

	// ErrNotRoomMember is returned when a deposit names a member that is not
	// a live member of the room.
	ErrNotRoomMember = errors.New("member does not belong to this room")
)

// SplitMemberError reports expense participants (split members or the payer)
// that are not live members of the room.
type SplitMemberError struct {
	MemberIDs []string
}

func (e *SplitMemberError) Error() string {
	return fmt.Sprintf("invalid members in split: %s", strings.Join(e.MemberIDs, ", "))
}
