// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/kartikn/roomfund/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists is returned when a uniqueness constraint is violated,
	// e.g. creating a room with a code that is already taken.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrLastAdmin is returned when deleting a member would leave the room
	// with no non-deleted admin.
	ErrLastAdmin = errors.New("cannot delete the last admin of a room")
)

// Store defines the interface for room and ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Operations that enforce invariants (room code uniqueness, the last-admin
// rule) must do so at the store level so that concurrent callers are
// serialized by the database, not by application-level existence checks.
type Store interface {
	// CreateRoom persists a new room together with its initial admin member
	// in a single transaction: both succeed or neither persists.
	// Returns ErrAlreadyExists if the room code is already in use.
	CreateRoom(ctx context.Context, room *models.Room, admin *models.Member) error

	// GetRoom retrieves a room by its internal ID.
	GetRoom(ctx context.Context, id string) (*models.Room, error)

	// GetRoomByCode retrieves a room by its public code. The comparison is
	// case-insensitive.
	GetRoomByCode(ctx context.Context, code string) (*models.Room, error)

	// UpdateRoomName renames a room.
	UpdateRoomName(ctx context.Context, id, name string) error

	// CreateMember persists a new member.
	CreateMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a member by ID, tombstoned or not.
	GetMember(ctx context.Context, id string) (*models.Member, error)

	// ListMembers returns all members of a room, including tombstoned ones,
	// ordered by join time.
	ListMembers(ctx context.Context, roomID string) ([]models.Member, error)

	// DeleteMember tombstones a member. The last-admin count and the
	// tombstone write run in one transaction; deleting the only non-deleted
	// admin of a room fails with ErrLastAdmin and mutates nothing.
	DeleteMember(ctx context.Context, roomID, memberID string) error

	// CreateDeposit appends a deposit to the room's ledger.
	CreateDeposit(ctx context.Context, deposit *models.Deposit) error

	// DeleteDeposit removes a deposit. Returns ErrNotFound if absent.
	DeleteDeposit(ctx context.Context, id string) error

	// ListDeposits returns a window of the room's deposits ordered by
	// creation time descending (ties broken by ID descending), plus the
	// total number of deposits in the room. limit <= 0 means no window.
	ListDeposits(ctx context.Context, roomID string, offset, limit int) ([]models.Deposit, int, error)

	// CreateExpense appends an expense and its split set to the ledger.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense, including its split set.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// UpdateExpense updates an expense's amount and/or description.
	// Nil means "leave unchanged". Returns ErrNotFound if absent.
	UpdateExpense(ctx context.Context, id string, amount *float64, description *string) error

	// DeleteExpense removes an expense and its split set.
	// Returns ErrNotFound if absent.
	DeleteExpense(ctx context.Context, id string) error

	// ListExpenses returns a window of the room's expenses ordered by
	// creation time descending (ties broken by ID descending), plus the
	// total number of expenses in the room. limit <= 0 means no window.
	ListExpenses(ctx context.Context, roomID string, offset, limit int) ([]models.Expense, int, error)

	// Close releases any resources held by the store.
	Close() error
}
