// Package auth resolves room credentials to concrete rooms and members.
//
// There are no passwords in this model. A caller proves membership by
// presenting a room identifier (internal ID or public code) together with
// their access key, which is their own member ID. The resolver is the single
// place where human-facing room codes are exchanged for canonical room IDs:
// nothing downstream of it ever sees a code again.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kartikn/roomfund/internal/models"
	"github.com/kartikn/roomfund/internal/storage"
)

var (
	// ErrCredentialRequired is returned when no access key was supplied.
	ErrCredentialRequired = errors.New("member access key required")

	// ErrInvalidCredential is returned when the supplied access key does not
	// parse as a member ID.
	ErrInvalidCredential = errors.New("malformed member access key")

	// ErrAccessDenied is returned when the access key does not identify a
	// live member of the resolved room.
	ErrAccessDenied = errors.New("access denied to this room")
)

// Resolver authenticates (room identifier, access key) pairs against the store.
type Resolver struct {
	store storage.Store
}

// NewResolver creates a Resolver backed by the given store.
func NewResolver(store storage.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve authenticates credential against the room named by roomIdentifier,
// which may be either the internal room ID or the public room code (trimmed
// and compared case-insensitively). On success it returns the canonical room
// and the resolved member.
//
// Room misses surface as storage.ErrNotFound; a credential that is not a
// live member of that room fails with ErrAccessDenied.
func (r *Resolver) Resolve(ctx context.Context, roomIdentifier, credential string) (*models.Room, *models.Member, error) {
	member, err := r.member(ctx, credential)
	if err != nil {
		return nil, nil, err
	}

	room, err := r.room(ctx, roomIdentifier)
	if err != nil {
		return nil, nil, err
	}

	if member.RoomID != room.ID || member.IsDeleted {
		return nil, nil, ErrAccessDenied
	}
	return room, member, nil
}

// ResolveMember authenticates an access key alone, for operations addressed
// by record ID rather than by room (e.g. deleting a deposit). The member's
// own room is returned as the authorization scope.
func (r *Resolver) ResolveMember(ctx context.Context, credential string) (*models.Room, *models.Member, error) {
	member, err := r.member(ctx, credential)
	if err != nil {
		return nil, nil, err
	}
	if member.IsDeleted {
		return nil, nil, ErrAccessDenied
	}

	room, err := r.store.GetRoom(ctx, member.RoomID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load member's room: %w", err)
	}
	return room, member, nil
}

func (r *Resolver) member(ctx context.Context, credential string) (*models.Member, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, ErrCredentialRequired
	}

	memberID, err := uuid.Parse(credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	member, err := r.store.GetMember(ctx, memberID.String())
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrAccessDenied
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}
	return member, nil
}

func (r *Resolver) room(ctx context.Context, roomIdentifier string) (*models.Room, error) {
	id := strings.TrimSpace(roomIdentifier)
	if _, err := uuid.Parse(id); err == nil {
		return r.store.GetRoom(ctx, id)
	}
	// Not an internal ID: treat as a human-entered room code.
	return r.store.GetRoomByCode(ctx, strings.ToUpper(id))
}
