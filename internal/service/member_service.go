package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kartikn/roomfund/internal/models"
	"github.com/kartikn/roomfund/internal/storage"
)

// MemberService manages a room's membership lifecycle.
type MemberService struct {
	store storage.Store
}

// NewMemberService creates a new MemberService with the given storage backend.
func NewMemberService(store storage.Store) *MemberService {
	return &MemberService{store: store}
}

// AddMember adds a new member to a room with the default member role.
func (s *MemberService) AddMember(ctx context.Context, roomID, name string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.store.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}

	member := &models.Member{
		RoomID: roomID,
		Name:   name,
		Role:   models.RoleMember,
	}
	if err := s.store.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	slog.Info("Member added", "room_id", roomID, "member_id", member.ID)
	return member, nil
}

// RemoveMember tombstones a member. Removing a room's only live admin fails
// with storage.ErrLastAdmin; the count and the tombstone are serialized by
// the store so concurrent removals cannot race past the invariant. The
// member's ID stays valid in historical deposits and expense splits.
func (s *MemberService) RemoveMember(ctx context.Context, roomID, memberID string) error {
	err := s.store.DeleteMember(ctx, roomID, memberID)
	if errors.Is(err, storage.ErrLastAdmin) {
		slog.Warn("Refused to remove last admin", "room_id", roomID, "member_id", memberID)
		return err
	}
	if err != nil {
		return err
	}

	slog.Info("Member removed", "room_id", roomID, "member_id", memberID)
	return nil
}
