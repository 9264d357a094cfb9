package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/kartikn/roomfund/internal/models"
	"github.com/kartikn/roomfund/internal/storage"
	"github.com/kartikn/roomfund/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestResolver(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	resolver := NewResolver(store)

	room := &models.Room{Code: "4E2WNP", Name: "Flat 302"}
	admin := &models.Member{Name: "Asha"}
	if err := store.CreateRoom(ctx, room, admin); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	t.Run("resolves by code, normalized", func(t *testing.T) {
		gotRoom, gotMember, err := resolver.Resolve(ctx, "  4e2wnp ", admin.ID)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if gotRoom.ID != room.ID {
			t.Errorf("room = %s, want %s", gotRoom.ID, room.ID)
		}
		if gotMember.ID != admin.ID {
			t.Errorf("member = %s, want %s", gotMember.ID, admin.ID)
		}
	})

	t.Run("resolves by internal room ID", func(t *testing.T) {
		gotRoom, _, err := resolver.Resolve(ctx, room.ID, admin.ID)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		// The canonical room is returned regardless of how it was addressed.
		if gotRoom.ID != room.ID || gotRoom.Code != "4E2WNP" {
			t.Errorf("unexpected room: %+v", gotRoom)
		}
	})

	t.Run("missing credential", func(t *testing.T) {
		_, _, err := resolver.Resolve(ctx, "4E2WNP", "  ")
		if !errors.Is(err, ErrCredentialRequired) {
			t.Fatalf("expected ErrCredentialRequired, got %v", err)
		}
	})

	t.Run("malformed credential", func(t *testing.T) {
		_, _, err := resolver.Resolve(ctx, "4E2WNP", "not-a-uuid")
		if !errors.Is(err, ErrInvalidCredential) {
			t.Fatalf("expected ErrInvalidCredential, got %v", err)
		}
	})

	t.Run("well-formed but unknown credential", func(t *testing.T) {
		_, _, err := resolver.Resolve(ctx, "4E2WNP", "00000000-0000-0000-0000-000000000001")
		if !errors.Is(err, ErrAccessDenied) {
			t.Fatalf("expected ErrAccessDenied, got %v", err)
		}
	})

	t.Run("unknown room code", func(t *testing.T) {
		_, _, err := resolver.Resolve(ctx, "ZZZZZZ", admin.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("member of another room is denied", func(t *testing.T) {
		otherRoom := &models.Room{Code: "OTHER1", Name: "Other"}
		otherAdmin := &models.Member{Name: "Outsider"}
		if err := store.CreateRoom(ctx, otherRoom, otherAdmin); err != nil {
			t.Fatalf("CreateRoom failed: %v", err)
		}

		_, _, err := resolver.Resolve(ctx, "4E2WNP", otherAdmin.ID)
		if !errors.Is(err, ErrAccessDenied) {
			t.Fatalf("expected ErrAccessDenied, got %v", err)
		}
	})

	t.Run("tombstoned member is denied", func(t *testing.T) {
		ghost := &models.Member{RoomID: room.ID, Name: "Gone"}
		if err := store.CreateMember(ctx, ghost); err != nil {
			t.Fatalf("CreateMember failed: %v", err)
		}
		if err := store.DeleteMember(ctx, room.ID, ghost.ID); err != nil {
			t.Fatalf("DeleteMember failed: %v", err)
		}

		_, _, err := resolver.Resolve(ctx, "4E2WNP", ghost.ID)
		if !errors.Is(err, ErrAccessDenied) {
			t.Fatalf("expected ErrAccessDenied, got %v", err)
		}
	})

	t.Run("ResolveMember scopes to the member's own room", func(t *testing.T) {
		gotRoom, gotMember, err := resolver.ResolveMember(ctx, admin.ID)
		if err != nil {
			t.Fatalf("ResolveMember failed: %v", err)
		}
		if gotRoom.ID != room.ID || gotMember.ID != admin.ID {
			t.Errorf("unexpected resolution: room %s, member %s", gotRoom.ID, gotMember.ID)
		}
	})
}

func TestTokenManager(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	member := &models.Member{ID: "member-1", RoomID: "room-1", Name: "Asha"}

	token, err := manager.Generate(member)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.MemberID != member.ID || claims.RoomID != member.RoomID {
		t.Errorf("unexpected claims: %+v", claims)
	}

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other := NewTokenManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := NewTokenManager("test-secret", -time.Minute)
		tok, err := expired.Generate(member)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := manager.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}
