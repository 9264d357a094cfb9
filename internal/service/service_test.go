package service

import (
	"context"
	"path/filepath"
	"testing"

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

// seedRoom creates a room with one admin directly through the store.
func seedRoom(t *testing.T, store storage.Store, code string) (*models.Room, *models.Member) {
	t.Helper()
	ctx := context.Background()
	room := &models.Room{Code: code, Name: "Test Room"}
	admin := &models.Member{Name: "Admin"}
	if err := store.CreateRoom(ctx, room, admin); err != nil {
		t.Fatalf("Failed to seed room: %v", err)
	}
	return room, admin
}

func seedMember(t *testing.T, store storage.Store, roomID, name string) *models.Member {
	t.Helper()
	member := &models.Member{RoomID: roomID, Name: name}
	if err := store.CreateMember(context.Background(), member); err != nil {
		t.Fatalf("Failed to seed member: %v", err)
	}
	return member
}
