package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kartikn/roomfund/internal/models"
	"github.com/kartikn/roomfund/internal/storage"
)

// CreateRoom persists a room and its initial admin member in one transaction.
func (s *SQLiteStore) CreateRoom(ctx context.Context, room *models.Room, admin *models.Member) error {
	// Generate IDs if not set
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.CreatedAt == 0 {
		room.CreatedAt = time.Now().Unix()
	}
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	if admin.JoinedAt == 0 {
		admin.JoinedAt = room.CreatedAt
	}
	admin.RoomID = room.ID
	admin.Role = models.RoleAdmin

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO rooms (id, code, name, created_at) VALUES (?, ?, ?, ?)",
		room.ID, room.Code, room.Name, room.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("room code %q: %w", room.Code, storage.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO members (id, room_id, name, role, is_deleted, joined_at) VALUES (?, ?, ?, ?, 0, ?)",
		admin.ID, admin.RoomID, admin.Name, admin.Role, admin.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert admin member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRoom retrieves a room by its internal ID.
func (s *SQLiteStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	return s.getRoom(ctx, "SELECT id, code, name, created_at FROM rooms WHERE id = ?", id)
}

// GetRoomByCode retrieves a room by its public code (case-insensitive).
func (s *SQLiteStore) GetRoomByCode(ctx context.Context, code string) (*models.Room, error) {
	return s.getRoom(ctx, "SELECT id, code, name, created_at FROM rooms WHERE code = ?", code)
}

func (s *SQLiteStore) getRoom(ctx context.Context, query, arg string) (*models.Room, error) {
	room := &models.Room{}
	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&room.ID, &room.Code, &room.Name, &room.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// UpdateRoomName renames a room.
func (s *SQLiteStore) UpdateRoomName(ctx context.Context, id, name string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE rooms SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("failed to update room name: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
