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

// CreateMember inserts a new member into the database.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	if member.Role == "" {
		member.Role = models.RoleMember
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, room_id, name, role, is_deleted, joined_at) VALUES (?, ?, ?, ?, 0, ?)",
		member.ID, member.RoomID, member.Name, member.Role, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID, tombstoned or not.
func (s *SQLiteStore) GetMember(ctx context.Context, id string) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, room_id, name, role, is_deleted, joined_at FROM members WHERE id = ?",
		id,
	).Scan(&member.ID, &member.RoomID, &member.Name, &member.Role, &member.IsDeleted, &member.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// ListMembers returns all members of a room, tombstoned ones included,
// ordered by join time (ties broken by ID for a stable order).
func (s *SQLiteStore) ListMembers(ctx context.Context, roomID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, room_id, name, role, is_deleted, joined_at FROM members WHERE room_id = ? ORDER BY joined_at, id",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.RoomID, &m.Name, &m.Role, &m.IsDeleted, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// DeleteMember tombstones a member. The last-admin count and the tombstone
// write share one transaction so that two concurrent deletes of a room's two
// admins cannot both observe "2 admins" and both succeed.
func (s *SQLiteStore) DeleteMember(ctx context.Context, roomID, memberID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var role models.Role
	var isDeleted bool
	err = tx.QueryRowContext(ctx,
		"SELECT role, is_deleted FROM members WHERE id = ? AND room_id = ?",
		memberID, roomID,
	).Scan(&role, &isDeleted)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get member: %w", err)
	}
	if isDeleted {
		return storage.ErrNotFound
	}

	if role == models.RoleAdmin {
		var admins int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM members WHERE room_id = ? AND role = 'admin' AND is_deleted = 0",
			roomID,
		).Scan(&admins)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return storage.ErrLastAdmin
		}
	}

	if _, err := tx.ExecContext(ctx, "UPDATE members SET is_deleted = 1 WHERE id = ?", memberID); err != nil {
		return fmt.Errorf("failed to tombstone member: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
