package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kartikn/roomfund/internal/models"
	"github.com/kartikn/roomfund/internal/storage"
)

// CreateDeposit appends a deposit to the room's ledger.
func (s *SQLiteStore) CreateDeposit(ctx context.Context, deposit *models.Deposit) error {
	if deposit.ID == "" {
		deposit.ID = uuid.New().String()
	}
	if deposit.CreatedAt == 0 {
		deposit.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO deposits (id, room_id, member_id, amount, created_at) VALUES (?, ?, ?, ?, ?)",
		deposit.ID, deposit.RoomID, deposit.MemberID, deposit.Amount, deposit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert deposit: %w", err)
	}
	return nil
}

// DeleteDeposit removes a deposit by ID.
func (s *SQLiteStore) DeleteDeposit(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM deposits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete deposit: %w", err)
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

// ListDeposits returns a window of a room's deposits, newest first, plus the
// room's total deposit count. limit <= 0 returns the full set.
func (s *SQLiteStore) ListDeposits(ctx context.Context, roomID string, offset, limit int) ([]models.Deposit, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM deposits WHERE room_id = ?", roomID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count deposits: %w", err)
	}

	query := "SELECT id, room_id, member_id, amount, created_at FROM deposits WHERE room_id = ? ORDER BY created_at DESC, id DESC"
	args := []any{roomID}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list deposits: %w", err)
	}
	defer rows.Close()

	var deposits []models.Deposit
	for rows.Next() {
		var d models.Deposit
		if err := rows.Scan(&d.ID, &d.RoomID, &d.MemberID, &d.Amount, &d.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan deposit: %w", err)
		}
		deposits = append(deposits, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate deposits: %w", err)
	}
	return deposits, total, nil
}
