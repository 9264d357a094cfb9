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

// CreateExpense appends an expense and its split set in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, room_id, amount, description, paid_by, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		expense.ID, expense.RoomID, expense.Amount, expense.Description, expense.PaidBy, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, memberID := range expense.SplitAmong {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, member_id) VALUES (?, ?)",
			expense.ID, memberID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its split set.
func (s *SQLiteStore) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, room_id, amount, description, paid_by, created_at FROM expenses WHERE id = ?",
		id,
	).Scan(&expense.ID, &expense.RoomID, &expense.Amount, &expense.Description, &expense.PaidBy, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id FROM expense_splits WHERE expense_id = ? ORDER BY rowid",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID string
		if err := rows.Scan(&memberID); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		expense.SplitAmong = append(expense.SplitAmong, memberID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return expense, nil
}

// UpdateExpense updates an expense's amount and/or description.
// Nil pointers leave the corresponding field unchanged.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, id string, amount *float64, description *string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET amount = COALESCE(?, amount), description = COALESCE(?, description) WHERE id = ?",
		amount, description, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
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

// DeleteExpense removes an expense; its splits go with it via ON DELETE CASCADE.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
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

// ListExpenses returns a window of a room's expenses, newest first, plus the
// room's total expense count. limit <= 0 returns the full set.
func (s *SQLiteStore) ListExpenses(ctx context.Context, roomID string, offset, limit int) ([]models.Expense, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM expenses WHERE room_id = ?", roomID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := "SELECT id, room_id, amount, description, paid_by, created_at FROM expenses WHERE room_id = ? ORDER BY created_at DESC, id DESC"
	args := []any{roomID}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.RoomID, &e.Amount, &e.Description, &e.PaidBy, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if len(expenses) == 0 {
		return expenses, total, nil
	}

	// Load the split sets for the whole page in one query.
	splitQuery := "SELECT expense_id, member_id FROM expense_splits WHERE expense_id IN (?" +
		repeatPlaceholder(len(expenses)-1) + ") ORDER BY rowid"
	splitArgs := make([]any, len(expenses))
	for i, e := range expenses {
		splitArgs[i] = e.ID
	}

	splitRows, err := s.db.QueryContext(ctx, splitQuery, splitArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID, memberID string
		if err := splitRows.Scan(&expenseID, &memberID); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense split: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].SplitAmong = append(expenses[i].SplitAmong, memberID)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return expenses, total, nil
}
