package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kartikn/roomfund/internal/models"
	"github.com/kartikn/roomfund/internal/storage"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// LedgerService records deposits and expenses against a room's pool.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// DepositPage is one page of a room's deposit history, newest first.
type DepositPage struct {
	Items       []models.Deposit
	CurrentPage int
	TotalPages  int
	TotalCount  int
}

// ExpensePage is one page of a room's expense history, newest first.
type ExpensePage struct {
	Items       []models.Expense
	CurrentPage int
	TotalPages  int
	TotalCount  int
}

// AddDeposit records money added to the pool by a live member of the room.
func (s *LedgerService) AddDeposit(ctx context.Context, roomID, memberID string, amount float64) (*models.Deposit, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotRoomMember
		}
		return nil, err
	}
	if member.RoomID != roomID || member.IsDeleted {
		return nil, ErrNotRoomMember
	}

	deposit := &models.Deposit{
		RoomID:   roomID,
		MemberID: memberID,
		Amount:   amount,
	}
	if err := s.store.CreateDeposit(ctx, deposit); err != nil {
		return nil, err
	}

	slog.Info("Deposit recorded", "room_id", roomID, "deposit_id", deposit.ID, "amount", amount)
	return deposit, nil
}

// RemoveDeposit deletes a deposit. Deleting an unknown ID is reported as
// storage.ErrNotFound rather than silently succeeding.
func (s *LedgerService) RemoveDeposit(ctx context.Context, id string) error {
	if err := s.store.DeleteDeposit(ctx, id); err != nil {
		return err
	}
	slog.Info("Deposit deleted", "deposit_id", id)
	return nil
}

// Deposits returns one page of the room's deposit history.
func (s *LedgerService) Deposits(ctx context.Context, roomID string, page, limit int) (*DepositPage, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := s.store.ListDeposits(ctx, roomID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return &DepositPage{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		TotalCount:  total,
	}, nil
}

// AddExpense records money spent from the pool, split equally among the given
// members. Both the split set and the payer must be live members of the room;
// duplicates in the split set collapse to one share.
func (s *LedgerService) AddExpense(ctx context.Context, roomID string, amount float64, description, paidBy string, splitAmong []string) (*models.Expense, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}

	split := dedupe(splitAmong)
	if len(split) == 0 {
		return nil, ErrEmptySplit
	}

	live, err := s.liveMembers(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var bad []string
	for _, id := range split {
		if !live[id] {
			bad = append(bad, id)
		}
	}
	if !live[paidBy] {
		bad = append(bad, paidBy)
	}
	if len(bad) > 0 {
		return nil, &SplitMemberError{MemberIDs: bad}
	}

	expense := &models.Expense{
		RoomID:      roomID,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		PaidBy:      paidBy,
		SplitAmong:  split,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Info("Expense recorded",
		"room_id", roomID,
		"expense_id", expense.ID,
		"amount", amount,
		"split_count", len(split),
	)
	return expense, nil
}

// EditExpense applies a partial update to an expense's amount and/or
// description. The payer and split set are immutable after creation.
func (s *LedgerService) EditExpense(ctx context.Context, id string, amount *float64, description *string) (*models.Expense, error) {
	if amount != nil && *amount < 0 {
		return nil, ErrNegativeAmount
	}
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		description = &trimmed
	}

	if err := s.store.UpdateExpense(ctx, id, amount, description); err != nil {
		return nil, err
	}

	slog.Info("Expense edited", "expense_id", id)
	return s.store.GetExpense(ctx, id)
}

// RemoveExpense deletes an expense and its split set. Deleting an unknown ID
// is reported as storage.ErrNotFound rather than silently succeeding.
func (s *LedgerService) RemoveExpense(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return err
	}
	slog.Info("Expense deleted", "expense_id", id)
	return nil
}

// Expenses returns one page of the room's expense history.
func (s *LedgerService) Expenses(ctx context.Context, roomID string, page, limit int) (*ExpensePage, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := s.store.ListExpenses(ctx, roomID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return &ExpensePage{
		Items:       items,
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		TotalCount:  total,
	}, nil
}

// liveMembers returns the set of non-deleted member IDs in a room.
func (s *LedgerService) liveMembers(ctx context.Context, roomID string) (map[string]bool, error) {
	members, err := s.store.ListMembers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	live := make(map[string]bool, len(members))
	for _, m := range members {
		if !m.IsDeleted {
			live[m.ID] = true
		}
	}
	return live, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total, limit int) int {
	return (total + limit - 1) / limit
}
