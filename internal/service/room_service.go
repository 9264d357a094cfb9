package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/kartikn/roomfund/internal/ledger"
	"github.com/kartikn/roomfund/internal/models"
	"github.com/kartikn/roomfund/internal/storage"
)

// recentLimit is how many of the newest deposits and expenses a room summary
// carries alongside the full balance snapshot.
const recentLimit = 5

// codeAlphabet excludes easily-confused characters (0/O, 1/I/L) so codes
// survive being read out loud.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// RoomService creates rooms and assembles room summaries.
type RoomService struct {
	store storage.Store
}

// NewRoomService creates a new RoomService with the given storage backend.
func NewRoomService(store storage.Store) *RoomService {
	return &RoomService{store: store}
}

// RoomSummary is the full current state of a room: balances and daily totals
// recomputed from the whole ledger, plus a window of recent activity.
type RoomSummary struct {
	Room           *models.Room
	Balances       map[string]*ledger.MemberBalance
	DailyTotals    []ledger.DailyTotal
	RecentDeposits []models.Deposit
	RecentExpenses []models.Expense
	TotalDeposited float64
	TotalSpent     float64
}

// CreateRoom creates a room and its single initial admin atomically.
// The code is normalized (trimmed, uppercased) and generated server-side when
// blank. Returns storage.ErrAlreadyExists if the code is taken.
func (s *RoomService) CreateRoom(ctx context.Context, code, name, adminName string) (*models.Room, *models.Member, error) {
	adminName = strings.TrimSpace(adminName)
	if adminName == "" {
		return nil, nil, ErrNameRequired
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		generated, err := generateCode()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate room code: %w", err)
		}
		code = generated
	}
	if !codePattern.MatchString(code) {
		return nil, nil, ErrInvalidCode
	}

	room := &models.Room{
		Code: code,
		Name: strings.TrimSpace(name),
	}
	admin := &models.Member{
		Name: adminName,
		Role: models.RoleAdmin,
	}

	if err := s.store.CreateRoom(ctx, room, admin); err != nil {
		return nil, nil, err
	}

	slog.Info("Room created", "room_id", room.ID, "code", room.Code, "admin_id", admin.ID)
	return room, admin, nil
}

// Rename changes a room's display name, the only mutable room field.
func (s *RoomService) Rename(ctx context.Context, roomID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if err := s.store.UpdateRoomName(ctx, roomID, name); err != nil {
		return err
	}
	slog.Info("Room renamed", "room_id", roomID)
	return nil
}

// Summary recomputes the room's balance snapshot and daily totals from the
// full ledger. Two successive summaries may differ if writes land in between;
// each one is an exact function of the records it read.
func (s *RoomService) Summary(ctx context.Context, roomID string) (*RoomSummary, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	members, err := s.store.ListMembers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	deposits, _, err := s.store.ListDeposits(ctx, roomID, 0, 0)
	if err != nil {
		return nil, err
	}
	expenses, _, err := s.store.ListExpenses(ctx, roomID, 0, 0)
	if err != nil {
		return nil, err
	}

	balances, err := ledger.Balances(members, deposits, expenses)
	if err != nil {
		// A balance failure means a ledger record references a member that
		// does not exist at all. That is corrupted referential state, not a
		// user error, so make noise.
		slog.Error("Balance computation failed, ledger is corrupted",
			"room_id", roomID, "error", err)
		return nil, err
	}

	deposited, spent := ledger.Totals(deposits, expenses)

	return &RoomSummary{
		Room:           room,
		Balances:       balances,
		DailyTotals:    ledger.DailyTotals(expenses),
		RecentDeposits: firstN(deposits, recentLimit),
		RecentExpenses: firstN(expenses, recentLimit),
		TotalDeposited: deposited,
		TotalSpent:     spent,
	}, nil
}

func firstN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func generateCode() (string, error) {
	buf := make([]byte, models.CodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, len(buf))
	for i, b := range buf {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(code), nil
}
