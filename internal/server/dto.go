package server

import (
	"github.com/kartikn/roomfund/internal/ledger"
	"github.com/kartikn/roomfund/internal/models"
	"github.com/kartikn/roomfund/internal/service"
)

type roomResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

type memberResponse struct {
	ID        string      `json:"id"`
	RoomID    string      `json:"roomId"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	IsDeleted bool        `json:"isDeleted"`
	JoinedAt  int64       `json:"joinedAt"`
}

type depositResponse struct {
	ID        string  `json:"id"`
	RoomID    string  `json:"roomId"`
	MemberID  string  `json:"memberId"`
	Amount    float64 `json:"amount"`
	CreatedAt int64   `json:"createdAt"`
}

type expenseResponse struct {
	ID          string   `json:"id"`
	RoomID      string   `json:"roomId"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description"`
	PaidBy      string   `json:"paidBy"`
	SplitAmong  []string `json:"splitAmong"`
	CreatedAt   int64    `json:"createdAt"`
}

type balanceResponse struct {
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	IsDeleted bool        `json:"isDeleted"`
	Deposited float64     `json:"deposited"`
	Spent     float64     `json:"spent"`
	Balance   float64     `json:"balance"`
}

type dailyTotalResponse struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type summaryResponse struct {
	Room           roomResponse               `json:"room"`
	Balances       map[string]balanceResponse `json:"balances"`
	DailyTotals    []dailyTotalResponse       `json:"dailyTotals"`
	RecentDeposits []depositResponse          `json:"recentDeposits"`
	RecentExpenses []expenseResponse          `json:"recentExpenses"`
	TotalDeposited float64                    `json:"totalDeposited"`
	TotalSpent     float64                    `json:"totalSpent"`
}

type depositPageResponse struct {
	Items       []depositResponse `json:"items"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
	TotalCount  int               `json:"totalCount"`
}

type expensePageResponse struct {
	Items       []expenseResponse `json:"items"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
	TotalCount  int               `json:"totalCount"`
}

func toRoom(r *models.Room) roomResponse {
	return roomResponse{ID: r.ID, Code: r.Code, Name: r.Name, CreatedAt: r.CreatedAt}
}

func toMember(m *models.Member) memberResponse {
	return memberResponse{
		ID:        m.ID,
		RoomID:    m.RoomID,
		Name:      m.Name,
		Role:      m.Role,
		IsDeleted: m.IsDeleted,
		JoinedAt:  m.JoinedAt,
	}
}

func toDeposit(d *models.Deposit) depositResponse {
	return depositResponse{
		ID:        d.ID,
		RoomID:    d.RoomID,
		MemberID:  d.MemberID,
		Amount:    d.Amount,
		CreatedAt: d.CreatedAt,
	}
}

func toExpense(e *models.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		RoomID:      e.RoomID,
		Amount:      e.Amount,
		Description: e.Description,
		PaidBy:      e.PaidBy,
		SplitAmong:  e.SplitAmong,
		CreatedAt:   e.CreatedAt,
	}
}

func toDeposits(ds []models.Deposit) []depositResponse {
	out := make([]depositResponse, len(ds))
	for i := range ds {
		out[i] = toDeposit(&ds[i])
	}
	return out
}

func toExpenses(es []models.Expense) []expenseResponse {
	out := make([]expenseResponse, len(es))
	for i := range es {
		out[i] = toExpense(&es[i])
	}
	return out
}

func toSummary(s *service.RoomSummary) summaryResponse {
	balances := make(map[string]balanceResponse, len(s.Balances))
	for id, b := range s.Balances {
		balances[id] = balanceResponse{
			Name:      b.Name,
			Role:      b.Role,
			IsDeleted: b.IsDeleted,
			Deposited: b.Deposited,
			Spent:     b.Spent,
			Balance:   b.Balance,
		}
	}

	return summaryResponse{
		Room:           toRoom(s.Room),
		Balances:       balances,
		DailyTotals:    toDailyTotals(s.DailyTotals),
		RecentDeposits: toDeposits(s.RecentDeposits),
		RecentExpenses: toExpenses(s.RecentExpenses),
		TotalDeposited: s.TotalDeposited,
		TotalSpent:     s.TotalSpent,
	}
}

func toDailyTotals(ts []ledger.DailyTotal) []dailyTotalResponse {
	out := make([]dailyTotalResponse, len(ts))
	for i, t := range ts {
		out[i] = dailyTotalResponse{Date: t.Date, Total: t.Total}
	}
	return out
}
