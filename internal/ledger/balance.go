// Package ledger computes per-member balances and daily spend totals from a
// room's deposit and expense records. Everything here is a pure function of
// its inputs: no I/O, no clocks, no hidden state.
package ledger

import (
	"fmt"

	"github.com/kartikn/roomfund/internal/models"
)

// MemberBalance is one member's computed position in the pool.
type MemberBalance struct {
	Name      string
	Role      models.Role
	IsDeleted bool
	Deposited float64 // Total amount this member put into the pool
	Spent     float64 // This member's share of all expenses
	Balance   float64 // Deposited - Spent
}

// IntegrityError reports a ledger record referencing a member that does not
// exist in the member set. Tombstoned members are still present in the set,
// so hitting this means referential state is corrupted, not that a member
// was removed.
type IntegrityError struct {
	MemberID string
	Record   string // "deposit" or "expense"
	RecordID string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s %s references unknown member %s", e.Record, e.RecordID, e.MemberID)
}

// Balances computes the per-member balance snapshot for a room.
//
// Every member is seeded into the result, tombstoned ones included, so
// historical records always resolve. Deposits add to the depositor's balance.
// Each expense is divided equally among its split set; the division is exact
// (amount / k), not pre-rounded, so the k shares always sum back to the
// amount within float tolerance.
//
// The payer of an expense is deliberately not credited back: the room is a
// single pooled fund, and the payer spent the pool's money, not their own.
// The conservation law is therefore
//
//	sum(balances) == sum(deposit amounts) - sum(expense amounts)
//
// which is generally not zero.
func Balances(members []models.Member, deposits []models.Deposit, expenses []models.Expense) (map[string]*MemberBalance, error) {
	balances := make(map[string]*MemberBalance, len(members))
	for _, m := range members {
		balances[m.ID] = &MemberBalance{
			Name:      m.Name,
			Role:      m.Role,
			IsDeleted: m.IsDeleted,
		}
	}

	for _, d := range deposits {
		b, ok := balances[d.MemberID]
		if !ok {
			return nil, &IntegrityError{MemberID: d.MemberID, Record: "deposit", RecordID: d.ID}
		}
		b.Deposited += d.Amount
		b.Balance += d.Amount
	}

	for _, e := range expenses {
		if len(e.SplitAmong) == 0 {
			return nil, fmt.Errorf("expense %s has an empty split set", e.ID)
		}
		share := e.Amount / float64(len(e.SplitAmong))
		for _, memberID := range e.SplitAmong {
			b, ok := balances[memberID]
			if !ok {
				return nil, &IntegrityError{MemberID: memberID, Record: "expense", RecordID: e.ID}
			}
			b.Spent += share
			b.Balance -= share
		}
	}

	return balances, nil
}

// Totals sums deposit and expense amounts. Convenience for summary views and
// for checking the conservation law.
func Totals(deposits []models.Deposit, expenses []models.Expense) (deposited, spent float64) {
	for _, d := range deposits {
		deposited += d.Amount
	}
	for _, e := range expenses {
		spent += e.Amount
	}
	return deposited, spent
}
