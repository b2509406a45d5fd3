package dkbl

import (
	"errors"
	"slices"

	"github.com/etnz/dkbl/date"
	"github.com/shopspring/decimal"
)

// ErrNoInitialBalance is returned when a history cannot be seeded.
var ErrNoInitialBalance = errors.New("no initial balance supplied and no previous history")

// HistoryEntry is a row of the balance history.
type HistoryEntry struct {
	Date           date.Date
	Amount         decimal.Decimal
	InitialBalance decimal.Decimal // only set on the first entry
	Balance        decimal.Decimal
}

// History is a simplified balance time series, sorted by date.
type History []HistoryEntry

// InitialBalance returns the initial balance stored on the first entry.
func (h History) InitialBalance() (decimal.Decimal, bool) {
	if len(h) == 0 {
		return decimal.Zero, false
	}
	return h[0].InitialBalance, true
}

// HistoryOptions tunes ProjectHistory.
type HistoryOptions struct {
	// InitialBalance seeds the history. When not valid, it is carried forward from Previous.
	InitialBalance decimal.NullDecimal
	// Previous is the previously persisted history, if any.
	Previous History
	// UseCustomDate uses the transaction's custom date when set.
	UseCustomDate bool
	// UseCustomAmount uses the transaction's custom amount when set.
	UseCustomAmount bool
}

// ProjectHistory computes the balance history of a ledger.
//
// Entries are sorted by (possibly custom) date, the initial balance is stored
// on the first entry only, and the balance is the running sum of amounts plus
// the initial balance.
func ProjectHistory(l *Ledger, opts HistoryOptions) (History, error) {
	initial := opts.InitialBalance
	if !initial.Valid {
		d, ok := opts.Previous.InitialBalance()
		if !ok {
			return nil, ErrNoInitialBalance
		}
		initial = decimal.NewNullDecimal(d)
	}
	if l.Len() == 0 {
		return nil, ErrEmptyLedger
	}

	h := make(History, 0, l.Len())
	for _, tx := range l.transactions {
		h = append(h, HistoryEntry{
			Date:   tx.EffectiveDate(opts.UseCustomDate),
			Amount: tx.EffectiveAmount(opts.UseCustomAmount),
		})
	}
	slices.SortStableFunc(h, func(a, b HistoryEntry) int { return a.Date.Compare(b.Date) })

	h[0].InitialBalance = initial.Decimal
	balance := decimal.Zero
	for i := range h {
		balance = balance.Add(h[i].Amount).Add(h[i].InitialBalance)
		h[i].Balance = balance
	}
	return h, nil
}
