package dkbl

import (
	"errors"
	"iter"
	"slices"

	"github.com/etnz/dkbl/date"
	"github.com/shopspring/decimal"
)

// ErrMalformedInput is returned when a ledger cannot be distributed.
var ErrMalformedInput = errors.New("malformed input")

// DistributedLedger is the ledger where recurring transactions are replaced by
// their monthly installments.
//
// It is a derived view for trend analysis: it is never appended to or fed back
// into a Ledger.
type DistributedLedger struct {
	transactions []Transaction
}

// Len returns the number of rows.
func (d *DistributedLedger) Len() int { return len(d.transactions) }

// Transactions iterates over the rows: pass-through rows first, then installments.
func (d *DistributedLedger) Transactions() iter.Seq2[int, Transaction] {
	return slices.All(d.transactions)
}

// Total returns the sum of all amounts. It equals the source ledger's total.
func (d *DistributedLedger) Total() decimal.Decimal { return total(d.transactions) }

// Distribute expands every recurring transaction of the ledger into monthly installments.
//
// A transaction with occurrence n, |n| > 1, becomes |n| rows dated on
// consecutive month starts: starting at its month for n > 0, ending at its
// month for n < 0. Each row carries amount/|n| rounded to cents; the last one
// absorbs the remainder so that no value is created or lost, in memory or in
// the file. All other fields are
// copied. Other transactions are passed through unchanged.
func Distribute(l *Ledger) (*DistributedLedger, error) {
	if l.Len() == 0 {
		return nil, errors.Join(ErrMalformedInput, ErrEmptyLedger)
	}

	var passThrough, recurring []Transaction
	for _, tx := range l.transactions {
		if tx.IsRecurring() {
			recurring = append(recurring, tx)
		} else {
			passThrough = append(passThrough, tx)
		}
	}
	if len(recurring) == 0 {
		return &DistributedLedger{transactions: passThrough}, nil
	}

	rows := passThrough
	for _, tx := range recurring {
		rows = append(rows, installments(tx)...)
	}
	return &DistributedLedger{transactions: rows}, nil
}

// installments splits a recurring transaction over its months.
func installments(tx Transaction) []Transaction {
	months := date.MonthStarts(tx.Date, tx.Occurrence)
	n := decimal.NewFromInt(int64(len(months)))
	part := tx.Amount.DivRound(n, Places)
	rest := tx.Amount.Sub(part.Mul(n.Sub(decimal.NewFromInt(1))))

	rows := make([]Transaction, len(months))
	for i, on := range months {
		row := tx
		row.Date = on
		row.Amount = part
		if i == len(months)-1 {
			row.Amount = rest
		}
		rows[i] = row
	}
	return rows
}
