package dkbl

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/dkbl/date"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyImport is returned when an export has no records.
	ErrEmptyImport = errors.New("import is empty")
	// ErrMissingColumns is returned when required columns or values are missing.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrEmptyLedger is returned when an operation needs at least one ledger row.
	ErrEmptyLedger = errors.New("ledger is empty")
	// ErrNoInit is returned when the ledger has no init record.
	ErrNoInit = errors.New("no init entry found")
	// ErrMultipleInit is returned when the ledger has more than one init record.
	ErrMultipleInit = errors.New("more than one init entry found")
	// ErrInitNotEarliest is returned when a transaction is older than the init record.
	ErrInitNotEarliest = errors.New("init entry is not the earliest entry")
)

// Ledger represents a list of transactions.
//
// A Ledger is an immutable snapshot: operations on it return a new Ledger.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates a ledger holding a copy of txs, in the given order.
func NewLedger(txs ...Transaction) *Ledger {
	return &Ledger{transactions: slices.Clone(txs)}
}

// Len returns the number of transactions.
func (l *Ledger) Len() int { return len(l.transactions) }

// At returns the i-th transaction.
func (l *Ledger) At(i int) Transaction { return l.transactions[i] }

// Transactions returns an iterator that yields each transaction in ledger order.
func (l *Ledger) Transactions() iter.Seq2[int, Transaction] {
	return slices.All(l.transactions)
}

// Slice returns a copy of the transactions.
func (l *Ledger) Slice() []Transaction { return slices.Clone(l.transactions) }

// NewestDate returns the latest transaction date, the zero date for an empty ledger.
func (l *Ledger) NewestDate() date.Date {
	var newest date.Date
	for _, tx := range l.transactions {
		if newest.IsZero() || tx.Date.After(newest) {
			newest = tx.Date
		}
	}
	return newest
}

// Init returns the first init record of the ledger.
func (l *Ledger) Init() (Transaction, bool) {
	i := slices.IndexFunc(l.transactions, Transaction.IsInit)
	if i < 0 {
		return Transaction{}, false
	}
	return l.transactions[i], true
}

// Total returns the sum of all amounts.
func (l *Ledger) Total() decimal.Decimal { return total(l.transactions) }

// Recipients returns the sorted distinct recipients of the ledger.
func (l *Ledger) Recipients() []string {
	seen := make(map[string]struct{}, len(l.transactions))
	recipients := make([]string, 0, len(l.transactions))
	for _, tx := range l.transactions {
		if _, ok := seen[tx.Recipient]; ok {
			continue
		}
		seen[tx.Recipient] = struct{}{}
		recipients = append(recipients, tx.Recipient)
	}
	slices.Sort(recipients)
	return recipients
}

func total(txs []Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

// Create builds a new ledger from a first export.
//
// The init record is dated the day before the export period and carries the
// balance the account had then: the closing amount minus all imported amounts.
func Create(records []Record, header Header) (*Ledger, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}
	if header.PeriodStart.IsZero() {
		return nil, fmt.Errorf("%w: period start", ErrMissingColumns)
	}

	txs := make([]Transaction, 0, len(records)+1)
	txs = append(txs, Transaction{}) // init record placeholder
	sum := decimal.Zero
	for _, r := range records {
		txs = append(txs, newTransaction(r))
		sum = sum.Add(r.Amount)
	}
	txs[0] = Transaction{
		Date:      header.PeriodStart.Add(-1),
		Recipient: InitRecipient,
		Amount:    header.ClosingAmount.Sub(sum),
	}
	return RecomputeBalance(&Ledger{transactions: txs})
}

// Append merges a new export into an existing ledger.
//
// The newest date of the existing ledger is the cutoff: existing transactions
// strictly before the cutoff are kept, and new records on or after the cutoff
// replace the rest. Bank exports overlap, and the last day of the previous
// import may have been incomplete.
func Append(records []Record, existing *Ledger) (*Ledger, error) {
	if existing.Len() == 0 {
		return nil, ErrEmptyLedger
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}
	cutoff := existing.NewestDate()

	txs := make([]Transaction, 0, existing.Len()+len(records))
	for _, tx := range existing.transactions {
		// the init record is kept even when the cutoff falls on its day
		if tx.IsInit() || tx.Date.Before(cutoff) {
			txs = append(txs, tx)
		}
	}
	for _, r := range records {
		if !r.Date.Before(cutoff) {
			txs = append(txs, newTransaction(r))
		}
	}
	return RecomputeBalance(&Ledger{transactions: txs})
}

// RecomputeBalance sorts the ledger by date and recomputes the running balance.
//
// The ledger must contain exactly one init record, and it must be the earliest.
func RecomputeBalance(l *Ledger) (*Ledger, error) {
	inits := 0
	for _, tx := range l.transactions {
		if tx.IsInit() {
			inits++
		}
	}
	switch {
	case inits == 0:
		return nil, ErrNoInit
	case inits > 1:
		return nil, fmt.Errorf("%w: %d entries", ErrMultipleInit, inits)
	}

	txs := slices.Clone(l.transactions)
	sortByDate(txs)
	if !txs[0].IsInit() {
		init, _ := l.Init()
		return nil, fmt.Errorf("%w: %v is before init entry on %v", ErrInitNotEarliest, txs[0], init.Date)
	}

	balance := decimal.Zero
	for i := range txs {
		balance = balance.Add(txs[i].Amount)
		txs[i].Balance = balance
	}
	return &Ledger{transactions: txs}, nil
}

// sortByDate sorts transactions by date. The sort is stable, and the init record comes first on its day.
func sortByDate(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		switch {
		case a.IsInit() && !b.IsInit():
			return -1
		case b.IsInit() && !a.IsInit():
			return 1
		}
		return 0
	})
}
