package dkbl

import (
	"errors"
	"fmt"

	"github.com/etnz/dkbl/date"
	"github.com/shopspring/decimal"
)

// InitRecipient is the reserved recipient of the synthetic init record.
const InitRecipient = "~~INIT"

// Type of a transaction, derived from the sign of its amount.
type Type string

const (
	Income  Type = "Income"
	Expense Type = "Expense"
)

// Record is a normalized row of a bank statement export.
type Record struct {
	Date      date.Date
	Recipient string
	Amount    decimal.Decimal
}

// Header is the summary of a bank statement export.
type Header struct {
	PeriodStart   date.Date
	PeriodEnd     date.Date
	ClosingAmount decimal.Decimal // account balance at the end of the period
}

// Export is a normalized bank statement: its header and its records.
type Export struct {
	Header  Header
	Records []Record
}

// Overrides holds the user's manual corrections of a transaction.
//
// Blank values are zero values: zero date, invalid amount, zero occurrence and empty strings.
// They are never populated by this package.
type Overrides struct {
	Date           date.Date
	Amount         decimal.NullDecimal
	Occurrence     int
	RecipientClean string
	Label1         string
	Label2         string
	Label3         string
}

// Transaction is a ledger row.
type Transaction struct {
	Date      date.Date
	Recipient string
	Amount    decimal.Decimal
	Balance   decimal.Decimal // running balance, see RecomputeBalance

	// Occurrence is the amortization factor of the amount.
	//
	// 0 or ±1: not recurring. n > 1: the amount covers n months starting at Date.
	// n < -1: the amount covers |n| months ending at Date.
	Occurrence int

	// Categorization, joined from the mapping table.
	RecipientClean string
	Label1         string
	Label2         string
	Label3         string

	Custom Overrides
}

// Type returns Income for positive amounts and Expense otherwise.
func (tx Transaction) Type() Type {
	if tx.Amount.IsPositive() {
		return Income
	}
	return Expense
}

// IsInit reports whether tx is the synthetic init record.
func (tx Transaction) IsInit() bool { return tx.Recipient == InitRecipient }

// IsRecurring reports whether tx must be distributed over several months.
func (tx Transaction) IsRecurring() bool { return tx.Occurrence < -1 || tx.Occurrence > 1 }

// EffectiveDate returns the custom date when set and requested, the booking date otherwise.
func (tx Transaction) EffectiveDate(useCustom bool) date.Date {
	if useCustom && !tx.Custom.Date.IsZero() {
		return tx.Custom.Date
	}
	return tx.Date
}

// EffectiveAmount returns the custom amount when set and requested, the amount otherwise.
func (tx Transaction) EffectiveAmount(useCustom bool) decimal.Decimal {
	if useCustom && tx.Custom.Amount.Valid {
		return tx.Custom.Amount.Decimal
	}
	return tx.Amount
}

func (tx Transaction) String() string {
	return fmt.Sprintf("%s %q %s", tx.Date, tx.Recipient, FormatMoney(tx.Amount))
}

// newTransaction turns an imported record into a blank ledger row.
func newTransaction(r Record) Transaction {
	return Transaction{
		Date:      r.Date,
		Recipient: r.Recipient,
		Amount:    r.Amount,
	}
}

// validateRecords checks imported records, all failures are reported at once.
func validateRecords(records []Record) error {
	if len(records) == 0 {
		return ErrEmptyImport
	}
	var errs error
	for i, r := range records {
		if r.Date.IsZero() {
			errs = errors.Join(errs, fmt.Errorf("record %d: %w: date", i+1, ErrMissingColumns))
		}
		if r.Recipient == InitRecipient {
			errs = errors.Join(errs, fmt.Errorf("record %d: recipient %q is reserved", i+1, InitRecipient))
		}
	}
	return errs
}
