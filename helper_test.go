package dkbl

import (
	"testing"

	"github.com/etnz/dkbl/date"
	"github.com/shopspring/decimal"
)

// rec is a helper for tests to create an imported record from constants.
func rec(on, recipient, amount string) Record {
	return Record{Date: date.MustParse(on), Recipient: recipient, Amount: decimal.RequireFromString(amount)}
}

// dec is a helper for tests to create a decimal from a constant.
func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// mustCreate creates the ledger of firstExport or fails the test.
func mustCreate(t *testing.T) *Ledger {
	t.Helper()
	records, header := firstExport()
	l, err := Create(records, header)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return l
}

// amounts returns the amounts of the transactions, as strings.
func amounts(txs []Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.Amount.String()
	}
	return out
}
