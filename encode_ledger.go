package dkbl

import (
	"io"
	"strconv"
)

// LedgerColumns are the columns of a ledger file, in order.
var LedgerColumns = []string{
	"date", "recipient", "amount", "type", "balance",
	"occurrence", "recipient_clean", "label1", "label2", "label3",
	"date_custom", "amount_custom", "occurrence_custom",
	"recipient_clean_custom", "label1_custom", "label2_custom", "label3_custom",
}

// RequiredLedgerColumns must be present to decode a ledger.
var RequiredLedgerColumns = []string{"date", "recipient", "amount"}

// DistributionColumns must be present in a ledger to distribute it.
var DistributionColumns = []string{"date", "amount", "occurrence"}

// DecodeLedger decodes a ledger file.
//
// Columns are matched by name, unknown columns are ignored. required lists the
// columns that must exist, RequiredLedgerColumns by default. Rows are kept in
// file order: call RecomputeBalance to sort them.
func DecodeLedger(r io.Reader, required ...string) (*Ledger, error) {
	if len(required) == 0 {
		required = RequiredLedgerColumns
	}
	t, err := readTable(r, required...)
	if err != nil {
		return nil, err
	}

	txs := make([]Transaction, 0, len(t.rows))
	for t.next() {
		tx, err := decodeTransaction(t)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return &Ledger{transactions: txs}, nil
}

func decodeTransaction(t *table) (tx Transaction, err error) {
	if tx.Date, err = t.dateOf("date"); err != nil {
		return
	}
	if tx.Date.IsZero() {
		return tx, t.errorf("date", ErrMissingColumns)
	}
	tx.Recipient = t.str("recipient")

	amount, err := t.amountOf("amount")
	if err != nil {
		return
	}
	if !amount.Valid {
		return tx, t.errorf("amount", ErrMissingColumns)
	}
	tx.Amount = amount.Decimal
	balance, err := t.amountOf("balance")
	if err != nil {
		return
	}
	tx.Balance = balance.Decimal
	if tx.Occurrence, err = t.intOf("occurrence"); err != nil {
		return
	}
	tx.RecipientClean = t.str("recipient_clean")
	tx.Label1 = t.str("label1")
	tx.Label2 = t.str("label2")
	tx.Label3 = t.str("label3")

	if tx.Custom.Date, err = t.dateOf("date_custom"); err != nil {
		return
	}
	if tx.Custom.Amount, err = t.amountOf("amount_custom"); err != nil {
		return
	}
	if tx.Custom.Occurrence, err = t.intOf("occurrence_custom"); err != nil {
		return
	}
	tx.Custom.RecipientClean = t.str("recipient_clean_custom")
	tx.Custom.Label1 = t.str("label1_custom")
	tx.Custom.Label2 = t.str("label2_custom")
	tx.Custom.Label3 = t.str("label3_custom")
	return tx, nil
}

func encodeTransaction(tx Transaction) []string {
	return []string{
		tx.Date.String(),
		tx.Recipient,
		fmtAmount(tx.Amount),
		string(tx.Type()),
		fmtAmount(tx.Balance),
		strconv.Itoa(tx.Occurrence),
		tx.RecipientClean,
		tx.Label1,
		tx.Label2,
		tx.Label3,
		tx.Custom.Date.String(),
		fmtNullAmount(tx.Custom.Amount),
		fmtInt(tx.Custom.Occurrence),
		tx.Custom.RecipientClean,
		tx.Custom.Label1,
		tx.Custom.Label2,
		tx.Custom.Label3,
	}
}

func encodeTransactions(w io.Writer, txs []Transaction) error {
	i := 0
	return writeTable(w, LedgerColumns, func() ([]string, bool) {
		if i >= len(txs) {
			return nil, false
		}
		i++
		return encodeTransaction(txs[i-1]), true
	})
}

// EncodeLedger writes the ledger in its canonical form.
func EncodeLedger(w io.Writer, l *Ledger) error { return encodeTransactions(w, l.transactions) }

// EncodeDistributedLedger writes the distributed ledger, with the ledger's columns.
func EncodeDistributedLedger(w io.Writer, d *DistributedLedger) error {
	return encodeTransactions(w, d.transactions)
}
