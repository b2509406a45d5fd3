package dkbl

import (
	"io"
)

// HistoryColumns are the columns of a history file, in order.
var HistoryColumns = []string{"date", "amount", "initial_balance", "balance"}

// DecodeHistory decodes a history file.
func DecodeHistory(r io.Reader) (History, error) {
	t, err := readTable(r, HistoryColumns...)
	if err != nil {
		return nil, err
	}
	h := make(History, 0, len(t.rows))
	for t.next() {
		var e HistoryEntry
		if e.Date, err = t.dateOf("date"); err != nil {
			return nil, err
		}
		amount, err := t.amountOf("amount")
		if err != nil {
			return nil, err
		}
		initial, err := t.amountOf("initial_balance")
		if err != nil {
			return nil, err
		}
		balance, err := t.amountOf("balance")
		if err != nil {
			return nil, err
		}
		e.Amount, e.InitialBalance, e.Balance = amount.Decimal, initial.Decimal, balance.Decimal
		h = append(h, e)
	}
	return h, nil
}

// EncodeHistory writes the history.
func EncodeHistory(w io.Writer, h History) error {
	i := 0
	return writeTable(w, HistoryColumns, func() ([]string, bool) {
		if i >= len(h) {
			return nil, false
		}
		e := h[i]
		i++
		return []string{e.Date.String(), fmtAmount(e.Amount), fmtAmount(e.InitialBalance), fmtAmount(e.Balance)}, true
	})
}
