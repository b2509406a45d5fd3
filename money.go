package dkbl

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ledger's currency. Multi currency ledgers are not supported.
const Currency = "EUR"

// FormatMoney returns the human representation of an amount in the ledger currency, e.g. "€1,234.56".
func FormatMoney(d decimal.Decimal) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, Currency).Currency()
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedMoney is like FormatMoney but always prints the sign, and "-" for zero.
func SignedMoney(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	if d.IsPositive() {
		return "+" + FormatMoney(d)
	}
	return FormatMoney(d)
}

// NumberFormat describes how decimal numbers are written in a text file.
type NumberFormat struct {
	Decimal rune // decimal separator
	Group   rune // digit group separator, 0 if not used
}

// FileFormat is the number format of the files written by this package: decimal comma, no grouping.
var FileFormat = NumberFormat{Decimal: ','}

// Places is the number of fraction digits written for amounts.
const Places = 2

// Parse parses a number written in this format. Surrounding spaces are ignored.
func (f NumberFormat) Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	clean := strings.Map(func(r rune) rune {
		switch {
		case f.Group != 0 && r == f.Group:
			return -1
		case r == f.Decimal:
			return '.'
		case r == ' ' || r == '\u00a0':
			return -1
		}
		return r
	}, s)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Format writes d with the given number of fraction digits.
func (f NumberFormat) Format(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	if f.Decimal == '.' {
		return s
	}
	return strings.Replace(s, ".", string(f.Decimal), 1)
}
