package statement

import (
	"io"
	"strings"

	"github.com/etnz/dkbl"
	"github.com/etnz/dkbl/date"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

// Locale describes how a bank writes numbers, dates and text in its exports.
type Locale struct {
	Number     dkbl.NumberFormat
	DateLayout string           // time layout of dates
	Charset    *charmap.Charmap // nil for UTF-8
}

// German is the locale of German bank exports: "1.234,56", "31.12.2022", ISO-8859-1.
var German = Locale{
	Number:     dkbl.NumberFormat{Decimal: ',', Group: '.'},
	DateLayout: "02.01.2006",
	Charset:    charmap.ISO8859_1,
}

// ParseAmount parses an amount, a trailing currency code like " EUR" is ignored.
func (l Locale) ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, dkbl.Currency))
	return l.Number.Parse(s)
}

// ParseDate parses a date written with the locale's layout.
func (l Locale) ParseDate(s string) (date.Date, error) {
	return date.ParseLayout(l.DateLayout, s)
}

// Reader decodes r from the locale's charset to UTF-8.
func (l Locale) Reader(r io.Reader) io.Reader {
	if l.Charset == nil {
		return r
	}
	return l.Charset.NewDecoder().Reader(r)
}
