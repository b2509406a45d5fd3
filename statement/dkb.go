package statement

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/dkbl"
)

// DKB column names.
const (
	dkbDate      = "Buchungstag"
	dkbRecipient = "Auftraggeber / Begünstigter"
	dkbAmount    = "Betrag (EUR)"
	dkbText      = "Buchungstext"
)

// DKB header keys, all required.
const (
	dkbFrom    = "Von:"
	dkbTo      = "Bis:"
	dkbClosing = "Kontostand vom"
)

// DKB parses the giro account CSV export of the Deutsche Kreditbank.
//
// The export starts with a few "key;value" lines (account, period, closing
// balance) followed by the transaction table:
//
//	"Von:";"01.01.2022";
//	"Bis:";"31.01.2022";
//	"Kontostand vom 31.01.2022:";"1.234,56 EUR";
//
//	"Buchungstag";"Wertstellung";"Buchungstext";"Auftraggeber / Begünstigter";...;"Betrag (EUR)";...
type DKB struct {
	Locale Locale
}

func (DKB) Name() string { return "dkb" }

// Parse reads a DKB export. Records with a blank recipient take the booking text instead.
func (f DKB) Parse(r io.Reader) (dkbl.Export, error) {
	var export dkbl.Export

	cr := csv.NewReader(f.Locale.Reader(r))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var columns map[string]int // nil until the table header is found
	seen := make(map[string]bool)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return export, fmt.Errorf("could not read export: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if columns == nil {
			if columns = tableColumns(row); columns != nil {
				if err := requireHeader(seen); err != nil {
					return export, err
				}
				if err := requireColumns(columns, dkbDate, dkbRecipient, dkbAmount); err != nil {
					return export, err
				}
				continue
			}
			key, err := f.parseHeader(&export.Header, row)
			if err != nil {
				return export, fmt.Errorf("line %d: %w", line, err)
			}
			seen[key] = true
			continue
		}

		if blank(row) {
			continue
		}
		rec, err := f.parseRecord(columns, row)
		if err != nil {
			return export, fmt.Errorf("line %d: %w", line, err)
		}
		export.Records = append(export.Records, rec)
	}

	if columns == nil {
		return export, fmt.Errorf("%w: no transaction table", dkbl.ErrMissingColumns)
	}
	if len(export.Records) == 0 {
		return export, dkbl.ErrEmptyImport
	}
	return export, nil
}

// parseHeader reads the "key;value" lines before the table. It returns the
// header key read, "" for other lines.
func (f DKB) parseHeader(h *dkbl.Header, row []string) (key string, err error) {
	if len(row) < 2 {
		return "", nil
	}
	name, value := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
	switch {
	case name == dkbFrom:
		h.PeriodStart, err = f.Locale.ParseDate(value)
		return dkbFrom, err
	case name == dkbTo:
		h.PeriodEnd, err = f.Locale.ParseDate(value)
		return dkbTo, err
	case strings.HasPrefix(name, dkbClosing):
		h.ClosingAmount, err = f.Locale.ParseAmount(value)
		return dkbClosing, err
	}
	return "", nil
}

// requireHeader fails if a header key was not found before the table.
func requireHeader(seen map[string]bool) error {
	var missing []string
	for _, key := range []string{dkbFrom, dkbTo, dkbClosing} {
		if !seen[key] {
			missing = append(missing, strings.TrimSuffix(key, ":"))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: header %s", dkbl.ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

func (f DKB) parseRecord(columns map[string]int, row []string) (rec dkbl.Record, err error) {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	if rec.Date, err = f.Locale.ParseDate(cell(dkbDate)); err != nil {
		return rec, err
	}
	if rec.Amount, err = f.Locale.ParseAmount(cell(dkbAmount)); err != nil {
		return rec, err
	}
	rec.Recipient = cell(dkbRecipient)
	if rec.Recipient == "" {
		rec.Recipient = cell(dkbText)
	}
	return rec, nil
}

// tableColumns returns the column index of a table header row, nil if row is not one.
func tableColumns(row []string) map[string]int {
	columns := make(map[string]int, len(row))
	for i, name := range row {
		columns[strings.TrimSpace(name)] = i
	}
	if _, ok := columns[dkbDate]; !ok {
		return nil
	}
	return columns
}

func requireColumns(columns map[string]int, names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", dkbl.ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
