package dkbl

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/dkbl/date"
	"github.com/shopspring/decimal"
)

// Separator is the field delimiter of the files written by this package.
const Separator = ';'

// aliases maps legacy column names to their canonical name.
var aliases = map[string]string{
	"occurence":        "occurrence",
	"occurence_custom": "occurrence_custom",
}

// table is a decoded csv file with a header row.
type table struct {
	columns map[string]int
	rows    [][]string
	line    int // current row, 1-based, for error messages
	row     []string
}

// readTable reads a `;` separated file and checks that required columns are present.
func readTable(r io.Reader, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = Separator
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header", ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}

	t := &table{columns: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if canonical, ok := aliases[name]; ok {
			name = canonical
		}
		t.columns[name] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := t.columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	t.rows, err = cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read rows: %w", err)
	}
	return t, nil
}

// next moves to the next row.
func (t *table) next() bool {
	if t.line >= len(t.rows) {
		return false
	}
	t.row = t.rows[t.line]
	t.line++
	return true
}

// str returns the trimmed value of a column in the current row, "" if the column does not exist.
func (t *table) str(column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(t.row) {
		return ""
	}
	return strings.TrimSpace(t.row[i])
}

// errorf decorates an error with the current row position.
func (t *table) errorf(column string, err error) error {
	// line+1 accounts for the header row.
	return fmt.Errorf("row %d, column %q: %w", t.line+1, column, err)
}

func (t *table) dateOf(column string) (date.Date, error) {
	s := t.str(column)
	if s == "" {
		return date.Date{}, nil
	}
	d, err := date.Parse(s)
	if err != nil {
		return d, t.errorf(column, err)
	}
	return d, nil
}

func (t *table) amountOf(column string) (decimal.NullDecimal, error) {
	s := t.str(column)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := FileFormat.Parse(s)
	if err != nil {
		return decimal.NullDecimal{}, t.errorf(column, err)
	}
	return decimal.NewNullDecimal(d), nil
}

func (t *table) intOf(column string) (int, error) {
	s := t.str(column)
	if s == "" {
		return 0, nil
	}
	// spreadsheets tend to write integers as "5,0"
	if d, err := FileFormat.Parse(s); err == nil && d.IsInteger() {
		return int(d.IntPart()), nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, t.errorf(column, err)
	}
	return i, nil
}

// writeTable writes the header and the rows produced by next until it returns false.
func writeTable(w io.Writer, header []string, next func() ([]string, bool)) error {
	cw := csv.NewWriter(w)
	cw.Comma = Separator
	if err := cw.Write(header); err != nil {
		return err
	}
	for {
		row, ok := next()
		if !ok {
			break
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtAmount(d decimal.Decimal) string { return FileFormat.Format(d, Places) }

func fmtNullAmount(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return fmtAmount(d.Decimal)
}

// fmtInt writes 0 as blank, see Overrides.
func fmtInt(i int) string {
	if i == 0 {
		return ""
	}
	return strconv.Itoa(i)
}
