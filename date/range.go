package date

import (
	"fmt"
	"strings"
)

// Range represents a range of dates, boundaries included.
//
// A zero From or To leaves that side of the range open.
type Range struct{ From, To Date }

// NewRange return a well known period
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// ParseRange parses "from..to" where either side may be empty, e.g. "2022-01-01.." .
func ParseRange(s string) (Range, error) {
	var r Range
	if s == "" {
		return r, nil
	}
	from, to, ok := strings.Cut(s, "..")
	if !ok {
		return r, fmt.Errorf("invalid range %q want format %q", s, "from..to")
	}
	var err error
	if from != "" {
		if r.From, err = Parse(from); err != nil {
			return r, err
		}
	}
	if to != "" {
		if r.To, err = Parse(to); err != nil {
			return r, err
		}
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return r, fmt.Errorf("invalid range %q: %s is before %s", s, r.To, r.From)
	}
	return r, nil
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && date.After(r.To) {
		return false
	}
	return true
}

// Identifier compute a short label for the period starting at r.From.
func (r Range) Identifier(p Period) string {
	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		_, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", r.From.Year(), week)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		panic("unknown period")
	}
}
