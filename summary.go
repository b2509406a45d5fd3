package dkbl

import (
	"cmp"
	"slices"

	"github.com/etnz/dkbl/date"
	"github.com/shopspring/decimal"
)

// Unlabeled is the label used in summaries for transactions without label1.
const Unlabeled = "(unlabeled)"

// PeriodTotal is the income and expense of one period.
type PeriodTotal struct {
	Period  string // period identifier, e.g. "2022-05"
	Range   date.Range
	Income  decimal.Decimal
	Expense decimal.Decimal // negative
}

// Net returns income plus expense.
func (p PeriodTotal) Net() decimal.Decimal { return p.Income.Add(p.Expense) }

// LabelTotal is the sum of the amounts of one label1.
type LabelTotal struct {
	Label  string
	Amount decimal.Decimal
	Count  int
}

// Summary is the income and expense overview of a distributed ledger over a range.
type Summary struct {
	Range   date.Range
	Period  date.Period
	Periods []PeriodTotal
	Labels  []LabelTotal // sorted by amount, largest expense first
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net returns income plus expense.
func (s *Summary) Net() decimal.Decimal { return s.Income.Add(s.Expense) }

// NewSummary computes totals of the distributed ledger rows within r, grouped by p.
// The init record is not an income and is left out.
func NewSummary(d *DistributedLedger, r date.Range, p date.Period) *Summary {
	s := &Summary{Range: r, Period: p}
	periods := make(map[date.Date]*PeriodTotal)
	labels := make(map[string]*LabelTotal)

	for _, tx := range d.transactions {
		if tx.IsInit() || !r.Contains(tx.Date) {
			continue
		}
		start := tx.Date.StartOf(p)
		pt, ok := periods[start]
		if !ok {
			rg := date.NewRange(start, p)
			pt = &PeriodTotal{Period: rg.Identifier(p), Range: rg}
			periods[start] = pt
		}
		if tx.Type() == Income {
			pt.Income = pt.Income.Add(tx.Amount)
			s.Income = s.Income.Add(tx.Amount)
		} else {
			pt.Expense = pt.Expense.Add(tx.Amount)
			s.Expense = s.Expense.Add(tx.Amount)
		}

		label := tx.Label1
		if label == "" {
			label = Unlabeled
		}
		lt, ok := labels[label]
		if !ok {
			lt = &LabelTotal{Label: label}
			labels[label] = lt
		}
		lt.Amount = lt.Amount.Add(tx.Amount)
		lt.Count++
	}

	for _, pt := range periods {
		s.Periods = append(s.Periods, *pt)
	}
	slices.SortFunc(s.Periods, func(a, b PeriodTotal) int { return a.Range.From.Compare(b.Range.From) })

	for _, lt := range labels {
		s.Labels = append(s.Labels, *lt)
	}
	slices.SortFunc(s.Labels, func(a, b LabelTotal) int {
		if c := a.Amount.Cmp(b.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return s
}
