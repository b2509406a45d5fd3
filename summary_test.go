package dkbl

import (
	"testing"

	"github.com/etnz/dkbl/date"
)

func TestNewSummary(t *testing.T) {
	l := NewLedger(
		Transaction{Date: date.MustParse("2021-12-31"), Recipient: InitRecipient, Amount: dec("1000")},
		Transaction{Date: date.MustParse("2022-01-05"), Recipient: "Shop", Amount: dec("-10"), Label1: "food"},
		Transaction{Date: date.MustParse("2022-01-20"), Recipient: "Salary", Amount: dec("2000"), Label1: "salary"},
		Transaction{Date: date.MustParse("2022-02-03"), Recipient: "Insurance", Amount: dec("-300"), Label1: "home", Occurrence: 3},
		Transaction{Date: date.MustParse("2022-02-10"), Recipient: "Kiosk", Amount: dec("-5")},
	)
	d, err := Distribute(l)
	if err != nil {
		t.Fatalf("Distribute() unexpected error: %v", err)
	}
	r := date.Range{From: date.MustParse("2022-01-01"), To: date.MustParse("2022-03-31")}
	s := NewSummary(d, r, date.Monthly)

	wantPeriods := []struct {
		id      string
		income  string
		expense string
	}{
		{"2022-01", "2000", "-10"},
		{"2022-02", "0", "-105"},
		{"2022-03", "0", "-100"},
	}
	if got, want := len(s.Periods), len(wantPeriods); got != want {
		t.Fatalf("NewSummary() got %d periods, want %d", got, want)
	}
	for i, want := range wantPeriods {
		got := s.Periods[i]
		if got.Period != want.id || !got.Income.Equal(dec(want.income)) || !got.Expense.Equal(dec(want.expense)) {
			t.Errorf("period %d got %s %v %v, want %s %s %s", i, got.Period, got.Income, got.Expense, want.id, want.income, want.expense)
		}
	}
	if got, want := s.Net(), dec("1785"); !got.Equal(want) {
		t.Errorf("Net() = %v, want %v", got, want)
	}

	wantLabels := []string{"home", "food", Unlabeled, "salary"}
	if got, want := len(s.Labels), len(wantLabels); got != want {
		t.Fatalf("NewSummary() got %d labels, want %d", got, want)
	}
	for i, want := range wantLabels {
		if got := s.Labels[i].Label; got != want {
			t.Errorf("label %d got %q, want %q", i, got, want)
		}
	}
	if got := s.Labels[0]; got.Count != 2 || !got.Amount.Equal(dec("-200")) {
		t.Errorf("home label got %+v, want 2 rows totalling -200 within range", got)
	}
}
