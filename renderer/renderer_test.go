package renderer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/etnz/dkbl"
	"github.com/etnz/dkbl/date"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline parses markdown and returns its headings and its number of tables and body rows.
func outline(md string) (headings []string, tables, rows int) {
	src := []byte(md)
	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			headings = append(headings, string(n.Text(src)))
		case extast.KindTable:
			tables++
		case extast.KindTableRow:
			rows++
		}
		return ast.WalkContinue, nil
	})
	return
}

func summary(t *testing.T, r date.Range) *dkbl.Summary {
	t.Helper()
	tx := func(on, recipient, amount, label string, occ int) dkbl.Transaction {
		return dkbl.Transaction{Date: date.MustParse(on), Recipient: recipient, Amount: decimal.RequireFromString(amount), Label1: label, Occurrence: occ}
	}
	l := dkbl.NewLedger(
		tx("2021-12-31", dkbl.InitRecipient, "1000", "", 0),
		tx("2022-01-05", "Shop", "-10", "food", 0),
		tx("2022-01-20", "Salary", "2000", "salary", 0),
		tx("2022-02-03", "Insurance", "-300", "home", 3),
		tx("2022-02-10", "Kiosk", "-5", "", 0),
	)
	d, err := dkbl.Distribute(l)
	if err != nil {
		t.Fatalf("Distribute() unexpected error: %v", err)
	}
	return dkbl.NewSummary(d, r, date.Monthly)
}

func TestRenderSummary(t *testing.T) {
	r := date.Range{From: date.MustParse("2022-01-01"), To: date.MustParse("2022-03-31")}
	md := RenderSummary(summary(t, r))

	headings, tables, rows := outline(md)
	wantHeadings := []string{"Summary from 2022-01-01 to 2022-03-31", "monthly totals", "Labels"}
	if !reflect.DeepEqual(headings, wantHeadings) {
		t.Errorf("RenderSummary() headings got %q, want %q\n%s", headings, wantHeadings, md)
	}
	if tables != 3 {
		t.Errorf("RenderSummary() got %d tables, want 3\n%s", tables, md)
	}
	// totals + 3 months + 4 labels
	if rows != 8 {
		t.Errorf("RenderSummary() got %d table rows, want 8\n%s", rows, md)
	}
	for _, want := range []string{"| 2022-02 |", "€2,000.00", "-€105.00", "+€1,785.00", "| home | 2 |"} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderSummary() does not contain %q\n%s", want, md)
		}
	}
}

func TestRenderSummary_Empty(t *testing.T) {
	r := date.Range{From: date.MustParse("2023-01-01")}
	md := RenderSummary(summary(t, r))
	if strings.Contains(md, "error") {
		t.Fatalf("RenderSummary() failed: %s", md)
	}
	headings, tables, _ := outline(md)
	if got, want := headings[0], "Summary since 2023-01-01"; got != want {
		t.Errorf("RenderSummary() title got %q, want %q", got, want)
	}
	if tables != 1 {
		t.Errorf("RenderSummary() got %d tables, want only the totals", tables)
	}
	if !strings.Contains(md, "No transactions in range.") {
		t.Errorf("RenderSummary() misses the empty notice\n%s", md)
	}
}

func TestSpan(t *testing.T) {
	d1, d2 := date.MustParse("2022-01-01"), date.MustParse("2022-12-31")
	testCases := []struct {
		r    date.Range
		want string
	}{
		{date.Range{}, ""},
		{date.Range{From: d1}, " since 2022-01-01"},
		{date.Range{To: d2}, " until 2022-12-31"},
		{date.Range{From: d1, To: d2}, " from 2022-01-01 to 2022-12-31"},
	}
	for _, tc := range testCases {
		if got := span(tc.r); got != tc.want {
			t.Errorf("span(%v) = %q, want %q", tc.r, got, tc.want)
		}
	}
}
