package dkbl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/dkbl/date"
	"github.com/shopspring/decimal"
)

func TestEncodeLedger(t *testing.T) {
	l := NewLedger(
		Transaction{Date: date.MustParse("2021-12-31"), Recipient: InitRecipient, Amount: dec("510"), Balance: dec("510")},
		Transaction{Date: date.MustParse("2022-01-05"), Recipient: "Shop", Amount: dec("-10.5"), Balance: dec("499.5"),
			Occurrence: 1, RecipientClean: "SHOP", Label1: "food",
			Custom: Overrides{Amount: decimal.NewNullDecimal(dec("-8")), Occurrence: 3}},
	)
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}
	want := `date;recipient;amount;type;balance;occurrence;recipient_clean;label1;label2;label3;date_custom;amount_custom;occurrence_custom;recipient_clean_custom;label1_custom;label2_custom;label3_custom
2021-12-31;~~INIT;510,00;Income;510,00;0;;;;;;;;;;;
2022-01-05;Shop;-10,50;Expense;499,50;1;SHOP;food;;;;-8,00;3;;;;
`
	if got := buf.String(); got != want {
		t.Errorf("EncodeLedger() got:\n%s\nwant:\n%s", got, want)
	}
}

func TestDecodeLedger(t *testing.T) {
	// columns out of order, legacy spelling of occurrence, unknown column.
	input := "\ufeffrecipient;amount;date;occurence;comment;amount_custom;label1\n" +
		"Shop;-10,50;2022-01-05;5,0;hello;;food\n" +
		"Salary; 1000 ;2022-01-10;;;900,00;\n"
	l, err := DecodeLedger(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}
	if got, want := l.Len(), 2; got != want {
		t.Fatalf("DecodeLedger() got %d rows, want %d", got, want)
	}
	shop, salary := l.At(0), l.At(1)
	if shop.Recipient != "Shop" || !shop.Amount.Equal(dec("-10.5")) || shop.Occurrence != 5 || shop.Label1 != "food" {
		t.Errorf("DecodeLedger() row 0 got %+v", shop)
	}
	if shop.Custom.Amount.Valid {
		t.Errorf("DecodeLedger() blank custom amount decoded as %v", shop.Custom.Amount.Decimal)
	}
	if got, want := salary.Date, date.MustParse("2022-01-10"); got != want {
		t.Errorf("DecodeLedger() row 1 date got %v, want %v", got, want)
	}
	if !salary.Custom.Amount.Valid || !salary.Custom.Amount.Decimal.Equal(dec("900")) {
		t.Errorf("DecodeLedger() row 1 custom amount got %+v, want 900", salary.Custom.Amount)
	}
}

func TestDecodeLedger_RoundTrip(t *testing.T) {
	l := mustCreate(t)
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}
	first := buf.String()
	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger() unexpected error: %v", err)
	}
	var again bytes.Buffer
	if err := EncodeLedger(&again, decoded); err != nil {
		t.Fatalf("EncodeLedger() unexpected error: %v", err)
	}
	if again.String() != first {
		t.Errorf("encoding is not stable:\n%s\n%s", first, again.String())
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		required []string
		want     error
	}{
		{name: "empty file", input: "", want: ErrMissingColumns},
		{name: "missing amount column", input: "date;recipient\n2022-01-01;Shop\n", want: ErrMissingColumns},
		{name: "missing occurrence for distribution", input: "date;recipient;amount\n2022-01-01;Shop;1\n", required: DistributionColumns, want: ErrMissingColumns},
		{name: "blank date", input: "date;recipient;amount\n;Shop;1\n", want: ErrMissingColumns},
		{name: "blank amount", input: "date;recipient;amount\n2022-01-01;Shop;\n", want: ErrMissingColumns},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeLedger(strings.NewReader(tc.input), tc.required...)
			if !errors.Is(err, tc.want) {
				t.Errorf("DecodeLedger() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDecodeLedger_InvalidAmount(t *testing.T) {
	_, err := DecodeLedger(strings.NewReader("date;recipient;amount\n2022-01-01;Shop;abc\n"))
	if err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Errorf("DecodeLedger() error = %v, want an error on row 2", err)
	}
}

func TestMappingTable_Encoding(t *testing.T) {
	input := "recipient;recipient_clean;label1;label2;label3;occurrence\n" +
		"Shop;SHOP;food;;;1\n" +
		"Bakery;;;;;\n"
	m, err := DecodeMappingTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeMappingTable() unexpected error: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeMappingTable(&buf, m); err != nil {
		t.Fatalf("EncodeMappingTable() unexpected error: %v", err)
	}
	want := "recipient;recipient_clean;label1;label2;label3;occurrence\n" +
		"Bakery;;;;;0\n" +
		"Shop;SHOP;food;;;1\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodeMappingTable() got:\n%s\nwant:\n%s", got, want)
	}

	if _, err := DecodeMappingTable(strings.NewReader("recipient\nShop\nShop\n")); err == nil {
		t.Error("DecodeMappingTable() with duplicate recipients succeeded, want error")
	}
}

func TestHistory_Encoding(t *testing.T) {
	h := History{
		{Date: date.MustParse("2022-01-01"), Amount: dec("10"), InitialBalance: dec("100"), Balance: dec("110")},
		{Date: date.MustParse("2022-01-02"), Amount: dec("-5"), Balance: dec("105")},
	}
	var buf bytes.Buffer
	if err := EncodeHistory(&buf, h); err != nil {
		t.Fatalf("EncodeHistory() unexpected error: %v", err)
	}
	want := "date;amount;initial_balance;balance\n" +
		"2022-01-01;10,00;100,00;110,00\n" +
		"2022-01-02;-5,00;0,00;105,00\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodeHistory() got:\n%s\nwant:\n%s", got, want)
	}
	got, err := DecodeHistory(&buf)
	if err != nil {
		t.Fatalf("DecodeHistory() unexpected error: %v", err)
	}
	if d, _ := got.InitialBalance(); !d.Equal(dec("100")) {
		t.Errorf("DecodeHistory() initial balance got %v, want 100", d)
	}
}
