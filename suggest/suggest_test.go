package suggest

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/etnz/dkbl"
)

func table(t *testing.T, entries ...dkbl.Mapping) *dkbl.MappingTable {
	t.Helper()
	m, err := dkbl.NewMappingTable(entries...)
	if err != nil {
		t.Fatalf("NewMappingTable() unexpected error: %v", err)
	}
	return m
}

func groceriesAndEnergy(t *testing.T) *dkbl.MappingTable {
	return table(t,
		dkbl.Mapping{Recipient: "REWE Markt GmbH", RecipientClean: "Rewe", Label1: "food"},
		dkbl.Mapping{Recipient: "EDEKA Markt", RecipientClean: "Edeka", Label1: "food"},
		dkbl.Mapping{Recipient: "Stadtwerke Strom", RecipientClean: "Stadtwerke", Label1: "energy"},
		dkbl.Mapping{Recipient: "Vattenfall Strom", RecipientClean: "Vattenfall", Label1: "energy"},
		dkbl.Mapping{Recipient: "REWE City"},
		dkbl.Mapping{Recipient: "Strom Anbieter"},
		dkbl.Mapping{Recipient: "Unknown"},
		dkbl.Mapping{Recipient: dkbl.InitRecipient},
	)
}

func TestBayes_Suggest(t *testing.T) {
	got, err := Bayes{}.Suggest(context.Background(), groceriesAndEnergy(t))
	if err != nil {
		t.Fatalf("Suggest() unexpected error: %v", err)
	}
	want := []Suggestion{
		{Recipient: "REWE City", Label1: "food"},
		{Recipient: "Strom Anbieter", Label1: "energy"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() got %+v, want %+v", got, want)
	}
}

func TestBayes_NotEnoughLabels(t *testing.T) {
	m := table(t, dkbl.Mapping{Recipient: "A", Label1: "x"}, dkbl.Mapping{Recipient: "B"})
	if _, err := (Bayes{}).Suggest(context.Background(), m); !errors.Is(err, ErrNotEnoughLabels) {
		t.Errorf("Suggest() error = %v, want %v", err, ErrNotEnoughLabels)
	}
}

type fakeGenerator struct {
	answer string
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, nil
}

func TestGemini_Suggest(t *testing.T) {
	gen := &fakeGenerator{answer: "```json\n" + `{"suggestions": [
		{"recipient": "REWE City", "recipient_clean": "Rewe", "label1": "food"},
		{"recipient": "Strom Anbieter", "label1": "energy"},
		{"recipient": "Unknown", "label1": ""}
	]}` + "\n```"}
	got, err := (&Gemini{Generator: gen}).Suggest(context.Background(), groceriesAndEnergy(t))
	if err != nil {
		t.Fatalf("Suggest() unexpected error: %v", err)
	}
	want := []Suggestion{
		{Recipient: "REWE City", RecipientClean: "Rewe", Label1: "food"},
		{Recipient: "Strom Anbieter", Label1: "energy"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() got %+v, want %+v", got, want)
	}
	for _, s := range []string{"EDEKA Markt => Edeka; food", "\nUnknown\n"} {
		if !strings.Contains(gen.prompt, s) {
			t.Errorf("prompt does not contain %q:\n%s", s, gen.prompt)
		}
	}
	if strings.Contains(gen.prompt, dkbl.InitRecipient) {
		t.Errorf("prompt contains the init record:\n%s", gen.prompt)
	}
}

func TestParseSuggestions_Errors(t *testing.T) {
	for _, answer := range []string{"not json", `{"other": []}`, `{"suggestions": 3}`} {
		if _, err := parseSuggestions(answer); err == nil {
			t.Errorf("parseSuggestions(%q) succeeded, want error", answer)
		}
	}
}

func TestApply(t *testing.T) {
	m := table(t,
		dkbl.Mapping{Recipient: "A", Label1: "curated"},
		dkbl.Mapping{Recipient: "B", RecipientClean: "Bee"},
		dkbl.Mapping{Recipient: "C"},
	)
	got, err := Apply(m, []Suggestion{
		{Recipient: "A", RecipientClean: "Aa", Label1: "other"},
		{Recipient: "B", RecipientClean: "Bbb", Label1: "x"},
		{Recipient: "Z", Label1: "ignored"},
	})
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	want := []dkbl.Mapping{
		{Recipient: "A", RecipientClean: "Aa", Label1: "curated"},
		{Recipient: "B", RecipientClean: "Bee", Label1: "x"},
		{Recipient: "C"},
	}
	if !reflect.DeepEqual(got.Slice(), want) {
		t.Errorf("Apply() got %+v, want %+v", got.Slice(), want)
	}
}
