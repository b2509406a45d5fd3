// Package suggest proposes labels for the recipients of a mapping table that
// have not been categorized yet.
package suggest

import (
	"context"
	"strings"
	"unicode"

	"github.com/etnz/dkbl"
)

// Suggestion is a proposed categorization of a recipient.
type Suggestion struct {
	Recipient      string
	RecipientClean string // optional
	Label1         string
}

// Suggester proposes a label1 for the rows of the table whose label1 is blank.
type Suggester interface {
	Suggest(ctx context.Context, table *dkbl.MappingTable) ([]Suggestion, error)
}

// Apply fills the blank fields of the table with the suggestions.
//
// Curated values are never overwritten, and suggestions for unknown recipients are ignored.
func Apply(table *dkbl.MappingTable, suggestions []Suggestion) (*dkbl.MappingTable, error) {
	var updates []dkbl.Mapping
	for _, s := range suggestions {
		m, ok := table.Lookup(s.Recipient)
		if !ok {
			continue
		}
		changed := false
		if m.Label1 == "" && s.Label1 != "" {
			m.Label1 = s.Label1
			changed = true
		}
		if m.RecipientClean == "" && s.RecipientClean != "" {
			m.RecipientClean = s.RecipientClean
			changed = true
		}
		if changed {
			updates = append(updates, m)
		}
	}
	return table.With(updates...)
}

// split returns the labeled and the unlabeled rows of a table.
func split(table *dkbl.MappingTable) (labeled, blank []dkbl.Mapping) {
	for m := range table.Entries() {
		if m.Recipient == dkbl.InitRecipient {
			continue
		}
		if m.Label1 == "" {
			blank = append(blank, m)
		} else {
			labeled = append(labeled, m)
		}
	}
	return labeled, blank
}

// terms tokenizes a recipient: upper case words, without punctuation.
func terms(recipient string) []string {
	return strings.FieldsFunc(strings.ToUpper(recipient), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
