package suggest

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/dkbl"
	"github.com/jbrukh/bayesian"
)

// ErrNotEnoughLabels is returned when there are too few labels to learn from.
var ErrNotEnoughLabels = errors.New("at least two distinct labels are needed")

// Bayes learns label1 from the words of the already labeled recipients.
type Bayes struct{}

// Suggest classifies every unlabeled recipient. Recipients with no known word,
// or whose words do not favor a single label, are left out.
func (Bayes) Suggest(ctx context.Context, table *dkbl.MappingTable) ([]Suggestion, error) {
	labeled, blank := split(table)

	seen := make(map[bayesian.Class]bool)
	var classes []bayesian.Class
	for _, m := range labeled {
		c := bayesian.Class(m.Label1)
		if !seen[c] {
			seen[c] = true
			classes = append(classes, c)
		}
	}
	if len(classes) < 2 {
		return nil, fmt.Errorf("%w, found %d", ErrNotEnoughLabels, len(classes))
	}

	cl := bayesian.NewClassifier(classes...)
	known := make(map[string]bool)
	for _, m := range labeled {
		doc := terms(m.Recipient)
		for _, t := range doc {
			known[t] = true
		}
		cl.Learn(doc, bayesian.Class(m.Label1))
	}

	var suggestions []Suggestion
	for _, m := range blank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc := terms(m.Recipient)
		if !slices.ContainsFunc(doc, func(t string) bool { return known[t] }) {
			continue // no evidence
		}
		_, best, strict := cl.LogScores(doc)
		if !strict {
			continue
		}
		suggestions = append(suggestions, Suggestion{Recipient: m.Recipient, Label1: string(classes[best])})
	}
	return suggestions, nil
}
