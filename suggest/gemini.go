package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/dkbl"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Generator sends a prompt to a language model and returns its text answer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gemini asks a Gemini model to label the recipients, given the labeled ones as examples.
type Gemini struct {
	Generator Generator
}

// NewGemini creates a Gemini suggester. The API key is read from the
// environment (GEMINI_API_KEY or GOOGLE_API_KEY) by the genai client.
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error initializing Gemini's client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{Generator: &genaiGenerator{client: client, model: model}}, nil
}

const instructions = `You categorize bank transaction recipients for a personal household ledger.
You receive already categorized recipients as examples and a list of recipients to categorize.
For each recipient to categorize, choose a label1, preferably one used in the examples,
and a short human readable recipient_clean name.
Answer with JSON only, in the form:
{"suggestions": [{"recipient": "...", "recipient_clean": "...", "label1": "..."}]}
The recipient value must be copied exactly from the input.`

// Suggest asks the model for the recipients without label1.
func (g *Gemini) Suggest(ctx context.Context, table *dkbl.MappingTable) ([]Suggestion, error) {
	labeled, blank := split(table)
	if len(blank) == 0 {
		return nil, nil
	}

	var b strings.Builder
	b.WriteString("Examples (recipient => recipient_clean; label1):\n")
	for _, m := range labeled {
		fmt.Fprintf(&b, "%s => %s; %s\n", m.Recipient, m.RecipientClean, m.Label1)
	}
	b.WriteString("\nRecipients to categorize:\n")
	for _, m := range blank {
		fmt.Fprintln(&b, m.Recipient)
	}

	answer, err := g.Generator.Generate(ctx, b.String())
	if err != nil {
		return nil, fmt.Errorf("could not get suggestions: %w", err)
	}
	return parseSuggestions(answer)
}

// parseSuggestions extracts the suggestions from the model's JSON answer.
func parseSuggestions(answer string) ([]Suggestion, error) {
	answer = strings.TrimSpace(answer)
	answer = strings.TrimPrefix(answer, "```json")
	answer = strings.TrimPrefix(answer, "```")
	answer = strings.TrimSuffix(answer, "```")

	var jobj any
	if err := json.Unmarshal([]byte(answer), &jobj); err != nil {
		return nil, fmt.Errorf("invalid JSON answer: %w", err)
	}
	path := "$.suggestions"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing answer with %q: %w", path, err)
	}
	items, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing answer with %q: not a list: %v", path, jval)
	}

	suggestions := make([]Suggestion, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s := Suggestion{
			Recipient:      str(obj["recipient"]),
			RecipientClean: str(obj["recipient_clean"]),
			Label1:         str(obj["label1"]),
		}
		if s.Recipient == "" || s.Label1 == "" {
			continue
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

type genaiGenerator struct {
	client *genai.Client
	model  string
}

func (g *genaiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instructions}}},
	}
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
