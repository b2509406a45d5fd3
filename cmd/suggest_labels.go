package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/dkbl"
	"github.com/etnz/dkbl/logger"
	"github.com/etnz/dkbl/renderer"
	"github.com/etnz/dkbl/suggest"
	"github.com/google/subcommands"
)

type suggestLabelsCmd struct {
	engine string
	model  string
	apply  bool
	raw    bool
}

func (*suggestLabelsCmd) Name() string { return "suggest-labels" }
func (*suggestLabelsCmd) Synopsis() string {
	return "suggests labels for the uncategorized recipients"
}
func (*suggestLabelsCmd) Usage() string {
	return `dkbl [-o folder] suggest-labels [-engine bayes|gemini] [-apply]

  Proposes a label1 for the recipients of maptab.csv that have none, learning
  from the recipients already labeled.

  bayes is a local naive Bayes classifier on the recipients' words.
  gemini asks a Gemini model; it needs GEMINI_API_KEY in the environment.

  With -apply the suggestions fill the blank cells of maptab.csv. Run
  update-ledger-mappings afterwards to copy them into the ledger.
`
}

func (c *suggestLabelsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.engine, "engine", "bayes", "suggestion engine: bayes or gemini")
	f.StringVar(&c.model, "model", "", "Gemini model, defaults to the configured one")
	f.BoolVar(&c.apply, "apply", false, "write the suggestions into the mapping table")
	f.BoolVar(&c.raw, "raw", false, "print markdown without rendering")
}

func (c *suggestLabelsCmd) suggester(ctx context.Context) (suggest.Suggester, error) {
	switch c.engine {
	case "bayes":
		return suggest.Bayes{}, nil
	case "gemini":
		model := c.model
		if model == "" {
			model = config.GeminiModel
		}
		return suggest.NewGemini(ctx, model)
	}
	return nil, fmt.Errorf("unknown engine %q", c.engine)
}

func (c *suggestLabelsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.engine != "bayes" && c.engine != "gemini" {
		fmt.Fprintf(os.Stderr, "Error: unknown engine %q\n", c.engine)
		return subcommands.ExitUsageError
	}
	folder, err := openFolder(ctx)
	if err != nil {
		return fail(ctx, "opening output folder", err)
	}
	table, err := folder.LoadMappingTable()
	if err != nil {
		return fail(ctx, "loading mapping table", err)
	}
	s, err := c.suggester(ctx)
	if err != nil {
		return fail(ctx, "creating suggester", err)
	}
	suggestions, err := s.Suggest(ctx, table)
	if err != nil {
		return fail(ctx, "suggesting labels", err)
	}
	log := logger.FromContext(ctx)
	log.Info().Str("engine", c.engine).Int("suggestions", len(suggestions)).Msg("labels suggested")

	if err := printMarkdown(renderer.RenderSuggestions(suggestions), c.raw); err != nil {
		return fail(ctx, "rendering suggestions", err)
	}
	if !c.apply || len(suggestions) == 0 {
		return subcommands.ExitSuccess
	}

	table, err = suggest.Apply(table, suggestions)
	if err != nil {
		return fail(ctx, "applying suggestions", err)
	}
	if err := folder.SaveMappingTable(table); err != nil {
		return fail(ctx, "saving mapping table", err)
	}
	done(folder, dkbl.MappingFile, "%d suggestions applied", len(suggestions))
	return subcommands.ExitSuccess
}
