package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/dkbl"
	"github.com/etnz/dkbl/date"
	"github.com/etnz/dkbl/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct {
	rng    string
	period string
	raw    bool
}

func (*summaryCmd) Name() string { return "summary" }
func (*summaryCmd) Synopsis() string {
	return "displays income and expense totals of the distributed ledger"
}
func (*summaryCmd) Usage() string {
	return `dkbl [-o folder] summary [-range from..to] [-period monthly] [-raw]

  Distributes the ledger and reports its income, expense and net totals per
  period and per label over the range. Either side of the range may be empty,
  e.g. -range 2024-01-01..
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rng, "range", "", "date range, from..to")
	f.StringVar(&c.period, "period", "monthly", "grouping period: daily, weekly, monthly, quarterly, yearly")
	f.BoolVar(&c.raw, "raw", false, "print markdown without rendering")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	r, err := date.ParseRange(c.rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -range: %v\n", err)
		return subcommands.ExitUsageError
	}
	p, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid -period: %v\n", err)
		return subcommands.ExitUsageError
	}

	folder, err := openFolder(ctx)
	if err != nil {
		return fail(ctx, "opening output folder", err)
	}
	d, err := loadDistributed(folder)
	if err != nil {
		return fail(ctx, "distributing ledger", err)
	}

	md := renderer.RenderSummary(dkbl.NewSummary(d, r, p))
	if err := printMarkdown(md, c.raw); err != nil {
		return fail(ctx, "rendering summary", err)
	}
	return subcommands.ExitSuccess
}
