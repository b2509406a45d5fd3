package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/dkbl"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type updateHistoryCmd struct {
	initial      string
	customDate   bool
	customAmount bool
}

func (*updateHistoryCmd) Name() string { return "update-history" }
func (*updateHistoryCmd) Synopsis() string {
	return "projects the balance history of the ledger"
}
func (*updateHistoryCmd) Usage() string {
	return `dkbl [-o folder] update-history [-initial <amount>] [-custom-date] [-custom-amount]

  Rewrites history.csv: one row per transaction, sorted by date, with the
  running balance. The initial balance is carried from the previous history
  unless -initial is given.

  -custom-date and -custom-amount use the transaction's custom values when set.
`
}

func (c *updateHistoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.initial, "initial", "", "initial balance, e.g. 1234,56")
	f.BoolVar(&c.customDate, "custom-date", false, "use date_custom when set")
	f.BoolVar(&c.customAmount, "custom-amount", false, "use amount_custom when set")
}

func (c *updateHistoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts := dkbl.HistoryOptions{
		UseCustomDate:   c.customDate,
		UseCustomAmount: c.customAmount,
	}
	if c.initial != "" {
		d, err := dkbl.FileFormat.Parse(c.initial)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -initial: %v\n", err)
			return subcommands.ExitUsageError
		}
		opts.InitialBalance = decimal.NewNullDecimal(d)
	}

	folder, err := openFolder(ctx)
	if err != nil {
		return fail(ctx, "opening output folder", err)
	}
	ledger, err := folder.LoadLedger()
	if err != nil {
		return fail(ctx, "loading ledger", err)
	}
	if opts.Previous, err = loadHistory(folder); err != nil {
		return fail(ctx, "loading history", err)
	}

	h, err := dkbl.ProjectHistory(ledger, opts)
	if err != nil {
		return fail(ctx, "projecting history", err)
	}
	if err := folder.SaveHistory(h); err != nil {
		return fail(ctx, "saving history", err)
	}
	done(folder, dkbl.HistoryFile, "%d entries, balance %s", len(h), dkbl.FormatMoney(h[len(h)-1].Balance))
	return subcommands.ExitSuccess
}
