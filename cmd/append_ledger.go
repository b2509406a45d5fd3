package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/dkbl"
	"github.com/etnz/dkbl/logger"
	"github.com/google/subcommands"
)

type appendLedgerCmd struct {
	file      string
	bank      string
	keepStale bool
}

func (*appendLedgerCmd) Name() string { return "append-ledger" }
func (*appendLedgerCmd) Synopsis() string {
	return "appends a new bank export to the ledger"
}
func (*appendLedgerCmd) Usage() string {
	return `dkbl [-o folder] append-ledger -f <export.csv> [-bank dkb]

  Merges a new bank export into ledger.csv. Transactions on or after the
  newest date of the ledger are replaced by the export's, so overlapping
  exports can be appended safely. Balances are recomputed.

  The mapping table and the history are then refreshed.
`
}

func (c *appendLedgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "bank export file")
	f.StringVar(&c.bank, "bank", "", "bank export format, defaults to the configured one")
	f.BoolVar(&c.keepStale, "keep-stale", false, "keep mapping table recipients that are not in the ledger")
}

func (c *appendLedgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -f flag is required")
		return subcommands.ExitUsageError
	}
	if c.bank == "" {
		c.bank = config.Bank
	}

	folder, err := openFolder(ctx)
	if err != nil {
		return fail(ctx, "opening output folder", err)
	}
	existing, err := folder.LoadLedger()
	if err != nil {
		return fail(ctx, "loading ledger", err)
	}
	export, err := readExport(ctx, c.file, c.bank)
	if err != nil {
		return fail(ctx, "reading export", err)
	}
	ledger, err := dkbl.Append(export.Records, existing)
	if err != nil {
		return fail(ctx, "appending export", err)
	}
	log := logger.FromContext(ctx)
	log.Info().
		Str("cutoff", existing.NewestDate().String()).
		Int("before", existing.Len()).
		Int("after", ledger.Len()).
		Msg("export appended")

	if err := folder.SaveLedger(ledger); err != nil {
		return fail(ctx, "saving ledger", err)
	}
	ledger, err = reconcile(ctx, folder, ledger, dkbl.MappingOptions{KeepStale: c.keepStale})
	if err != nil {
		return fail(ctx, "updating mappings", err)
	}
	if err := refreshHistory(folder, ledger, dkbl.HistoryOptions{}); err != nil {
		return fail(ctx, "updating history", err)
	}
	return subcommands.ExitSuccess
}
