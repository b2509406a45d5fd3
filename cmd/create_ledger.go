package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/dkbl"
	"github.com/google/subcommands"
)

type createLedgerCmd struct {
	file      string
	bank      string
	keepStale bool
}

func (*createLedgerCmd) Name() string { return "create-ledger" }
func (*createLedgerCmd) Synopsis() string {
	return "creates the ledger from a first bank export"
}
func (*createLedgerCmd) Usage() string {
	return `dkbl [-o folder] create-ledger -f <export.csv> [-bank dkb]

  Creates ledger.csv from a bank export. An init transaction dated the day
  before the export period holds the account balance at that time.

  The mapping table is created (or refreshed) and applied, and the history is
  projected from the new ledger.

  An existing ledger is only overwritten after confirmation, see -confirm.
`
}

func (c *createLedgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "bank export file")
	f.StringVar(&c.bank, "bank", "", "bank export format, defaults to the configured one")
	f.BoolVar(&c.keepStale, "keep-stale", false, "keep mapping table recipients that are not in the ledger")
}

func (c *createLedgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	export, err := readExport(ctx, c.file, c.bank)
	if err != nil {
		return fail(ctx, "reading export", err)
	}
	ledger, err := dkbl.Create(export.Records, export.Header)
	if err != nil {
		return fail(ctx, "creating ledger", err)
	}

	if err := folder.ConfirmOverwrite(ctx, dkbl.LedgerFile); err != nil {
		return fail(ctx, "creating ledger", err)
	}
	if err := folder.SaveLedger(ledger); err != nil {
		return fail(ctx, "saving ledger", err)
	}

	ledger, err = reconcile(ctx, folder, ledger, dkbl.MappingOptions{KeepStale: c.keepStale})
	if err != nil {
		return fail(ctx, "updating mappings", err)
	}
	// a new ledger restarts the history
	h, err := dkbl.ProjectHistory(ledger, dkbl.HistoryOptions{InitialBalance: zero()})
	if err != nil {
		return fail(ctx, "projecting history", err)
	}
	if err := folder.SaveHistory(h); err != nil {
		return fail(ctx, "saving history", err)
	}
	done(folder, dkbl.HistoryFile, "%d entries", len(h))
	return subcommands.ExitSuccess
}
