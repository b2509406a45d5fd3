package cmd

import (
	"context"
	"flag"

	"github.com/etnz/dkbl"
	"github.com/google/subcommands"
)

type updateLedgerMappingsCmd struct{}

func (*updateLedgerMappingsCmd) Name() string { return "update-ledger-mappings" }
func (*updateLedgerMappingsCmd) Synopsis() string {
	return "applies the mapping table to the ledger"
}
func (*updateLedgerMappingsCmd) Usage() string {
	return `dkbl [-o folder] update-ledger-mappings

  Copies recipient_clean, labels and occurrence from maptab.csv into every
  transaction of ledger.csv. Custom columns are left untouched.
`
}

func (*updateLedgerMappingsCmd) SetFlags(f *flag.FlagSet) {}

func (*updateLedgerMappingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	folder, err := openFolder(ctx)
	if err != nil {
		return fail(ctx, "opening output folder", err)
	}
	ledger, err := folder.LoadLedger()
	if err != nil {
		return fail(ctx, "loading ledger", err)
	}
	table, err := folder.LoadMappingTable()
	if err != nil {
		return fail(ctx, "loading mapping table", err)
	}

	ledger = dkbl.ApplyMappings(ledger, table)
	if err := folder.SaveLedger(ledger); err != nil {
		return fail(ctx, "saving ledger", err)
	}
	done(folder, dkbl.LedgerFile, "%d transactions mapped", ledger.Len())
	return subcommands.ExitSuccess
}
