package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/dkbl"
	"github.com/google/subcommands"
)

type distributeLedgerCmd struct{}

func (*distributeLedgerCmd) Name() string { return "distribute-ledger" }
func (*distributeLedgerCmd) Synopsis() string {
	return "spreads recurring transactions over their months"
}
func (*distributeLedgerCmd) Usage() string {
	return `dkbl [-o folder] distribute-ledger

  Writes dist_ledger.csv: the ledger where each transaction with an
  occurrence n (|n| > 1) is replaced by |n| monthly installments. A positive
  n spreads forward from the transaction's month, a negative one backward.
`
}

func (*distributeLedgerCmd) SetFlags(f *flag.FlagSet) {}

func (*distributeLedgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	folder, err := openFolder(ctx)
	if err != nil {
		return fail(ctx, "opening output folder", err)
	}
	d, err := loadDistributed(folder)
	if err != nil {
		return fail(ctx, "distributing ledger", err)
	}
	if err := folder.SaveDistributedLedger(d); err != nil {
		return fail(ctx, "saving distributed ledger", err)
	}
	done(folder, dkbl.DistributedFile, "%d rows, total %s", d.Len(), dkbl.FormatMoney(d.Total()))
	return subcommands.ExitSuccess
}

// loadDistributed loads the ledger and distributes it.
func loadDistributed(folder *dkbl.Folder) (*dkbl.DistributedLedger, error) {
	ledger, err := folder.LoadLedger(dkbl.DistributionColumns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dkbl.ErrMalformedInput, err)
	}
	return dkbl.Distribute(ledger)
}
