package cmd

import (
	"context"
	"fmt"

	"github.com/etnz/dkbl"
	"github.com/etnz/dkbl/logger"
	"github.com/etnz/dkbl/statement"
	"github.com/shopspring/decimal"
)

// readExport parses the export file with the format named bank.
func readExport(ctx context.Context, path, bank string) (dkbl.Export, error) {
	format, err := statement.Lookup(bank)
	if err != nil {
		return dkbl.Export{}, err
	}
	export, err := statement.ParseFile(format, path)
	if err != nil {
		return export, err
	}
	log := logger.FromContext(ctx)
	log.Info().
		Str("file", path).
		Str("bank", bank).
		Int("records", len(export.Records)).
		Str("from", export.Header.PeriodStart.String()).
		Str("to", export.Header.PeriodEnd.String()).
		Msg("export parsed")
	return export, nil
}

// loadMappingTable loads the mapping table, nil if there is none yet.
func loadMappingTable(folder *dkbl.Folder) (*dkbl.MappingTable, error) {
	m, err := folder.LoadMappingTable()
	if dkbl.IsNotExist(err) {
		return nil, nil
	}
	return m, err
}

// loadHistory loads the history, nil if there is none yet.
func loadHistory(folder *dkbl.Folder) (dkbl.History, error) {
	h, err := folder.LoadHistory()
	if dkbl.IsNotExist(err) {
		return nil, nil
	}
	return h, err
}

// reconcile refreshes the mapping table with the ledger's recipients, applies
// it to the ledger, and saves both.
func reconcile(ctx context.Context, folder *dkbl.Folder, l *dkbl.Ledger, opts dkbl.MappingOptions) (*dkbl.Ledger, error) {
	stale, err := loadMappingTable(folder)
	if err != nil {
		return nil, err
	}
	table := dkbl.UpdateMappingTable(l, stale, opts)
	if err := folder.SaveMappingTable(table); err != nil {
		return nil, err
	}
	done(folder, dkbl.MappingFile, "%d recipients", table.Len())

	l = dkbl.ApplyMappings(l, table)
	if err := folder.SaveLedger(l); err != nil {
		return nil, err
	}
	done(folder, dkbl.LedgerFile, "%d transactions, balance %s", l.Len(), dkbl.FormatMoney(l.Total()))

	log := logger.FromContext(ctx)
	log.Debug().Int("recipients", table.Len()).Bool("first", stale == nil).Msg("mappings applied")
	return l, nil
}

// refreshHistory projects the ledger's history and saves it. Without a
// previous history the initial balance is zero: the init record carries the
// opening balance.
func refreshHistory(folder *dkbl.Folder, l *dkbl.Ledger, opts dkbl.HistoryOptions) error {
	previous, err := loadHistory(folder)
	if err != nil {
		return err
	}
	opts.Previous = previous
	if previous == nil && !opts.InitialBalance.Valid {
		opts.InitialBalance = zero()
	}
	h, err := dkbl.ProjectHistory(l, opts)
	if err != nil {
		return fmt.Errorf("could not project history: %w", err)
	}
	if err := folder.SaveHistory(h); err != nil {
		return err
	}
	done(folder, dkbl.HistoryFile, "%d entries, balance %s", len(h), dkbl.FormatMoney(h[len(h)-1].Balance))
	return nil
}

func zero() decimal.NullDecimal { return decimal.NewNullDecimal(decimal.Zero) }
