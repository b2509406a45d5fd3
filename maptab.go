package dkbl

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Mapping is the user-curated categorization of a recipient.
type Mapping struct {
	Recipient      string
	RecipientClean string
	Label1         string
	Label2         string
	Label3         string
	Occurrence     int // default occurrence of the recipient's transactions
}

// IsBlank reports whether nothing has been curated for this recipient yet.
func (m Mapping) IsBlank() bool {
	return m.RecipientClean == "" && m.Label1 == "" && m.Label2 == "" && m.Label3 == "" && m.Occurrence == 0
}

// MappingTable is the recipient → category table.
//
// Entries are unique by recipient and sorted by recipient. A MappingTable is immutable.
type MappingTable struct {
	entries []Mapping
	index   map[string]int
}

// NewMappingTable creates a table from entries. Recipients must be unique.
func NewMappingTable(entries ...Mapping) (*MappingTable, error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Mapping) int { return strings.Compare(a.Recipient, b.Recipient) })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Recipient == sorted[i-1].Recipient {
			return nil, fmt.Errorf("duplicate recipient %q in mapping table", sorted[i].Recipient)
		}
	}
	return newMappingTable(sorted), nil
}

// newMappingTable indexes already sorted, unique entries.
func newMappingTable(entries []Mapping) *MappingTable {
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		index[e.Recipient] = i
	}
	return &MappingTable{entries: entries, index: index}
}

// Len returns the number of recipients.
func (m *MappingTable) Len() int { return len(m.entries) }

// Lookup returns the mapping of a recipient.
func (m *MappingTable) Lookup(recipient string) (Mapping, bool) {
	i, ok := m.index[recipient]
	if !ok {
		return Mapping{Recipient: recipient}, false
	}
	return m.entries[i], true
}

// Entries iterates over mappings sorted by recipient.
func (m *MappingTable) Entries() iter.Seq[Mapping] { return slices.Values(m.entries) }

// Slice returns a copy of the mappings.
func (m *MappingTable) Slice() []Mapping { return slices.Clone(m.entries) }

// With returns a new table where the given mappings replace the entries with the same recipient.
// Unknown recipients are added.
func (m *MappingTable) With(updates ...Mapping) (*MappingTable, error) {
	entries := slices.Clone(m.entries)
	for _, u := range updates {
		if i, ok := m.index[u.Recipient]; ok {
			entries[i] = u
			continue
		}
		entries = append(entries, u)
	}
	return NewMappingTable(entries...)
}

// MappingOptions tunes UpdateMappingTable.
type MappingOptions struct {
	// KeepStale keeps recipients of the stale table that no longer appear in the ledger.
	KeepStale bool
}

// UpdateMappingTable builds the mapping table for the ledger's recipients.
//
// Without a stale table (nil) every recipient gets a blank mapping. Otherwise
// recipients known to the stale table keep their mapping, and new ones get a
// blank mapping. Recipients that only exist in the stale table are dropped,
// unless opts.KeepStale is set.
func UpdateMappingTable(l *Ledger, stale *MappingTable, opts MappingOptions) *MappingTable {
	recipients := l.Recipients()
	entries := make([]Mapping, 0, len(recipients))
	for _, r := range recipients {
		m := Mapping{Recipient: r}
		if stale != nil {
			m, _ = stale.Lookup(r)
		}
		entries = append(entries, m)
	}
	if stale == nil || !opts.KeepStale {
		return newMappingTable(entries)
	}

	fresh := newMappingTable(entries)
	for _, m := range stale.entries {
		if _, ok := fresh.index[m.Recipient]; !ok {
			entries = append(entries, m)
		}
	}
	slices.SortFunc(entries, func(a, b Mapping) int { return strings.Compare(a.Recipient, b.Recipient) })
	return newMappingTable(entries)
}

// ApplyMappings returns a copy of the ledger whose categorization fields come
// from the mapping table. Transactions of unknown recipients get blank fields.
//
// Order, amounts, balances and overrides are unchanged.
func ApplyMappings(l *Ledger, m *MappingTable) *Ledger {
	txs := slices.Clone(l.transactions)
	for i := range txs {
		mp, _ := m.Lookup(txs[i].Recipient)
		txs[i].RecipientClean = mp.RecipientClean
		txs[i].Label1 = mp.Label1
		txs[i].Label2 = mp.Label2
		txs[i].Label3 = mp.Label3
		txs[i].Occurrence = mp.Occurrence
	}
	return &Ledger{transactions: txs}
}
