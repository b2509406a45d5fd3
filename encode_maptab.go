package dkbl

import (
	"fmt"
	"io"
	"strconv"
)

// MappingColumns are the columns of a mapping table file, in order.
var MappingColumns = []string{"recipient", "recipient_clean", "label1", "label2", "label3", "occurrence"}

// DecodeMappingTable decodes a mapping table file. Blank values decode as empty strings and zero.
func DecodeMappingTable(r io.Reader) (*MappingTable, error) {
	t, err := readTable(r, "recipient")
	if err != nil {
		return nil, err
	}
	entries := make([]Mapping, 0, len(t.rows))
	for t.next() {
		m := Mapping{
			Recipient:      t.str("recipient"),
			RecipientClean: t.str("recipient_clean"),
			Label1:         t.str("label1"),
			Label2:         t.str("label2"),
			Label3:         t.str("label3"),
		}
		if m.Occurrence, err = t.intOf("occurrence"); err != nil {
			return nil, err
		}
		entries = append(entries, m)
	}
	m, err := NewMappingTable(entries...)
	if err != nil {
		return nil, fmt.Errorf("invalid mapping table: %w", err)
	}
	return m, nil
}

// EncodeMappingTable writes the mapping table sorted by recipient.
func EncodeMappingTable(w io.Writer, m *MappingTable) error {
	i := 0
	return writeTable(w, MappingColumns, func() ([]string, bool) {
		if i >= len(m.entries) {
			return nil, false
		}
		e := m.entries[i]
		i++
		return []string{e.Recipient, e.RecipientClean, e.Label1, e.Label2, e.Label3, strconv.Itoa(e.Occurrence)}, true
	})
}
