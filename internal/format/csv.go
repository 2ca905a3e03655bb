package format

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Tabular is implemented by list-shaped results that can render as CSV.
type Tabular interface {
	CSVHeader() []string
	CSVRows() [][]string
}

// WriteCSV writes a Tabular value as RFC 4180 CSV with a header row.
func WriteCSV(w io.Writer, v any) error {
	tab, ok := v.(Tabular)
	if !ok {
		return fmt.Errorf("csv output not supported for %T", v)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(tab.CSVHeader()); err != nil {
		return err
	}
	for _, row := range tab.CSVRows() {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
