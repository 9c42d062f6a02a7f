package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads comma separated rows. Quoted fields may span lines.
func ParseCSV(r io.Reader) (*Batch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return parseRows(rows), nil
}
