package datasource

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// CSVLoader turns a headed CSV file into {"rows": [{header: cell, ...}]}.
// The first data row's cells are also exposed at the top level, so a
// single-record file can be addressed as ##header.
type CSVLoader struct{}

func (l *CSVLoader) Load(r io.Reader) ([]byte, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	out := map[string]any{"rows": []map[string]string{}}
	if len(records) == 0 {
		return json.Marshal(out)
	}

	// First row is headers.
	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		for j, h := range headers {
			if j < len(rec) {
				row[h] = rec[j]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	out["rows"] = rows

	if len(rows) > 0 {
		for h, v := range rows[0] {
			if h == "rows" {
				continue
			}
			out[h] = v
		}
	}
	return json.Marshal(out)
}
