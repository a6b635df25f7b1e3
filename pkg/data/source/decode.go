package source

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/vischart/pkg/data"
)

// DecodeJSON reads rows from a JSON array of objects. An object with a
// "values" array, the inline form of a chart's data, is accepted too.
func DecodeJSON(r io.Reader) ([]data.Row, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var rows []data.Row
	if err := json.Unmarshal(raw, &rows); err == nil {
		return normalizeRows(rows), nil
	}

	var wrapped struct {
		Values []data.Row `json:"values"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode json rows: %w", err)
	}
	return normalizeRows(wrapped.Values), nil
}

// DecodeCSV reads rows from CSV with a header line. Cells that parse as
// numbers become float64; empty cells leave the field absent.
func DecodeCSV(r io.Reader) ([]data.Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	var rows []data.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		row := make(data.Row, len(header))
		for i, cell := range rec {
			if i >= len(header) || cell == "" {
				continue
			}
			row[header[i]] = csvValue(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func csvValue(cell string) any {
	if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return cell
}

func normalizeRows(rows []data.Row) []data.Row {
	for _, r := range rows {
		data.NormalizeRow(r)
	}
	return rows
}
