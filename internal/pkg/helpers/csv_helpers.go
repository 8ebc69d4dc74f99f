package helpers

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

// CSVTable is a parsed CSV file with a header row and case-normalized lookup.
type CSVTable struct {
	Headers []string
	Rows    [][]string

	index map[string]int
}

// ReadCSV parses the reader into a CSVTable. Header names are matched
// case-insensitively and with surrounding whitespace stripped.
func ReadCSV(r io.Reader) (*CSVTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.ErrInvalidCSV
	}
	if len(records) == 0 {
		return nil, apperrors.ErrInvalidCSV
	}

	headers := records[0]
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[NormalizeHeader(h)] = i
	}

	return &CSVTable{
		Headers: headers,
		Rows:    records[1:],
		index:   index,
	}, nil
}

// NormalizeHeader lowercases a header name and strips whitespace.
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// HasColumn reports whether the table contains the named column.
func (t *CSVTable) HasColumn(name string) bool {
	_, ok := t.index[NormalizeHeader(name)]
	return ok
}

// Field returns the trimmed value of the named column in the given row,
// or empty string when the column is absent or the row is short.
func (t *CSVTable) Field(row []string, name string) string {
	i, ok := t.index[NormalizeHeader(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// IntField parses the named column as an integer, returning def on failure.
func (t *CSVTable) IntField(row []string, name string, def int) int {
	v := t.Field(row, name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// FloatField parses the named column as a float, returning def on failure.
func (t *CSVTable) FloatField(row []string, name string, def float64) float64 {
	v := t.Field(row, name)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// WriteCSV renders rows (header first) as CSV text.
func WriteCSV(headers []string, rows [][]string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(headers); err != nil {
		return "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
