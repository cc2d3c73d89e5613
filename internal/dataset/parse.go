package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"

	"whd.healthtrends.org/internal/trend"
)

var (
	ErrUnsupportedFormat = errors.New("dataset: unsupported file format")
	ErrMissingColumns    = errors.New("dataset: missing identity columns")
)

// Format is the encoding of a dataset source.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

// DetectFormat picks the format from the extension of a file path or URL path.
func DetectFormat(source string) (Format, error) {
	if i := strings.IndexAny(source, "?#"); i >= 0 {
		source = source[:i]
	}
	switch strings.ToLower(path.Ext(source)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return FormatCSV, fmt.Errorf("%w: %s", ErrUnsupportedFormat, source)
}

// Parse decodes r in the given format.
func Parse(r io.Reader, format Format) (trend.Table, error) {
	switch format {
	case FormatXLSX:
		return ReadXLSX(r)
	default:
		return ParseCSV(r)
	}
}

// ParseCSV reads a header row followed by data rows. Blank lines are skipped and
// rows missing either identity column are dropped.
func ParseCSV(r io.Reader) (trend.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return buildTable(records)
}

// ReadXLSX reads the first sheet of a workbook with the same rules as ParseCSV.
func ReadXLSX(r io.Reader) (trend.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close() // nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return trend.Table{}, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return buildTable(records)
}

func buildTable(records [][]string) (trend.Table, error) {
	if len(records) == 0 {
		return trend.Table{}, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	if !contains(header, trend.IndicatorColumn) || !contains(header, trend.CountryColumn) {
		return nil, fmt.Errorf("%w: need %q and %q", ErrMissingColumns, trend.IndicatorColumn, trend.CountryColumn)
	}

	table := make(trend.Table, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(trend.Row, len(header))
		for i, name := range header {
			if name == "" || i >= len(record) {
				continue
			}
			row[name] = strings.TrimSpace(record[i])
		}
		if row.Indicator() == "" || row.Country() == "" {
			continue
		}
		table = append(table, row)
	}
	return table, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
