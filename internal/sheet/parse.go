package sheet

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"innovata/internal/models"
)

const utf8BOM = "\ufeff"

// ParseCSV reads delimited text whose first record is the header. Every
// following non-blank record becomes one Row keyed by the header fields.
func ParseCSV(r io.Reader) ([]models.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return []models.Row{}, nil
	}
	if err != nil {
		return nil, toParseError(err)
	}
	header = normalizeHeader(header)

	rows := []models.Row{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}
		if row := buildRow(header, record); row != nil {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// ParseXLSX reads the first worksheet of a workbook with the same header
// convention as ParseCSV.
func ParseXLSX(r io.Reader) ([]models.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Message: "invalid workbook: " + err.Error()}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []models.Row{}, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	if len(records) == 0 {
		return []models.Row{}, nil
	}

	header := normalizeHeader(records[0])
	rows := []models.Row{}
	for i, record := range records[1:] {
		// Trailing empty cells are trimmed by the reader, so only extra
		// values are a field-count mismatch.
		if extraValues(header, record) {
			return nil, &ParseError{Line: i + 2, Message: "wrong number of fields"}
		}
		if row := buildRow(header, record); row != nil {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func extraValues(header, record []string) bool {
	for _, v := range record[min(len(header), len(record)):] {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// buildRow returns nil for blank records. Cells missing at the end of a record
// resolve to "".
func buildRow(header, record []string) models.Row {
	blank := true
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			blank = false
			break
		}
	}
	if blank {
		return nil
	}

	row := make(models.Row, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		if i < len(record) {
			row[name] = record[i]
		} else {
			row[name] = ""
		}
	}
	return row
}

func toParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Message: pe.Err.Error()}
	}
	return &ParseError{Message: err.Error()}
}
