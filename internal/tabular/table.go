// Package tabular reads spreadsheet and CSV uploads and maps their
// latitude/longitude columns to coordinates.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/woozymasta/geoparcel/internal/geo"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Table is a header row plus data rows, all cells kept as text.
type Table struct {
	Columns []string
	Rows    [][]string
	// Lines holds the 1-based source line of each row, header included in
	// the count. When nil, rows are assumed to follow the header directly.
	Lines []int
}

// line is the source line of row i.
func (t Table) line(i int) int {
	if i < len(t.Lines) {
		return t.Lines[i]
	}
	return i + 2
}

const utf8BOM = "\ufeff"

// ReadCSV parses comma separated data. The first record is the header.
func ReadCSV(data []byte) (Table, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte(utf8BOM))))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		records [][]string
		lines   []int
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, &geo.MalformedInputError{Reason: "cannot parse CSV", Err: err}
		}

		// blank lines never reach here, so the reader's position is the line number
		line, _ := reader.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}

	return fromRecords(records, lines)
}

// ReadXLSX parses the first worksheet of an Excel workbook.
func ReadXLSX(data []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, &geo.MalformedInputError{Reason: "cannot open spreadsheet", Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to release spreadsheet")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, geo.Malformed("spreadsheet has no worksheets")
	}
	if len(sheets) > 1 {
		log.Debug().
			Str("sheet", sheets[0]).
			Int("sheets", len(sheets)).
			Msg("Reading first worksheet only")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, &geo.MalformedInputError{Reason: "cannot read worksheet " + sheets[0], Err: err}
	}

	lines := make([]int, len(rows))
	for i := range rows {
		lines[i] = i + 1
	}

	return fromRecords(rows, lines)
}

func fromRecords(records [][]string, lines []int) (Table, error) {
	if len(records) == 0 {
		return Table{}, geo.Malformed("table has no header row")
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	t := Table{Columns: header}
	for i, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		t.Rows = append(t.Rows, rec)
		t.Lines = append(t.Lines, lines[i+1])
	}

	return t, nil
}

func isBlank(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
