package pipeline

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"catalogo/internal/util"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Cell is one raw value. Numeric is set when the spreadsheet stored a number
// rather than text; CSV cells are always text.
type Cell struct {
	Value   string
	Numeric bool
}

type Row struct {
	LineNo int
	cells  map[string]Cell
}

// Get returns the cell under column. ok is false when the sheet has no such
// column or the row is shorter than the header.
func (r Row) Get(column string) (Cell, bool) {
	c, ok := r.cells[column]
	return c, ok
}

type Table struct {
	Columns []string
	Rows    []Row
}

// ReadTable loads a tabular file, picking the reader by extension.
func ReadTable(path string) (Table, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCSV(blob)
	case ".xlsx":
		return parseXLSX(blob)
	default:
		return Table{}, fmt.Errorf("unsupported input type: %s", filepath.Ext(path))
	}
}

func parseCSV(content []byte) (Table, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return Table{}, fmt.Errorf("invalid utf-8 at byte %d", invalidUTF8Offset(content))
	}
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, errors.New("no columns to parse from file")
	}
	if err != nil {
		return Table{}, fmt.Errorf("read csv header: %w", err)
	}

	table := Table{Columns: normalizeColumns(header)}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read csv: %w", err)
		}
		line, _ := r.FieldPos(0)
		if len(record) > len(table.Columns) {
			return Table{}, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(table.Columns), len(record))
		}

		cells := make([]Cell, len(record))
		for i, v := range record {
			cells[i] = Cell{Value: v}
		}
		if row, ok := buildRow(table.Columns, cells, line); ok {
			table.Rows = append(table.Rows, row)
		}
	}
	return table, nil
}

func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

func parseXLSX(content []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, errors.New("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Table{}, fmt.Errorf("sheet %s is empty", sheet)
	}

	table := Table{Columns: normalizeColumns(rows[0])}
	for i, raw := range rows[1:] {
		rowNumber := i + 2
		if len(raw) > len(table.Columns) {
			return Table{}, fmt.Errorf("row %d: expected %d fields, saw %d", rowNumber, len(table.Columns), len(raw))
		}

		cells := make([]Cell, len(raw))
		for col, v := range raw {
			cells[col] = Cell{Value: v}
			if strings.TrimSpace(v) == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(col+1, rowNumber)
			if err != nil {
				return Table{}, err
			}
			kind, err := f.GetCellType(sheet, name)
			if err != nil {
				return Table{}, fmt.Errorf("cell %s: %w", name, err)
			}
			cells[col].Numeric = kind == excelize.CellTypeNumber || kind == excelize.CellTypeUnset
		}
		if row, ok := buildRow(table.Columns, cells, rowNumber); ok {
			table.Rows = append(table.Rows, row)
		}
	}
	return table, nil
}

// buildRow keys cells by column. Rows where every cell is blank are dropped.
func buildRow(columns []string, cells []Cell, lineNo int) (Row, bool) {
	row := Row{LineNo: lineNo, cells: make(map[string]Cell, len(cells))}
	blank := true
	for i, c := range cells {
		if strings.TrimSpace(c.Value) != "" {
			blank = false
		}
		name := columns[i]
		if name == "" {
			continue
		}
		if _, dup := row.cells[name]; dup {
			continue
		}
		row.cells[name] = c
	}
	return row, !blank
}

func normalizeColumns(header []string) []string {
	out := make([]string, 0, len(header))
	for _, h := range header {
		out = append(out, util.NormalizeColumn(h))
	}
	return out
}
