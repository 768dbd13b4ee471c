package sqlframe

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// xlsxSheetName is the sheet SaveFile writes to
const xlsxSheetName = "Sheet1"

// readXLSX reads the first sheet of a workbook. Leading empty rows are
// skipped and the first non-empty row is the header.
func readXLSX(reader io.Reader) (*Table, error) {
	xlsxFile, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, errors.New("no sheets found in XLSX file")
	}

	rows, err := xlsxFile.GetRows(sheetNames[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetNames[0], err)
	}

	for len(rows) > 0 && len(rows[0]) == 0 {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmptyData
	}

	// excelize trims trailing empty cells, so pad every record to the header width
	header := rows[0]
	records := make([][]string, len(rows)-1)
	for i, row := range rows[1:] {
		record := make([]string, len(header))
		copy(record, row)
		records[i] = record
	}
	return tableFromStrings(header, records)
}

// writeXLSX writes t to a single-sheet workbook. nil cells are left empty.
func writeXLSX(writer io.Writer, t *Table) error {
	xlsxFile := excelize.NewFile()
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	for col, name := range t.Header() {
		if err := setXLSXCell(xlsxFile, col, 0, name); err != nil {
			return err
		}
	}

	for r, row := range t.Rows() {
		for col, v := range row {
			if v == nil {
				continue
			}
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			if err := setXLSXCell(xlsxFile, col, r+1, v); err != nil {
				return err
			}
		}
	}

	if err := xlsxFile.Write(writer); err != nil {
		return fmt.Errorf("failed to write XLSX file: %w", err)
	}
	return nil
}

// setXLSXCell sets the cell at zero-based column col and row row.
func setXLSXCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	return f.SetCellValue(xlsxSheetName, cell, value)
}
