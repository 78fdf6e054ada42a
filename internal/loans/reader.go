package loans

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// ReadTable reads the first sheet of a spreadsheet (or a CSV file) into a
// Table, choosing the reader by file extension.
func ReadTable(path string) (*Table, error) {
	var (
		t   *Table
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		t, err = readXLSX(path)
	case ".xls":
		t, err = readXLS(path)
	case ".csv":
		t, err = readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	t.Rows = dropBlankRows(t.Rows)
	return t, nil
}

// readXLSX reads raw cell values so that date cells arrive as Excel serials
// regardless of their display format.
func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no sheets", ErrInvalidSource, path)
	}

	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, fmt.Errorf("%w: read workbook properties: %v", ErrInvalidSource, err)
	}
	system := DateSystem1900
	if props.Date1904 != nil && *props.Date1904 {
		system = DateSystem1904
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrInvalidSource, sheets[0], err)
	}
	t, err := splitHeader(sheets[0], rows, path)
	if err != nil {
		return nil, err
	}
	t.DateSystem = system
	return t, nil
}

// xlsFormulaCell is what extrame/xls returns for a formula cell in place of
// its cached result.
const xlsFormulaCell = "FormulaCol"

func readXLS(path string) (t *Table, err error) {
	// extrame/xls panics on some malformed record streams.
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidSource, path, r)
		}
	}()

	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrInvalidSource, path, err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: %s has no workbook stream", ErrInvalidSource, path)
	}

	system := DateSystem1900
	if xlsDate1904(wb) {
		system = DateSystem1904
	}
	useGeneralFormats(wb)

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: %s has no sheets", ErrInvalidSource, path)
	}

	var rows [][]string
	if sheet.MaxRow > 0 {
		rows = wb.ReadAllCells(int(sheet.MaxRow) + 1)
	} else if row := sheet.Row(0); row != nil {
		cells := make([]string, row.LastCol()+1)
		for j := row.FirstCol(); j <= row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = [][]string{cells}
	}

	formulaColumns := make(map[int]bool)
	for _, row := range rows {
		for j, cell := range row {
			if cell == xlsFormulaCell {
				formulaColumns[j] = true
				row[j] = ""
			}
		}
	}

	t, err = splitHeader(sheet.Name, rows, path)
	if err != nil {
		return nil, err
	}
	t.DateSystem = system
	t.FormulaColumns = formulaColumns
	return t, nil
}

// useGeneralFormats resets every cell format to General. extrame/xls renders
// date-formatted numbers as "2006.01" and custom-formatted numbers as RFC 3339
// timestamps; with General formats every numeric cell reads as its stored
// value.
func useGeneralFormats(wb *xls.WorkBook) {
	for i := range wb.Xfs {
		wb.Xfs[i] = &xls.Xf8{}
	}
}

// xlsDate1904 reports whether the workbook uses the 1904 date system. The
// library keeps the DATEMODE record private, so serial 100 is rendered with a
// built-in date format and the epoch is read back from the year.
func xlsDate1904(wb *xls.WorkBook) bool {
	saved := wb.Xfs
	defer func() { wb.Xfs = saved }()

	wb.Xfs = append(wb.Xfs[:0:0], &xls.Xf8{Format: 14})
	day := xls.XfRk{Index: 0, Rk: xls.RK(100<<2 | 2)}
	return strings.HasPrefix(day.String(wb), "1904")
}

func readCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidSource, path, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return splitHeader("", rows, path)
}

func splitHeader(sheet string, rows [][]string, path string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidSource, path)
	}
	return &Table{Sheet: sheet, Header: rows[0], Rows: rows[1:]}, nil
}

func dropBlankRows(rows [][]string) [][]string {
	kept := rows[:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				kept = append(kept, row)
				break
			}
		}
	}
	return kept
}
