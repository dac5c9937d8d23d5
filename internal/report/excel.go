package report

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/noders-team/xptools/internal/analysis"
)

const (
	maxColumnWidth      = 120
	columnPadding       = 2
	fileLocationsColumn = "D"
	fileLocationsWidth  = 100
	defaultExcelSheet   = "Sheet1"
)

// EncodeExcel writes the report as an .xlsx workbook with one sheet per table.
func EncodeExcel(w io.Writer, r *analysis.Report) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Err(err).Msg("failed to close workbook")
		}
	}()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return fmt.Errorf("failed to create wrap style: %w", err)
	}

	for i, t := range tables(r) {
		if i == 0 {
			if err := f.SetSheetName(defaultExcelSheet, t.Name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("failed to create sheet '%s': %w", t.Name, err)
		}

		log.Debug().Msgf("writing sheet: %s", t.Name)
		if err := writeSheet(f, t, header); err != nil {
			return fmt.Errorf("failed to write sheet '%s': %w", t.Name, err)
		}

		if t.Name == SheetFileMapping {
			if err := f.SetColWidth(t.Name, fileLocationsColumn, fileLocationsColumn, fileLocationsWidth); err != nil {
				return err
			}
			if err := f.SetColStyle(t.Name, fileLocationsColumn, wrap); err != nil {
				return err
			}
			headerCell := fileLocationsColumn + "1"
			if err := f.SetCellStyle(t.Name, headerCell, headerCell, header); err != nil {
				return err
			}
		}
	}
	f.SetActiveSheet(0)

	return f.Write(w)
}

func writeSheet(f *excelize.File, t table, headerStyle int) error {
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(t.Name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &row); err != nil {
			return err
		}
	}

	for col, width := range columnWidths(t) {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Name, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

// columnWidths fits every column to its longest value or header plus
// padding, capped at maxColumnWidth.
func columnWidths(t table) []float64 {
	widths := make([]float64, len(t.Header))
	for col, h := range t.Header {
		longest := utf8.RuneCountInString(h)
		for _, row := range t.Rows {
			if col < len(row) {
				longest = max(longest, utf8.RuneCountInString(fmt.Sprint(row[col])))
			}
		}
		widths[col] = float64(min(longest+columnPadding, maxColumnWidth))
	}
	return widths
}
