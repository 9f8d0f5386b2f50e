package plan

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// The report writers serialize one run into the two logical measurement
// tables: the measurement sheet carries one row per room, the abstract sheet
// carries the three aggregate totals followed by every work item. The row
// shapes are the contract; the container is either a two-sheet XLSX workbook
// or a pair of CSV files.

// Workbook sheet names.
const (
	MeasurementSheetName = "measurement_sheet"
	AbstractSheetName    = "abstract_sheet"
)

// measurementHeader matches the per-room row shape.
var measurementHeader = []string{
	"room_id", "area_m2", "carpet_area_m2", "perimeter_m", "long_wall_m", "short_wall_m",
}

// abstractRow is one description/quantity pair of the abstract sheet.
type abstractRow struct {
	Description string
	Quantity    float64
}

// abstractRows builds the abstract sheet body: three totals, then the full
// work-item catalog. Items carrying a cubic-meter quantity contribute that
// value.
func abstractRows(result AggregateResult, materials MaterialsResult) []abstractRow {
	rows := []abstractRow{
		{"Built-up Area (m2)", result.Totals.BuiltUpArea},
		{"Carpet Area (m2)", result.Totals.CarpetArea},
		{"Perimeter (m)", result.Totals.Perimeter},
	}
	for _, item := range materials.WorkItems {
		rows = append(rows, abstractRow{item.Item, item.Value()})
	}
	return rows
}

// WriteMeasurementSheet writes one CSV row per room.
func WriteMeasurementSheet(w io.Writer, result AggregateResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(measurementHeader); err != nil {
		return fmt.Errorf("writing measurement header: %w", err)
	}

	for _, room := range result.Rooms {
		record := []string{
			strconv.Itoa(room.ID),
			fnum(room.Area),
			fnum(room.CarpetArea),
			fnum(room.Perimeter),
			fnum(room.LongWallLength),
			fnum(room.ShortWallLength),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing room %d: %w", room.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteAbstractSheet writes the totals followed by the work-item catalog as CSV.
func WriteAbstractSheet(w io.Writer, result AggregateResult, materials MaterialsResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"description", "quantity"}); err != nil {
		return fmt.Errorf("writing abstract header: %w", err)
	}

	for _, row := range abstractRows(result, materials) {
		if err := cw.Write([]string{row.Description, fnum(row.Quantity)}); err != nil {
			return fmt.Errorf("writing abstract row %q: %w", row.Description, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteWorkbook writes both sheets into a single XLSX workbook, mirroring the
// CSV row shapes with native numeric cells.
func WriteWorkbook(w io.Writer, result AggregateResult, materials MaterialsResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MeasurementSheetName); err != nil {
		return fmt.Errorf("naming measurement sheet: %w", err)
	}
	if _, err := f.NewSheet(AbstractSheetName); err != nil {
		return fmt.Errorf("creating abstract sheet: %w", err)
	}

	header := make([]interface{}, len(measurementHeader))
	for i, col := range measurementHeader {
		header[i] = col
	}
	if err := f.SetSheetRow(MeasurementSheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing measurement header: %w", err)
	}
	for i, room := range result.Rooms {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing room %d: %w", room.ID, err)
		}
		row := []interface{}{
			room.ID, room.Area, room.CarpetArea,
			room.Perimeter, room.LongWallLength, room.ShortWallLength,
		}
		if err := f.SetSheetRow(MeasurementSheetName, cell, &row); err != nil {
			return fmt.Errorf("writing room %d: %w", room.ID, err)
		}
	}

	if err := f.SetSheetRow(AbstractSheetName, "A1", &[]interface{}{"description", "quantity"}); err != nil {
		return fmt.Errorf("writing abstract header: %w", err)
	}
	for i, row := range abstractRows(result, materials) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing abstract row %q: %w", row.Description, err)
		}
		record := []interface{}{row.Description, row.Quantity}
		if err := f.SetSheetRow(AbstractSheetName, cell, &record); err != nil {
			return fmt.Errorf("writing abstract row %q: %w", row.Description, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// MeasurementSheetBytes renders the measurement sheet to an in-memory buffer.
func MeasurementSheetBytes(result AggregateResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteMeasurementSheet(&buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AbstractSheetBytes renders the abstract sheet to an in-memory buffer.
func AbstractSheetBytes(result AggregateResult, materials MaterialsResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteAbstractSheet(&buf, result, materials); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WorkbookBytes renders the XLSX workbook to an in-memory buffer.
func WorkbookBytes(result AggregateResult, materials MaterialsResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, result, materials); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fnum formats a quantity with the shortest exact decimal representation so
// repeated runs emit byte-identical sheets.
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
