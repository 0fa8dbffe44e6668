package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"tentamenbank-api/models"
)

const mappingSheet = "Mapping"

var mappingHeader = []interface{}{"Study", "Original Folder Name", "Display Name", "Course Catalogue ID"}

// SpreadsheetService exports and imports the admin mapping table as XLSX
type SpreadsheetService struct{}

func NewSpreadsheetService() *SpreadsheetService {
	return &SpreadsheetService{}
}

// ExportMapping writes one row per candidate folder
func (s *SpreadsheetService) ExportMapping(w io.Writer, rows []models.MappingRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", mappingSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(mappingSheet, "A1", &mappingHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.Study, row.Subject, row.Name, row.ID}
		if err := f.SetSheetRow(mappingSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

// ImportMapping reads rows back into submitted form values keyed by folder name.
// The first sheet is used and its first row is treated as the header.
func (s *SpreadsheetService) ImportMapping(r io.Reader) (map[string]models.MappingEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	submitted := make(map[string]models.MappingEntry)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if cellValue(row, 1) == "" {
			continue
		}
		subject := row[1]
		submitted[subject] = models.MappingEntry{
			Name: cellValue(row, 2),
			ID:   cellValue(row, 3),
		}
	}
	return submitted, nil
}

// GetRows trims trailing empty cells, so short rows are normal
func cellValue(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
