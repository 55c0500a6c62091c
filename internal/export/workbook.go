package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"lexbrief/internal/domain"
)

// Sheet names, in workbook order.
const (
	SheetOverview        = "Overview"
	SheetKeyPoints       = "Key Points"
	SheetCriticalClauses = "Critical Clauses"
	SheetRecommendations = "Recommendations"
)

// Workbook renders the analysis as an XLSX file.
func Workbook(a *domain.Analysis, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// NewFile starts with "Sheet1".
	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return nil, fmt.Errorf("naming overview sheet: %w", err)
	}
	for _, name := range []string{SheetKeyPoints, SheetCriticalClauses, SheetRecommendations} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("creating sheet %q: %w", name, err)
		}
	}

	overview := [][]interface{}{
		{"Field", "Value"},
		{"Document", orDefault(a.Title, untitledDocument)},
		{"Type", orDefault(a.DocumentType, defaultDocType)},
		{"Analyzed", FormatTimestamp(a.UploadedAt, now)},
		{"Full Summary", a.FullSummary},
	}
	if a.Validation != nil {
		overview = append(overview,
			[]interface{}{"Legal Document", yesNo(a.Validation.IsLegalDocument)},
			[]interface{}{"Confidence", a.Validation.ConfidenceScore},
			[]interface{}{"Validation Note", a.Validation.Message},
		)
	}
	overview = append(overview, []interface{}{"Disclaimer", Disclaimer})
	if err := writeRows(f, SheetOverview, overview); err != nil {
		return nil, err
	}

	if err := writeRows(f, SheetKeyPoints, listRows("Key Point", a.KeyPoints)); err != nil {
		return nil, err
	}

	clauses := [][]interface{}{{"Kind", "Title", "Content"}}
	for _, c := range a.CriticalClauses {
		clauses = append(clauses, []interface{}{string(c.Kind), c.Title, c.Content})
	}
	if err := writeRows(f, SheetCriticalClauses, clauses); err != nil {
		return nil, err
	}

	if err := writeRows(f, SheetRecommendations, listRows("Recommendation", a.Recommendations)); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func listRows(header string, items []string) [][]interface{} {
	rows := [][]interface{}{{"#", header}}
	for i, item := range items {
		rows = append(rows, []interface{}{i + 1, item})
	}
	return rows
}

// writeRows writes strings with SetCellStr so text from the analysis service
// is never stored as a formula.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if str, ok := value.(string); ok {
				err = f.SetCellStr(sheet, cell, str)
			} else {
				err = f.SetCellValue(sheet, cell, value)
			}
			if err != nil {
				return fmt.Errorf("writing %s cell %s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
