package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/obelearn/portal/internal/content"
)

const workbookSheet = "Assessments"

// Workbook renders a faculty member's content records as an XLSX listing,
// one row per record, newest first as given.
func Workbook(records []content.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", workbookSheet)

	header := []string{"ID", "Type", "Course", "CLOs", "Questions", "Created"}
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, &ExportError{Format: "xlsx", Err: err}
		}
		if err := f.SetCellValue(workbookSheet, cell, h); err != nil {
			return nil, &ExportError{Format: "xlsx", Err: err}
		}
	}

	for row, rec := range records {
		values := []any{
			rec.ID,
			rec.Type,
			rec.CourseID,
			strings.Join(rec.CLOIDs, ", "),
			len(rec.Questions),
			rec.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, &ExportError{Format: "xlsx", Err: err}
			}
			if err := f.SetCellValue(workbookSheet, cell, v); err != nil {
				return nil, &ExportError{Format: "xlsx", Err: err}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, &ExportError{Format: "xlsx", Err: fmt.Errorf("write workbook: %w", err)}
	}
	return buf.Bytes(), nil
}
