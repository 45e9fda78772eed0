// Package export renders the check-in history as an Excel workbook for the
// dashboard's download button.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ecell-iiitr/gatepass/internal/core/domain"
)

const historySheet = "Check-in History"

var historyHeader = []interface{}{"Payment ID", "Name", "College", "Checked-In By", "Timestamp"}

// WriteHistory writes an xlsx workbook containing one row per checked-in
// participant, in the order the entries were supplied.
func WriteHistory(w io.Writer, entries []domain.HistoryEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(historySheet, "A1", &historyHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, e := range entries {
		row := []interface{}{e.ID, e.Name, e.College, e.CheckedInBy, e.Timestamp}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(historySheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
