package sheets

import (
	"fmt"
	"strconv"

	"github.com/ecell-iiitr/gatepass/internal/core/domain"
)

// Column headers as they appear in the registration sheet. "Accomodation" is
// spelled the way the sheet spells it.
const (
	colID            = "Payment ID"
	colName          = "Name"
	colCollege       = "College"
	colGender        = "Gender"
	colContact       = "Contact No."
	colAccommodation = "Accomodation"
	colPassType      = "Pass type"
	colCheckInStatus = "Check-in Status"
	colCheckedInBy   = "Checked-In By"
	colTimestamp     = "Timestamp"
)

// headerIndex maps a column header to its zero-based position in the sheet.
type headerIndex map[string]int

func indexHeader(row []interface{}) headerIndex {
	h := make(headerIndex, len(row))
	for i, cell := range row {
		if name := cellString(cell); name != "" {
			h[name] = i
		}
	}
	return h
}

// cell returns the named column of row as a string, or "" when the column is
// absent or the row is shorter than the header.
func (h headerIndex) cell(row []interface{}, col string) string {
	idx, ok := h[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return cellString(row[idx])
}

func cellString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// participantFromRow decodes a sheet row. An empty check-in status cell reads
// as "Not Printed", matching what the dashboard has always assumed.
func participantFromRow(h headerIndex, row []interface{}, sheetRow int) domain.Participant {
	status := domain.CheckInStatus(h.cell(row, colCheckInStatus))
	if status == "" {
		status = domain.StatusNotPrinted
	}

	return domain.Participant{
		ID:            h.cell(row, colID),
		Name:          h.cell(row, colName),
		College:       h.cell(row, colCollege),
		Gender:        h.cell(row, colGender),
		Contact:       h.cell(row, colContact),
		Accommodation: h.cell(row, colAccommodation),
		PassType:      h.cell(row, colPassType),
		CheckInStatus: status,
		CheckedInBy:   h.cell(row, colCheckedInBy),
		Timestamp:     h.cell(row, colTimestamp),
		StoreRef:      strconv.Itoa(sheetRow),
	}
}

// columnLetter converts a zero-based column index to its A1 letter, e.g.
// 0 -> A, 25 -> Z, 26 -> AA.
func columnLetter(idx int) string {
	letters := ""
	for idx >= 0 {
		letters = string(rune('A'+idx%26)) + letters
		idx = idx/26 - 1
	}
	return letters
}
