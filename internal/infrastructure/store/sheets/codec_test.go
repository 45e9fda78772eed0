package sheets

import (
	"testing"

	"github.com/ecell-iiitr/gatepass/internal/core/domain"
)

func sampleHeader() headerIndex {
	return indexHeader([]interface{}{
		"Payment ID", "Name", "College", "Gender", "Contact No.",
		"Accomodation", "Pass type", "Check-in Status", "Checked-In By", "Timestamp",
	})
}

func TestParticipantFromRow(t *testing.T) {
	h := sampleHeader()
	row := []interface{}{
		"pay_700", "Asha Rao", "IIIT R", "F", "9876543210",
		"Yes", "Gold", "Printed", "arav", "1/2/2026, 9:00:00 am",
	}

	p := participantFromRow(h, row, 5)
	if p.ID != "pay_700" || p.Name != "Asha Rao" || p.College != "IIIT R" {
		t.Fatalf("unexpected participant: %+v", p)
	}
	if p.Contact != "9876543210" || p.Accommodation != "Yes" || p.PassType != "Gold" {
		t.Fatalf("unexpected participant: %+v", p)
	}
	if p.CheckInStatus != domain.StatusPrinted || p.CheckedInBy != "arav" {
		t.Fatalf("unexpected check-in fields: %+v", p)
	}
	if p.StoreRef != "5" {
		t.Fatalf("expected store ref 5, got %q", p.StoreRef)
	}
}

func TestParticipantFromRow_ShortRowDefaults(t *testing.T) {
	h := sampleHeader()
	// Sheets drops trailing empty cells; a not-yet-printed row stops early.
	row := []interface{}{"pay_701", "Dev"}

	p := participantFromRow(h, row, 2)
	if p.CheckInStatus != domain.StatusNotPrinted {
		t.Fatalf("empty status should read as Not Printed, got %q", p.CheckInStatus)
	}
	if p.CheckedInBy != "" || p.Timestamp != "" {
		t.Fatalf("audit fields should be empty: %+v", p)
	}
}

func TestParticipantFromRow_NumericCell(t *testing.T) {
	h := sampleHeader()
	// Contact numbers sometimes come back as numbers, not strings.
	row := []interface{}{"pay_702", "Meera", "IIT M", "F", 9876543210.0}

	p := participantFromRow(h, row, 3)
	if p.Contact == "" {
		t.Fatalf("numeric cell should stringify, got empty")
	}
}

func TestIndexHeader_IgnoresEmptyCells(t *testing.T) {
	h := indexHeader([]interface{}{"Payment ID", "", "Name"})
	if len(h) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(h))
	}
	if h["Name"] != 2 {
		t.Fatalf("expected Name at index 2, got %d", h["Name"])
	}
}

func TestColumnLetter(t *testing.T) {
	cases := map[int]string{0: "A", 7: "H", 25: "Z", 26: "AA", 51: "AZ", 52: "BA"}
	for idx, want := range cases {
		if got := columnLetter(idx); got != want {
			t.Fatalf("columnLetter(%d) = %q, want %q", idx, got, want)
		}
	}
}
