package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ecell-iiitr/gatepass/internal/core/domain"
)

func TestWriteHistory(t *testing.T) {
	entries := []domain.HistoryEntry{
		{ID: "pay_2", Name: "Dev", College: "NIT T", CheckedInBy: "arav", Timestamp: "1/2/2026, 9:00:00 am"},
		{ID: "pay_3", Name: "Meera", College: "IIT M", CheckedInBy: "priya", Timestamp: "1/2/2026, 9:05:00 am"},
	}

	var buf bytes.Buffer
	if err := WriteHistory(&buf, entries); err != nil {
		t.Fatalf("write history: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(historySheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Payment ID" || rows[0][3] != "Checked-In By" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "pay_2" || rows[2][3] != "priya" {
		t.Fatalf("unexpected data rows: %v", rows[1:])
	}
}

func TestWriteHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHistory(&buf, nil); err != nil {
		t.Fatalf("write history: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(historySheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
