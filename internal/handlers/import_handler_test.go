package handlers

import "testing"

func TestReadCSV_SkipsHeaderAndToleratesShortLines(t *testing.T) {
	raw := []byte("name,phone,email\nMaria,11999990000,maria@example.com\nPedro\n")

	records, err := readCSV(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(records))
	}
	if col(records[0], 0) != "Maria" || col(records[0], 1) != "11999990000" {
		t.Fatalf("unexpected first row: %v", records[0])
	}
	if col(records[1], 1) != "" {
		t.Fatalf("missing column must read as empty, got %q", col(records[1], 1))
	}
}

func TestReadCSV_EmptyFile(t *testing.T) {
	records, err := readCSV([]byte(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no rows, got %d", len(records))
	}
}

func TestParseFloat_AcceptsDecimalComma(t *testing.T) {
	if got := parseFloat("35,50"); got != 35.5 {
		t.Fatalf("want 35.5, got %v", got)
	}
	if got := parseFloat("40.00"); got != 40 {
		t.Fatalf("want 40, got %v", got)
	}
	if got := parseFloat("abc"); got != 0 {
		t.Fatalf("garbage must parse as 0, got %v", got)
	}
}
