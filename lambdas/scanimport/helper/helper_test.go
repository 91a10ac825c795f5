package helper

import (
	"strings"
	"testing"
)

func TestParseScanCSV(t *testing.T) {
	csvData := `EmployeeCode,Timestamp,Via
100002,2025-03-14 17:02:00,QR
100001,2025-03-14 08:58:00,
100002,2025-03-14 08:45:00,MANUAL
`
	scans, err := ParseScanCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scans) != 3 {
		t.Fatalf("expected 3 scans, got %d", len(scans))
	}

	// sorted by employee then time
	if scans[0].EmployeeCode != "100001" {
		t.Errorf("unexpected first scan: %+v", scans[0])
	}
	if scans[1].EmployeeCode != "100002" || scans[1].Timestamp.Hour() != 8 {
		t.Errorf("unexpected second scan: %+v", scans[1])
	}
	if scans[1].Via != "MANUAL" {
		t.Errorf("expected MANUAL via, got %q", scans[1].Via)
	}
	if scans[0].Via != "QR" {
		t.Errorf("empty via should default to QR, got %q", scans[0].Via)
	}
}

func TestParseScanCSVBadTimestamp(t *testing.T) {
	csvData := `EmployeeCode,Timestamp,Via
100001,not-a-time,QR
`
	if _, err := ParseScanCSV(strings.NewReader(csvData)); err == nil {
		t.Fatal("expected error for bad timestamp")
	}
}

func TestYears(t *testing.T) {
	csvData := `EmployeeCode,Timestamp,Via
100001,2024-12-31 23:50:00,QR
100001,2025-01-01 08:00:00,QR
100002,2025-03-14 08:45:00,QR
`
	scans, err := ParseScanCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	years := Years(scans)
	if got := years["100001"]; len(got) != 2 || got[0] != 2024 || got[1] != 2025 {
		t.Errorf("unexpected years for 100001: %v", got)
	}
	if got := years["100002"]; len(got) != 1 || got[0] != 2025 {
		t.Errorf("unexpected years for 100002: %v", got)
	}
}
