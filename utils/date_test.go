package utils

import (
	"testing"
	"time"
)

func TestMadridTZObservesDST(t *testing.T) {
	// 07:30 UTC on a July day is 09:30 wall clock in Madrid (CEST, UTC+2).
	summer := time.Date(2025, time.July, 14, 7, 30, 0, 0, time.UTC)
	if got := summer.In(MadridTZ).Format("2006-01-02 15:04:05"); got != "2025-07-14 09:30:00" {
		t.Errorf("summer instant formatted as %q, want %q", got, "2025-07-14 09:30:00")
	}

	// The same UTC offset in January is CET (UTC+1).
	winter := time.Date(2025, time.January, 14, 8, 30, 0, 0, time.UTC)
	if got := winter.In(MadridTZ).Format("2006-01-02 15:04:05"); got != "2025-01-14 09:30:00" {
		t.Errorf("winter instant formatted as %q, want %q", got, "2025-01-14 09:30:00")
	}
}

func TestParseISOTime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-07-14T09:30:00+02:00", "2025-07-14T07:30:00Z"},
		{"2025-07-14 09:30:00", "2025-07-14T09:30:00Z"},
		{"2025-07-14", "2025-07-14T00:00:00Z"},
	}
	for _, c := range cases {
		got, err := ParseISOTime(c.in)
		if err != nil {
			t.Fatalf("ParseISOTime(%q) returned error: %v", c.in, err)
		}
		if got.UTC().Format(time.RFC3339) != c.want {
			t.Errorf("ParseISOTime(%q) = %v, want %s", c.in, got.UTC(), c.want)
		}
	}

	if _, err := ParseISOTime(""); err == nil {
		t.Error("ParseISOTime(\"\") should fail")
	}
}
