package helper

import (
	"fmt"
	"io"
	"sort"
	"time"

	"atiempo.app/atiempo/utils"
)

// ScanRow is one historical badge scan from the terminal export. The CSV
// carries EmployeeCode,Timestamp,Via with a header row.
type ScanRow struct {
	EmployeeCode string
	Timestamp    time.Time
	Via          string
}

// ParseScanCSV reads the export and returns the rows ordered by employee
// then time, so replaying them reproduces the original entry/exit pairs.
func ParseScanCSV(r io.Reader) ([]ScanRow, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	var scans []ScanRow
	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: expected at least 2 columns, got %d", i, len(row))
		}

		timestamp, err := utils.ParseISOTime(row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", i, err)
		}
		stamp := timestamp.In(utils.MadridTZ)

		via := "QR"
		if len(row) > 2 && row[2] != "" {
			via = row[2]
		}

		scans = append(scans, ScanRow{
			EmployeeCode: row[0],
			Timestamp:    stamp,
			Via:          via,
		})
	}

	sort.SliceStable(scans, func(a, b int) bool {
		if scans[a].EmployeeCode != scans[b].EmployeeCode {
			return scans[a].EmployeeCode < scans[b].EmployeeCode
		}
		return scans[a].Timestamp.Before(scans[b].Timestamp)
	})

	return scans, nil
}

// Years lists the distinct years touched by the export, so the structures
// can be bootstrapped once per employee before the replay.
func Years(scans []ScanRow) map[string][]int {
	grouped := utils.GroupBy(scans, func(s ScanRow) string { return s.EmployeeCode })

	out := make(map[string][]int, len(grouped))
	for code, rows := range grouped {
		seen := make(map[int]bool)
		for _, s := range rows {
			if !seen[s.Timestamp.Year()] {
				seen[s.Timestamp.Year()] = true
				out[code] = append(out[code], s.Timestamp.Year())
			}
		}
		sort.Ints(out[code])
	}
	return out
}
