package v1

import (
	"encoding/json"
	"fmt"
	"io"
)

type ScanRequestDTO struct {
	EmployeeCode string  `json:"employeeCode"`
	Timestamp    *string `json:"timestamp,omitempty"`
	Via          *string `json:"via,omitempty"`
}

type ScanOutcomeDTO struct {
	Action    string `json:"action"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Year      int    `json:"year"`
	Month     string `json:"month"`
	Day       int    `json:"day"`
}

type MonthSummaryDTO struct {
	EmployeeID     string  `json:"employeeId"`
	Year           int     `json:"year"`
	Month          string  `json:"month"`
	DaysExpected   int     `json:"daysExpected"`
	DaysWorked     int     `json:"daysWorked"`
	DaysAbsent     int     `json:"daysAbsent"`
	LateCount      int     `json:"lateCount"`
	HoursWorked    float64 `json:"hoursWorked"`
	HoursExpected  float64 `json:"hoursExpected"`
	AttendancePct  float64 `json:"attendancePct"`
	PunctualityPct float64 `json:"punctualityPct"`
}

type JustificationRequestDTO struct {
	Explanation string `json:"explanation"`
	Observation string `json:"observation"`
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type AttendanceEndpoint struct {
	transport *Transport
}

func (ep *AttendanceEndpoint) Scan(dto *ScanRequestDTO) (*ScanOutcomeDTO, error) {
	resp, err := ep.transport.Post("/api/atiempo/v1.0/scan", dto, nil)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(resp.Data, &env); err != nil {
		return nil, err
	}
	var outcome ScanOutcomeDTO
	if err := json.Unmarshal(env.Data, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (ep *AttendanceEndpoint) Bootstrap(employeeCode string, year int) error {
	_, err := ep.transport.Post(
		fmt.Sprintf("/api/atiempo/v1.0/employees/%s/attendance/%d/bootstrap", employeeCode, year),
		map[string]string{}, nil)
	return err
}

func (ep *AttendanceEndpoint) Summary(employeeCode string, year int, month string) (*MonthSummaryDTO, error) {
	resp, err := ep.transport.Get(
		fmt.Sprintf("/api/atiempo/v1.0/employees/%s/attendance/%d/%s/summary", employeeCode, year, month), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("summary request failed with status code %d: %s", resp.StatusCode, string(data))
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	var summary MonthSummaryDTO
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (ep *AttendanceEndpoint) Justify(employeeCode string, year int, month string, day int, dto *JustificationRequestDTO) error {
	_, err := ep.transport.Put(
		fmt.Sprintf("/api/atiempo/v1.0/employees/%s/attendance/%d/%s/%d/justification", employeeCode, year, month, day),
		dto, nil)
	return err
}
