package exporters

import (
	"encoding/json"
	"time"
)

// Report is the payload delivered downstream: one fetched analytics API
// reply plus enough metadata to identify which report produced it.
type Report struct {
	ReportID  string          `json:"report_id"`
	Method    string          `json:"method"`
	QueryURL  string          `json:"query_url"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// NewReport constructs a Report for the given query outcome.
func NewReport(reportID, method, queryURL string, payload []byte) Report {
	return Report{
		ReportID:  reportID,
		Method:    method,
		QueryURL:  queryURL,
		Payload:   payload,
		FetchedAt: time.Now().UTC(),
	}
}
