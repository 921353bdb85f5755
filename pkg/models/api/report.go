package api

// Report is the list representation of a report on the status API.
type Report struct {
	Handle  string   `json:"handle"`
	Owner   string   `json:"owner"`
	Type    string   `json:"report_type"`
	Status  string   `json:"status"`
	Screens []string `json:"captured_screens"`
	Missing []string `json:"missing_screens,omitempty"`
}

// ReportDetail carries the full extracted payload of one report.
type ReportDetail struct {
	Report
	Data map[string]any `json:"screens_data"`
}
