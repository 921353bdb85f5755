package store

// Report is the durable JSON shape of a report. The field set is stable;
// screens_data values stay generic JSON so records written by older builds
// remain loadable.
type Report struct {
	Handle  string         `json:"handle"`
	Owner   string         `json:"owner"`
	Type    string         `json:"report_type"`
	Screens map[string]any `json:"screens_data"`
	Status  string         `json:"status"`
}
