package domain

// ReportType names a multi-screen capture workflow.
type ReportType string

const (
	ReportMatch    ReportType = "match_report"
	ReportSimMatch ReportType = "sim_match_report"
	ReportPlayer   ReportType = "player_report"
)

// ReportStatus is the report's position in its lifecycle. Aborted reports
// are deleted outright and have no stored status.
type ReportStatus string

const (
	StatusInProgress ReportStatus = "in_progress"
	StatusComplete   ReportStatus = "complete"
	StatusSubmitted  ReportStatus = "submitted"
)

// Report accumulates extracted records across the screens of one workflow
// instance. Screens holds one record per screen type, or a slice of records
// for multi-capture screens. All mutations go through the report manager.
type Report struct {
	Handle  string
	Owner   string
	Type    ReportType
	Screens map[ScreenType]any
	Status  ReportStatus
}

// HasScreen reports whether a record for the given screen type was captured.
func (r *Report) HasScreen(screen ScreenType) bool {
	_, ok := r.Screens[screen]
	return ok
}
