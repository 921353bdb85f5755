package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jaaniles/fcore-ocr/pkg/models/api"
)

// Reporter writes report summaries to the console as indented JSON.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) Handle(report api.Report) error {
	return r.encode(report)
}

func (r *Reporter) HandleDetail(report api.ReportDetail) error {
	return r.encode(report)
}

func (r *Reporter) HandleList(reports []api.Report) error {
	return r.encode(reports)
}

func (r *Reporter) encode(v any) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report output: %w", err)
	}
	return nil
}
