package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/classifier"
	"github.com/jaaniles/fcore-ocr/pkg/services/extract"
	"github.com/jaaniles/fcore-ocr/pkg/services/recognition"
	"github.com/jaaniles/fcore-ocr/pkg/services/report"
	"github.com/jaaniles/fcore-ocr/pkg/services/watcher"
	"github.com/jaaniles/fcore-ocr/pkg/terminal/export"
)

const commandTimeout = 120 * time.Second

// Dependencies carries the collaborators shared by every command.
type Dependencies struct {
	Logger     zerolog.Logger
	Manager    *recognition.Manager
	Classifier *classifier.Classifier
	Extractors extract.Registry
	Reports    *report.Manager
	Watcher    *watcher.Watcher
	Reporter   *export.Reporter

	// Owner identifies the user the reports belong to.
	Owner string
}

func commandContext(d Dependencies) (context.Context, context.CancelFunc) {
	ctx := d.Logger.WithContext(context.Background())
	return context.WithTimeout(ctx, commandTimeout)
}

// findByHandle resolves an in-progress report by its handle.
func findByHandle(ctx context.Context, reports *report.Manager, handle string) (*domain.Report, error) {
	inProgress, err := reports.Resume(ctx)
	if err != nil {
		return nil, err
	}
	for _, rep := range inProgress {
		if rep.Handle == handle {
			return rep, nil
		}
	}
	return nil, fmt.Errorf("no in-progress report with handle %q", handle)
}
