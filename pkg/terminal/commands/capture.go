package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaaniles/fcore-ocr/pkg/adapters"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/report"
	"github.com/jaaniles/fcore-ocr/pkg/services/vision"
)

type CaptureCmd struct {
	deps Dependencies
}

// NewCaptureCmd classifies one screenshot, extracts its record and applies
// it to the matching in-progress report, creating one when the screen opens
// a new workflow.
func NewCaptureCmd(deps Dependencies) *cobra.Command {
	cc := &CaptureCmd{deps: deps}
	cmd := &cobra.Command{
		Use:   "capture <screenshot>",
		Short: "Process a screenshot into a report",
		Args:  cobra.ExactArgs(1),
		RunE:  cc.run,
	}
	return cmd
}

func (cc *CaptureCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cc.deps)
	defer cancel()

	path := args[0]

	img, err := vision.LoadImage(path)
	if err != nil {
		return fmt.Errorf("failed to load screenshot: %w", err)
	}

	engine, err := cc.deps.Manager.Engine(ctx)
	if err != nil {
		return fmt.Errorf("recognition engine unavailable: %w", err)
	}
	dets, err := engine.Recognize(ctx, img)
	if err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}

	screen := cc.deps.Classifier.ClassifyDetections(ctx, img, dets)
	if screen == domain.ScreenUnknown {
		return fmt.Errorf("could not identify the screen type of %s", path)
	}

	rep, err := cc.resolveReport(ctx, screen)
	if err != nil {
		return err
	}

	extractor, ok := cc.deps.Extractors.Lookup(screen)
	if !ok {
		return fmt.Errorf("no extractor for screen %s", screen)
	}
	record, err := extractor.Extract(ctx, img, dets)
	if err != nil {
		return fmt.Errorf("extraction failed for %s: %w", screen, err)
	}

	if err := cc.deps.Reports.RecordScreen(ctx, rep, screen, record); err != nil {
		return err
	}

	missing, _ := cc.deps.Reports.MissingScreens(rep)
	return cc.deps.Reporter.Handle(adapters.MapDomainReportToAPI(rep, missing))
}

// resolveReport picks the in-progress report this screen belongs to, or
// starts a new one when the screen opens a workflow.
func (cc *CaptureCmd) resolveReport(ctx context.Context, screen domain.ScreenType) (*domain.Report, error) {
	inProgress, err := cc.deps.Reports.Resume(ctx)
	if err != nil {
		return nil, err
	}
	for _, rep := range inProgress {
		if report.Specs[rep.Type].Accepts(screen) {
			return rep, nil
		}
	}

	reportType, ok := report.TypeForInitialScreen(screen)
	if !ok {
		return nil, fmt.Errorf("screen %s does not open a report and no report expects it", screen)
	}
	return cc.deps.Reports.Create(ctx, reportType, cc.deps.Owner)
}
