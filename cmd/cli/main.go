package main

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/config"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/classifier"
	"github.com/jaaniles/fcore-ocr/pkg/services/extract"
	"github.com/jaaniles/fcore-ocr/pkg/services/recognition"
	"github.com/jaaniles/fcore-ocr/pkg/services/report"
	"github.com/jaaniles/fcore-ocr/pkg/services/watcher"
	"github.com/jaaniles/fcore-ocr/pkg/store/client"
	"github.com/jaaniles/fcore-ocr/pkg/store/reportcache"
	"github.com/jaaniles/fcore-ocr/pkg/terminal"
	"github.com/jaaniles/fcore-ocr/pkg/terminal/commands"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("FCORE_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	timeout := time.Duration(cfg.Recognition.TimeoutSec) * time.Second
	primary := recognition.NewHTTPEngine(cfg.Recognition.PrimaryURL, timeout)
	manager := recognition.NewManager(func(ctx context.Context) (recognition.Engine, error) {
		return primary, nil
	})

	chain := recognition.Chain{Primary: primary}
	if cfg.Recognition.SecondaryURL != "" {
		chain.Secondary = recognition.NewHTTPEngine(cfg.Recognition.SecondaryURL, timeout)
	}

	registry, err := extract.DefaultRegistry(extract.Deps{
		Manager: manager,
		Chain:   chain,
		Cfg:     cfg.Extract,
		OurTeam: os.Getenv("FCORE_TEAM"),
	})
	if err != nil {
		return fmt.Errorf("failed to build extractor registry: %w", err)
	}

	store, err := reportcache.NewStorage(cfg.Cache.Dir)
	if err != nil {
		return fmt.Errorf("failed to open report cache: %w", err)
	}

	reports := report.NewManager(store, submitters(cfg), report.LogNotifier{Logger: logger})

	cli := terminal.NewCLI(terminal.Options{
		Dependencies: commands.Dependencies{
			Logger:     logger,
			Manager:    manager,
			Classifier: classifier.New(manager, cfg.Classifier),
			Extractors: registry,
			Reports:    reports,
			Watcher:    watcher.New(manager, registry, reports, cfg.Watcher, cfg.Extract),
			Owner:      owner(),
		},
		Output: os.Stdout,
	})
	return cli.Execute()
}

// submitters wires the backend client when one is configured; without a
// backend, submission succeeds locally and only logs.
func submitters(cfg *config.Config) map[domain.ReportType]report.Submitter {
	result := make(map[domain.ReportType]report.Submitter, len(report.Specs))

	if cfg.Backend.URL != "" {
		backend := client.NewBackend(cfg.Backend)
		for reportType := range report.Specs {
			result[reportType] = backend
		}
		return result
	}

	local := report.SubmitterFunc(func(ctx context.Context, rep *domain.Report) error {
		zerolog.Ctx(ctx).Info().
			Str("handle", rep.Handle).
			Msg("no backend configured, report kept locally")
		return nil
	})
	for reportType := range report.Specs {
		result[reportType] = local
	}
	return result
}

func owner() string {
	if v := os.Getenv("FCORE_OWNER"); v != "" {
		return v
	}
	usr, err := user.Current()
	if err != nil {
		return "local"
	}
	return usr.Username
}
