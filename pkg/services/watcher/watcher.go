// Package watcher processes a backlog of squad screenshots into a single
// player report. Screenshots are classified by a narrow header crop,
// extracted concurrently and grouped per player by the name read off the
// player card.
package watcher

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jaaniles/fcore-ocr/pkg/config"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/classifier"
	"github.com/jaaniles/fcore-ocr/pkg/services/extract"
	"github.com/jaaniles/fcore-ocr/pkg/services/recognition"
	"github.com/jaaniles/fcore-ocr/pkg/services/report"
	"github.com/jaaniles/fcore-ocr/pkg/services/vision"
)

const archiveDirName = "archive"

// Header keywords that identify each squad screen. All of a set must appear
// in the header crop's recognized tokens.
var squadHeaderKeywords = []struct {
	screen   domain.ScreenType
	required []string
}{
	{domain.ScreenSquadFinancial, []string{"value", "wage", "contract"}},
	{domain.ScreenSquadAttributes, []string{"ovr", "form", "plan"}},
	{domain.ScreenSquadStats, []string{"goals", "assists", "clean"}},
}

// nameCrop locates the player's name on the card, relative to the attribute
// card region.
var nameCrop = config.CropRect{X: 50, Y: 60, Width: 650, Height: 100}

// capture is one screenshot that passed the squad-screen filter.
type capture struct {
	Path   string
	Screen domain.ScreenType
}

// Watcher sweeps the screenshot directory, extracts every valid squad
// screenshot and submits the result as one player report.
type Watcher struct {
	manager  *recognition.Manager
	registry extract.Registry
	reports  *report.Manager
	cfg      config.Watcher
	card     config.CropRect
}

func New(manager *recognition.Manager, registry extract.Registry, reports *report.Manager, cfg config.Watcher, extractCfg config.Extract) *Watcher {
	return &Watcher{
		manager:  manager,
		registry: registry,
		reports:  reports,
		cfg:      cfg,
		card:     extractCfg.AttributeCard,
	}
}

// Process runs one backlog sweep: filter the directory to squad screenshots,
// extract them concurrently, group the records per player and submit a
// single player report. A failure in one screenshot is logged and skipped;
// it never aborts the others. Invalid screenshots are deleted, processed
// ones are archived after a successful submit.
func (w *Watcher) Process(ctx context.Context, owner string) error {
	logger := zerolog.Ctx(ctx)

	paths, err := w.listScreenshots()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		logger.Info().Str("dir", w.cfg.Dir).Msg("no screenshots to process")
		return nil
	}

	valid, err := w.filter(ctx, paths)
	if err != nil {
		return err
	}
	w.deleteInvalid(ctx, paths, valid)

	if len(valid) == 0 {
		logger.Info().Msg("no squad screenshots found")
		return nil
	}
	logger.Info().Int("count", len(valid)).Msg("processing squad screenshots")

	rep, err := w.reports.Create(ctx, domain.ReportPlayer, owner)
	if err != nil {
		return err
	}

	roster := newRoster()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency())
	for _, shot := range valid {
		shot := shot
		g.Go(func() error {
			if err := w.processOne(gctx, shot, roster); err != nil {
				logger.Warn().Err(err).Str("path", shot.Path).Msg("skipping screenshot")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	members := roster.members()
	if len(members) == 0 {
		if err := w.reports.Abort(ctx, rep); err != nil {
			return err
		}
		return fmt.Errorf("no players could be extracted from %d screenshots", len(valid))
	}

	// A player's merged entry is recorded under every squad screen that
	// contributed to it, so completion tracking sees exactly the screens
	// that were captured.
	for _, member := range members {
		for _, screen := range memberScreens(member) {
			if err := w.reports.RecordScreen(ctx, rep, screen, member); err != nil {
				return fmt.Errorf("failed to record %s for %s: %w", screen, member.Name, err)
			}
		}
	}

	if err := w.reports.Submit(ctx, rep); err != nil {
		return err
	}
	w.archiveProcessed(ctx, valid)
	return nil
}

func (w *Watcher) listScreenshots() ([]string, error) {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read screenshot dir %s: %w", w.cfg.Dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(w.cfg.Dir, entry.Name()))
	}
	return paths, nil
}

// filter classifies every screenshot by its header crop and keeps the squad
// screens. Unreadable screenshots are dropped, not fatal.
func (w *Watcher) filter(ctx context.Context, paths []string) ([]capture, error) {
	logger := zerolog.Ctx(ctx)

	results := make([]domain.ScreenType, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency())
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			screen, err := w.detectSquadScreen(gctx, path)
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("could not classify screenshot")
				screen = domain.ScreenUnknown
			}
			results[i] = screen
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var valid []capture
	for i, screen := range results {
		if screen != domain.ScreenUnknown {
			valid = append(valid, capture{Path: paths[i], Screen: screen})
		}
	}
	return valid, nil
}

// detectSquadScreen identifies the squad screen type from the table header
// strip alone. Much cheaper than a full-frame pass over every backlog file.
func (w *Watcher) detectSquadScreen(ctx context.Context, path string) (domain.ScreenType, error) {
	img, err := vision.LoadImage(path)
	if err != nil {
		return domain.ScreenUnknown, err
	}

	engine, err := w.manager.Engine(ctx)
	if err != nil {
		return domain.ScreenUnknown, err
	}

	header := vision.CropAround(img, w.cfg.HeaderCrop.X, w.cfg.HeaderCrop.Y, w.cfg.HeaderCrop.Width, w.cfg.HeaderCrop.Height)
	dets, err := engine.Recognize(ctx, header)
	if err != nil {
		return domain.ScreenUnknown, err
	}

	tokens := classifier.Tokenize(dets)
	for _, candidate := range squadHeaderKeywords {
		if containsAll(tokens, candidate.required) {
			return candidate.screen, nil
		}
	}
	return domain.ScreenUnknown, nil
}

// processOne extracts a single screenshot and assigns the record to its
// player's roster entry.
func (w *Watcher) processOne(ctx context.Context, shot capture, roster *roster) error {
	img, err := vision.LoadImage(shot.Path)
	if err != nil {
		return fmt.Errorf("failed to load screenshot: %w", err)
	}

	extractor, ok := w.registry.Lookup(shot.Screen)
	if !ok {
		return fmt.Errorf("no extractor for screen %s", shot.Screen)
	}

	engine, err := w.manager.Engine(ctx)
	if err != nil {
		return err
	}
	dets, err := engine.Recognize(ctx, img)
	if err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}

	record, err := extractor.Extract(ctx, img, dets)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	name, err := w.detectPlayer(ctx, engine, img)
	if err != nil {
		return err
	}

	roster.assign(name, shot.Screen, record)
	return nil
}

// detectPlayer reads the player's name off the card shown on every squad
// screen. The captain marker rendered next to the name is stripped.
func (w *Watcher) detectPlayer(ctx context.Context, engine recognition.Engine, img image.Image) (string, error) {
	card := vision.CropAround(img, w.card.X, w.card.Y, w.card.Width, w.card.Height)
	region := vision.CropAround(card, nameCrop.X, nameCrop.Y, nameCrop.Width, nameCrop.Height)

	dets, err := engine.Recognize(ctx, region)
	if err != nil {
		return "", fmt.Errorf("name recognition failed: %w", err)
	}

	name, ok := extract.ValidName(joinTexts(dets))
	if !ok {
		return "", fmt.Errorf("could not detect player name")
	}
	_, name = extract.Captaincy(name, nil, "", domain.Detection{})
	return name, nil
}

func (w *Watcher) deleteInvalid(ctx context.Context, all []string, valid []capture) {
	logger := zerolog.Ctx(ctx)

	keep := make(map[string]bool, len(valid))
	for _, shot := range valid {
		keep[shot.Path] = true
	}

	for _, path := range all {
		if keep[path] {
			continue
		}
		if err := os.Remove(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("failed to delete invalid screenshot")
			continue
		}
		logger.Info().Str("path", path).Msg("deleted invalid screenshot")
	}
}

// archiveProcessed moves submitted screenshots into the archive
// subdirectory so the next sweep starts clean.
func (w *Watcher) archiveProcessed(ctx context.Context, valid []capture) {
	logger := zerolog.Ctx(ctx)

	archiveDir := filepath.Join(w.cfg.Dir, archiveDirName)
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		logger.Warn().Err(err).Msg("failed to create archive dir")
		return
	}

	for _, shot := range valid {
		target := filepath.Join(archiveDir, filepath.Base(shot.Path))
		if err := os.Rename(shot.Path, target); err != nil {
			logger.Warn().Err(err).Str("path", shot.Path).Msg("failed to archive screenshot")
		}
	}
}

func (w *Watcher) concurrency() int {
	if w.cfg.Concurrency < 1 {
		return 1
	}
	return w.cfg.Concurrency
}

// memberScreens lists the squad screens a member's entry was built from.
func memberScreens(m *domain.SquadMember) []domain.ScreenType {
	var screens []domain.ScreenType
	if m.Stats != nil {
		screens = append(screens, domain.ScreenSquadStats)
	}
	if m.Financial != nil {
		screens = append(screens, domain.ScreenSquadFinancial)
	}
	if m.Attributes != nil {
		screens = append(screens, domain.ScreenSquadAttributes)
	}
	return screens
}

func containsAll(tokens map[string]bool, required []string) bool {
	for _, word := range required {
		if !tokens[word] {
			return false
		}
	}
	return true
}
