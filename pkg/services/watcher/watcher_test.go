package watcher

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaaniles/fcore-ocr/pkg/config"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/extract"
	"github.com/jaaniles/fcore-ocr/pkg/services/recognition"
	"github.com/jaaniles/fcore-ocr/pkg/services/report"
	"github.com/jaaniles/fcore-ocr/pkg/store/reportcache"
)

// queueEngine replays scripted recognition results in call order.
type queueEngine struct {
	mu      sync.Mutex
	results [][]domain.Detection
}

func (e *queueEngine) Recognize(ctx context.Context, img image.Image) ([]domain.Detection, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.results) == 0 {
		return nil, nil
	}
	next := e.results[0]
	e.results = e.results[1:]
	return next, nil
}

type statsExtractor struct{}

func (statsExtractor) Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error) {
	return &domain.SquadStats{Goals: 7}, nil
}

type recordingSubmitter struct {
	submitted []*domain.Report
}

func (s *recordingSubmitter) Submit(ctx context.Context, rep *domain.Report) error {
	s.submitted = append(s.submitted, rep)
	return nil
}

func writeScreenshot(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 32, 32))))
	return path
}

func words(texts ...string) []domain.Detection {
	dets := make([]domain.Detection, len(texts))
	for i, text := range texts {
		dets[i] = domain.Detection{Quad: domain.QuadAt(float64(i*100), 0, 80, 30), Text: text, Confidence: 0.95}
	}
	return dets
}

func TestProcess(t *testing.T) {
	dir := t.TempDir()
	statsShot := writeScreenshot(t, dir, "a_stats.png")
	junkShot := writeScreenshot(t, dir, "b_junk.png")

	// Call order with concurrency 1: header of each screenshot in directory
	// order, then full frame and name card of the surviving one.
	engine := &queueEngine{results: [][]domain.Detection{
		words("Goals", "Assists", "Clean", "Sheets"),
		words("Main", "Menu"),
		words("Goals", "7"),
		words("Isco"),
	}}
	manager := recognition.NewManager(func(ctx context.Context) (recognition.Engine, error) {
		return engine, nil
	})

	registry := extract.NewRegistry()
	require.NoError(t, registry.Register(domain.ScreenSquadStats, statsExtractor{}))

	storage, err := reportcache.NewStorage(t.TempDir())
	require.NoError(t, err)
	submitter := &recordingSubmitter{}
	reports := report.NewManager(storage, map[domain.ReportType]report.Submitter{
		domain.ReportPlayer: submitter,
	}, nil)

	w := New(manager, registry, reports, config.Watcher{
		Dir:         dir,
		Concurrency: 1,
		HeaderCrop:  config.CropRect{X: 0, Y: 0, Width: 32, Height: 16},
	}, config.Extract{AttributeCard: config.CropRect{X: 0, Y: 0, Width: 32, Height: 32}})

	require.NoError(t, w.Process(context.Background(), "owner-1"))

	require.Len(t, submitter.submitted, 1)
	rep := submitter.submitted[0]
	assert.Equal(t, domain.ReportPlayer, rep.Type)
	assert.Equal(t, "owner-1", rep.Owner)

	members, ok := rep.Screens[domain.ScreenSquadStats].([]any)
	require.True(t, ok)
	require.Len(t, members, 1)
	member, ok := members[0].(*domain.SquadMember)
	require.True(t, ok)
	assert.Equal(t, "Isco", member.Name)
	require.NotNil(t, member.Stats)
	assert.Equal(t, 7, member.Stats.Goals)

	assert.NoFileExists(t, junkShot, "non-squad screenshot must be deleted")
	assert.NoFileExists(t, statsShot)
	assert.FileExists(t, filepath.Join(dir, archiveDirName, "a_stats.png"))
}

func TestProcessEmptyDirIsNoop(t *testing.T) {
	manager := recognition.NewManager(func(ctx context.Context) (recognition.Engine, error) {
		t.Error("engine must not be initialized for an empty directory")
		return &queueEngine{}, nil
	})
	storage, err := reportcache.NewStorage(t.TempDir())
	require.NoError(t, err)
	reports := report.NewManager(storage, nil, nil)

	w := New(manager, extract.NewRegistry(), reports, config.Watcher{Dir: t.TempDir(), Concurrency: 1}, config.Extract{})
	assert.NoError(t, w.Process(context.Background(), "owner-1"))
}

func TestMemberScreens(t *testing.T) {
	member := &domain.SquadMember{
		Name:  "Isco",
		Stats: &domain.SquadStats{},
	}
	assert.Equal(t, []domain.ScreenType{domain.ScreenSquadStats}, memberScreens(member))

	member.Financial = &domain.SquadFinancial{}
	member.Attributes = &domain.AttributeProfile{}
	assert.ElementsMatch(t, []domain.ScreenType{
		domain.ScreenSquadStats,
		domain.ScreenSquadFinancial,
		domain.ScreenSquadAttributes,
	}, memberScreens(member))
}

func TestContainsAll(t *testing.T) {
	tokens := map[string]bool{"goals": true, "assists": true, "clean": true}

	assert.True(t, containsAll(tokens, []string{"goals", "clean"}))
	assert.False(t, containsAll(tokens, []string{"goals", "wage"}))
	assert.True(t, containsAll(tokens, nil))
}
