package reportcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Handle: "abc12345",
		Owner:  "owner-1",
		Type:   domain.ReportMatch,
		Screens: map[domain.ScreenType]any{
			domain.ScreenMatchFacts: map[string]any{"our_score": 2.0},
		},
		Status: domain.StatusInProgress,
	}
}

func TestSaveAndLoad(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	rep := sampleReport()
	require.NoError(t, storage.Save(rep))

	loaded, err := storage.Load(domain.ReportMatch, rep.Handle)
	require.NoError(t, err)
	assert.Equal(t, rep.Handle, loaded.Handle)
	assert.Equal(t, rep.Owner, loaded.Owner)
	assert.Equal(t, rep.Type, loaded.Type)
	assert.Equal(t, rep.Status, loaded.Status)
	assert.Contains(t, loaded.Screens, domain.ScreenMatchFacts)
}

// Saving unchanged state twice must produce byte-identical files.
func TestSaveIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewStorage(dir)
	require.NoError(t, err)

	rep := sampleReport()
	require.NoError(t, storage.Save(rep))
	first, err := os.ReadFile(filepath.Join(dir, "match_report_abc12345.json"))
	require.NoError(t, err)

	require.NoError(t, storage.Save(rep))
	second, err := os.ReadFile(filepath.Join(dir, "match_report_abc12345.json"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListInProgress(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewStorage(dir)
	require.NoError(t, err)

	active := sampleReport()
	require.NoError(t, storage.Save(active))

	done := sampleReport()
	done.Handle = "def67890"
	done.Status = domain.StatusSubmitted
	require.NoError(t, storage.MarkSubmitted(done))

	// Noise that must not block resume.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("{not json"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	reports, err := storage.ListInProgress()
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, active.Handle, reports[0].Handle)
}

func TestMarkSubmitted(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewStorage(dir)
	require.NoError(t, err)

	rep := sampleReport()
	require.NoError(t, storage.Save(rep))

	rep.Status = domain.StatusSubmitted
	require.NoError(t, storage.MarkSubmitted(rep))

	assert.NoFileExists(t, filepath.Join(dir, "match_report_abc12345.json"))
	assert.FileExists(t, filepath.Join(dir, "match_report_abc12345_submitted.json"))

	loaded, err := storage.Load(domain.ReportMatch, rep.Handle)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSubmitted, loaded.Status)
}

// A residual marker from an earlier failed attempt is replaced, never
// duplicated.
func TestMarkSubmittedReplacesStaleMarker(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewStorage(dir)
	require.NoError(t, err)

	stale := filepath.Join(dir, "match_report_abc12345_submitted.json")
	require.NoError(t, os.WriteFile(stale, []byte(`{"handle":"stale"}`), 0o644))

	rep := sampleReport()
	require.NoError(t, storage.Save(rep))
	rep.Status = domain.StatusSubmitted
	require.NoError(t, storage.MarkSubmitted(rep))

	loaded, err := storage.Load(domain.ReportMatch, rep.Handle)
	require.NoError(t, err)
	assert.Equal(t, rep.Handle, loaded.Handle)
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewStorage(dir)
	require.NoError(t, err)

	rep := sampleReport()
	require.NoError(t, storage.Save(rep))
	require.NoError(t, storage.Delete(rep))
	assert.NoFileExists(t, filepath.Join(dir, "match_report_abc12345.json"))

	// Deleting an absent report is not an error.
	assert.NoError(t, storage.Delete(rep))
}
