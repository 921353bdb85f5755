package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

type fakeStore struct {
	saved     map[string]*domain.Report
	submitted map[string]bool
	deleted   []string
	saveCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		saved:     map[string]*domain.Report{},
		submitted: map[string]bool{},
	}
}

func (s *fakeStore) Save(report *domain.Report) error {
	s.saveCalls++
	s.saved[report.Handle] = report
	return nil
}

func (s *fakeStore) Load(reportType domain.ReportType, handle string) (*domain.Report, error) {
	rep, ok := s.saved[handle]
	if !ok {
		return nil, errors.New("not found")
	}
	return rep, nil
}

func (s *fakeStore) ListInProgress() ([]*domain.Report, error) {
	var reports []*domain.Report
	for _, rep := range s.saved {
		if !s.submitted[rep.Handle] {
			reports = append(reports, rep)
		}
	}
	return reports, nil
}

func (s *fakeStore) MarkSubmitted(report *domain.Report) error {
	s.submitted[report.Handle] = true
	return nil
}

func (s *fakeStore) Delete(report *domain.Report) error {
	delete(s.saved, report.Handle)
	s.deleted = append(s.deleted, report.Handle)
	return nil
}

type fakeSubmitter struct {
	calls int
	err   error
}

func (f *fakeSubmitter) Submit(ctx context.Context, report *domain.Report) error {
	f.calls++
	return f.err
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(text string, _ time.Duration) {
	f.messages = append(f.messages, text)
}

type fixture struct {
	store     *fakeStore
	submitter *fakeSubmitter
	notifier  *fakeNotifier
	manager   *Manager
}

func newFixture() *fixture {
	store := newFakeStore()
	submitter := &fakeSubmitter{}
	notifier := &fakeNotifier{}
	submitters := map[domain.ReportType]Submitter{
		domain.ReportMatch:    submitter,
		domain.ReportSimMatch: submitter,
		domain.ReportPlayer:   submitter,
	}
	return &fixture{
		store:     store,
		submitter: submitter,
		notifier:  notifier,
		manager:   NewManager(store, submitters, notifier),
	}
}

func TestManagerCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	rep, err := f.manager.Create(ctx, domain.ReportMatch, "owner-1")
	require.NoError(t, err)

	assert.Len(t, rep.Handle, 8)
	assert.Equal(t, "owner-1", rep.Owner)
	assert.Equal(t, domain.StatusInProgress, rep.Status)
	assert.Contains(t, f.store.saved, rep.Handle)

	_, err = f.manager.Create(ctx, "bogus_report", "owner-1")
	assert.Error(t, err)
}

func TestRecordScreenRejectsUnexpected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	rep, err := f.manager.Create(ctx, domain.ReportMatch, "owner-1")
	require.NoError(t, err)
	savesBefore := f.store.saveCalls

	err = f.manager.RecordScreen(ctx, rep, domain.ScreenSquadStats, struct{}{})
	assert.ErrorIs(t, err, ErrUnexpectedScreen)
	assert.Empty(t, rep.Screens)
	assert.Equal(t, savesBefore, f.store.saveCalls, "rejected screen must not be persisted")
}

func TestRecordScreenRejectsDuplicates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	rep, err := f.manager.Create(ctx, domain.ReportMatch, "owner-1")
	require.NoError(t, err)

	first := domain.MatchFacts{Ours: domain.TeamStats{Name: "Betis", Score: 2}}
	require.NoError(t, f.manager.RecordScreen(ctx, rep, domain.ScreenMatchFacts, first))

	err = f.manager.RecordScreen(ctx, rep, domain.ScreenMatchFacts, domain.MatchFacts{})
	assert.ErrorIs(t, err, ErrDuplicateScreen)
	assert.Equal(t, first, rep.Screens[domain.ScreenMatchFacts], "first capture wins")
}

// Completion is a pure function of the screens present, so capture order
// must not matter.
func TestCompletionIsOrderIndependent(t *testing.T) {
	orders := [][]domain.ScreenType{
		{domain.ScreenMatchFacts, domain.ScreenPlayerPerformance},
		{domain.ScreenPlayerPerformance, domain.ScreenMatchFacts},
	}

	for _, order := range orders {
		f := newFixture()
		ctx := context.Background()

		rep, err := f.manager.Create(ctx, domain.ReportMatch, "owner-1")
		require.NoError(t, err)
		assert.False(t, f.manager.IsComplete(rep))

		for _, screen := range order {
			require.NoError(t, f.manager.RecordScreen(ctx, rep, screen, struct{}{}))
		}
		assert.True(t, f.manager.IsComplete(rep))
		assert.Contains(t, f.notifier.messages, "Report ready to submit")
	}
}

func TestOptionalScreensDoNotGateCompletion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	rep, err := f.manager.Create(ctx, domain.ReportMatch, "owner-1")
	require.NoError(t, err)

	require.NoError(t, f.manager.RecordScreen(ctx, rep, domain.ScreenMatchFacts, struct{}{}))
	require.NoError(t, f.manager.RecordScreen(ctx, rep, domain.ScreenPlayerPerformance, struct{}{}))
	assert.True(t, f.manager.IsComplete(rep))

	required, optional := f.manager.MissingScreens(rep)
	assert.Empty(t, required)
	assert.ElementsMatch(t, []domain.ScreenType{
		domain.ScreenPlayerPerformanceExtended,
		domain.ScreenMatchFactsExtended,
	}, optional)
}

func TestMultiCaptureAppends(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	rep, err := f.manager.Create(ctx, domain.ReportPlayer, "owner-1")
	require.NoError(t, err)

	require.NoError(t, f.manager.RecordScreen(ctx, rep, domain.ScreenSquadFinancial, "first"))
	require.NoError(t, f.manager.RecordScreen(ctx, rep, domain.ScreenSquadFinancial, "second"))

	records, ok := rep.Screens[domain.ScreenSquadFinancial].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"first", "second"}, records)
}

func TestSubmit(t *testing.T) {
	t.Run("success marks submitted", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		rep, err := f.manager.Create(ctx, domain.ReportMatch, "owner-1")
		require.NoError(t, err)

		require.NoError(t, f.manager.Submit(ctx, rep))
		assert.Equal(t, domain.StatusSubmitted, rep.Status)
		assert.True(t, f.store.submitted[rep.Handle])
		assert.Equal(t, 1, f.submitter.calls)
	})

	t.Run("second submit is a no-op", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		rep, err := f.manager.Create(ctx, domain.ReportMatch, "owner-1")
		require.NoError(t, err)
		require.NoError(t, f.manager.Submit(ctx, rep))

		err = f.manager.Submit(ctx, rep)
		assert.ErrorIs(t, err, ErrAlreadySubmitted)
		assert.Equal(t, 1, f.submitter.calls, "collaborator must not run twice")
	})

	t.Run("collaborator failure keeps the report retryable", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		rep, err := f.manager.Create(ctx, domain.ReportMatch, "owner-1")
		require.NoError(t, err)

		f.submitter.err = errors.New("backend down")
		err = f.manager.Submit(ctx, rep)
		require.Error(t, err)
		assert.Equal(t, domain.StatusComplete, rep.Status)
		assert.False(t, f.store.submitted[rep.Handle], "file must keep its in-progress name")

		// Retry re-invokes the collaborator and completes the transition.
		f.submitter.err = nil
		require.NoError(t, f.manager.Submit(ctx, rep))
		assert.Equal(t, 2, f.submitter.calls)
		assert.Equal(t, domain.StatusSubmitted, rep.Status)
		assert.True(t, f.store.submitted[rep.Handle])
	})

	t.Run("no submitter registered", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		manager := NewManager(f.store, nil, f.notifier)
		rep, err := manager.Create(ctx, domain.ReportMatch, "owner-1")
		require.NoError(t, err)

		assert.Error(t, manager.Submit(ctx, rep))
	})
}

func TestAbortDeletes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	rep, err := f.manager.Create(ctx, domain.ReportMatch, "owner-1")
	require.NoError(t, err)

	require.NoError(t, f.manager.Abort(ctx, rep))
	assert.Equal(t, []string{rep.Handle}, f.store.deleted)
	assert.NotContains(t, f.store.saved, rep.Handle)
}

func TestResumeListsInProgress(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.manager.Create(ctx, domain.ReportMatch, "owner-1")
	require.NoError(t, err)
	second, err := f.manager.Create(ctx, domain.ReportSimMatch, "owner-1")
	require.NoError(t, err)
	require.NoError(t, f.manager.Submit(ctx, second))

	reports, err := f.manager.Resume(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, first.Handle, reports[0].Handle)
}
