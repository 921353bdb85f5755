package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

var (
	// ErrUnexpectedScreen means the captured screen does not belong to the
	// report's workflow. The report is left untouched.
	ErrUnexpectedScreen = errors.New("screen does not belong to this report type")

	// ErrDuplicateScreen means a non-multi-capture screen was captured again.
	// The first capture wins; extraction is not re-run.
	ErrDuplicateScreen = errors.New("screen already captured")

	// ErrAlreadySubmitted means submit was called on a submitted report. The
	// submission collaborator is not invoked again.
	ErrAlreadySubmitted = errors.New("report already submitted")
)

// Store is the durable report cache. Writes are whole-file replacements and
// idempotent: saving an unchanged report twice produces byte-identical
// durable state.
type Store interface {
	Save(report *domain.Report) error
	Load(reportType domain.ReportType, handle string) (*domain.Report, error)
	ListInProgress() ([]*domain.Report, error)
	MarkSubmitted(report *domain.Report) error
	Delete(report *domain.Report) error
}

// Submitter ships a completed report to the remote backend. One per report
// type.
type Submitter interface {
	Submit(ctx context.Context, report *domain.Report) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, report *domain.Report) error

func (f SubmitterFunc) Submit(ctx context.Context, report *domain.Report) error {
	return f(ctx, report)
}

// Notifier is the on-screen status surface. Implementations must tolerate
// being called from any goroutine.
type Notifier interface {
	Notify(text string, duration time.Duration)
}

// Manager owns the report lifecycle: creation on an initial screen, screen
// acceptance, completion tracking, submission and abort. All mutations to a
// given report are sequential; the manager assumes a single logical owner
// per report.
type Manager struct {
	store      Store
	submitters map[domain.ReportType]Submitter
	notifier   Notifier
}

func NewManager(store Store, submitters map[domain.ReportType]Submitter, notifier Notifier) *Manager {
	return &Manager{store: store, submitters: submitters, notifier: notifier}
}

// Create starts a new report of the given type and persists it immediately.
func (m *Manager) Create(ctx context.Context, reportType domain.ReportType, owner string) (*domain.Report, error) {
	spec, ok := Specs[reportType]
	if !ok {
		return nil, fmt.Errorf("unknown report type %q", reportType)
	}

	report := &domain.Report{
		Handle:  uuid.NewString()[:8],
		Owner:   owner,
		Type:    reportType,
		Screens: map[domain.ScreenType]any{},
		Status:  domain.StatusInProgress,
	}
	if err := m.store.Save(report); err != nil {
		return nil, fmt.Errorf("failed to persist new report: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("handle", report.Handle).
		Str("type", string(reportType)).
		Msg("report created")
	m.notifyExpectedScreens(spec)

	return report, nil
}

// RecordScreen applies one extracted record to the report. Unexpected and
// duplicate screens are rejected without mutation; every accepted record is
// persisted before returning.
func (m *Manager) RecordScreen(ctx context.Context, report *domain.Report, screen domain.ScreenType, record any) error {
	spec := Specs[report.Type]

	if !spec.Accepts(screen) {
		m.notify(fmt.Sprintf("Unexpected screen %s for %s", screen, report.Type), 5*time.Second)
		return ErrUnexpectedScreen
	}

	if spec.IsMultiCapture(screen) {
		list, _ := report.Screens[screen].([]any)
		report.Screens[screen] = append(list, record)
	} else {
		if report.HasScreen(screen) {
			m.notify(fmt.Sprintf("Screen %s already captured", screen), 5*time.Second)
			return ErrDuplicateScreen
		}
		report.Screens[screen] = record
	}

	if err := m.store.Save(report); err != nil {
		return fmt.Errorf("failed to persist report: %w", err)
	}

	m.notifyMissingScreens(report, spec)
	if m.IsComplete(report) {
		m.notify("Report ready to submit", 5*time.Second)
	}
	return nil
}

// IsComplete reports whether every required screen is present. Pure
// function of current state, independent of capture order.
func (m *Manager) IsComplete(report *domain.Report) bool {
	for _, screen := range Specs[report.Type].Required {
		if !report.HasScreen(screen) {
			return false
		}
	}
	return true
}

// MissingScreens returns the required screens still absent and the optional
// screens still available.
func (m *Manager) MissingScreens(report *domain.Report) (required, optional []domain.ScreenType) {
	spec := Specs[report.Type]
	for _, screen := range spec.Required {
		if !report.HasScreen(screen) {
			required = append(required, screen)
		}
	}
	for _, screen := range spec.Optional {
		if !report.HasScreen(screen) {
			optional = append(optional, screen)
		}
	}
	return required, optional
}

// Submit marks the report complete, invokes the type's submission
// collaborator and renames the durable record to its submitted marker.
// Submitting an already-submitted report is a warned no-op. A collaborator
// failure leaves the report complete and un-renamed so Submit can be
// retried; the completion transition is not rolled back.
func (m *Manager) Submit(ctx context.Context, report *domain.Report) error {
	logger := zerolog.Ctx(ctx)

	if report.Status == domain.StatusSubmitted {
		logger.Warn().Str("handle", report.Handle).Msg("report already submitted")
		return ErrAlreadySubmitted
	}

	report.Status = domain.StatusComplete
	if err := m.store.Save(report); err != nil {
		return fmt.Errorf("failed to persist report before submit: %w", err)
	}

	submitter, ok := m.submitters[report.Type]
	if !ok {
		return fmt.Errorf("no submitter registered for report type %q", report.Type)
	}
	if err := submitter.Submit(ctx, report); err != nil {
		m.notify(fmt.Sprintf("Submission of %s failed", report.Handle), 5*time.Second)
		return fmt.Errorf("submission failed: %w", err)
	}

	report.Status = domain.StatusSubmitted
	if err := m.store.MarkSubmitted(report); err != nil {
		return fmt.Errorf("failed to mark report submitted: %w", err)
	}

	logger.Info().Str("handle", report.Handle).Msg("report submitted")
	m.notify(fmt.Sprintf("Report %s submitted", report.Handle), 5*time.Second)
	return nil
}

// Abort deletes the report's durable record outright.
func (m *Manager) Abort(ctx context.Context, report *domain.Report) error {
	if err := m.store.Delete(report); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("handle", report.Handle).Msg("report aborted")
	m.notify(fmt.Sprintf("Report %s aborted", report.Handle), 5*time.Second)
	return nil
}

// Resume returns every in-progress report found in the durable cache.
func (m *Manager) Resume(ctx context.Context) ([]*domain.Report, error) {
	reports, err := m.store.ListInProgress()
	if err != nil {
		return nil, fmt.Errorf("failed to list in-progress reports: %w", err)
	}
	zerolog.Ctx(ctx).Info().Int("count", len(reports)).Msg("resumed in-progress reports")
	return reports, nil
}

func (m *Manager) notify(text string, duration time.Duration) {
	if m.notifier != nil {
		m.notifier.Notify(text, duration)
	}
}

func (m *Manager) notifyExpectedScreens(spec TypeSpec) {
	m.notify(fmt.Sprintf(
		"Expected screens. Required: %s. Optional: %s",
		joinScreens(spec.Required), joinScreens(spec.Optional),
	), 5*time.Second)
}

func (m *Manager) notifyMissingScreens(report *domain.Report, spec TypeSpec) {
	required, optional := m.MissingScreens(report)
	text := "All required screens captured."
	if len(required) > 0 {
		text = "Required screens missing: " + joinScreens(required)
	}
	if len(optional) > 0 {
		text += " Optional screens available: " + joinScreens(optional)
	}
	m.notify(text, 5*time.Second)
}

func joinScreens(screens []domain.ScreenType) string {
	if len(screens) == 0 {
		return "none"
	}
	parts := make([]string, len(screens))
	for i, s := range screens {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
