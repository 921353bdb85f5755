package reportcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaaniles/fcore-ocr/pkg/adapters"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/models/store"
)

const submittedSuffix = "_submitted"

// Storage is the file-based report cache: one JSON file per report at
// <dir>/<type>_<handle>.json, renamed to <type>_<handle>_submitted.json
// once the report is submitted. Writes are synchronous whole-file
// replacements; saving the same state twice produces byte-identical files.
type Storage struct {
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir %s: %w", dir, err)
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) path(reportType domain.ReportType, handle string, submitted bool) string {
	suffix := ""
	if submitted {
		suffix = submittedSuffix
	}
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s%s.json", reportType, handle, suffix))
}

func (s *Storage) Save(report *domain.Report) error {
	// encoding/json sorts map keys, keeping repeated saves byte-identical.
	data, err := json.Marshal(adapters.MapDomainReportToStore(report))
	if err != nil {
		return fmt.Errorf("failed to encode report %s: %w", report.Handle, err)
	}

	path := s.path(report.Type, report.Handle, report.Status == domain.StatusSubmitted)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", report.Handle, err)
	}
	return nil
}

func (s *Storage) Load(reportType domain.ReportType, handle string) (*domain.Report, error) {
	path := s.path(reportType, handle, false)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		data, err = os.ReadFile(s.path(reportType, handle, true))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", handle, err)
	}

	var stored store.Report
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", handle, err)
	}
	return adapters.MapStoreReportToDomain(&stored), nil
}

// ListInProgress returns every cached report whose file does not carry the
// submitted marker.
func (s *Storage) ListInProgress() ([]*domain.Report, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache dir: %w", err)
	}

	var reports []*domain.Report
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		if strings.HasSuffix(strings.TrimSuffix(name, ".json"), submittedSuffix) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		var stored store.Report
		if err := json.Unmarshal(data, &stored); err != nil {
			// A malformed file should not block resume of the others.
			continue
		}
		if stored.Handle == "" || stored.Type == "" {
			continue
		}
		reports = append(reports, adapters.MapStoreReportToDomain(&stored))
	}
	return reports, nil
}

// MarkSubmitted persists the submitted state and renames the record to its
// submitted marker. A residual marker from a prior failed attempt is
// replaced, never duplicated.
func (s *Storage) MarkSubmitted(report *domain.Report) error {
	oldPath := s.path(report.Type, report.Handle, false)
	newPath := s.path(report.Type, report.Handle, true)

	data, err := json.Marshal(adapters.MapDomainReportToStore(report))
	if err != nil {
		return fmt.Errorf("failed to encode report %s: %w", report.Handle, err)
	}
	if err := os.WriteFile(oldPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", report.Handle, err)
	}

	if _, err := os.Stat(newPath); err == nil {
		if err := os.Remove(newPath); err != nil {
			return fmt.Errorf("failed to replace submitted marker for %s: %w", report.Handle, err)
		}
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename report %s to submitted: %w", report.Handle, err)
	}
	return nil
}

// Delete removes the report's file outright. Used on abort; no submitted
// marker is written.
func (s *Storage) Delete(report *domain.Report) error {
	path := s.path(report.Type, report.Handle, false)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete report %s: %w", report.Handle, err)
	}
	return nil
}
