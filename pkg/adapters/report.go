package adapters

import (
	"sort"

	"github.com/jaaniles/fcore-ocr/pkg/models/api"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/models/store"
)

func MapDomainReportToStore(r *domain.Report) *store.Report {
	if r == nil {
		return nil
	}

	screens := make(map[string]any, len(r.Screens))
	for screen, record := range r.Screens {
		screens[string(screen)] = record
	}

	return &store.Report{
		Handle:  r.Handle,
		Owner:   r.Owner,
		Type:    string(r.Type),
		Screens: screens,
		Status:  string(r.Status),
	}
}

// MapStoreReportToDomain loads a cached report. Screen payloads stay as the
// generic JSON they were decoded into; completion tracking only needs the
// keys.
func MapStoreReportToDomain(r *store.Report) *domain.Report {
	if r == nil {
		return nil
	}

	screens := make(map[domain.ScreenType]any, len(r.Screens))
	for screen, record := range r.Screens {
		screens[domain.ScreenType(screen)] = record
	}

	return &domain.Report{
		Handle:  r.Handle,
		Owner:   r.Owner,
		Type:    domain.ReportType(r.Type),
		Screens: screens,
		Status:  domain.ReportStatus(r.Status),
	}
}

func MapDomainReportToAPI(r *domain.Report, missing []domain.ScreenType) api.Report {
	screens := make([]string, 0, len(r.Screens))
	for screen := range r.Screens {
		screens = append(screens, string(screen))
	}
	sort.Strings(screens)

	missingNames := make([]string, 0, len(missing))
	for _, screen := range missing {
		missingNames = append(missingNames, string(screen))
	}

	return api.Report{
		Handle:  r.Handle,
		Owner:   r.Owner,
		Type:    string(r.Type),
		Status:  string(r.Status),
		Screens: screens,
		Missing: missingNames,
	}
}

func MapDomainReportToAPIDetail(r *domain.Report, missing []domain.ScreenType) api.ReportDetail {
	data := make(map[string]any, len(r.Screens))
	for screen, record := range r.Screens {
		data[string(screen)] = record
	}
	return api.ReportDetail{
		Report: MapDomainReportToAPI(r, missing),
		Data:   data,
	}
}
