package report

import (
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

// TypeSpec defines one capture workflow: the screen that opens it, the
// screens it needs before submission, the ones it merely accepts, and the
// ones that may be captured repeatedly with each capture appended.
type TypeSpec struct {
	Initial      domain.ScreenType
	Required     []domain.ScreenType
	Optional     []domain.ScreenType
	MultiCapture []domain.ScreenType
}

// Specs is the closed table of report workflows.
var Specs = map[domain.ReportType]TypeSpec{
	domain.ReportMatch: {
		Initial:  domain.ScreenPreMatch,
		Required: []domain.ScreenType{domain.ScreenMatchFacts, domain.ScreenPlayerPerformance},
		Optional: []domain.ScreenType{
			domain.ScreenPlayerPerformanceExtended,
			domain.ScreenMatchFactsExtended,
		},
	},
	domain.ReportSimMatch: {
		Initial: domain.ScreenSimPreMatch,
		Required: []domain.ScreenType{
			domain.ScreenSimMatchFacts,
			domain.ScreenSimMatchPerformance,
			domain.ScreenSimMatchPerformanceBench,
		},
	},
	domain.ReportPlayer: {
		Initial:  domain.ScreenSquadStats,
		Required: []domain.ScreenType{domain.ScreenSquadFinancial, domain.ScreenSquadAttributes},
		MultiCapture: []domain.ScreenType{
			domain.ScreenSquadFinancial,
			domain.ScreenSquadAttributes,
			domain.ScreenSquadStats,
		},
	},
}

// TypeForInitialScreen resolves which workflow a screen opens, if any.
func TypeForInitialScreen(screen domain.ScreenType) (domain.ReportType, bool) {
	for reportType, spec := range Specs {
		if spec.Initial == screen {
			return reportType, true
		}
	}
	return "", false
}

// Accepts reports whether the workflow takes this screen at all.
func (s TypeSpec) Accepts(screen domain.ScreenType) bool {
	if s.Initial == screen {
		return true
	}
	for _, group := range [][]domain.ScreenType{s.Required, s.Optional, s.MultiCapture} {
		for _, accepted := range group {
			if accepted == screen {
				return true
			}
		}
	}
	return false
}

// IsMultiCapture reports whether captures of this screen append instead of
// replacing.
func (s TypeSpec) IsMultiCapture(screen domain.ScreenType) bool {
	for _, mc := range s.MultiCapture {
		if mc == screen {
			return true
		}
	}
	return false
}
