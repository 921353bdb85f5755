package extract

import (
	"context"
	"image"
	"strings"
	"unicode"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

// sectionHeaders are the layout headings of the extended stats screen; they
// carry no values of their own.
var sectionHeaders = map[string]bool{
	"summary": true, "shooting": true, "passing": true,
	"defending": true, "events": true,
}

// MatchFactsExtendedExtractor reads the detailed post-match stats screen.
// Every textual label flanked by a number on each side becomes one
// home/away stat pair; labels without a full pair are skipped.
type MatchFactsExtendedExtractor struct {
	deps Deps
}

func NewMatchFactsExtendedExtractor(deps Deps) *MatchFactsExtendedExtractor {
	return &MatchFactsExtendedExtractor{deps: deps}
}

func (e *MatchFactsExtendedExtractor) Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error) {
	stats := map[string]domain.StatPair{}

	for _, d := range dets {
		label := strings.TrimSpace(d.Text)
		if label == "" || !isStatLabel(label) {
			continue
		}
		if sectionHeaders[strings.ToLower(label)] {
			continue
		}
		home, away, ok := SideValues(dets, d, e.deps.Cfg.RowYThreshold)
		if !ok {
			continue
		}
		if _, dup := stats[label]; !dup {
			stats[label] = domain.StatPair{Home: home, Away: away}
		}
	}

	if len(stats) == 0 {
		return nil, &MissingAnchorError{Anchor: "stat rows"}
	}
	return &domain.MatchFactsExtended{Stats: stats}, nil
}

// isStatLabel accepts letter-dominated texts like "Shots on Target" and
// rejects scores, clocks and bare numbers.
func isStatLabel(text string) bool {
	letters := 0
	for _, r := range text {
		if unicode.IsDigit(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 3
}
