package extract

import (
	"context"
	"image"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

// PerformanceExtractor reads the in-game player performance list: stacked
// first/last name pairs with a match rating to the right and a single gold
// MVP icon next to the best player.
type PerformanceExtractor struct {
	deps Deps
}

func NewPerformanceExtractor(deps Deps) *PerformanceExtractor {
	return &PerformanceExtractor{deps: deps}
}

// lastNameYSlack and lastNameXSlack bound where a last-name detection may
// sit relative to the first name above it.
const (
	lastNameYSlack = 50
	lastNameXSlack = 30
)

func (e *PerformanceExtractor) Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error) {
	sorted := make([]domain.Detection, len(dets))
	copy(sorted, dets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Quad.Top() != sorted[j].Quad.Top() {
			return sorted[i].Quad.Top() < sorted[j].Quad.Top()
		}
		return sorted[i].Quad.Left() < sorted[j].Quad.Left()
	})

	var players []domain.PerformanceEntry
	seen := map[string]bool{}
	mvpFound := false

	for i, d := range sorted {
		first, ok := ValidName(d.Text)
		if !ok {
			continue
		}

		last, lastDet, hasLast := e.findLastName(sorted, i, d)
		full := first
		if hasLast {
			full = first + " " + last
		}
		if seen[full] {
			continue
		}

		rating, ok := e.findRating(sorted, i, d)
		if !ok {
			continue
		}

		isMVP := false
		if !mvpFound && hasLast {
			isMVP = e.isMVP(img, lastDet.Quad)
			mvpFound = isMVP
		}

		seen[full] = true
		seen[first] = true
		if hasLast {
			seen[last] = true
		}
		players = append(players, domain.PerformanceEntry{Name: full, Rating: rating, IsMVP: isMVP})
	}

	if len(players) == 0 {
		return nil, &MissingAnchorError{Anchor: "player rows"}
	}
	return &domain.PlayerPerformance{Players: players}, nil
}

// findLastName looks for a second name fragment directly below the first
// name, left-aligned with it.
func (e *PerformanceExtractor) findLastName(sorted []domain.Detection, i int, first domain.Detection) (string, domain.Detection, bool) {
	for _, d := range sorted[i+1:] {
		name, ok := ValidName(d.Text)
		if !ok {
			continue
		}
		if math.Abs(d.Quad.Top()-first.Quad.Bottom()) <= lastNameYSlack &&
			math.Abs(d.Quad.Left()-first.Quad.Left()) <= lastNameXSlack {
			return name, d, true
		}
	}
	return "", domain.Detection{}, false
}

// findRating returns the first float detection to the right of the name.
func (e *PerformanceExtractor) findRating(sorted []domain.Detection, i int, name domain.Detection) (float64, bool) {
	for _, d := range sorted[i+1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(d.Text), 64)
		if err != nil {
			continue
		}
		if d.Quad.Left() > name.Quad.Right() {
			return v, true
		}
	}
	return 0, false
}

// isMVP samples the icon slot left of the name for the gold highlight.
func (e *PerformanceExtractor) isMVP(img image.Image, name domain.Quad) bool {
	crop := CropAtAnchor(img, name, e.deps.Cfg.MVPCrop)
	return goldRatio(crop, e.deps.Cfg) > e.deps.Cfg.MVPGoldRatio
}
