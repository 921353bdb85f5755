package extract

import (
	"context"
	"image"
	"sort"
	"strconv"
	"strings"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/geometry"
)

// positionLabels are the tokens that open a player block on the extended
// performance table. SUB rows are players who came off the bench.
var positionLabels = func() map[string]bool {
	labels := map[string]bool{"SUB": true}
	for _, p := range domain.Positions {
		labels[p] = true
	}
	return labels
}()

// PerformanceExtendedExtractor reads the post-match performance table. The
// MR, G and AST header labels fix the stat columns; every numeric detection
// in a player block is assigned to the nearest column by x distance.
type PerformanceExtendedExtractor struct {
	deps Deps
}

func NewPerformanceExtendedExtractor(deps Deps) *PerformanceExtendedExtractor {
	return &PerformanceExtendedExtractor{deps: deps}
}

func (e *PerformanceExtendedExtractor) Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error) {
	sorted := make([]domain.Detection, len(dets))
	copy(sorted, dets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Quad.Top() != sorted[j].Quad.Top() {
			return sorted[i].Quad.Top() < sorted[j].Quad.Top()
		}
		return sorted[i].Quad.Left() < sorted[j].Quad.Left()
	})

	columns, err := statColumns(sorted)
	if err != nil {
		return nil, err
	}

	var players []domain.PerformanceDetail
	var current *domain.PerformanceDetail
	mvpFound := false

	for _, d := range sorted {
		if d.Confidence < e.deps.Cfg.ConfidenceFloor {
			continue
		}
		text := strings.TrimSpace(d.Text)

		if positionLabels[text] {
			if current != nil {
				players = append(players, *current)
			}
			current = &domain.PerformanceDetail{Position: text}
			continue
		}
		if current == nil {
			continue
		}

		if current.Name == "" {
			current.Name = text
			if !mvpFound && e.isMVP(img, d.Quad) {
				current.IsMVP = true
				mvpFound = true
			}
			continue
		}

		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			continue
		}
		switch geometry.NearestColumn(d.Quad.Left(), columns) {
		case "rating":
			current.Rating = v
		case "goals":
			current.Goals = int(v)
		case "assists":
			current.Assists = int(v)
		}
	}
	if current != nil {
		players = append(players, *current)
	}

	if len(players) == 0 {
		return nil, &MissingAnchorError{Anchor: "player rows"}
	}
	return &domain.PlayerPerformanceExtended{Players: players}, nil
}

func (e *PerformanceExtendedExtractor) isMVP(img image.Image, name domain.Quad) bool {
	crop := CropAtAnchor(img, name, e.deps.Cfg.MVPCrop)
	return goldRatio(crop, e.deps.Cfg) > e.deps.Cfg.MVPGoldRatio
}

// statColumns locates the MR, G and AST header labels. All three must be
// present or the column assignment below would be meaningless.
func statColumns(dets []domain.Detection) (map[string]float64, error) {
	headers := map[string]string{"MR": "rating", "G": "goals", "AST": "assists"}
	columns := make(map[string]float64, len(headers))

	for _, d := range dets {
		if name, ok := headers[strings.TrimSpace(d.Text)]; ok {
			if _, dup := columns[name]; !dup {
				columns[name] = d.Quad.Left()
			}
		}
	}
	for label, name := range headers {
		if _, ok := columns[name]; !ok {
			return nil, &MissingAnchorError{Anchor: label}
		}
	}
	return columns, nil
}
