package extract

import (
	"context"
	"image"
	"strconv"
	"strings"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
	"github.com/jaaniles/fcore-ocr/pkg/services/geometry"
)

// statColumnsOrder is the column order following the Totals label.
var statColumnsOrder = []string{
	"appearances", "goals", "assists", "clean_sheets",
	"yellow_cards", "red_cards", "rating_avg",
}

// SquadStatsExtractor reads the career totals row of the squad stats
// screen. The Totals label anchors the row; the stat values follow it left
// to right in a fixed column order.
type SquadStatsExtractor struct {
	deps Deps
}

func NewSquadStatsExtractor(deps Deps) *SquadStatsExtractor {
	return &SquadStatsExtractor{deps: deps}
}

func (e *SquadStatsExtractor) Extract(ctx context.Context, img image.Image, dets []domain.Detection) (any, error) {
	totals, ok := geometry.FindExact(dets, "Totals")
	if !ok {
		return nil, &MissingAnchorError{Anchor: "Totals"}
	}

	var row []domain.Detection
	for _, d := range dets {
		if d.Quad == totals.Quad {
			continue
		}
		if geometry.SameRow(d, totals, 30) && d.Quad.Left() > totals.Quad.Left() {
			row = append(row, d)
		}
	}
	row = geometry.SortByX(row)

	stats := &domain.SquadStats{}
	for i, name := range statColumnsOrder {
		if i >= len(row) {
			break
		}
		text := strings.TrimSpace(row[i].Text)
		switch name {
		case "appearances":
			stats.Appearances = atoiSafe(text)
		case "goals":
			stats.Goals = atoiSafe(text)
		case "assists":
			stats.Assists = atoiSafe(text)
		case "clean_sheets":
			stats.CleanSheets = atoiSafe(text)
		case "yellow_cards":
			stats.YellowCards = atoiSafe(text)
		case "red_cards":
			stats.RedCards = atoiSafe(text)
		case "rating_avg":
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				stats.AverageRating = v
			}
		}
	}
	return stats, nil
}

func atoiSafe(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
