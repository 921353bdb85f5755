package geometry

import (
	"math"
	"sort"
	"strings"

	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

// GroupRows buckets detections into visual rows. Detections are sorted by
// the y-coordinate of their top-left corner; a detection joins the current
// row when its top edge is within yThreshold of the row's, otherwise it
// starts a new row. Within each row detections are ordered by x-center.
func GroupRows(dets []domain.Detection, yThreshold float64) [][]domain.Detection {
	if len(dets) == 0 {
		return nil
	}

	sorted := make([]domain.Detection, len(dets))
	copy(sorted, dets)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Quad.Top() != sorted[j].Quad.Top() {
			return sorted[i].Quad.Top() < sorted[j].Quad.Top()
		}
		return sorted[i].Quad.Left() < sorted[j].Quad.Left()
	})

	var rows [][]domain.Detection
	current := []domain.Detection{sorted[0]}
	currentY := sorted[0].Quad.Top()

	for _, d := range sorted[1:] {
		if math.Abs(d.Quad.Top()-currentY) < yThreshold {
			current = append(current, d)
			continue
		}
		rows = append(rows, sortRow(current))
		current = []domain.Detection{d}
		currentY = d.Quad.Top()
	}
	rows = append(rows, sortRow(current))

	return rows
}

func sortRow(row []domain.Detection) []domain.Detection {
	sort.SliceStable(row, func(i, j int) bool {
		return row[i].Quad.Center().X < row[j].Quad.Center().X
	})
	return row
}

// SameRow reports whether two detections sit on the same visual row.
func SameRow(a, b domain.Detection, yThreshold float64) bool {
	return math.Abs(a.Quad.Center().Y-b.Quad.Center().Y) < yThreshold
}

// NearestColumn assigns a value at x to the closest labeled column by
// absolute x-center distance. Ties and discovery order never matter: the
// smallest distance always wins.
func NearestColumn(x float64, columns map[string]float64) string {
	best := ""
	bestDist := math.Inf(1)
	for name, cx := range columns {
		d := math.Abs(x - cx)
		if d < bestDist || (d == bestDist && name < best) {
			best = name
			bestDist = d
		}
	}
	return best
}

// FindText returns the first detection whose text contains needle,
// case-insensitively.
func FindText(dets []domain.Detection, needle string) (domain.Detection, bool) {
	needle = strings.ToLower(needle)
	for _, d := range dets {
		if strings.Contains(strings.ToLower(d.Text), needle) {
			return d, true
		}
	}
	return domain.Detection{}, false
}

// FindExact returns the first detection whose trimmed text equals needle.
func FindExact(dets []domain.Detection, needle string) (domain.Detection, bool) {
	for _, d := range dets {
		if strings.TrimSpace(d.Text) == needle {
			return d, true
		}
	}
	return domain.Detection{}, false
}

// SortByX orders detections left to right by the x-coordinate of their
// top-left corner.
func SortByX(dets []domain.Detection) []domain.Detection {
	sorted := make([]domain.Detection, len(dets))
	copy(sorted, dets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Quad.Left() < sorted[j].Quad.Left()
	})
	return sorted
}

// Leftmost returns the detection with the smallest left-edge x.
func Leftmost(dets []domain.Detection) (domain.Detection, bool) {
	if len(dets) == 0 {
		return domain.Detection{}, false
	}
	best := dets[0]
	for _, d := range dets[1:] {
		if d.Quad.Left() < best.Quad.Left() {
			best = d
		}
	}
	return best, true
}

// Rightmost returns the detection with the largest left-edge x.
func Rightmost(dets []domain.Detection) (domain.Detection, bool) {
	if len(dets) == 0 {
		return domain.Detection{}, false
	}
	best := dets[0]
	for _, d := range dets[1:] {
		if d.Quad.Left() > best.Quad.Left() {
			best = d
		}
	}
	return best, true
}
