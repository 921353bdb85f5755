package vision

import (
	"image"
	"math"
)

// binarize thresholds a grayscale image into a boolean mask.
func binarize(gray *image.Gray, threshold uint8) [][]bool {
	b := gray.Bounds()
	mask := make([][]bool, b.Dy())
	for y := range mask {
		mask[y] = make([]bool, b.Dx())
		for x := range mask[y] {
			mask[y][x] = gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y >= threshold
		}
	}
	return mask
}

// traceBoundary walks the outer boundary of the largest connected blob in
// the mask using Moore neighbor tracing and returns its pixel path.
func traceBoundary(mask [][]bool) []image.Point {
	h := len(mask)
	if h == 0 {
		return nil
	}
	w := len(mask[0])

	on := func(p image.Point) bool {
		return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h && mask[p.Y][p.X]
	}

	// Scan order guarantees the first set pixel is on the outer boundary.
	var start image.Point
	found := false
	for y := 0; y < h && !found; y++ {
		for x := 0; x < w && !found; x++ {
			if mask[y][x] {
				start = image.Point{X: x, Y: y}
				found = true
			}
		}
	}
	if !found {
		return nil
	}

	// Moore neighborhood in clockwise order starting from the west.
	neighbors := []image.Point{
		{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
		{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	}

	contour := []image.Point{start}
	current := start
	backtrack := 0

	for i := 0; i < w*h; i++ {
		next := image.Point{}
		nextBacktrack := 0
		advanced := false
		for j := 0; j < 8; j++ {
			idx := (backtrack + j) % 8
			cand := current.Add(neighbors[idx])
			if on(cand) {
				next = cand
				// Resume scanning from the pixel before the one that hit.
				nextBacktrack = (idx + 5) % 8
				advanced = true
				break
			}
		}
		if !advanced {
			break // isolated pixel
		}
		if next == start {
			break
		}
		contour = append(contour, next)
		current = next
		backtrack = nextBacktrack
	}

	return contour
}

func perpendicularDistance(p, a, b image.Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(float64(p.X-a.X), float64(p.Y-a.Y))
	}
	return math.Abs(dy*float64(p.X)-dx*float64(p.Y)+float64(b.X*a.Y)-float64(b.Y*a.X)) / length
}

// simplifyPolygon reduces a contour to its corner points with the
// Ramer-Douglas-Peucker algorithm.
func simplifyPolygon(points []image.Point, epsilon float64) []image.Point {
	if len(points) < 3 {
		return points
	}

	maxDist := 0.0
	index := 0
	last := len(points) - 1
	for i := 1; i < last; i++ {
		d := perpendicularDistance(points[i], points[0], points[last])
		if d > maxDist {
			maxDist = d
			index = i
		}
	}

	if maxDist <= epsilon {
		return []image.Point{points[0], points[last]}
	}

	left := simplifyPolygon(points[:index+1], epsilon)
	right := simplifyPolygon(points[index:], epsilon)
	return append(left[:len(left)-1], right...)
}

// PolygonSides estimates how many sides the silhouette of the largest
// bright blob in img has. The icon silhouettes being distinguished are a
// four-sided diamond versus a five-or-more-sided gem shape.
func PolygonSides(img image.Image, threshold uint8) int {
	contour := traceBoundary(binarize(Grayscale(img), threshold))
	if len(contour) < 3 {
		return 0
	}

	// Epsilon proportional to the contour perimeter, as is conventional.
	perimeter := 0.0
	for i := 1; i < len(contour); i++ {
		perimeter += math.Hypot(
			float64(contour[i].X-contour[i-1].X),
			float64(contour[i].Y-contour[i-1].Y),
		)
	}
	simplified := simplifyPolygon(contour, 0.04*perimeter)

	// The simplification keeps both endpoints of the closed path; when they
	// coincide the shared vertex counts once.
	sides := len(simplified)
	if sides > 1 && simplified[0] == simplified[sides-1] {
		sides--
	}
	return sides
}
