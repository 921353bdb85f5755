package domain

// Point is a pixel coordinate in screenshot space.
type Point struct {
	X float64
	Y float64
}

// Quad is the quadrilateral bounding box of a recognition result, in
// top-left, top-right, bottom-right, bottom-left order.
type Quad [4]Point

func (q Quad) Center() Point {
	var cx, cy float64
	for _, p := range q {
		cx += p.X
		cy += p.Y
	}
	return Point{X: cx / 4, Y: cy / 4}
}

// Left returns the x-coordinate of the quad's left edge.
func (q Quad) Left() float64 { return q[0].X }

// Right returns the x-coordinate of the quad's right edge.
func (q Quad) Right() float64 { return q[2].X }

// Top returns the y-coordinate of the quad's top edge.
func (q Quad) Top() float64 { return q[0].Y }

// Bottom returns the y-coordinate of the quad's bottom edge.
func (q Quad) Bottom() float64 { return q[2].Y }

func (q Quad) Width() float64  { return q.Right() - q.Left() }
func (q Quad) Height() float64 { return q.Bottom() - q.Top() }

// QuadAt builds an axis-aligned Quad from a top-left corner and a size.
func QuadAt(x, y, w, h float64) Quad {
	return Quad{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}
}

// Detection is one recognition engine result. It is immutable and is the
// unit all downstream geometric reasoning operates on.
type Detection struct {
	Quad       Quad
	Text       string
	Confidence float64
}
