package render

import (
	"fmt"
	"image"
)

// FillMode selects how quad faces are filled.
type FillMode int

const (
	FillInterpolated FillMode = iota // Two triangles, per-pixel depth from the x/y ratio approximation
	FillAveraged                     // Whole quad at the mean of its corner depths
	FillBarycentric                  // Two triangles, true barycentric depth
	FillNone                         // Faces skipped, edges only
)

var fillModeNames = [...]string{
	FillInterpolated: "interpolated",
	FillAveraged:     "averaged",
	FillBarycentric:  "barycentric",
	FillNone:         "none",
}

func (m FillMode) String() string {
	if m < 0 || int(m) >= len(fillModeNames) {
		return fmt.Sprintf("FillMode(%d)", int(m))
	}
	return fillModeNames[m]
}

// ParseFillMode parses a fill mode name as produced by String.
func ParseFillMode(s string) (FillMode, error) {
	for i, name := range fillModeNames {
		if s == name {
			return FillMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown fill mode %q", s)
}

// Topology is the static structure of a quad mesh. It keeps this package
// free of the models package.
type Topology interface {
	FaceCount() int
	Face(i int) [4]int
	EdgeCount() int
	Edge(i int) [2]int
}

// RasterStats counts per-pixel work for debugging and tests.
type RasterStats struct {
	Tested  int // Candidate pixels evaluated
	Written int // Pixels that passed bounds and depth tests
}

// Rasterizer draws faces and edges into a GlyphBuffer with depth testing.
type Rasterizer struct {
	buf          *GlyphBuffer
	ramp         Ramp
	Fill         FillMode
	DisableEdges bool
	Stats        RasterStats
}

// NewRasterizer creates a rasterizer writing into buf.
func NewRasterizer(buf *GlyphBuffer, ramp Ramp, fill FillMode) *Rasterizer {
	return &Rasterizer{
		buf:  buf,
		ramp: ramp,
		Fill: fill,
	}
}

// Buffer returns the target buffer.
func (r *Rasterizer) Buffer() *GlyphBuffer {
	return r.buf
}

// ResetStats zeroes the counters (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = RasterStats{}
}

func (r *Rasterizer) plot(x, y int, z float64) {
	if r.buf.Plot(x, y, z, r.ramp.Glyph(z)) {
		r.Stats.Written++
	}
}

// DrawMesh fills every face, then draws every edge. pts holds the projected
// vertices the topology indexes into.
func (r *Rasterizer) DrawMesh(mesh Topology, pts []ScreenPoint) {
	if r.Fill != FillNone {
		for i := range mesh.FaceCount() {
			f := mesh.Face(i)
			r.FillQuad([4]ScreenPoint{pts[f[0]], pts[f[1]], pts[f[2]], pts[f[3]]})
		}
	}
	if !r.DisableEdges {
		for i := range mesh.EdgeCount() {
			e := mesh.Edge(i)
			r.DrawEdge(pts[e[0]], pts[e[1]])
		}
	}
}

// FillQuad fills a quad using the configured FillMode. The quad is interior
// only where it winds counter-clockwise under edgeFunc.
func (r *Rasterizer) FillQuad(q [4]ScreenPoint) {
	switch r.Fill {
	case FillInterpolated:
		r.FillTriangle(q[0], q[1], q[2])
		r.FillTriangle(q[0], q[2], q[3])
	case FillBarycentric:
		r.FillTriangleBarycentric(q[0], q[1], q[2])
		r.FillTriangleBarycentric(q[0], q[2], q[3])
	case FillAveraged:
		r.FillQuadFlat(q)
	}
}

// edgeFunc returns the signed area of (a, b, p): positive when p lies to the
// left of a→b in grid coordinates, zero on the line.
func edgeFunc(a, b ScreenPoint, x, y int) int {
	return (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
}

// clipBounds returns the bounding box of pts clipped to the grid. ok is
// false when nothing of it is on screen.
func (r *Rasterizer) clipBounds(pts ...ScreenPoint) (minX, minY, maxX, maxY int, ok bool) {
	minX, minY = pts[0].X, pts[0].Y
	maxX, maxY = minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, r.buf.Width-1), min(maxY, r.buf.Height-1)
	return minX, minY, maxX, maxY, minX <= maxX && minY <= maxY
}

// FillTriangle fills a triangle with the half-space test. Depth comes from
// the x offset along p0→p1 and the y offset along p0→p2; a zero span is
// treated as 1. This is an approximation of barycentric interpolation.
// Triangles with zero or clockwise area write nothing.
func (r *Rasterizer) FillTriangle(p0, p1, p2 ScreenPoint) {
	if edgeFunc(p0, p1, p2.X, p2.Y) <= 0 {
		return
	}
	minX, minY, maxX, maxY, ok := r.clipBounds(p0, p1, p2)
	if !ok {
		return
	}

	dx := float64(p1.X - p0.X)
	if dx == 0 {
		dx = 1
	}
	dy := float64(p2.Y - p0.Y)
	if dy == 0 {
		dy = 1
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			r.Stats.Tested++
			if edgeFunc(p0, p1, x, y) < 0 || edgeFunc(p1, p2, x, y) < 0 || edgeFunc(p2, p0, x, y) < 0 {
				continue
			}
			z := p0.Z +
				(p1.Z-p0.Z)*(float64(x-p0.X)/dx) +
				(p2.Z-p0.Z)*(float64(y-p0.Y)/dy)
			r.plot(x, y, z)
		}
	}
}

// barycentric returns the weights of p0, p1, p2 at (x, y). area must be
// edgeFunc(p0, p1, p2) and non-zero.
func barycentric(p0, p1, p2 ScreenPoint, area, x, y int) (w0, w1, w2 float64) {
	inv := 1 / float64(area)
	w0 = float64(edgeFunc(p1, p2, x, y)) * inv
	w1 = float64(edgeFunc(p2, p0, x, y)) * inv
	w2 = float64(edgeFunc(p0, p1, x, y)) * inv
	return w0, w1, w2
}

// FillTriangleBarycentric has the same coverage as FillTriangle but
// interpolates depth with true barycentric weights.
func (r *Rasterizer) FillTriangleBarycentric(p0, p1, p2 ScreenPoint) {
	area := edgeFunc(p0, p1, p2.X, p2.Y)
	if area <= 0 {
		return
	}
	minX, minY, maxX, maxY, ok := r.clipBounds(p0, p1, p2)
	if !ok {
		return
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			r.Stats.Tested++
			w0, w1, w2 := barycentric(p0, p1, p2, area, x, y)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			r.plot(x, y, w0*p0.Z+w1*p1.Z+w2*p2.Z)
		}
	}
}

// FillQuadFlat fills a quad with one depth, the mean of its corners.
// Interior pixels are on the non-negative side of all four edges.
func (r *Rasterizer) FillQuadFlat(q [4]ScreenPoint) {
	// Twice the shoelace area.
	if edgeFunc(q[0], q[1], q[2].X, q[2].Y)+edgeFunc(q[0], q[2], q[3].X, q[3].Y) <= 0 {
		return
	}
	minX, minY, maxX, maxY, ok := r.clipBounds(q[:]...)
	if !ok {
		return
	}

	z := (q[0].Z + q[1].Z + q[2].Z + q[3].Z) / 4

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			r.Stats.Tested++
			inside := true
			for i := range 4 {
				if edgeFunc(q[i], q[(i+1)%4], x, y) < 0 {
					inside = false
					break
				}
			}
			if inside {
				r.plot(x, y, z)
			}
		}
	}
}

// DrawEdge draws the line a→b, interpolating depth by position along the
// pixel sequence.
func (r *Rasterizer) DrawEdge(a, b ScreenPoint) {
	line := Line(a.X, a.Y, b.X, b.Y)
	n := len(line)
	for i, p := range line {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r.Stats.Tested++
		r.plot(p.X, p.Y, a.Z+t*(b.Z-a.Z))
	}
}

// Line returns the cells from (x0, y0) to (x1, y1) inclusive using
// Bresenham's algorithm. Identical endpoints give a single cell.
func Line(x0, y0, x1, y1 int) []image.Point {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	points := make([]image.Point, 0, max(dx, dy)+1)
	for {
		points = append(points, image.Pt(x0, y0))
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
	return points
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
