package render

import "github.com/taigrr/glyphcube/pkg/math3d"

// ScreenPoint is a projected vertex: an integer grid position plus the
// rotated depth, kept for interpolation.
type ScreenPoint struct {
	X, Y int
	Z    float64
}

// Projector maps rotated points onto the grid orthographically.
type Projector struct {
	Width  int
	Height int
	Scale  float64
}

// Project scales x and y, centers them on the grid and truncates toward
// zero. Depth passes through untouched. The result may be off the grid.
func (p Projector) Project(v math3d.Vec3) ScreenPoint {
	return ScreenPoint{
		X: int(v.X*p.Scale + float64(p.Width)/2),
		Y: int(v.Y*p.Scale + float64(p.Height)/2),
		Z: v.Z,
	}
}

// ProjectAll projects every point, keeping order.
func (p Projector) ProjectAll(vs []math3d.Vec3) []ScreenPoint {
	pts := make([]ScreenPoint, len(vs))
	for i, v := range vs {
		pts[i] = p.Project(v)
	}
	return pts
}
