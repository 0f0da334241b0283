package math3d

import "math"

// RotateX rotates the point about the X axis by angle radians.
func (a Vec3) RotateX(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{a.X, a.Y*c - a.Z*s, a.Y*s + a.Z*c}
}

// RotateY rotates the point about the Y axis by angle radians.
func (a Vec3) RotateY(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{a.X*c + a.Z*s, a.Y, -a.X*s + a.Z*c}
}

// RotateZ rotates the point about the Z axis by angle radians.
func (a Vec3) RotateZ(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{a.X*c - a.Y*s, a.X*s + a.Y*c, a.Z}
}

// Euler holds one rotation angle per axis, in radians.
type Euler struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Add returns the per-axis sum of two angle sets.
func (e Euler) Add(o Euler) Euler {
	return Euler{e.X + o.X, e.Y + o.Y, e.Z + o.Z}
}

// Scale multiplies every angle by s.
func (e Euler) Scale(s float64) Euler {
	return Euler{e.X * s, e.Y * s, e.Z * s}
}

// Rotate applies the rotation to a single point: about X first, then Y,
// then Z. The order is fixed.
func (e Euler) Rotate(v Vec3) Vec3 {
	return v.RotateX(e.X).RotateY(e.Y).RotateZ(e.Z)
}

// Transform rotates every vertex by the given angles and returns a new slice
// in the same order. The input is never modified.
func Transform(vertices []Vec3, angles Euler) []Vec3 {
	cx, sx := math.Cos(angles.X), math.Sin(angles.X)
	cy, sy := math.Cos(angles.Y), math.Sin(angles.Y)
	cz, sz := math.Cos(angles.Z), math.Sin(angles.Z)

	out := make([]Vec3, len(vertices))
	for i, v := range vertices {
		// X
		y := v.Y*cx - v.Z*sx
		z := v.Y*sx + v.Z*cx
		x := v.X
		// Y
		x, z = x*cy+z*sy, -x*sy+z*cy
		// Z
		x, y = x*cz-y*sz, x*sz+y*cz
		out[i] = Vec3{x, y, z}
	}
	return out
}
