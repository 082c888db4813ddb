package model

import "math"

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// BBox is an axis-aligned rectangle in page space. The origin is the top-left
// corner of the page and Y grows downwards.
type BBox struct {
	X0, Y0 float64 // top-left
	X1, Y1 float64 // bottom-right
}

// NewBBoxFromPoints creates a bounding box spanning two arbitrary corners.
func NewBBoxFromPoints(p1, p2 Point) BBox {
	return BBox{
		X0: math.Min(p1.X, p2.X),
		Y0: math.Min(p1.Y, p2.Y),
		X1: math.Max(p1.X, p2.X),
		Y1: math.Max(p1.Y, p2.Y),
	}
}

// Width returns the horizontal extent
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Union returns the smallest box containing both boxes. A zero box is treated
// as empty so it can be used as the starting value of an accumulation.
func (b BBox) Union(other BBox) BBox {
	if b == (BBox{}) {
		return other
	}
	if other == (BBox{}) {
		return b
	}
	return BBox{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// Scale multiplies every coordinate by f. It converts OCR pixel boxes to
// points (f = 72 / dpi).
func (b BBox) Scale(f float64) BBox {
	return BBox{X0: b.X0 * f, Y0: b.Y0 * f, X1: b.X1 * f, Y1: b.Y1 * f}
}

// IsValid returns true if the bounding box has positive dimensions
func (b BBox) IsValid() bool {
	return b.Width() > 0 && b.Height() > 0
}

// Matrix represents a 2D affine transformation matrix [a b c d e f].
type Matrix [6]float64

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply returns m × other, i.e. m applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Angle returns the rotation of the matrix's X axis in degrees,
// counter-clockwise, in the range (-180, 180].
func (m Matrix) Angle() float64 {
	if m[0] == 0 && m[1] == 0 {
		return 0
	}
	return math.Atan2(m[1], m[0]) * 180 / math.Pi
}

// YScale returns the length of the transformed unit Y vector.
func (m Matrix) YScale() float64 {
	return math.Hypot(m[2], m[3])
}
