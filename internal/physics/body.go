// Package physics is a small 2D world for the maze: axis-aligned
// rectangles and circles, gravity, air friction, circle-versus-rectangle
// contacts and collision-start events. Rotation and rectangle-versus-
// rectangle contacts are not simulated.
package physics

import "gonum.org/v1/gonum/spatial/r2"

// Shape is the collision shape of a body.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// String returns a human-readable name for the shape.
func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// Body is a simulated object. Position is the centre.
type Body struct {
	ID       int
	Label    string
	Shape    Shape
	Position r2.Vec
	Velocity r2.Vec
	Width    float64 // Rect only
	Height   float64 // Rect only
	Radius   float64 // Circle only
	Static   bool
}

// Min returns the top-left corner of the body's bounding box.
func (b *Body) Min() r2.Vec {
	if b.Shape == ShapeCircle {
		return r2.Vec{X: b.Position.X - b.Radius, Y: b.Position.Y - b.Radius}
	}
	return r2.Vec{X: b.Position.X - b.Width/2, Y: b.Position.Y - b.Height/2}
}

// Max returns the bottom-right corner of the body's bounding box.
func (b *Body) Max() r2.Vec {
	if b.Shape == ShapeCircle {
		return r2.Vec{X: b.Position.X + b.Radius, Y: b.Position.Y + b.Radius}
	}
	return r2.Vec{X: b.Position.X + b.Width/2, Y: b.Position.Y + b.Height/2}
}

// Pair is two bodies whose contact began during a step.
type Pair struct {
	A, B *Body
}

// Labels returns the labels of both bodies.
func (p Pair) Labels() (string, string) {
	return p.A.Label, p.B.Label
}
