package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// maxSubsteps caps per-body sub-stepping in one Step.
const maxSubsteps = 64

// Options configures a World.
type Options struct {
	Width, Height float64 // World bounds, origin top-left
	Gravity       r2.Vec  // Acceleration in units/s²
	FrictionAir   float64 // Fraction of velocity lost per step, 0..1
	Restitution   float64 // 0 = dead stop on contact, 1 = perfect bounce
	MaxSpeed      float64 // Circle speed cap in units/s, 0 = sub-step limit only
}

// World owns all bodies and advances them in fixed steps.
type World struct {
	opts     Options
	bodies   []*Body
	nextID   int
	contacts map[[2]int]bool
}

// NewWorld creates an empty world.
func NewWorld(opts Options) *World {
	return &World{
		opts:     opts,
		contacts: make(map[[2]int]bool),
	}
}

// AddRect adds a rectangle centred at (x, y).
func (w *World) AddRect(label string, x, y, width, height float64, static bool) *Body {
	b := &Body{
		ID:       w.nextID,
		Label:    label,
		Shape:    ShapeRect,
		Position: r2.Vec{X: x, Y: y},
		Width:    width,
		Height:   height,
		Static:   static,
	}
	w.nextID++
	w.bodies = append(w.bodies, b)
	return b
}

// AddCircle adds a dynamic circle centred at (x, y).
func (w *World) AddCircle(label string, x, y, radius float64) *Body {
	b := &Body{
		ID:       w.nextID,
		Label:    label,
		Shape:    ShapeCircle,
		Position: r2.Vec{X: x, Y: y},
		Radius:   radius,
	}
	w.nextID++
	w.bodies = append(w.bodies, b)
	return b
}

// Bodies returns every body in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// BodiesByLabel returns the bodies carrying the given label.
func (w *World) BodiesByLabel(label string) []*Body {
	var result []*Body
	for _, b := range w.bodies {
		if b.Label == label {
			result = append(result, b)
		}
	}
	return result
}

// Gravity returns the current gravity vector.
func (w *World) Gravity() r2.Vec {
	return w.opts.Gravity
}

// SetGravity replaces the gravity vector.
func (w *World) SetGravity(g r2.Vec) {
	w.opts.Gravity = g
}

// Bounds returns the world size.
func (w *World) Bounds() (width, height float64) {
	return w.opts.Width, w.opts.Height
}

// SetVelocity sets a body's velocity. Static bodies ignore it.
func (w *World) SetVelocity(b *Body, v r2.Vec) {
	if b.Static {
		return
	}
	b.Velocity = v
}

// SetStatic switches a body between static and dynamic.
// A body made static loses its velocity.
func (w *World) SetStatic(b *Body, static bool) {
	b.Static = static
	if static {
		b.Velocity = r2.Vec{}
	}
}

// Step advances the world by dt seconds and returns the contacts that
// started during this step.
func (w *World) Step(dt float64) []Pair {
	for _, b := range w.bodies {
		if b.Static {
			continue
		}
		b.Velocity = r2.Add(b.Velocity, r2.Scale(dt, w.opts.Gravity))
		b.Velocity = r2.Scale(1-w.opts.FrictionAir, b.Velocity)

		switch b.Shape {
		case ShapeCircle:
			w.moveCircle(b, dt)
		case ShapeRect:
			w.moveRect(b, dt)
		}
	}

	return w.collectStarts()
}

// moveCircle integrates a circle in sub-steps no longer than half its
// radius and resolves rectangle contacts after each one.
func (w *World) moveCircle(b *Body, dt float64) {
	w.limitSpeed(b, dt)

	travel := r2.Norm(b.Velocity) * dt
	steps := 1
	if b.Radius > 0 {
		steps = int(math.Ceil(travel / (b.Radius / 2)))
	}
	steps = max(1, min(steps, maxSubsteps))

	h := dt / float64(steps)
	for range steps {
		b.Position = r2.Add(b.Position, r2.Scale(h, b.Velocity))
		for _, other := range w.bodies {
			if other.Shape != ShapeRect {
				continue
			}
			w.resolveCircleRect(b, other)
		}
	}
}

// limitSpeed scales a circle's velocity down to the fastest speed that
// maxSubsteps half-radius sub-steps can cover in dt, or to MaxSpeed when
// that is lower.
func (w *World) limitSpeed(b *Body, dt float64) {
	limit := math.Inf(1)
	if b.Radius > 0 && dt > 0 {
		limit = maxSubsteps * (b.Radius / 2) / dt
	}
	if w.opts.MaxSpeed > 0 {
		limit = min(limit, w.opts.MaxSpeed)
	}
	if speed := r2.Norm(b.Velocity); speed > limit {
		b.Velocity = r2.Scale(limit/speed, b.Velocity)
	}
}

// moveRect integrates a dynamic rectangle and rests it on the floor.
func (w *World) moveRect(b *Body, dt float64) {
	b.Position = r2.Add(b.Position, r2.Scale(dt, b.Velocity))

	floor := w.opts.Height - b.Height/2
	if w.opts.Height > 0 && b.Position.Y > floor {
		b.Position.Y = floor
		b.Velocity = r2.Vec{}
	}
}

// resolveCircleRect pushes circle c out of rectangle r and removes the
// velocity component pointing into it.
func (w *World) resolveCircleRect(c, r *Body) {
	normal, depth, hit := circleRectContact(c, r)
	if !hit {
		return
	}

	c.Position = r2.Add(c.Position, r2.Scale(depth, normal))

	vn := r2.Dot(c.Velocity, normal)
	if vn < 0 {
		c.Velocity = r2.Sub(c.Velocity, r2.Scale((1+w.opts.Restitution)*vn, normal))
	}
}

// circleRectContact returns the push-out normal and penetration depth of
// a circle overlapping a rectangle.
func circleRectContact(c, r *Body) (normal r2.Vec, depth float64, hit bool) {
	lo, hi := r.Min(), r.Max()
	closest := r2.Vec{
		X: math.Max(lo.X, math.Min(c.Position.X, hi.X)),
		Y: math.Max(lo.Y, math.Min(c.Position.Y, hi.Y)),
	}
	d := r2.Sub(c.Position, closest)
	dist := r2.Norm(d)

	if dist > 0 {
		if dist >= c.Radius {
			return r2.Vec{}, 0, false
		}
		return r2.Scale(1/dist, d), c.Radius - dist, true
	}

	// Centre inside the rectangle: leave along the shallowest side.
	left := c.Position.X - lo.X
	right := hi.X - c.Position.X
	top := c.Position.Y - lo.Y
	bottom := hi.Y - c.Position.Y

	depth = left
	normal = r2.Vec{X: -1}
	if right < depth {
		depth, normal = right, r2.Vec{X: 1}
	}
	if top < depth {
		depth, normal = top, r2.Vec{Y: -1}
	}
	if bottom < depth {
		depth, normal = bottom, r2.Vec{Y: 1}
	}
	return normal, depth + c.Radius, true
}

// overlaps reports whether two bodies touch. Circles test against
// rectangles exactly; other pairs use bounding boxes.
func overlaps(a, b *Body) bool {
	switch {
	case a.Shape == ShapeCircle && b.Shape == ShapeRect:
		return touching(a, b)
	case a.Shape == ShapeRect && b.Shape == ShapeCircle:
		return touching(b, a)
	case a.Shape == ShapeCircle && b.Shape == ShapeCircle:
		return r2.Norm(r2.Sub(a.Position, b.Position)) <= a.Radius+b.Radius
	}
	amin, amax := a.Min(), a.Max()
	bmin, bmax := b.Min(), b.Max()
	return amin.X < bmax.X && bmin.X < amax.X && amin.Y < bmax.Y && bmin.Y < amax.Y
}

// contactSlop lets a circle resting on a rectangle still count as touching.
const contactSlop = 1e-6

func touching(c, r *Body) bool {
	lo, hi := r.Min(), r.Max()
	closest := r2.Vec{
		X: math.Max(lo.X, math.Min(c.Position.X, hi.X)),
		Y: math.Max(lo.Y, math.Min(c.Position.Y, hi.Y)),
	}
	return r2.Norm(r2.Sub(c.Position, closest)) <= c.Radius+contactSlop
}

// collectStarts diffs the current contact set with the previous step's
// and returns the pairs that are new. Only pairs involving a circle are
// tracked.
func (w *World) collectStarts() []Pair {
	current := make(map[[2]int]bool)
	var started []Pair

	for i, a := range w.bodies {
		for _, b := range w.bodies[i+1:] {
			if a.Shape != ShapeCircle && b.Shape != ShapeCircle {
				continue
			}
			if !overlaps(a, b) {
				continue
			}
			key := [2]int{a.ID, b.ID}
			current[key] = true
			if !w.contacts[key] {
				started = append(started, Pair{A: a, B: b})
			}
		}
	}

	w.contacts = current
	return started
}
