package graphics

import "math"

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 0.0001

// Unset is the sentinel for an explicit width or height that was never set.
// Layout treats it as "size to content".
var Unset = math.NaN()

// IsUnset reports whether v is the Unset sentinel.
func IsUnset(v float64) bool {
	return math.IsNaN(v)
}

// Vector is a 2D point or size in pixels.
type Vector struct {
	X float64
	Y float64
}

// Vec returns the vector (x, y).
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Infinite returns a vector that is unbounded on both axes.
func Infinite() Vector {
	return Vector{X: math.Inf(1), Y: math.Inf(1)}
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s on both axes.
func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Max returns the component-wise maximum.
func (v Vector) Max(o Vector) Vector {
	return Vector{X: math.Max(v.X, o.X), Y: math.Max(v.Y, o.Y)}
}

// Min returns the component-wise minimum.
func (v Vector) Min(o Vector) Vector {
	return Vector{X: math.Min(v.X, o.X), Y: math.Min(v.Y, o.Y)}
}

// Clamp limits each component to [lo, hi]. When lo exceeds hi on an axis,
// lo wins, matching min-size-beats-max-size layout rules.
func (v Vector) Clamp(lo, hi Vector) Vector {
	return Vector{X: clamp(v.X, lo.X, hi.X), Y: clamp(v.Y, lo.Y, hi.Y)}
}

// IsFinite reports whether both components are finite numbers.
func (v Vector) IsFinite() bool {
	return !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsNaN(v.X) && !math.IsNaN(v.Y)
}

// HasNaN reports whether either component is NaN.
func (v Vector) HasNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}

// Sanitize replaces NaN and negative components with zero.
// Positive infinity is kept; it means "unbounded".
func (v Vector) Sanitize() Vector {
	return Vector{X: sanitize(v.X), Y: sanitize(v.Y)}
}

// ApproxEqual reports whether v and o are equal within epsilon.
// Matching infinities compare equal.
func (v Vector) ApproxEqual(o Vector) bool {
	return floatEqual(v.X, o.X) && floatEqual(v.Y, o.Y)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// floatEqual returns true if two float64 values are approximately equal.
func floatEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= epsilon
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{X: left, Y: top, Width: width, Height: height}
}

// RectFromPosSize constructs a Rect from a position and a size.
func RectFromPosSize(pos, size Vector) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.X, Height: size.Y}
}

// Position returns the top-left corner.
func (r Rect) Position() Vector {
	return Vector{X: r.X, Y: r.Y}
}

// Size returns the width and height as a vector.
func (r Rect) Size() Vector {
	return Vector{X: r.Width, Y: r.Height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether p lies inside r. Edges are inclusive.
func (r Rect) Contains(p Vector) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.Right() && p.Y <= r.Bottom()
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Translate returns a new rect offset by d.
func (r Rect) Translate(d Vector) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, Width: r.Width, Height: r.Height}
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.X, other.X)
	top := math.Max(r.Y, other.Y)
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	left := math.Min(r.X, other.X)
	top := math.Min(r.Y, other.Y)
	right := math.Max(r.Right(), other.Right())
	bottom := math.Max(r.Bottom(), other.Bottom())
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// Deflate shrinks r by t on every side. The result never has negative size.
func (r Rect) Deflate(t Thickness) Rect {
	return Rect{
		X:      r.X + t.Left,
		Y:      r.Y + t.Top,
		Width:  math.Max(0, r.Width-t.Horizontal()),
		Height: math.Max(0, r.Height-t.Vertical()),
	}
}

// Inflate grows r by t on every side.
func (r Rect) Inflate(t Thickness) Rect {
	return Rect{
		X:      r.X - t.Left,
		Y:      r.Y - t.Top,
		Width:  r.Width + t.Horizontal(),
		Height: r.Height + t.Vertical(),
	}
}

// Thickness is a four-sided measure used for margins and border strokes.
type Thickness struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Uniform returns a thickness of v on every side.
func Uniform(v float64) Thickness {
	return Thickness{Left: v, Top: v, Right: v, Bottom: v}
}

// Symmetric returns a thickness of h on the left and right and v on the top and bottom.
func Symmetric(h, v float64) Thickness {
	return Thickness{Left: h, Top: v, Right: h, Bottom: v}
}

// Horizontal returns Left + Right.
func (t Thickness) Horizontal() float64 { return t.Left + t.Right }

// Vertical returns Top + Bottom.
func (t Thickness) Vertical() float64 { return t.Top + t.Bottom }

// Axes returns the total thickness along each axis.
func (t Thickness) Axes() Vector {
	return Vector{X: t.Horizontal(), Y: t.Vertical()}
}

// Offset returns the top-left displacement (Left, Top).
func (t Thickness) Offset() Vector {
	return Vector{X: t.Left, Y: t.Top}
}

// Sanitize replaces NaN and negative sides with zero.
func (t Thickness) Sanitize() Thickness {
	return Thickness{
		Left:   sanitize(t.Left),
		Top:    sanitize(t.Top),
		Right:  sanitize(t.Right),
		Bottom: sanitize(t.Bottom),
	}
}
