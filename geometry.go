package patchepi

import "fmt"

// Point is a signed integer coordinate on the grid.
type Point struct {
	X, Y int
}

// Add returns the point translated by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rectangle is an axis-aligned, half-open region [Origin.X, Origin.X+Size.X)
// x [Origin.Y, Origin.Y+Size.Y). Size must be non-negative.
type Rectangle struct {
	Origin Point
	Size   Point
}

// NewRectangle builds a rectangle from an origin and a non-negative size.
func NewRectangle(origin, size Point) Rectangle {
	return Rectangle{Origin: origin, Size: size}
}

// Left, Top, Right, Bottom return the rectangle's bounding coordinates.
// Right and Bottom are exclusive.
func (r Rectangle) Left() int   { return r.Origin.X }
func (r Rectangle) Top() int    { return r.Origin.Y }
func (r Rectangle) Right() int  { return r.Origin.X + r.Size.X }
func (r Rectangle) Bottom() int { return r.Origin.Y + r.Size.Y }

// Empty reports whether the rectangle covers zero area.
func (r Rectangle) Empty() bool {
	return r.Size.X <= 0 || r.Size.Y <= 0
}

// Contains reports whether p lies within the half-open rectangle.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.Left() && p.X < r.Right() &&
		p.Y >= r.Top() && p.Y < r.Bottom()
}

// Overlaps reports whether r and o share any area.
func (r Rectangle) Overlaps(o Rectangle) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// Intersect returns the overlapping region of r and o. If they do not
// overlap, the returned rectangle is empty (zero size).
func (r Rectangle) Intersect(o Rectangle) Rectangle {
	left := max(r.Left(), o.Left())
	top := max(r.Top(), o.Top())
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right <= left || bottom <= top {
		return Rectangle{}
	}
	return Rectangle{
		Origin: Point{left, top},
		Size:   Point{right - left, bottom - top},
	}
}

// Translate returns a copy of r shifted by (dx, dy).
func (r Rectangle) Translate(dx, dy int) Rectangle {
	return Rectangle{Origin: r.Origin.Add(dx, dy), Size: r.Size}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("(%s,%s)", r.Origin, r.Size)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
