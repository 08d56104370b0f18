package gfx

import "image"

// Path is a fixed polygon. The points are in layer-local coordinates.
type Path struct {
	points    []image.Point
	destroyed bool
}

// NewPath builds a path from points. The slice is copied.
func NewPath(points []image.Point) *Path {
	p := &Path{points: make([]image.Point, len(points))}
	copy(p.points, points)
	return p
}

// Points returns a copy of the path's points.
func (p *Path) Points() []image.Point {
	out := make([]image.Point, len(p.points))
	copy(out, p.points)
	return out
}

// Bounds returns the smallest rectangle containing every point.
func (p *Path) Bounds() image.Rectangle {
	if len(p.points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: p.points[0], Max: p.points[0]}
	for _, pt := range p.points[1:] {
		r.Min.X = min(r.Min.X, pt.X)
		r.Min.Y = min(r.Min.Y, pt.Y)
		r.Max.X = max(r.Max.X, pt.X)
		r.Max.Y = max(r.Max.Y, pt.Y)
	}
	return r
}

// Destroy releases the path. Drawing a destroyed path does nothing.
func (p *Path) Destroy() {
	p.points = nil
	p.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (p *Path) Destroyed() bool {
	return p.destroyed
}
