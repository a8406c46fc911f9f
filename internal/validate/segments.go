package validate

import (
	"slices"

	"github.com/paulmach/orb"
)

// segment is one edge of a ring. index is the position of its start vertex.
type segment struct {
	a, b  orb.Point
	index int
}

// segments lists the edges of a closed ring, skipping zero-length edges
// produced by repeated consecutive vertices.
func segments(r orb.Ring) []segment {
	segs := make([]segment, 0, len(r))
	for i := 0; i+1 < len(r); i++ {
		if r[i] == r[i+1] {
			continue
		}
		segs = append(segs, segment{a: r[i], b: r[i+1], index: i})
	}

	return segs
}

// orientation returns >0 for a counter-clockwise turn a->b->c, <0 for clockwise, 0 if collinear.
func orientation(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// onSegment reports whether p, known to be collinear with s, lies within its bounds.
func onSegment(s segment, p orb.Point) bool {
	return min(s.a[0], s.b[0]) <= p[0] && p[0] <= max(s.a[0], s.b[0]) &&
		min(s.a[1], s.b[1]) <= p[1] && p[1] <= max(s.a[1], s.b[1])
}

// crossing reports whether the segments cross at a single interior point
// of both, and where.
func crossing(s, t segment) (orb.Point, bool) {
	d1 := sign(orientation(s.a, s.b, t.a))
	d2 := sign(orientation(s.a, s.b, t.b))
	d3 := sign(orientation(t.a, t.b, s.a))
	d4 := sign(orientation(t.a, t.b, s.b))

	if d1*d2 >= 0 || d3*d4 >= 0 {
		return orb.Point{}, false
	}

	// parametric intersection along s
	rx, ry := s.b[0]-s.a[0], s.b[1]-s.a[1]
	qx, qy := t.b[0]-t.a[0], t.b[1]-t.a[1]
	denom := rx*qy - ry*qx
	u := ((t.a[0]-s.a[0])*qy - (t.a[1]-s.a[1])*qx) / denom

	return orb.Point{s.a[0] + u*rx, s.a[1] + u*ry}, true
}

// touching reports any shared point between two segments, including
// endpoints and collinear overlaps, and returns one such point.
func touching(s, t segment) (orb.Point, bool) {
	if p, ok := crossing(s, t); ok {
		return p, true
	}

	switch {
	case orientation(s.a, s.b, t.a) == 0 && onSegment(s, t.a):
		return t.a, true
	case orientation(s.a, s.b, t.b) == 0 && onSegment(s, t.b):
		return t.b, true
	case orientation(t.a, t.b, s.a) == 0 && onSegment(t, s.a):
		return s.a, true
	case orientation(t.a, t.b, s.b) == 0 && onSegment(t, s.b):
		return s.b, true
	}

	return orb.Point{}, false
}

// overlapping reports a collinear overlap of positive length, returning a point inside it.
func overlapping(s, t segment) (orb.Point, bool) {
	if orientation(s.a, s.b, t.a) != 0 || orientation(s.a, s.b, t.b) != 0 {
		return orb.Point{}, false
	}

	var inside []orb.Point
	for _, p := range []orb.Point{t.a, t.b} {
		if onSegment(s, p) {
			inside = append(inside, p)
		}
	}
	for _, p := range []orb.Point{s.a, s.b} {
		if onSegment(t, p) {
			inside = append(inside, p)
		}
	}

	for i := range inside {
		for j := i + 1; j < len(inside); j++ {
			if inside[i] != inside[j] {
				return orb.Point{(inside[i][0] + inside[j][0]) / 2, (inside[i][1] + inside[j][1]) / 2}, true
			}
		}
	}

	return orb.Point{}, false
}

// selfIntersection finds the first pair of edges of a ring that meet anywhere
// other than the vertex shared by consecutive edges.
func selfIntersection(r orb.Ring) (i, j int, at orb.Point, found bool) {
	segs := segments(r)
	n := len(segs)

	for x := 0; x < n; x++ {
		for y := x + 1; y < n; y++ {
			s, t := segs[x], segs[y]

			// consecutive edges share a vertex and may only meet there
			if y == x+1 || (x == 0 && y == n-1) {
				if p, ok := overlapping(s, t); ok {
					return s.index, t.index, p, true
				}
				continue
			}

			if p, ok := touching(s, t); ok {
				return s.index, t.index, p, true
			}
		}
	}

	return 0, 0, orb.Point{}, false
}

// touchPoints lists the distinct points where two rings meet, in the order found.
func touchPoints(a, b orb.Ring) []orb.Point {
	var points []orb.Point
	for _, s := range segments(a) {
		for _, t := range segments(b) {
			p, ok := touching(s, t)
			if ok && !slices.Contains(points, p) {
				points = append(points, p)
			}
		}
	}

	return points
}

// onBoundary reports whether p lies on any edge of the ring.
func onBoundary(r orb.Ring, p orb.Point) bool {
	for _, s := range segments(r) {
		if orientation(s.a, s.b, p) == 0 && onSegment(s, p) {
			return true
		}
	}

	return false
}
