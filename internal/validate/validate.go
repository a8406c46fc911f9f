// Package validate checks polygon topology and explains failures in terms
// an end user can act on.
package validate

import (
	"fmt"
	"math"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Result is the outcome of Validate: either valid, or invalid with a reason.
// Invalid geometry is an expected outcome, not an error.
type Result struct {
	Valid  bool
	Reason string
}

// OK is the valid result.
func OK() Result {
	return Result{Valid: true}
}

// Invalid builds an invalid result with a formatted reason.
func Invalid(format string, args ...any) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}

// Message is the text shown to the user.
func (r Result) Message() string {
	if r.Valid {
		return "Geometry is valid, ready to export."
	}
	return "Invalid geometry: " + r.Reason
}

func (r Result) String() string {
	return r.Message()
}

// Validate runs the checks in order and reports the first failure:
// emptiness, exterior ring, interior rings, area.
// Segments and rings are numbered from 1 in reasons.
func Validate(p orb.Polygon) Result {
	if len(p) == 0 || len(p[0]) == 0 {
		return Invalid("geometry is empty")
	}

	exterior := p[0]
	if res := checkRing(exterior, "exterior ring"); !res.Valid {
		return res
	}

	holes := p[1:]
	for k, hole := range holes {
		name := "interior ring " + strconv.Itoa(k+1)
		if res := checkRing(hole, name); !res.Valid {
			return res
		}
		if res := checkHoleInside(exterior, hole, name); !res.Valid {
			return res
		}
	}

	for k := range holes {
		for m := k + 1; m < len(holes); m++ {
			if res := checkHolesDisjoint(holes[k], holes[m], k+1, m+1); !res.Valid {
				return res
			}
		}
	}

	if area := planar.Area(p); !(area > 0) {
		return Invalid("polygon has zero area")
	}

	return OK()
}

// AreaHectares returns the geodesic area of the polygon in hectares.
func AreaHectares(p orb.Polygon) float64 {
	return math.Abs(geo.Area(p)) / 10_000
}

func checkRing(r orb.Ring, name string) Result {
	if len(r) < 4 {
		return Invalid("%s has %d positions, at least 4 are required (3 distinct points plus the closing point)", name, len(r))
	}
	if !r.Closed() {
		return Invalid("%s is not closed: first point %s differs from last point %s",
			name, formatPoint(r[0]), formatPoint(r[len(r)-1]))
	}
	if i, j, at, found := selfIntersection(r); found {
		return Invalid("%s has a self-intersection between segment %d and segment %d at %s",
			name, i+1, j+1, formatPoint(at))
	}

	return OK()
}

func checkHoleInside(exterior, hole orb.Ring, name string) Result {
	for _, hs := range segments(hole) {
		for _, es := range segments(exterior) {
			if at, ok := crossing(hs, es); ok {
				return Invalid("%s crosses the exterior ring at %s", name, formatPoint(at))
			}
			if at, ok := overlapping(hs, es); ok {
				return Invalid("%s shares an edge with the exterior ring at %s", name, formatPoint(at))
			}
		}
	}

	for _, v := range hole {
		if !onBoundary(exterior, v) && !planar.RingContains(exterior, v) {
			return Invalid("%s lies outside the exterior ring (point %s)", name, formatPoint(v))
		}
	}

	// a single shared point is allowed; more split the interior
	if touches := touchPoints(hole, exterior); len(touches) > 1 {
		return Invalid("%s touches the exterior ring at more than one point, splitting the polygon (%s and %s)",
			name, formatPoint(touches[0]), formatPoint(touches[1]))
	}

	return OK()
}

func checkHolesDisjoint(a, b orb.Ring, ka, kb int) Result {
	for _, as := range segments(a) {
		for _, bs := range segments(b) {
			if at, ok := crossing(as, bs); ok {
				return Invalid("interior rings %d and %d overlap at %s", ka, kb, formatPoint(at))
			}
			if at, ok := overlapping(as, bs); ok {
				return Invalid("interior rings %d and %d overlap at %s", ka, kb, formatPoint(at))
			}
		}
	}

	if touches := touchPoints(a, b); len(touches) > 1 {
		return Invalid("interior rings %d and %d touch at more than one point, splitting the polygon (%s and %s)",
			ka, kb, formatPoint(touches[0]), formatPoint(touches[1]))
	}

	if nested(a, b) {
		return Invalid("interior ring %d lies inside interior ring %d", kb, ka)
	}
	if nested(b, a) {
		return Invalid("interior ring %d lies inside interior ring %d", ka, kb)
	}

	return OK()
}

// nested reports whether inner has a vertex strictly inside outer.
func nested(outer, inner orb.Ring) bool {
	for _, v := range inner {
		if !onBoundary(outer, v) && planar.RingContains(outer, v) {
			return true
		}
	}

	return false
}

func formatPoint(p orb.Point) string {
	return "(" + strconv.FormatFloat(p[0], 'f', -1, 64) + ", " + strconv.FormatFloat(p[1], 'f', -1, 64) + ")"
}
