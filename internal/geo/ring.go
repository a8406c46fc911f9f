// Package geo handles coordinate rings, range checks and reference system conversions.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Coordinate bounds of EPSG:4326.
const (
	MaxLon = 180.0
	MaxLat = 90.0
)

// CheckCoordinate verifies that a point is finite and inside WGS 84 bounds.
func CheckCoordinate(p orb.Point) error {
	lon, lat := p.Lon(), p.Lat()
	if !isFinite(lon) || !isFinite(lat) {
		return Malformed("coordinate (%v, %v) is not a finite number", lon, lat)
	}
	if lon < -MaxLon || lon > MaxLon {
		return Malformed("longitude %v is outside [-180, 180]", lon)
	}
	if lat < -MaxLat || lat > MaxLat {
		return Malformed("latitude %v is outside [-90, 90]", lat)
	}

	return nil
}

// CheckPolygon range checks every position of the polygon.
func CheckPolygon(p orb.Polygon) error {
	for _, ring := range p {
		for _, pt := range ring {
			if err := CheckCoordinate(pt); err != nil {
				return err
			}
		}
	}

	return nil
}

// BuildRing turns an ordered list of (lon, lat) points into a closed ring.
// The first point is appended when the list is not already closed.
// Repeated interior points are kept as is; self-intersections are not checked here.
func BuildRing(points []orb.Point) (orb.Ring, error) {
	for i, p := range points {
		if !isFinite(p[0]) || !isFinite(p[1]) {
			return nil, Malformed("point %d (%v, %v) is not a finite number", i+1, p[0], p[1])
		}
	}

	if err := CheckRing(points); err != nil {
		return nil, err
	}

	ring := make(orb.Ring, len(points), len(points)+1)
	copy(ring, points)
	if !ring.Closed() {
		ring = append(ring, ring[0])
	}

	return ring, nil
}

// CheckRing rejects rings that cannot bound an area because they hold
// fewer than three distinct coordinates.
func CheckRing(r orb.Ring) error {
	if n := countDistinct(r); n < 3 {
		return &InsufficientPointsError{Distinct: n, Supplied: len(r)}
	}

	return nil
}

func countDistinct(points []orb.Point) int {
	seen := make(map[orb.Point]struct{}, len(points))
	for _, p := range points {
		seen[p] = struct{}{}
	}

	return len(seen)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
