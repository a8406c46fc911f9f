package validate

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
)

func TestValidateSquare(t *testing.T) {
	square := orb.Polygon{{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}}

	res := Validate(square)

	assert.True(t, res.Valid)
	assert.Empty(t, res.Reason)
	assert.Greater(t, planar.Area(square), 0.0)
}

func TestValidateBowtie(t *testing.T) {
	bowtie := orb.Polygon{{{0, 0}, {1, 1}, {1, 0}, {0, 1}, {0, 0}}}

	res := Validate(bowtie)

	assert.False(t, res.Valid)
	assert.Contains(t, res.Reason, "self-intersection")
	assert.Equal(t,
		"exterior ring has a self-intersection between segment 1 and segment 3 at (0.5, 0.5)",
		res.Reason)
}

func TestValidateIsIdempotent(t *testing.T) {
	for _, p := range []orb.Polygon{
		{{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}},
		{{{0, 0}, {1, 1}, {1, 0}, {0, 1}, {0, 0}}},
		{},
	} {
		assert.Equal(t, Validate(p), Validate(p))
	}
}

func TestValidateAcceptsComplexShapes(t *testing.T) {
	cases := []struct {
		name string
		poly orb.Polygon
	}{
		{"non-convex", orb.Polygon{{{0, 0}, {4, 0}, {4, 4}, {2, 1}, {0, 4}, {0, 0}}}},
		{"many vertices", orb.Polygon{{{0, 0}, {1, -1}, {2, 0}, {3, -1}, {4, 0}, {4, 3}, {0, 3}, {0, 0}}}},
		{"with hole", orb.Polygon{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{2, 2}, {2, 4}, {4, 4}, {4, 2}, {2, 2}},
		}},
		{"two holes", orb.Polygon{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{1, 1}, {1, 2}, {2, 2}, {2, 1}, {1, 1}},
			{{5, 5}, {5, 6}, {6, 6}, {6, 5}, {5, 5}},
		}},
		{"hole touching exterior at a vertex", orb.Polygon{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{0, 5}, {3, 6}, {3, 4}, {0, 5}},
		}},
		{"holes touching at a vertex", orb.Polygon{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{1, 1}, {1, 5}, {5, 5}, {5, 1}, {1, 1}},
			{{5, 5}, {5, 8}, {8, 8}, {8, 5}, {5, 5}},
		}},
		{"repeated vertex", orb.Polygon{{{0, 0}, {0, 1}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}}},
		{"clockwise", orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.poly)
			assert.True(t, res.Valid, res.Reason)
		})
	}
}

func TestValidateFailures(t *testing.T) {
	outer := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}

	cases := []struct {
		name   string
		poly   orb.Polygon
		reason string
	}{
		{"nil", nil, "geometry is empty"},
		{"empty ring", orb.Polygon{{}}, "geometry is empty"},
		{"too short", orb.Polygon{{{0, 0}, {1, 1}, {0, 0}}}, "exterior ring has 3 positions"},
		{"open", orb.Polygon{{{0, 0}, {0, 1}, {1, 1}, {1, 0}}}, "exterior ring is not closed"},
		{"spike", orb.Polygon{{{0, 0}, {2, 0}, {1, 0}, {1, 1}, {0, 0}}}, "self-intersection between segment 1 and segment 2"},
		{"figure eight vertex", orb.Polygon{{{0, 0}, {2, 2}, {0, 2}, {2, 0}, {0, 0}}}, "self-intersection"},
		{"collinear", orb.Polygon{{{0, 0}, {1, 0}, {2, 0}, {0, 0}}}, "self-intersection"},
		{"hole open", orb.Polygon{outer, {{2, 2}, {2, 4}, {4, 4}, {4, 2}}}, "interior ring 1 is not closed"},
		{"hole crossing", orb.Polygon{outer, {{8, 8}, {8, 12}, {12, 12}, {12, 8}, {8, 8}}}, "interior ring 1 crosses the exterior ring"},
		{"hole outside", orb.Polygon{outer, {{20, 20}, {20, 21}, {21, 21}, {21, 20}, {20, 20}}}, "interior ring 1 lies outside the exterior ring"},
		{"holes overlap", orb.Polygon{outer,
			{{1, 1}, {1, 5}, {5, 5}, {5, 1}, {1, 1}},
			{{3, 3}, {3, 7}, {7, 7}, {7, 3}, {3, 3}},
		}, "interior rings 1 and 2 overlap"},
		{"hole nested", orb.Polygon{outer,
			{{1, 1}, {1, 8}, {8, 8}, {8, 1}, {1, 1}},
			{{3, 3}, {3, 4}, {4, 4}, {4, 3}, {3, 3}},
		}, "interior ring 2 lies inside interior ring 1"},
		{"hole touching exterior twice", orb.Polygon{
			{{0, 0}, {4, 0}, {4, 4}, {0, 4}, {0, 0}},
			{{2, 0}, {4, 2}, {2, 4}, {0, 2}, {2, 0}},
		}, "interior ring 1 touches the exterior ring at more than one point, splitting the polygon"},
		{"holes touching twice", orb.Polygon{outer,
			{{1, 1}, {1, 5}, {5, 5}, {5, 1}, {1, 1}},
			{{5, 1}, {7, 3}, {5, 5}, {6, 3}, {5, 1}},
		}, "interior rings 1 and 2 touch at more than one point"},
		{"hole fills exterior", orb.Polygon{outer, {{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}}, "interior ring 1 shares an edge"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Validate(tc.poly)

			assert.False(t, res.Valid)
			assert.Contains(t, res.Reason, tc.reason)
			assert.Contains(t, res.Message(), "Invalid geometry: ")
		})
	}
}

func TestAreaHectares(t *testing.T) {
	// roughly 100 m x 100 m at the equator
	d := 100 / 111_319.49
	plot := orb.Polygon{{{0, 0}, {d, 0}, {d, d}, {0, d}, {0, 0}}}

	assert.InDelta(t, 1.0, AreaHectares(plot), 0.02)
}
