package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRingClosesOpenInput(t *testing.T) {
	points := []orb.Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	ring, err := BuildRing(points)
	require.NoError(t, err)

	assert.True(t, ring.Closed())
	assert.Len(t, ring, 5)
	assert.Equal(t, orb.Point{0, 0}, ring[4])
	assert.Len(t, points, 4, "input must not be modified")
}

func TestBuildRingKeepsClosedInput(t *testing.T) {
	points := []orb.Point{{0, 0}, {0, 1}, {1, 1}, {0, 0}}

	ring, err := BuildRing(points)
	require.NoError(t, err)

	assert.Equal(t, orb.Ring(points), ring)
}

func TestBuildRingKeepsRepeatedInteriorPoints(t *testing.T) {
	points := []orb.Point{{0, 0}, {0, 1}, {0, 1}, {1, 1}}

	ring, err := BuildRing(points)
	require.NoError(t, err)

	assert.Equal(t, orb.Ring{{0, 0}, {0, 1}, {0, 1}, {1, 1}, {0, 0}}, ring)
}

func TestBuildRingInsufficientPoints(t *testing.T) {
	cases := map[string][]orb.Point{
		"empty":               nil,
		"single":              {{1, 1}},
		"two distinct":        {{0, 0}, {1, 1}},
		"two identical":       {{2, 2}, {2, 2}},
		"many rows, 2 unique": {{0, 0}, {1, 1}, {0, 0}, {1, 1}, {0, 0}},
	}

	for name, points := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildRing(points)

			var ipe *InsufficientPointsError
			require.ErrorAs(t, err, &ipe)
			assert.Less(t, ipe.Distinct, 3)
			assert.Equal(t, len(points), ipe.Supplied)
		})
	}
}

func TestBuildRingRejectsNonFinite(t *testing.T) {
	_, err := BuildRing([]orb.Point{{0, 0}, {math.NaN(), 1}, {1, 1}})

	var mie *MalformedInputError
	require.ErrorAs(t, err, &mie)
	assert.Contains(t, mie.Error(), "point 2")
}

func TestCheckCoordinate(t *testing.T) {
	assert.NoError(t, CheckCoordinate(orb.Point{-180, 90}))
	assert.NoError(t, CheckCoordinate(orb.Point{12.5, -45}))

	assert.ErrorContains(t, CheckCoordinate(orb.Point{181, 0}), "longitude")
	assert.ErrorContains(t, CheckCoordinate(orb.Point{0, -90.5}), "latitude")
	assert.ErrorContains(t, CheckCoordinate(orb.Point{math.Inf(1), 0}), "finite")
}

func TestCheckRing(t *testing.T) {
	assert.NoError(t, CheckRing(orb.Ring{{0, 0}, {0, 1}, {1, 1}, {0, 0}}))

	err := CheckRing(orb.Ring{{0, 0}, {1, 1}, {0, 0}, {0, 0}})

	var ipe *InsufficientPointsError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, 2, ipe.Distinct)
	assert.Equal(t, 4, ipe.Supplied)
}
