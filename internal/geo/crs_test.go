package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCRS(t *testing.T) {
	cases := map[string]CRS{
		"":                              WGS84,
		"EPSG:4326":                     WGS84,
		"urn:ogc:def:crs:EPSG::4326":    WGS84,
		"urn:ogc:def:crs:OGC:1.3:CRS84": WGS84,
		"EPSG:3857":                     WebMercator,
		"urn:ogc:def:crs:EPSG::3857":    WebMercator,
		"EPSG:900913":                   WebMercator,
	}

	for name, want := range cases {
		got, err := ParseCRS(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	got, err := ParseCRS("http://www.opengis.net/def/crs/EPSG/0/3857")
	require.NoError(t, err)
	assert.Equal(t, WebMercator, got)
}

func TestParseCRSUnsupported(t *testing.T) {
	for _, name := range []string{"EPSG:32633", "urn:ogc:def:crs:EPSG::2154", "local", "EPSG:abc"} {
		_, err := ParseCRS(name)

		var ue *UnsupportedCRSError
		require.ErrorAs(t, err, &ue, name)
		assert.Equal(t, name, ue.Name)
	}
}

func TestToWGS84FromWebMercator(t *testing.T) {
	src := orb.Polygon{{{0, 0}, {0, 1113194.9079327357}, {1113194.9079327357, 0}, {0, 0}}}

	got, err := ToWGS84(src, WebMercator)
	require.NoError(t, err)

	assert.InDelta(t, 0, got[0][0].Lon(), 1e-9)
	assert.InDelta(t, 0, got[0][0].Lat(), 1e-9)
	assert.InDelta(t, 10, got[0][2].Lon(), 1e-6)
	assert.InDelta(t, 9.95, got[0][1].Lat(), 0.01)

	assert.Equal(t, 1113194.9079327357, src[0][2].X(), "source must not be modified")
}

func TestToWGS84Identity(t *testing.T) {
	src := orb.Polygon{{{1, 2}, {3, 4}, {5, 2}, {1, 2}}}

	got, err := ToWGS84(src, WGS84)
	require.NoError(t, err)
	assert.Equal(t, src, got)

	got[0][0] = orb.Point{9, 9}
	assert.Equal(t, orb.Point{1, 2}, src[0][0])
}

func TestToWGS84Unsupported(t *testing.T) {
	_, err := ToWGS84(orb.Polygon{}, CRS(2154))

	var ue *UnsupportedCRSError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "EPSG:2154", ue.Name)
}
