package geo

import (
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// CRS is an EPSG code.
type CRS int

// Reference systems the normalizer understands.
const (
	WGS84       CRS = 4326
	WebMercator CRS = 3857
)

// Legacy and vendor codes that mean spherical Web Mercator.
var crsAliases = map[int]CRS{
	4326:   WGS84,
	3857:   WebMercator,
	900913: WebMercator,
	102100: WebMercator,
	102113: WebMercator,
}

func (c CRS) String() string {
	return "EPSG:" + strconv.Itoa(int(c))
}

// ParseCRS resolves a GeoJSON "crs" name such as "EPSG:3857",
// "urn:ogc:def:crs:EPSG::4326" or "urn:ogc:def:crs:OGC:1.3:CRS84".
// An empty name means the RFC 7946 default, WGS 84.
func ParseCRS(name string) (CRS, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return WGS84, nil
	}

	upper := strings.ToUpper(s)
	if strings.HasSuffix(upper, "CRS84") {
		return WGS84, nil
	}

	// EPSG:3857, urn:ogc:def:crs:EPSG::3857, urn:ogc:def:crs:EPSG:6.6:3857,
	// http://www.opengis.net/def/crs/EPSG/0/3857
	idx := strings.LastIndexAny(upper, ":/")
	if !strings.Contains(upper, "EPSG") || idx < 0 {
		return 0, &UnsupportedCRSError{Name: s}
	}

	code, err := strconv.Atoi(upper[idx+1:])
	if err != nil {
		return 0, &UnsupportedCRSError{Name: s}
	}

	crs, ok := crsAliases[code]
	if !ok {
		return 0, &UnsupportedCRSError{Name: s}
	}

	return crs, nil
}

// ToWGS84 returns a copy of the polygon expressed in EPSG:4326.
// The input polygon is never modified.
func ToWGS84(p orb.Polygon, from CRS) (orb.Polygon, error) {
	switch from {
	case WGS84:
		return p.Clone(), nil
	case WebMercator:
		return project.Polygon(p.Clone(), project.Mercator.ToWGS84), nil
	default:
		return nil, &UnsupportedCRSError{Name: from.String()}
	}
}

func supportedCRSNames() []string {
	names := make([]string, 0, len(crsAliases))
	for code := range crsAliases {
		names = append(names, "EPSG:"+strconv.Itoa(code))
	}
	sort.Strings(names)

	return names
}
