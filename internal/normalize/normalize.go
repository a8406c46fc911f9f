package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/woozymasta/geoparcel/internal/geo"
	"github.com/woozymasta/geoparcel/internal/tabular"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

// Kind is the shape of a normalized result.
type Kind int

const (
	// KindPolygon carries a single polygon.
	KindPolygon Kind = iota
	// KindPoints carries point observations.
	KindPoints
)

func (k Kind) String() string {
	if k == KindPoints {
		return "points"
	}
	return "polygon"
}

// Result is the canonical output of Normalize. Coordinates are always EPSG:4326.
type Result struct {
	Kind    Kind
	Polygon orb.Polygon
	Points  orb.MultiPoint

	// Properties of the selected source feature, if any.
	Properties geojson.Properties

	// Features or polygon parts discarded because only the first one is used.
	Dropped int
}

// Normalize resolves any input variant to one canonical geometry.
// It has no side effects apart from logging.
func Normalize(in Input) (Result, error) {
	switch in := in.(type) {
	case RawFeature:
		if in.Feature == nil {
			return Result{}, geo.Malformed("drawing event carries no feature")
		}
		res, err := fromGeometry(in.Feature.Geometry)
		if err != nil {
			return Result{}, err
		}
		res.Properties = in.Feature.Properties.Clone()
		return finish(res)

	case VectorFile:
		res, err := fromVector(in)
		if err != nil {
			return Result{}, err
		}
		return finish(res)

	case RingTable:
		ring, err := tabular.Ring(in.Table)
		if err != nil {
			return Result{}, err
		}
		return finish(Result{Kind: KindPolygon, Polygon: orb.Polygon{ring}})

	case PointTable:
		points, err := tabular.Points(in.Table)
		if err != nil {
			return Result{}, err
		}
		return finish(Result{Kind: KindPoints, Points: points})

	default:
		return Result{}, fmt.Errorf("unknown input type %T", in)
	}
}

func finish(res Result) (Result, error) {
	if res.Kind == KindPoints {
		for _, p := range res.Points {
			if err := geo.CheckCoordinate(p); err != nil {
				return Result{}, err
			}
		}
		return res, nil
	}

	if err := geo.CheckPolygon(res.Polygon); err != nil {
		return Result{}, err
	}
	for _, ring := range res.Polygon {
		if err := geo.CheckRing(ring); err != nil {
			return Result{}, err
		}
	}

	return res, nil
}

// legacyCRS is the pre RFC 7946 "crs" member, still written by many GIS tools.
type legacyCRS struct {
	Type       string `json:"type"`
	Properties struct {
		Name string `json:"name"`
		Code int    `json:"code"`
	} `json:"properties"`
}

type documentHeader struct {
	Type string     `json:"type"`
	CRS  *legacyCRS `json:"crs"`
}

func (c *legacyCRS) name() string {
	if c == nil {
		return ""
	}
	if c.Properties.Name != "" {
		return c.Properties.Name
	}
	if c.Properties.Code != 0 {
		return "EPSG:" + strconv.Itoa(c.Properties.Code)
	}

	return c.Type
}

func fromVector(in VectorFile) (Result, error) {
	var header documentHeader
	if err := json.Unmarshal(in.Data, &header); err != nil {
		return Result{}, &geo.MalformedInputError{Reason: in.Name + " is not valid JSON", Err: err}
	}

	crs, err := geo.ParseCRS(header.CRS.name())
	if err != nil {
		return Result{}, err
	}

	var res Result
	switch header.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(in.Data)
		if err != nil {
			return Result{}, &geo.MalformedInputError{Reason: in.Name + " is not a valid feature collection", Err: err}
		}
		if len(fc.Features) == 0 {
			return Result{}, geo.Malformed("%s contains no features", in.Name)
		}

		res, err = fromGeometry(fc.Features[0].Geometry)
		if err != nil {
			return Result{}, err
		}
		res.Properties = fc.Features[0].Properties.Clone()

		if extra := len(fc.Features) - 1; extra > 0 {
			res.Dropped += extra
			log.Warn().
				Str("file", in.Name).
				Int("features", len(fc.Features)).
				Msg("Only the first feature is used, the rest are discarded")
		}

	case "Feature":
		f, err := geojson.UnmarshalFeature(in.Data)
		if err != nil {
			return Result{}, &geo.MalformedInputError{Reason: in.Name + " is not a valid feature", Err: err}
		}
		res, err = fromGeometry(f.Geometry)
		if err != nil {
			return Result{}, err
		}
		res.Properties = f.Properties.Clone()

	case "":
		return Result{}, geo.Malformed("%s has no GeoJSON \"type\" member", in.Name)

	default:
		g, err := geojson.UnmarshalGeometry(in.Data)
		if err != nil {
			return Result{}, &geo.MalformedInputError{Reason: in.Name + " is not a valid geometry", Err: err}
		}
		res, err = fromGeometry(g.Geometry())
		if err != nil {
			return Result{}, err
		}
	}

	if crs != geo.WGS84 {
		log.Info().
			Str("file", in.Name).
			Stringer("crs", crs).
			Msg("Reprojecting to EPSG:4326")

		res.Polygon, err = geo.ToWGS84(res.Polygon, crs)
		if err != nil {
			return Result{}, err
		}
	}

	return res, nil
}

func fromGeometry(g orb.Geometry) (Result, error) {
	switch g := g.(type) {
	case orb.Polygon:
		return Result{Kind: KindPolygon, Polygon: g.Clone()}, nil

	case orb.MultiPolygon:
		if len(g) == 0 {
			return Result{Kind: KindPolygon, Polygon: orb.Polygon{}}, nil
		}
		if len(g) > 1 {
			log.Warn().
				Int("parts", len(g)).
				Msg("Only the first polygon of the multipolygon is used")
		}
		return Result{Kind: KindPolygon, Polygon: g[0].Clone(), Dropped: len(g) - 1}, nil

	case orb.Bound:
		return Result{Kind: KindPolygon, Polygon: g.ToPolygon()}, nil

	case nil:
		return Result{}, geo.Malformed("feature has no geometry")

	default:
		return Result{}, &UnsupportedGeometryTypeError{Type: g.GeoJSONType()}
	}
}
