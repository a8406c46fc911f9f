// Package normalize turns drawings, tables and vector files into a single
// polygon (or point set) expressed in EPSG:4326.
package normalize

import (
	"fmt"
	"strings"

	"github.com/woozymasta/geoparcel/internal/tabular"

	"github.com/paulmach/orb/geojson"
)

// Source tells where an input came from.
type Source int

const (
	// SourceUpload is a file supplied by the user.
	SourceUpload Source = iota
	// SourceDrawing is a shape completed on the drawing surface.
	SourceDrawing
)

func (s Source) String() string {
	if s == SourceDrawing {
		return "drawing"
	}
	return "upload"
}

// Input is one of RawFeature, PointTable, RingTable or VectorFile.
type Input interface {
	Source() Source
}

// RawFeature is the feature emitted by the drawing surface for a completed shape.
type RawFeature struct {
	Feature *geojson.Feature
}

// PointTable is a table of point observations.
type PointTable struct {
	Table tabular.Table
}

// RingTable is a table of ordered boundary vertices.
type RingTable struct {
	Table tabular.Table
}

// VectorFile is the raw content of an uploaded GeoJSON document.
type VectorFile struct {
	Name string
	Data []byte
}

func (RawFeature) Source() Source { return SourceDrawing }
func (PointTable) Source() Source { return SourceUpload }
func (RingTable) Source() Source  { return SourceUpload }
func (VectorFile) Source() Source { return SourceUpload }

// TableMode selects how a table upload is interpreted.
type TableMode string

const (
	// ModePoints reads rows as independent observations.
	ModePoints TableMode = "points"
	// ModeRing reads rows as the ordered vertices of a boundary.
	ModeRing TableMode = "ring"
)

// ParseTableMode accepts "points", "ring" or an empty string (points).
func ParseTableMode(s string) (TableMode, error) {
	switch TableMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModePoints:
		return ModePoints, nil
	case ModeRing:
		return ModeRing, nil
	default:
		return "", fmt.Errorf("unknown table mode %q, expected %q or %q", s, ModePoints, ModeRing)
	}
}

func (m TableMode) wrap(t tabular.Table) Input {
	if m == ModeRing {
		return RingTable{Table: t}
	}
	return PointTable{Table: t}
}
