package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/woozymasta/geoparcel/internal/geo"

	"github.com/paulmach/orb"
)

// Required column names. Matching is case-sensitive.
const (
	ColumnLatitude  = "latitude"
	ColumnLongitude = "longitude"
)

// MissingColumnsError lists the required columns a table lacks,
// together with the columns it does have.
type MissingColumnsError struct {
	Missing []string
	Found   []string
}

func (e *MissingColumnsError) Error() string {
	found := "none"
	if len(e.Found) > 0 {
		found = strings.Join(e.Found, ", ")
	}

	return fmt.Sprintf("missing required column(s): %s (found: %s)", strings.Join(e.Missing, ", "), found)
}

// Coordinates parses every data row into a (lon, lat) point, in row order.
func Coordinates(t Table) ([]orb.Point, error) {
	latIdx, lonIdx := -1, -1
	for i, name := range t.Columns {
		switch name {
		case ColumnLatitude:
			if latIdx < 0 {
				latIdx = i
			}
		case ColumnLongitude:
			if lonIdx < 0 {
				lonIdx = i
			}
		}
	}

	var missing []string
	if latIdx < 0 {
		missing = append(missing, ColumnLatitude)
	}
	if lonIdx < 0 {
		missing = append(missing, ColumnLongitude)
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing, Found: t.Columns}
	}

	points := make([]orb.Point, 0, len(t.Rows))
	for i, row := range t.Rows {
		rowNum := t.line(i)

		lon, err := parseCell(row, lonIdx, ColumnLongitude, rowNum)
		if err != nil {
			return nil, err
		}
		lat, err := parseCell(row, latIdx, ColumnLatitude, rowNum)
		if err != nil {
			return nil, err
		}

		points = append(points, orb.Point{lon, lat})
	}

	return points, nil
}

// Points maps a table of observations to a point set.
func Points(t Table) (orb.MultiPoint, error) {
	points, err := Coordinates(t)
	if err != nil {
		return nil, err
	}

	return orb.MultiPoint(points), nil
}

// Ring maps a table of ordered boundary vertices to a closed ring.
func Ring(t Table) (orb.Ring, error) {
	points, err := Coordinates(t)
	if err != nil {
		return nil, err
	}

	return geo.BuildRing(points)
}

func parseCell(row []string, idx int, column string, rowNum int) (float64, error) {
	if idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
		return 0, geo.Malformed("row %d: %s is empty", rowNum, column)
	}

	raw := strings.TrimSpace(row[idx])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, geo.Malformed("row %d: %s %q is not a number", rowNum, column, raw)
	}

	return v, nil
}
