package normalize

import (
	"fmt"
	"strings"
)

// UnsupportedFormatError is returned for uploads with an unknown extension.
type UnsupportedFormatError struct {
	Name string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Ext
	if ext == "" {
		ext = "no extension"
	}

	return fmt.Sprintf("unsupported file format %q (%s), expected one of: %s",
		e.Name, ext, strings.Join(SupportedExtensions, ", "))
}

// UnsupportedGeometryTypeError is returned for geometries other than polygons.
type UnsupportedGeometryTypeError struct {
	Type string
}

func (e *UnsupportedGeometryTypeError) Error() string {
	return fmt.Sprintf("unsupported geometry type %q, only Polygon and MultiPolygon shapes are accepted", e.Type)
}
