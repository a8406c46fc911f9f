// Package export writes a polygon as a downloadable GeoJSON document.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
)

// MIMEType is the media type of exported documents (RFC 7946).
const MIMEType = "application/geo+json"

// DefaultBaseName is used when the user does not choose a file name.
const DefaultBaseName = "my_area"

// Options controls output formatting.
type Options struct {
	// Compact drops indentation and whitespace.
	Compact bool
}

// Serialize wraps the polygon in a FeatureCollection holding exactly one Feature.
// Keys are emitted in a fixed order, so identical input gives identical bytes.
// The polygon is not validated here; callers must only pass valid geometry.
func Serialize(p orb.Polygon, props geojson.Properties, opts Options) ([]byte, error) {
	feature := geojson.NewFeature(p)
	for k, v := range props {
		feature.Properties[k] = v
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return nil, fmt.Errorf("encode feature collection: %w", err)
	}

	if !opts.Compact {
		return buf.Bytes(), nil
	}

	m := minify.New()
	m.AddFunc(MIMEType, mjson.Minify)

	out, err := m.Bytes(MIMEType, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minify feature collection: %w", err)
	}

	return out, nil
}

// Filename builds the download name from a user supplied base name.
// Directory parts and a trailing .geojson are stripped; an empty name falls back to DefaultBaseName.
func Filename(base string) string {
	name := strings.TrimSpace(base)
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".geojson") {
		name = strings.TrimSuffix(name, ext)
	}

	name = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, strings.ContainsRune(`/<>:"|?*`, r):
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, ". ")

	if name == "" {
		name = DefaultBaseName
	}

	return name + ".geojson"
}
