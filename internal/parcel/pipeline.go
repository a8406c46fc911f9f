package parcel

import (
	"errors"

	"github.com/woozymasta/geoparcel/internal/export"
	"github.com/woozymasta/geoparcel/internal/normalize"
	"github.com/woozymasta/geoparcel/internal/validate"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

// ErrNothingToExport is returned by Export on an empty workspace.
var ErrNothingToExport = errors.New("nothing to export: draw or upload an area first")

// Outcome describes what one user action produced.
type Outcome struct {
	Kind       normalize.Kind
	Source     normalize.Source
	Phase      Phase
	Validation validate.Result

	// AreaHectares is set for polygons.
	AreaHectares float64
	// Points is set for point tables.
	Points orb.MultiPoint
	// Dropped counts features or parts discarded by the first-feature rule.
	Dropped int
}

// Process runs one input through normalization and validation.
// Structural errors abort and return the workspace unchanged. Point tables
// are reported but never become the active parcel. Invalid polygons still
// become active so the user sees the reason, but Export refuses them.
func Process(w Workspace, in normalize.Input) (Workspace, Outcome, error) {
	res, err := normalize.Normalize(in)
	if err != nil {
		log.Debug().Err(err).Stringer("source", in.Source()).Msg("Input rejected")
		return w, Outcome{}, err
	}

	out := Outcome{
		Kind:    res.Kind,
		Source:  in.Source(),
		Dropped: res.Dropped,
	}

	if res.Kind == normalize.KindPoints {
		out.Points = res.Points
		out.Phase = w.Phase
		log.Info().
			Int("points", len(res.Points)).
			Msg("Point table loaded, no boundary built")
		return w, out, nil
	}

	p := Parcel{Geometry: res.Polygon, Properties: res.Properties}
	if in.Source() == normalize.SourceDrawing {
		w = w.Draw(p)
	} else {
		w = w.Load(p)
	}

	out.Phase = w.Phase
	out.Validation = validate.Validate(p.Geometry)
	if out.Validation.Valid {
		out.AreaHectares = validate.AreaHectares(p.Geometry)
	}

	log.Info().
		Stringer("source", out.Source).
		Stringer("phase", out.Phase).
		Bool("valid", out.Validation.Valid).
		Str("reason", out.Validation.Reason).
		Float64("area_ha", out.AreaHectares).
		Msg("Geometry processed")

	return w, out, nil
}

// ExportRequest carries the user's choices for a download.
type ExportRequest struct {
	Name       string
	Properties geojson.Properties
	Options    export.Options
}

// Document is a ready to download export.
type Document struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Export validates the active parcel and, only when it is valid, serializes it.
// An invalid result returns a nil Document and the workspace unchanged.
// Exporting a drafted candidate commits it.
func Export(w Workspace, req ExportRequest) (Workspace, validate.Result, *Document, error) {
	active := w.Active()
	if active == nil {
		return w, validate.Result{}, nil, ErrNothingToExport
	}

	res := validate.Validate(active.Geometry)
	if !res.Valid {
		log.Warn().Str("reason", res.Reason).Msg("Export refused, geometry is invalid")
		return w, res, nil, nil
	}

	props := make(geojson.Properties, len(active.Properties)+len(req.Properties))
	for k, v := range active.Properties {
		props[k] = v
	}
	for k, v := range req.Properties {
		props[k] = v
	}

	data, err := export.Serialize(active.Geometry, props, req.Options)
	if err != nil {
		return w, res, nil, err
	}

	w = w.commit()
	doc := &Document{
		Filename: export.Filename(req.Name),
		MIMEType: export.MIMEType,
		Data:     data,
	}

	log.Info().
		Str("file", doc.Filename).
		Stringer("phase", w.Phase).
		Int("bytes", len(data)).
		Msg("GeoJSON exported")

	return w, res, doc, nil
}
