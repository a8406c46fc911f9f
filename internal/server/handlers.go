// Package server exposes the parcel pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/woozymasta/geoparcel/internal/export"
	"github.com/woozymasta/geoparcel/internal/geo"
	"github.com/woozymasta/geoparcel/internal/normalize"
	"github.com/woozymasta/geoparcel/internal/parcel"
	"github.com/woozymasta/geoparcel/internal/tabular"
	"github.com/woozymasta/geoparcel/internal/validate"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
	Found   []string `json:"found,omitempty"`
}

type validationResponse struct {
	Valid        bool    `json:"valid"`
	Message      string  `json:"message"`
	Reason       string  `json:"reason,omitempty"`
	Phase        string  `json:"phase,omitempty"`
	AreaHectares float64 `json:"area_ha,omitempty"`
	Dropped      int     `json:"dropped,omitempty"`
}

type pointsResponse struct {
	Kind    string       `json:"kind"`
	Count   int          `json:"count"`
	Message string       `json:"message"`
	Points  [][2]float64 `json:"points"`
	BBox    *[4]float64  `json:"bbox,omitempty"`
}

type formatsResponse struct {
	Extensions []string `json:"extensions"`
	TableModes []string `json:"table_modes"`
	Columns    []string `json:"columns"`
	MIMEType   string   `json:"mime_type"`
}

// HandleFormats lists the accepted upload formats.
func (s *ServerContext) HandleFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, formatsResponse{
		Extensions: normalize.SupportedExtensions,
		TableModes: []string{string(normalize.ModePoints), string(normalize.ModeRing)},
		Columns:    []string{tabular.ColumnLongitude, tabular.ColumnLatitude},
		MIMEType:   export.MIMEType,
	})
}

// HandleParcels builds a parcel from an uploaded file and/or a drawn shape
// and returns it as a GeoJSON download when valid.
//
// Form fields: file (upload), drawing (GeoJSON Feature), name, mode.
// When both are present the drawing is a redraw compared against the upload
// and is the one exported.
func (s *ServerContext) HandleParcels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxUploadBytes())
	// url-encoded forms carrying only a drawing are accepted too
	if err := r.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, requestError(err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	mode := s.TableMode
	if v := r.FormValue("mode"); v != "" {
		m, err := normalize.ParseTableMode(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_mode", Message: err.Error()})
			return
		}
		mode = m
	}

	var (
		ws  parcel.Workspace
		out parcel.Outcome
	)

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		in, readErr := normalize.ReadUpload(header.Filename, file, mode)
		_ = file.Close()
		if readErr != nil {
			writeError(w, readErr)
			return
		}
		if ws, out, err = parcel.Process(ws, in); err != nil {
			writeError(w, err)
			return
		}
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		writeError(w, requestError(err))
		return
	}

	if drawing := r.FormValue("drawing"); drawing != "" {
		feature, err := geojson.UnmarshalFeature([]byte(drawing))
		if err != nil {
			writeError(w, &geo.MalformedInputError{Reason: "drawing is not a GeoJSON feature", Err: err})
			return
		}
		if ws, out, err = parcel.Process(ws, normalize.RawFeature{Feature: feature}); err != nil {
			writeError(w, err)
			return
		}
	}

	if ws.Phase == parcel.Empty {
		if out.Kind == normalize.KindPoints {
			writeJSON(w, http.StatusOK, pointsSummary(out))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "no_input",
			Message: "upload a file or draw an area first",
		})
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = s.Config.DefaultName
	}

	ws, res, doc, err := parcel.Export(ws, parcel.ExportRequest{
		Name:       name,
		Properties: s.Properties,
		Options:    export.Options{Compact: s.Config.Compact},
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if !res.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Valid:   false,
			Message: res.Message(),
			Reason:  res.Reason,
			Phase:   ws.Phase.String(),
		})
		return
	}

	w.Header().Set("Content-Type", doc.MIMEType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.Header().Set("X-Parcel-Phase", ws.Phase.String())
	w.Header().Set("X-Parcel-Area-Ha", strconv.FormatFloat(out.AreaHectares, 'f', 4, 64))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}

// HandleValidate validates a GeoJSON document sent as the request body
// without producing an export.
func (s *ServerContext) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.Config.MaxUploadBytes()))
	if err != nil {
		writeError(w, requestError(err))
		return
	}
	if len(data) == 0 {
		writeError(w, geo.Malformed("request body is empty"))
		return
	}

	result, err := normalize.Normalize(normalize.VectorFile{Name: "request body", Data: data})
	if err != nil {
		writeError(w, err)
		return
	}

	res := validate.Validate(result.Polygon)
	resp := validationResponse{
		Valid:   res.Valid,
		Message: res.Message(),
		Reason:  res.Reason,
		Dropped: result.Dropped,
	}
	if res.Valid {
		resp.AreaHectares = validate.AreaHectares(result.Polygon)
	}

	writeJSON(w, http.StatusOK, resp)
}

func pointsSummary(out parcel.Outcome) pointsResponse {
	resp := pointsResponse{
		Kind:    out.Kind.String(),
		Count:   len(out.Points),
		Message: "point observations loaded; upload with mode=ring to build a boundary",
		Points:  make([][2]float64, 0, len(out.Points)),
	}
	for _, p := range out.Points {
		resp.Points = append(resp.Points, [2]float64{p.Lon(), p.Lat()})
	}
	if len(out.Points) > 0 {
		b := out.Points.Bound()
		resp.BBox = &[4]float64{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
	}

	return resp
}

// requestError classifies failures reading the request itself.
func requestError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return mbe
	}
	return &geo.MalformedInputError{Reason: "cannot read request", Err: err}
}

func writeError(w http.ResponseWriter, err error) {
	status, resp := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	}
	writeJSON(w, status, resp)
}

// classify maps every error kind to a distinct code and a user readable message.
func classify(err error) (int, errorResponse) {
	resp := errorResponse{Message: err.Error()}

	var (
		insufficient *geo.InsufficientPointsError
		missing      *tabular.MissingColumnsError
		format       *normalize.UnsupportedFormatError
		geomType     *normalize.UnsupportedGeometryTypeError
		crs          *geo.UnsupportedCRSError
		malformed    *geo.MalformedInputError
		tooLarge     *http.MaxBytesError
	)

	switch {
	case errors.As(err, &tooLarge):
		resp.Error = "upload_too_large"
		resp.Message = "upload exceeds " + strconv.FormatInt(tooLarge.Limit>>20, 10) + " MB"
		return http.StatusRequestEntityTooLarge, resp
	case errors.As(err, &insufficient):
		resp.Error = "insufficient_points"
	case errors.As(err, &missing):
		resp.Error = "missing_columns"
		resp.Missing = missing.Missing
		resp.Found = missing.Found
	case errors.As(err, &format):
		resp.Error = "unsupported_format"
	case errors.As(err, &geomType):
		resp.Error = "unsupported_geometry_type"
	case errors.As(err, &crs):
		resp.Error = "unsupported_crs"
	case errors.As(err, &malformed):
		resp.Error = "malformed_input"
	case errors.Is(err, parcel.ErrNothingToExport):
		resp.Error = "no_input"
	default:
		resp.Error = "internal"
		resp.Message = "internal error"
		return http.StatusInternalServerError, resp
	}

	return http.StatusBadRequest, resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}
