package normalize

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/woozymasta/geoparcel/internal/geo"
	"github.com/woozymasta/geoparcel/internal/tabular"

	"github.com/rs/zerolog/log"
)

// SupportedExtensions lists the upload formats, in the order shown to users.
var SupportedExtensions = []string{".xlsx", ".csv", ".geojson", ".json"}

// ReadUpload reads an uploaded stream completely and maps it to an Input
// according to the declared file name. Tables become PointTable or RingTable
// depending on mode.
func ReadUpload(name string, r io.Reader, mode TableMode) (Input, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !isSupported(ext) {
		return nil, &UnsupportedFormatError{Name: name, Ext: ext}
	}

	// The whole body is buffered first so a failed read never reaches a parser.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &geo.MalformedInputError{Reason: "cannot read " + name, Err: err}
	}
	if len(data) == 0 {
		return nil, geo.Malformed("%s is empty", name)
	}

	log.Debug().
		Str("file", name).
		Str("format", ext).
		Int("bytes", len(data)).
		Msg("Upload received")

	switch ext {
	case ".csv":
		t, err := tabular.ReadCSV(data)
		if err != nil {
			return nil, err
		}
		return mode.wrap(t), nil

	case ".xlsx":
		t, err := tabular.ReadXLSX(data)
		if err != nil {
			return nil, err
		}
		return mode.wrap(t), nil

	default:
		return VectorFile{Name: name, Data: data}, nil
	}
}

// OpenFile reads a file from disk through ReadUpload.
// The file is closed on every path, including parse failures.
func OpenFile(path string, mode TableMode) (Input, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !isSupported(ext) {
		return nil, &UnsupportedFormatError{Name: filepath.Base(path), Ext: ext}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	return ReadUpload(filepath.Base(path), f, mode)
}

func isSupported(ext string) bool {
	return slices.Contains(SupportedExtensions, ext)
}
