package server

import (
	"github.com/woozymasta/geoparcel/internal/config"
	"github.com/woozymasta/geoparcel/internal/normalize"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

// maxMemory is the part of a multipart form kept in memory; the rest spills to temp files.
const maxMemory = 8 << 20

// ServerContext holds dependencies for request handlers.
// It carries configuration only; no parcel state survives a request.
type ServerContext struct {
	Config     *config.Config
	TableMode  normalize.TableMode
	Properties geojson.Properties
}

// NewServerContext validates the configuration derived settings.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	mode, err := normalize.ParseTableMode(cfg.TableMode)
	if err != nil {
		return nil, err
	}

	props := make(geojson.Properties, len(cfg.Properties))
	for k, v := range cfg.Properties {
		props[k] = v
	}

	log.Info().
		Str("table_mode", string(mode)).
		Int64("max_upload_mb", cfg.MaxUploadMB).
		Int("properties", len(props)).
		Bool("compact", cfg.Compact).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:     cfg,
		TableMode:  mode,
		Properties: props,
	}, nil
}
