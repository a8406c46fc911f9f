package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/woozymasta/geoparcel/internal/config"
	"github.com/woozymasta/geoparcel/internal/export"
	"github.com/woozymasta/geoparcel/internal/logger"
	"github.com/woozymasta/geoparcel/internal/normalize"
	"github.com/woozymasta/geoparcel/internal/parcel"

	"github.com/jessevdk/go-flags"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
)

// exitInvalid is returned when the geometry was read but failed validation.
const exitInvalid = 2

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input      string   `short:"i" long:"in"       description:"Boundary file (.geojson, .json, .csv, .xlsx)" required:"true"`
	Drawing    string   `short:"d" long:"drawing"  description:"GeoJSON feature redrawn over the input, exported instead of it"`
	Ring       bool     `long:"ring"               description:"Read table rows as the vertices of one boundary"`
	Properties []string `short:"P" long:"property" description:"Extra feature property as key=value (repeatable)"`
	Compact    bool     `long:"compact"            description:"Minify the output"`
	Output     string   `short:"o" long:"out"      description:"Output file path. Writes to stdout if empty"`
	Name       string   `short:"n" long:"name"     description:"Download name used for the output file"`
	ConfigFile string   `short:"c" long:"config"   env:"CONFIG_FILE" description:"Path to configuration file"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	mode, err := normalize.ParseTableMode(cfg.TableMode)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid table mode")
	}
	if opts.Ring {
		mode = normalize.ModeRing
	}

	props, err := parseProperties(cfg.Properties, opts.Properties)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	in, err := normalize.OpenFile(opts.Input, mode)
	if err != nil {
		fail(err)
	}

	ws, out, err := parcel.Process(parcel.Workspace{}, in)
	if err != nil {
		fail(err)
	}

	if out.Kind == normalize.KindPoints && opts.Drawing == "" {
		fmt.Fprintf(os.Stderr, "Loaded %d point observations; use --ring to build a boundary from them\n", len(out.Points))
		return
	}

	if opts.Drawing != "" {
		data, err := os.ReadFile(opts.Drawing)
		if err != nil {
			fail(err)
		}
		feature, err := geojson.UnmarshalFeature(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s is not a GeoJSON feature: %v\n", opts.Drawing, err)
			os.Exit(1)
		}
		if ws, _, err = parcel.Process(ws, normalize.RawFeature{Feature: feature}); err != nil {
			fail(err)
		}
	}

	name := opts.Name
	if name == "" {
		name = cfg.DefaultName
	}

	ws, res, doc, err := parcel.Export(ws, parcel.ExportRequest{
		Name:       name,
		Properties: props,
		Options:    export.Options{Compact: opts.Compact || cfg.Compact},
	})
	if err != nil {
		fail(err)
	}

	fmt.Fprintln(os.Stderr, res.Message())
	if !res.Valid {
		os.Exit(exitInvalid)
	}

	if opts.Output == "" {
		if _, err := os.Stdout.Write(doc.Data); err != nil {
			fail(err)
		}
		return
	}

	if err := os.WriteFile(opts.Output, doc.Data, 0644); err != nil {
		fail(err)
	}
	fmt.Fprintf(os.Stderr, "Saved %s as %s (%s)\n", doc.Filename, opts.Output, ws.Phase)
}

// parseProperties merges configured properties with key=value pairs from the command line.
func parseProperties(base map[string]any, pairs []string) (geojson.Properties, error) {
	props := make(geojson.Properties, len(base)+len(pairs))
	for k, v := range base {
		props[k] = v
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("property %q is not key=value", pair)
		}
		props[key] = value
	}

	return props, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
