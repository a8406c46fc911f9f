package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/woozymasta/geoparcel/internal/config"
	"github.com/woozymasta/geoparcel/internal/logger"
	"github.com/woozymasta/geoparcel/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"     env:"CONFIG_FILE"     description:"Path to configuration file"`
	Addr       string `short:"a" long:"addr"       env:"LISTEN_ADDRESS"  description:"Address to listen on"            default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"       env:"LISTEN_PORT"     description:"Port to listen on"               default:"8080"`
	MaxUpload  int64  `short:"m" long:"max-upload" env:"MAX_UPLOAD_MB"   description:"Upload size limit in MB"`
	TableMode  string `short:"t" long:"table-mode" env:"TABLE_MODE"      description:"How tables are read"             choice:"points" choice:"ring"`
	Compact    bool   `long:"compact"              env:"COMPACT_EXPORT"  description:"Minify exported GeoJSON"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Flags override the file
	if opts.MaxUpload > 0 {
		cfg.MaxUploadMB = opts.MaxUpload
	}
	if opts.TableMode != "" {
		cfg.TableMode = opts.TableMode
	}
	if opts.Compact {
		cfg.Compact = true
	}

	srvCtx, err := server.NewServerContext(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	handler := server.NewRouter(srvCtx)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Str("table_mode", cfg.TableMode).
		Int64("max_upload_mb", cfg.MaxUploadMB).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
