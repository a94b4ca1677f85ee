package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/WebSolutionsGroup/esqrt-sub001/admin"
	"github.com/WebSolutionsGroup/esqrt-sub001/cfg"
	"github.com/WebSolutionsGroup/esqrt-sub001/dml"
	"github.com/WebSolutionsGroup/esqrt-sub001/engine"
	"github.com/WebSolutionsGroup/esqrt-sub001/history"
	"github.com/WebSolutionsGroup/esqrt-sub001/telemetry"
)

func main() {
	flag.Parse()

	// Load configuration
	err := cfg.Load(*cfg.ConfigPathFlag)
	if err != nil {
		panic(err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}

	// Setup logging
	var writer io.Writer = zerolog.NewConsoleWriter()
	if cfg.Config.Logging.Format == "json" {
		writer = os.Stdout
	}
	gLog := zerolog.New(writer).
		With().
		Timestamp().
		Logger()

	if cfg.Config.Logging.Verbose {
		log.Logger = gLog.Level(zerolog.DebugLevel)
	} else {
		log.Logger = gLog.Level(zerolog.InfoLevel)
	}

	log.Info().Msg("DML Workbench - statement parser and execution engine")
	log.Debug().Msg("Initializing telemetry")
	telemetry.InitializeTelemetry(cfg.Config.Prometheus.Enabled)

	// History: SQLite store plus any configured broker sinks
	var historyLogger *history.Logger
	var historyStore *history.Store
	if cfg.Config.History.Enabled {
		historyLogger = history.NewLogger()

		storePath := cfg.Config.History.Path
		if !filepath.IsAbs(storePath) {
			storePath = filepath.Join(cfg.Config.DataDir, storePath)
		}
		historyStore, err = history.NewStore(storePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open history store")
			return
		}
		defer historyStore.Close()
		historyLogger.Attach("sqlite", historyStore)

		for _, sinkCfg := range cfg.Config.History.Sinks {
			sink, err := history.NewSink(sinkCfg)
			if err != nil {
				log.Fatal().Err(err).Str("type", sinkCfg.Type).Msg("Failed to create history sink")
				return
			}
			historyLogger.Attach(sinkCfg.Type, sink)
			log.Info().Str("type", sinkCfg.Type).Msg("History sink attached")
		}
		defer historyLogger.Close()
	}

	// Classification pipeline with parse cache
	pipeline, err := dml.NewPipeline(cfg.Config.DML.ParseCacheSize, dml.ParserOptions{
		ScriptIDPrefix: cfg.Config.DML.ScriptIDPrefix,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize DML pipeline")
		return
	}

	guard, err := engine.NewTableGuard(cfg.Config.DML.AllowedTables)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid allowed_tables configuration")
		return
	}

	// Platform collaborators attach here when the host adapter is
	// configured; without them the engine still serves previews,
	// validation and instruction generation.
	var queries engine.QueryEngine
	var records engine.RecordStore

	eng := engine.NewEngine(queries, records, guard, engine.Options{
		EnableLiveListCreation: cfg.Config.DML.EnableLiveListCreation,
	})

	var logger engine.HistoryLogger
	if historyLogger != nil {
		logger = historyLogger
	}
	processor := engine.NewProcessor(pipeline, eng, logger)

	// HTTP API
	handlers := admin.NewHandlers(processor, historyStore, queries)
	server := admin.NewServer(cfg.Config.Server.BindAddress, cfg.Config.Server.Port, handlers)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("Graceful shutdown failed")
		}
	}
}
