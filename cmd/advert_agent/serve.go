package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/advert-generator/internal/config"
	"github.com/jonathan/advert-generator/internal/db"
	"github.com/jonathan/advert-generator/internal/ingestion"
	"github.com/jonathan/advert-generator/internal/pipeline"
	"github.com/jonathan/advert-generator/internal/server"
	"github.com/jonathan/advert-generator/internal/server/ratelimit"
)

type serveOptions struct {
	addr        string
	maxUploadMB int64
	workers     int
}

func newServeCmd(a *app) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: "Start an HTTP server that exposes REST endpoints for extracting job descriptions and " +
			"generating single or batched adverts. Advert history is kept when DATABASE_URL is set, " +
			"and bearer token auth is enforced when JWT_SECRET is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default :8080)")
	cmd.Flags().Int64Var(&opts.maxUploadMB, "max-upload-mb", server.DefaultMaxUploadBytes>>20, "Maximum request body size in MiB")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Concurrent conversions per batch request (0 = auto)")

	return cmd
}

func runServe(cmd *cobra.Command, a *app, opts *serveOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := a.cfg

	style, err := loadStyle(cfg.StyleFile)
	if err != nil {
		return err
	}

	var store server.Store
	var recorder pipeline.Recorder
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			return err
		}
		store, recorder = database, database
	} else {
		log.Info().Msg("DATABASE_URL not set, advert history disabled")
	}

	jwtCfg, err := config.LoadJWTConfig()
	if err != nil {
		return err
	}
	if jwtCfg == nil {
		log.Warn().Msg("JWT_SECRET not set, API is unauthenticated")
	}

	p, closer, err := buildPipeline(ctx, cfg, pipelineSpec{
		style:    style,
		workers:  resolvePoolSize(opts.workers, cfg.Workers),
		generate: cfg.APIKey != "",
		recorder: recorder,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()
	if cfg.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, advert generation disabled")
	}

	addr := opts.addr
	if addr == "" {
		addr = cfg.Addr
	}
	srv, err := server.New(server.Config{
		Addr:           addr,
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: opts.maxUploadMB << 20,
		JWT:            jwtCfg,
		RateLimit:      ratelimit.LoadConfig(),
	}, server.Deps{
		Pipeline:  p,
		Extractor: ingestion.NewExtractor(),
		Store:     store,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run(ctx)
}
