package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/TimurManjosov/bfhl/internal/answer"
	"github.com/TimurManjosov/bfhl/internal/api"
	"github.com/TimurManjosov/bfhl/internal/config"
	"github.com/TimurManjosov/bfhl/internal/dispatch"
	"github.com/TimurManjosov/bfhl/internal/logging"
	"github.com/TimurManjosov/bfhl/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New("info", "json", os.Stderr)
		bootLogger.Fatal().Err(err).Msg("config")
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	ctx := context.Background()
	telemetry.Init()
	shutdownTracing, err := telemetry.InitTracing(ctx, cfg.OTLPEndpoint, cfg.AppEnv)
	if err != nil {
		logger.Fatal().Err(err).Msg("tracing")
	}

	srvs, err := newServers(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("setup")
	}

	var g errgroup.Group
	g.Go(func() error {
		logger.Info().
			Str("addr", cfg.HTTPAddr).
			Bool("ai_live", srvs.resolver.Live()).
			Str("generator", srvs.generator).
			Msg("listening")
		return serve(srvs.api)
	})
	if srvs.metrics != nil {
		g.Go(func() error {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
			return serve(srvs.metrics)
		})
	}
	go func() {
		if err := g.Wait(); err != nil {
			logger.Fatal().Err(err).Msg("server")
		}
	}()

	ops := map[string]gfshutdown.Operation{
		"http": func(ctx context.Context) error {
			return srvs.api.Shutdown(ctx)
		},
		"tracing": func(ctx context.Context) error {
			return shutdownTracing(ctx)
		},
	}
	if srvs.metrics != nil {
		ops["metrics"] = func(ctx context.Context) error {
			return srvs.metrics.Shutdown(ctx)
		}
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, ops)
	exitCode := <-wait
	logger.Info().Int("exit_code", exitCode).Msg("stopped")
	os.Exit(exitCode)
}

// servers is the wired process: the public API server, the optional metrics
// server and the resolver behind the AI operation.
type servers struct {
	api       *http.Server
	metrics   *http.Server
	resolver  *answer.Resolver
	generator string
}

// newServers wires the resolver, dispatcher and routers from cfg without
// starting any listener. Without a Gemini key the resolver uses the fallback table.
func newServers(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*servers, error) {
	var gen answer.Generator
	generator := "fallback"
	if cfg.AIEnabled() {
		gemini, err := answer.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		gen = gemini
		generator = gemini.Name()
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set, AI questions use the fallback table")
	}

	resolver := answer.NewResolver(gen, cfg.AITimeout, logger)
	requestTimeout := cfg.AITimeout + 5*time.Second
	srvAPI := api.NewServer(dispatch.New(resolver, logger), cfg.OfficialEmail, requestTimeout, logger)

	s := &servers{
		api: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      srvAPI.Router(),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: requestTimeout + 5*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		resolver:  resolver,
		generator: generator,
	}

	if cfg.MetricsAddr != "" {
		mr := chi.NewRouter()
		mr.Handle("/metrics", telemetry.Handler())
		s.metrics = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mr,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return s, nil
}

func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
