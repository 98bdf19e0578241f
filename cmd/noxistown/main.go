// Package main is the entry point for Noxis Town.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/samdwyer/noxistown/internal/audio"
	"github.com/samdwyer/noxistown/internal/canvas"
	"github.com/samdwyer/noxistown/internal/config"
	"github.com/samdwyer/noxistown/internal/game"
	"github.com/samdwyer/noxistown/internal/logging"
	"github.com/samdwyer/noxistown/internal/save"
	"github.com/samdwyer/noxistown/internal/telemetry"
	"github.com/samdwyer/noxistown/internal/ui"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg := config.FromEnv(config.Default())

	frontend := flag.String("frontend", "canvas", "frontend to run: canvas or terminal")
	backend := flag.String("save-backend", string(cfg.SaveBackend), "save backend: file, bolt, postgres or none")
	savePath := flag.String("save-path", cfg.SavePath, "save file or bbolt database path")
	seed := flag.Int64("seed", cfg.Seed, "random seed for NPC wandering (0 = random)")
	logFile := flag.String("log-file", "noxistown.log", "log destination for the terminal frontend")
	flag.Parse()

	cfg.SaveBackend = config.SaveBackend(*backend)
	cfg.SavePath = *savePath
	cfg.Seed = *seed

	if err := run(cfg, *frontend, *logFile); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

func run(cfg config.Config, frontend, logFile string) error {
	var (
		logger *zap.Logger
		err    error
	)
	switch frontend {
	case "terminal":
		// The terminal owns stdout while the game runs
		logger, err = logging.ToFile(cfg.LogLevel, cfg.LogFormat, logFile)
	case "canvas":
		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
	default:
		return fmt.Errorf("unknown frontend %q", frontend)
	}
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up OTEL environment variables from our .env variables
	if setupOTelEnv() {
		shutdown, err := telemetry.Setup(ctx, cfg.TraceSampleRatio)
		if err != nil {
			logger.Warn("telemetry setup failed, running without observability", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("error shutting down telemetry", zap.Error(err))
				}
			}()
		}
	}

	logger = logger.With(zap.String("session", telemetry.SessionID()))
	logger.Info("starting",
		zap.String("frontend", frontend),
		zap.String("save_backend", string(cfg.SaveBackend)),
		zap.Int64("seed", cfg.Seed),
	)

	store, err := save.Open(ctx, cfg)
	if err != nil {
		// Progress is lost for this session but the game still runs
		logger.Error("save store unavailable, progress will not be kept", zap.Error(err))
		store = save.Discard{}
	}

	speaker := audio.NewSpeaker(cfg, logger)
	g, err := game.New(ctx, cfg, game.Deps{
		Log:   logger,
		Store: store,
		Audio: speaker,
	})
	if err != nil {
		_ = store.Close()
		_ = speaker.Close()
		return fmt.Errorf("failed to initialize game: %w", err)
	}

	runErr := runFrontend(ctx, frontend, g, logger)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	// Save on the way out even if the context was cancelled
	closeErr := g.Close(context.WithoutCancel(ctx))
	return errors.Join(runErr, closeErr)
}

func runFrontend(ctx context.Context, frontend string, g *game.Game, logger *zap.Logger) error {
	if frontend == "terminal" {
		term, err := ui.NewTerminal(g, logger)
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		return term.Run(ctx)
	}
	return canvas.Run(ctx, g, logger)
}

// setupOTelEnv configures OTEL environment variables from our custom env
// vars. It reports whether an exporter has somewhere to send spans.
func setupOTelEnv() bool {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		return true
	}

	apiKey := os.Getenv("HONEYCOMB_NOXISTOWN_API_KEY")
	if apiKey == "" {
		return false
	}
	dataset := os.Getenv("HONEYCOMB_NOXISTOWN_DATASET")
	if dataset == "" {
		dataset = "noxistown" // default dataset name
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
