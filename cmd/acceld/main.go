package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"acceld/internal/config"
	"acceld/internal/dispatch"
	"acceld/internal/httpapi"
	"acceld/internal/registry"
	"acceld/pkg/prof"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "acceld",
		Short:         "Tensor inference offload daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var (
		cfgPath      string
		addr         string
		modelsDir    string
		defaultModel string
		timers       bool
		logLevel     string
	)
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the forward/dispatch HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{}
			if cfgPath != "" {
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			// Flags and env fill in whatever the file left unspecified.
			if cfg.Addr == "" {
				cfg.Addr = firstNonEmpty(addr, os.Getenv("ACCELD_ADDR"), ":8080")
			}
			if cfg.ModelsDir == "" {
				cfg.ModelsDir = firstNonEmpty(modelsDir, os.Getenv("ACCELD_MODELS_DIR"), "~/models/torch")
			}
			if cfg.DefaultModel == "" {
				cfg.DefaultModel = defaultModel
			}
			if cfg.LogLevel == "" {
				cfg.LogLevel = firstNonEmpty(logLevel, os.Getenv("ACCELD_LOG_LEVEL"), "info")
			}
			if timers {
				cfg.TimersEnabled = true
			}
			return serveDaemon(cfg)
		},
	}
	serve.Flags().StringVar(&cfgPath, "config", "", "Config file (yaml/json/toml)")
	serve.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080")
	serve.Flags().StringVar(&modelsDir, "models-dir", "", "Directory to scan for *.pt / *.pth model artifacts")
	serve.Flags().StringVar(&defaultModel, "default-model", "", "Default model id when request omits model")
	serve.Flags().BoolVar(&timers, "timers", false, "Enable the named-timer diagnostic service")
	serve.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error")
	root.AddCommand(serve)
	return root
}

func serveDaemon(cfg config.Config) error {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	httpapi.SetLogger(logger)
	if cfg.MaxBodyBytes > 0 {
		httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	}
	if origins := os.Getenv("ACCELD_CORS_ORIGINS"); origins != "" {
		httpapi.SetCORSOptions(true,
			strings.Split(origins, ","),
			[]string{"GET", "POST"},
			[]string{"Content-Type"})
	}

	catalog, err := registry.LoadDir(cfg.ModelsDir)
	if err != nil {
		logger.Error().Err(err).Str("dir", cfg.ModelsDir).Msg("failed to load model catalog")
		return err
	}
	d := dispatch.New(dispatch.Config{
		Catalog:      catalog,
		DefaultModel: cfg.DefaultModel,
		Timers:       prof.New(cfg.TimersEnabled),
		Logger:       &logger,
	})
	defer d.Close()

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(d)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Int("models", len(catalog)).Msg("acceld listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
