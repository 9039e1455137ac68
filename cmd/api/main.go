package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"studio/internal/collection"
	"studio/internal/gallery"
	"studio/internal/http/handlers"
	httpapi "studio/internal/http/httpapi"
	"studio/internal/infra"
	"studio/internal/prompt"
	"studio/internal/providers/genai"
	"studio/internal/providers/image"
	promptproviders "studio/internal/providers/prompt"
	"studio/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	local, err := storage.NewLocalStore(cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open local data directory")
	}

	// Object-store backend, or an in-memory store in local-only mode.
	var objects storage.ObjectStore
	if cfg.S3Configured() {
		s3store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			Bucket:       cfg.S3Bucket,
			AccessKeyID:  cfg.S3AccessKeyID,
			SecretKey:    cfg.S3SecretKey,
			UsePathStyle: cfg.S3UsePathStyle,
			PublicRead:   cfg.S3PublicRead,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure object storage")
		}
		objects = s3store
		logger.Info().Str("bucket", cfg.S3Bucket).Msg("object storage configured")
	} else {
		objects = storage.NewMemStore("memory://" + cfg.Port)
		logger.Warn().Msg("no S3 bucket configured; gallery runs in local-only mode")
	}

	genaiClient, err := genai.NewClient(genai.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure gemini client")
	}

	sync := gallery.NewSynchronizer(objects, local, logger)
	builder := collection.NewBuilder(local, logger)

	app := handlers.NewApp(logger, local)
	app.Compiler = prompt.Compiler{FlowingSkirtAllPoses: cfg.FlowingSkirtAllPoses}
	app.Generator = image.NewGeminiGenerator(genaiClient)
	app.Sync = sync
	app.Collection = builder
	if cfg.GeminiAPIKey != "" {
		app.Decoder = promptproviders.NewGeminiDecoder(genaiClient)
		app.Optimizer = promptproviders.NewGeminiOptimizer(genaiClient)
	} else {
		app.Decoder = promptproviders.NewStaticDecoder()
		app.Optimizer = promptproviders.NewStaticOptimizer()
	}
	app.Reverse = promptproviders.NewGeminiReverseEngineer(genaiClient)

	// Warm the gallery view; unavailability here just flips the status flag.
	if err := sync.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("initial gallery refresh failed")
	}

	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
