package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"blogapi/blogs"
	"blogapi/config"
	"blogapi/db"
	"blogapi/filemgr"
	"blogapi/middleware"
	"blogapi/mq"
	"blogapi/rdx"
	"blogapi/routes"
)

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func newStorage(cfg *config.Config) (filemgr.Storage, error) {
	if cfg.StorageBackend == config.BackendCloudinary {
		c, err := filemgr.NewCloudinary(cfg.CloudinaryURL, cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	l, err := filemgr.NewLocal(cfg.UploadDir, cfg.PublicBaseURL, cfg.MaxUploadBytes, cfg.MaxImageWidth)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// setupRouter builds the router with the blog API, health and, for local
// storage, the upload file server.
func setupRouter(cfg *config.Config, h *blogs.Handler, client *mongo.Client, conn *redis.Client) *httprouter.Router {
	router := httprouter.New()

	checks := map[string]routes.Check{
		"mongo": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}
	if conn != nil {
		checks["redis"] = func(ctx context.Context) error { return conn.Ping(ctx).Err() }
	}
	routes.AddHealthRoutes(router, checks)
	routes.AddBlogRoutes(router, h)
	if cfg.StorageBackend == config.BackendLocal {
		routes.AddStaticRoutes(router, cfg.UploadDir)
	}
	return router
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	setupLogger(cfg)

	ctx := context.Background()

	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	coll := db.BlogsCollection(ctx, client, cfg.MongoDB, cfg.MongoCollection)

	storage, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("Failed to set up image storage")
	}

	var (
		conn    *redis.Client
		emitter mq.Emitter = mq.Nop{}
	)
	if cfg.RedisAddr != "" {
		if conn, err = rdx.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		emitter = mq.NewRedisEmitter(conn, mq.BlogEventsChannel)
	}

	svc := blogs.NewService(blogs.NewMongoStore(coll), storage, emitter, cfg.RequireSubcategory)
	router := setupRouter(cfg, blogs.NewHandler(svc, cfg.MaxUploadBytes), client, conn)

	// CORS → security headers → logging → recover → router
	handler := middleware.CORS(cfg.AllowedOrigins)(
		middleware.SecurityHeaders(
			middleware.Logging(
				middleware.Recover(router))))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		if conn != nil {
			if err := conn.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close Redis connection")
			}
		}
	})

	go func() {
		log.Info().Str("addr", cfg.Port).Str("storage", cfg.StorageBackend).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to disconnect MongoDB")
	}
	log.Info().Msg("Server stopped cleanly")
}
