package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"heritage-map/config"
	"heritage-map/handlers"
	"heritage-map/services"
	"heritage-map/utils/logger"
)

type app struct {
	cfg         *config.Config
	logger      arbor.ILogger
	mongoClient *mongo.Client
	redisClient *redis.Client
	mapService  *services.MapService
	metaService *services.MetaService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.Init(cfg.Logging.Level)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := mongoClient.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		Password: cfg.Redis.Password,
	})
	// Redis being down is survivable: queries fall back to Mongo.
	if err := redisClient.Ping(connectCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, POI queries will use Mongo")
	} else {
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")
	}

	db := mongoClient.Database(cfg.Mongo.Database)
	redisSource := services.NewRedisPOISource(redisClient, log)
	mongoSource := services.NewMongoPOISource(db, log)
	content := services.NewMongoContentStore(db)

	return &app{
		cfg:         cfg,
		logger:      log,
		mongoClient: mongoClient,
		redisClient: redisClient,
		mapService: services.NewMapService(
			services.NewFailoverSource(redisSource, mongoSource, log),
			content,
			content,
			mongoSource,
			redisSource,
			log,
		),
		metaService: services.NewMetaService(services.NewMongoEntityStore(db), cfg.Site, log),
	}, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.mongoClient.Disconnect(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to disconnect MongoDB")
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to close Redis client")
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.Refresh.Schedule != "" {
		scheduler := services.NewRefreshScheduler(a.mapService, a.logger)
		if err := scheduler.Start(a.cfg.Refresh.Schedule); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	router := handlers.NewRouter(
		handlers.NewMapHandler(a.mapService, a.logger),
		handlers.NewMetaHandler(a.metaService, a.logger),
		handlers.RouterConfig{
			AllowedOrigins: a.cfg.CORS.AllowedOrigins,
			Authorizer:     services.NewAuthService(a.cfg.Auth.JWTSecret, a.cfg.Auth.APIKeyHash),
			Logger:         a.logger,
		},
	)

	srv := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str("address", srv.Addr).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	a.logger.Info().Msg("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	a.logger.Info().Msg("HTTP server stopped")
	return nil
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.mapService.RefreshCache(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("cached %d POIs in %dms\n", result.Cached, result.DurationMs)
	return nil
}
