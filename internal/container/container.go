package container

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	gocache "github.com/patrickmn/go-cache"

	database "github.com/trivixa/listings-api/app/db"
	"github.com/trivixa/listings-api/app/observability/metrics"
	"github.com/trivixa/listings-api/config"
	"github.com/trivixa/listings-api/internal/api/auth"
	"github.com/trivixa/listings-api/internal/api/mediatags"
	"github.com/trivixa/listings-api/internal/api/ownerinfo"
	"github.com/trivixa/listings-api/internal/api/profiles"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Pool             *pgxpool.Pool
	AuthHandler      *auth.HandlerImpl
	ProfileHandler   *profiles.HandlerImpl
	MediaTagsHandler *mediatags.HandlerImpl
	OwnerInfoHandler *ownerinfo.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	metrics.InitAppMetrics()
	appMetrics := metrics.Get()

	// Locations facet cache; invalidated by the profile service on writes.
	facetCache := gocache.New(5*time.Minute, 10*time.Minute)

	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewAuthService(authRepo, cfg, logger)
	authHandler := auth.NewAuthHandlerImpl(authService, logger)

	profileRepo := profiles.NewPostgresProfileRepo(pool, logger)
	profileService := profiles.NewProfileService(profileRepo, facetCache, appMetrics, logger)
	profileHandler := profiles.NewHandlerImpl(profileService, logger)

	mediaTagsRepo := mediatags.NewPostgresMediaTagsRepo(pool, logger)
	mediaTagsService := mediatags.NewMediaTagsService(mediaTagsRepo, logger)
	mediaTagsHandler := mediatags.NewHandlerImpl(mediaTagsService, logger)

	ownerInfoRepo := ownerinfo.NewPostgresOwnerInfoRepo(pool, logger)
	ownerInfoHandler := ownerinfo.NewHandlerImpl(ownerInfoRepo, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Pool:             pool,
		AuthHandler:      authHandler,
		ProfileHandler:   profileHandler,
		MediaTagsHandler: mediaTagsHandler,
		OwnerInfoHandler: ownerInfoHandler,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
