package app

import (
	"context"
	"time"

	"jobpilot/internal/config"
	"jobpilot/internal/database"
	dbpostgres "jobpilot/internal/database/postgres"
	"jobpilot/internal/infrastructure/cache"
	"jobpilot/internal/logger"
	"jobpilot/internal/repository"
	"jobpilot/internal/usecase"

	"go.uber.org/zap"
)

// Container wires configuration, storage, caching and the matching usecase.
type Container struct {
	Config   config.Config
	Log      *zap.Logger
	DB       database.DB
	Redis    *cache.Redis
	Matching usecase.MatchingUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	log, err := logger.New(cfg.App.LogJSON, cfg.App.Debug)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, log)
	matchCache := usecase.NewMatchCache(
		redis,
		cache.NewMemoryStore(cfg.Match.CacheMaxEntries),
		cfg.Match.CacheTTL,
		log,
	)

	projects := repository.NewPostgresProjectRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	matching := usecase.NewMatchingUsecase(projects, jobs, matchCache, log)

	return &Container{
		Config:   cfg,
		Log:      log,
		DB:       db,
		Redis:    redis,
		Matching: matching,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Log != nil {
		_ = c.Log.Sync()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
