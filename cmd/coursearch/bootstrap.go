package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wynnteo/coursearch/internal/config"
	dbRedis "github.com/wynnteo/coursearch/internal/db/redis"
	"github.com/wynnteo/coursearch/internal/domain"
	logpkg "github.com/wynnteo/coursearch/internal/logger"
	"github.com/wynnteo/coursearch/internal/metrics"
	"github.com/wynnteo/coursearch/internal/repository/embcache"
	openaiEmb "github.com/wynnteo/coursearch/internal/transport/openai"
)

// bootstrap holds the shared service dependencies built once per command.
type bootstrap struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *dbRedis.Store
	embedder domain.Embedder
}

// newBootstrap loads config, builds the logger, connects to the backend
// and assembles the embedder chain.
func newBootstrap(ctx context.Context) (*bootstrap, error) {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return nil, err
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	metrics.Register()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return nil, err
	}

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		store.Close()
		return nil, err
	}
	logger.Info("Connected to search backend", zap.Strings("addrs", cfg.Database.Addrs))

	// Embedder chain: OpenAI -> cache decorator.
	var embedder domain.Embedder = openaiEmb.NewEmbedder(openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})
	if cfg.Embedding.CacheTTLSec > 0 {
		ttl := time.Duration(cfg.Embedding.CacheTTLSec) * time.Second
		embedder = embcache.New(embedder, store, ttl, logger)
	}
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("cached", cfg.Embedding.CacheTTLSec > 0),
	)

	return &bootstrap{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		embedder: embedder,
	}, nil
}

func (b *bootstrap) close() {
	b.store.Close()
	_ = b.logger.Sync()
}
