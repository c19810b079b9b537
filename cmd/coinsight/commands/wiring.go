package commands

import (
	"fmt"

	"github.com/luowen/coinsight/internal/advisor"
	"github.com/luowen/coinsight/internal/external/cmc"
	"github.com/luowen/coinsight/internal/market"
	"github.com/luowen/coinsight/pkg/config"
	"github.com/luowen/coinsight/pkg/httputil"
	"github.com/luowen/coinsight/pkg/logger"
	"github.com/luowen/coinsight/pkg/redis"
)

// marketDeps bundles the dependencies every read-only market command needs.
// Commands that also need the database or the scheduler wire those themselves.
type marketDeps struct {
	cfg        *config.Config
	log        *logger.Logger
	client     *cmc.Client
	normalizer *market.Normalizer
	engine     *advisor.Engine
	ranker     *advisor.Ranker
}

// initMarket loads config and builds the upstream client chain.
// The rate limiter degrades to a process-local bucket when Redis is off.
func initMarket() (*marketDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	limiter := redis.NewRateLimiter(redisClient, "coinsight")

	httpClient := httputil.New(log).WithRateLimiter(limiter, redis.CMCRateLimit)
	client := cmc.NewClient(cfg.CMC, httpClient, log)
	normalizer := market.NewNormalizer(cfg.CMC.Convert, log)
	engine := advisor.NewEngine(log)

	return &marketDeps{
		cfg:        cfg,
		log:        log,
		client:     client,
		normalizer: normalizer,
		engine:     engine,
		ranker:     advisor.NewRanker(engine, log),
	}, nil
}
