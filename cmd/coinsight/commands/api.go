package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/luowen/coinsight/internal/advisor"
	"github.com/luowen/coinsight/internal/api"
	"github.com/luowen/coinsight/internal/api/handlers"
	"github.com/luowen/coinsight/internal/external/cmc"
	"github.com/luowen/coinsight/internal/market"
	"github.com/luowen/coinsight/internal/store"
	"github.com/luowen/coinsight/pkg/config"
	"github.com/luowen/coinsight/pkg/database"
	"github.com/luowen/coinsight/pkg/httputil"
	"github.com/luowen/coinsight/pkg/logger"
	"github.com/luowen/coinsight/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "启动 API 服务器",
	Long: `启动 REST API 服务器。

Endpoints:
  GET  /health                            - Health check
  GET  /api/market/top                    - 市值排名
  GET  /api/market/global                 - 全球市场指标
  GET  /api/market/quote/{symbol}         - 单币行情
  GET  /api/market/history/{symbol}       - 历史价格
  GET  /api/investment/analyze/{symbol}   - 投资信号
  GET  /api/investment/opportunities      - 投资机会排名
  GET/POST /api/watchlist                 - 关注列表
  GET/POST /api/portfolio                 - 持仓记录

Example:
  go run ./cmd/coinsight api
  go run ./cmd/coinsight api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 服务器端口")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== CoinSight API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	log.Info("Connected to database")

	// 4. Connect to Redis (optional, degrades gracefully)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := redis.NewCache(redisClient, "coinsight")
	limiter := redis.NewRateLimiter(redisClient, "coinsight")

	// 5. Create HTTP client with the CMC rate budget
	httpClient := httputil.New(log).WithRateLimiter(limiter, redis.CMCRateLimit)

	// 6. Create external API client and normalizer
	cmcClient := cmc.NewClient(cfg.CMC, httpClient, log)
	normalizer := market.NewNormalizer(cfg.CMC.Convert, log)

	// 7. Create scoring engine and ranker
	engine := advisor.NewEngine(log)
	ranker := advisor.NewRanker(engine, log)

	// 8. Create repositories
	quoteRepo := store.NewQuoteRepository(db.Pool)
	watchlistRepo := store.NewWatchlistRepository(db.Pool)
	portfolioRepo := store.NewPortfolioRepository(db.Pool)

	// 9. Create handlers
	marketHandler := handlers.NewMarketHandler(cmcClient, normalizer, quoteRepo, cache, log)
	advisorHandler := handlers.NewAdvisorHandler(cmcClient, normalizer, engine, ranker, cfg.Advisor, log)
	watchlistHandler := handlers.NewWatchlistHandler(watchlistRepo, log)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioRepo, log)

	// 10. Create router
	router := api.NewRouter(marketHandler, advisorHandler, watchlistHandler, portfolioHandler, log)

	// 11. Create server
	server := api.New(cfg, log, router)

	// 12. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
