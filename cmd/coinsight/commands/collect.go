package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/luowen/coinsight/internal/store"
	"github.com/luowen/coinsight/pkg/database"
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "采集一次行情快照",
	Long: `从 CoinMarketCap 拉取一次市值排名行情并写入数据库。

Example:
  go run ./cmd/coinsight collect
  go run ./cmd/coinsight collect --limit 100`,
	RunE: runCollect,
}

var collectLimit int

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().IntVar(&collectLimit, "limit", 0, "采集数量 (默认使用 ADVISOR_UNIVERSE_SIZE)")
}

func runCollect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	deps, err := initMarket()
	if err != nil {
		return err
	}

	db, err := database.New(deps.cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	limit := collectLimit
	if limit <= 0 {
		limit = deps.cfg.Advisor.UniverseSize
	}

	fmt.Printf("Collecting top %d quotes...\n", limit)

	payload, err := deps.client.Listings(ctx, limit)
	if err != nil {
		return fmt.Errorf("fetch listings: %w", err)
	}

	quotes, err := deps.normalizer.Normalize(payload)
	if err != nil {
		return fmt.Errorf("normalize listings: %w", err)
	}

	ts := time.Now().UTC().Truncate(time.Minute)
	quoteRepo := store.NewQuoteRepository(db.Pool)
	if err := quoteRepo.SaveSnapshots(ctx, quotes, ts); err != nil {
		return fmt.Errorf("save snapshots: %w", err)
	}

	fmt.Printf("✅ Saved %d snapshots at %s\n", len(quotes), ts.Format("2006-01-02 15:04:05"))
	return nil
}
