package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// topCmd represents the top command
var topCmd = &cobra.Command{
	Use:   "top",
	Short: "查看市值排名",
	Long: `按市值降序展示排名靠前的加密货币。

Example:
  go run ./cmd/coinsight top
  go run ./cmd/coinsight top --limit 20`,
	RunE: runTop,
}

var topLimit int

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().IntVar(&topLimit, "limit", 10, "显示数量")
}

func runTop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	deps, err := initMarket()
	if err != nil {
		return err
	}

	payload, err := deps.client.Listings(ctx, topLimit)
	if err != nil {
		return fmt.Errorf("fetch listings: %w", err)
	}

	quotes, err := deps.normalizer.Normalize(payload)
	if err != nil {
		return fmt.Errorf("normalize listings: %w", err)
	}

	printDoubleSeparator()
	fmt.Printf("  %s市值排名 Top %d%s\n", colorBold, len(quotes), colorReset)
	printDoubleSeparator()
	fmt.Printf("%-4s %-8s %-20s %14s %12s %12s %12s\n",
		"#", "代码", "名称", "价格", "24h", "7d", "市值")
	printSeparator()

	for i, q := range quotes {
		fmt.Printf("%-4d %s%-8s%s %-20s %14s %12s %12s %12s\n",
			i+1,
			colorCyan, q.Symbol, colorReset,
			truncate(q.Name, 20),
			formatPrice(q.Price),
			colorChange(q.PercentChange24h),
			colorChange(q.PercentChange7d),
			formatMoney(q.MarketCap),
		)
	}

	printSeparator()
	return nil
}

// truncate shortens a display name to fit the table column
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
