package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// globalCmd represents the global command
var globalCmd = &cobra.Command{
	Use:   "global",
	Short: "查看全球市场指标",
	Long: `查看加密货币全球市场聚合指标。

Example:
  go run ./cmd/coinsight global`,
	RunE: runGlobal,
}

func init() {
	rootCmd.AddCommand(globalCmd)
}

func runGlobal(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	deps, err := initMarket()
	if err != nil {
		return err
	}

	metrics, err := deps.client.GlobalMetrics(ctx)
	if err != nil {
		return fmt.Errorf("fetch global metrics: %w", err)
	}

	printDoubleSeparator()
	fmt.Printf("  %s全球市场指标%s\n", colorBold, colorReset)
	printDoubleSeparator()
	fmt.Printf("  总市值       : %s\n", formatMoney(metrics.TotalMarketCap))
	fmt.Printf("  24h 总成交量 : %s\n", formatMoney(metrics.TotalVolume24h))
	fmt.Printf("  BTC 占比     : %.2f%%\n", metrics.BTCDominance)
	fmt.Printf("  活跃币种数   : %d\n", metrics.ActiveCryptocurrencies)
	printSeparator()

	return nil
}
