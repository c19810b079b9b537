package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote [symbol]",
	Short: "查看单个币种行情",
	Long: `查看指定加密货币的最新行情。

Example:
  go run ./cmd/coinsight quote BTC`,
	Args: cobra.ExactArgs(1),
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	symbol := strings.ToUpper(strings.TrimSpace(args[0]))

	deps, err := initMarket()
	if err != nil {
		return err
	}

	payload, err := deps.client.Quote(ctx, symbol)
	if err != nil {
		return fmt.Errorf("fetch quote: %w", err)
	}

	quotes, err := deps.normalizer.Normalize(payload)
	if err != nil {
		return fmt.Errorf("normalize quote: %w", err)
	}
	if len(quotes) == 0 {
		return fmt.Errorf("未找到货币: %s", symbol)
	}

	q := quotes[0]

	printDoubleSeparator()
	fmt.Printf("  %s%s (%s)%s\n", colorBold, q.Name, q.Symbol, colorReset)
	printDoubleSeparator()
	fmt.Printf("  价格       : %s\n", formatPrice(q.Price))
	fmt.Printf("  1h 涨跌    : %s\n", colorChange(q.PercentChange1h))
	fmt.Printf("  24h 涨跌   : %s\n", colorChange(q.PercentChange24h))
	fmt.Printf("  7d 涨跌    : %s\n", colorChange(q.PercentChange7d))
	fmt.Printf("  市值       : %s\n", formatMoney(q.MarketCap))
	fmt.Printf("  24h 成交量 : %s\n", formatMoney(q.Volume24h))
	fmt.Printf("  流通量     : %.0f\n", q.CirculatingSupply)
	printSeparator()

	return nil
}
