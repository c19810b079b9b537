package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "导出行情到 CSV",
	Long: `拉取市值排名行情并导出为 CSV 文件。

Example:
  go run ./cmd/coinsight export --limit 50 --output market.csv`,
	RunE: runExport,
}

var (
	exportLimit  int
	exportOutput string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().IntVar(&exportLimit, "limit", 50, "导出数量")
	exportCmd.Flags().StringVar(&exportOutput, "output", "market.csv", "输出文件路径")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	deps, err := initMarket()
	if err != nil {
		return err
	}

	payload, err := deps.client.Listings(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("fetch listings: %w", err)
	}

	quotes, err := deps.normalizer.Normalize(payload)
	if err != nil {
		return fmt.Errorf("normalize listings: %w", err)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"rank", "symbol", "name", "price", "market_cap", "volume_24h",
		"percent_change_1h", "percent_change_24h", "percent_change_7d",
		"circulating_supply",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, q := range quotes {
		row := []string{
			strconv.Itoa(i + 1),
			q.Symbol,
			q.Name,
			strconv.FormatFloat(q.Price, 'f', -1, 64),
			strconv.FormatFloat(q.MarketCap, 'f', -1, 64),
			strconv.FormatFloat(q.Volume24h, 'f', -1, 64),
			strconv.FormatFloat(q.PercentChange1h, 'f', -1, 64),
			strconv.FormatFloat(q.PercentChange24h, 'f', -1, 64),
			strconv.FormatFloat(q.PercentChange7d, 'f', -1, 64),
			strconv.FormatFloat(q.CirculatingSupply, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	fmt.Printf("✅ Exported %d rows to %s\n", len(quotes), exportOutput)
	return nil
}
