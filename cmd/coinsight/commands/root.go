package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "coinsight",
	Short: "CoinSight - 加密货币行情分析与投资建议系统",
	Long: `CoinSight Unified CLI

基于 CoinMarketCap 行情数据的加密货币分析系统。
行情采集、信号评分、机会排名、历史存储一体化。

Usage:
  go run ./cmd/coinsight [command]

Examples:
  go run ./cmd/coinsight api
  go run ./cmd/coinsight top --limit 10
  go run ./cmd/coinsight advise BTC --risk medium --budget 1000
  go run ./cmd/coinsight opportunities`,
	PersistentPreRunE: loadGlobalFlags,
}

// loadGlobalFlags applies the persistent flags before any subcommand runs.
// An explicit --config file wins over .env discovery because godotenv never
// overwrites variables that are already set.
func loadGlobalFlags(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			return fmt.Errorf("load config file %s: %w", configFile, err)
		}
	}
	if verbose {
		os.Setenv("LOG_LEVEL", "debug")
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
