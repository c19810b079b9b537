package commands

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luowen/coinsight/internal/advisor"
)

// adviseCmd represents the advise command
var adviseCmd = &cobra.Command{
	Use:   "advise [symbol]",
	Short: "生成投资建议",
	Long: `针对指定币种生成确定性投资信号。

风险级别决定预算系数: low=0.5, medium=1.0, high=1.5。
无效的风险级别会回退到 medium。

Example:
  go run ./cmd/coinsight advise BTC
  go run ./cmd/coinsight advise ETH --risk high --budget 5000`,
	Args: cobra.ExactArgs(1),
	RunE: runAdvise,
}

var (
	adviseRisk   string
	adviseBudget float64
)

func init() {
	rootCmd.AddCommand(adviseCmd)

	adviseCmd.Flags().StringVar(&adviseRisk, "risk", "medium", "风险级别 (low|medium|high)")
	adviseCmd.Flags().Float64Var(&adviseBudget, "budget", 0, "投资预算 (默认使用 ADVISOR_DEFAULT_BUDGET)")
}

func runAdvise(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	symbol := strings.ToUpper(strings.TrimSpace(args[0]))

	deps, err := initMarket()
	if err != nil {
		return err
	}

	budget := adviseBudget
	if math.IsNaN(budget) || math.IsInf(budget, 0) {
		return fmt.Errorf("预算参数格式错误，必须是数字")
	}
	if budget <= 0 {
		budget = deps.cfg.Advisor.DefaultBudget
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

	sig, err := deps.engine.Score(quotes[0], advisor.RiskProfile(adviseRisk), budget)
	if err != nil {
		return fmt.Errorf("score %s: %w", symbol, err)
	}

	printSignal(sig)
	return nil
}

// printSignal renders a signal for the terminal
func printSignal(sig *advisor.Signal) {
	printDoubleSeparator()
	fmt.Printf("  %s%s (%s) 投资建议%s\n", colorBold, sig.Name, sig.Symbol, colorReset)
	printDoubleSeparator()

	fmt.Printf("  当前价格 : %s\n", formatPrice(sig.CurrentPrice))
	fmt.Printf("  操作建议 : %s\n", colorAction(sig.Action))
	fmt.Printf("  置信度   : %d%%\n", sig.Confidence)
	fmt.Printf("  时间框架 : %s\n", sig.Timeframe.Display())
	fmt.Printf("  风险等级 : %s\n", sig.RiskLevel.Display())
	printSeparator()

	fmt.Println("  建议投资区间:")
	fmt.Printf("    最低   : %s\n", formatMoney(sig.InvestmentRange.Min))
	fmt.Printf("    最高   : %s\n", formatMoney(sig.InvestmentRange.Max))
	fmt.Printf("    推荐   : %s\n", formatMoney(sig.InvestmentRange.Recommended))

	fmt.Println("  目标价位:")
	fmt.Printf("    止盈   : %s\n", formatPrice(sig.TargetPrices.TakeProfit))
	fmt.Printf("    止损   : %s\n", formatPrice(sig.TargetPrices.StopLoss))
	printSeparator()

	if len(sig.TechnicalSignals) > 0 {
		fmt.Println("  技术信号:")
		for _, s := range sig.TechnicalSignals {
			fmt.Printf("    • %s\n", s)
		}
	}
	if len(sig.Factors) > 0 {
		fmt.Println("  分析因素:")
		for _, f := range sig.Factors {
			fmt.Printf("    • %s\n", f)
		}
	}

	printSeparator()
	fmt.Printf("  %s\n", sig.Disclaimer)
	printSeparator()
}

// colorAction renders the action with a direction color
func colorAction(a advisor.Action) string {
	switch a {
	case advisor.ActionBuy:
		return colorGreen + a.String() + colorReset
	case advisor.ActionSell:
		return colorRed + a.String() + colorReset
	default:
		return a.String()
	}
}
