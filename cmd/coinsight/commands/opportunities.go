package commands

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/luowen/coinsight/internal/advisor"
)

// opportunitiesCmd represents the opportunities command
var opportunitiesCmd = &cobra.Command{
	Use:   "opportunities",
	Short: "查看投资机会排名",
	Long: `对整个行情池评分并按推荐投资额排名。

Example:
  go run ./cmd/coinsight opportunities
  go run ./cmd/coinsight opportunities --risk low --budget 2000 --limit 5`,
	RunE: runOpportunities,
}

var (
	oppRisk   string
	oppBudget float64
	oppLimit  int
)

func init() {
	rootCmd.AddCommand(opportunitiesCmd)

	opportunitiesCmd.Flags().StringVar(&oppRisk, "risk", "medium", "风险级别 (low|medium|high)")
	opportunitiesCmd.Flags().Float64Var(&oppBudget, "budget", 0, "投资预算 (默认使用 ADVISOR_DEFAULT_BUDGET)")
	opportunitiesCmd.Flags().IntVar(&oppLimit, "limit", 0, "显示数量 (默认使用 ADVISOR_DEFAULT_TOP_N)")
}

func runOpportunities(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	deps, err := initMarket()
	if err != nil {
		return err
	}

	budget := oppBudget
	if math.IsNaN(budget) || math.IsInf(budget, 0) {
		return fmt.Errorf("预算参数格式错误，必须是数字")
	}
	if budget <= 0 {
		budget = deps.cfg.Advisor.DefaultBudget
	}
	topN := oppLimit
	if topN <= 0 {
		topN = deps.cfg.Advisor.DefaultTopN
	}

	payload, err := deps.client.Listings(ctx, deps.cfg.Advisor.UniverseSize)
	if err != nil {
		return fmt.Errorf("fetch universe: %w", err)
	}

	universe, err := deps.normalizer.Normalize(payload)
	if err != nil {
		return fmt.Errorf("normalize universe: %w", err)
	}

	signals := deps.ranker.Rank(universe, advisor.RiskProfile(oppRisk), budget, topN)

	printDoubleSeparator()
	fmt.Printf("  %s投资机会排名 (预算 %s, 风险 %s)%s\n", colorBold, formatMoney(budget), oppRisk, colorReset)
	printDoubleSeparator()

	if len(signals) == 0 {
		fmt.Println("  当前没有值得买入的机会")
		printSeparator()
		return nil
	}

	fmt.Printf("%-4s %-8s %-20s %14s %8s %6s %12s\n",
		"#", "代码", "名称", "价格", "操作", "置信度", "推荐投资")
	printSeparator()

	for i, sig := range signals {
		fmt.Printf("%-4d %s%-8s%s %-20s %14s %8s %5d%% %12s\n",
			i+1,
			colorCyan, sig.Symbol, colorReset,
			truncate(sig.Name, 20),
			formatPrice(sig.CurrentPrice),
			colorAction(sig.Action),
			sig.Confidence,
			formatMoney(sig.InvestmentRange.Recommended),
		)
	}

	printSeparator()
	fmt.Printf("  %s\n", advisor.Disclaimer)
	printSeparator()

	return nil
}
