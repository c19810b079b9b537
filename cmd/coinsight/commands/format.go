package commands

import "fmt"

// ANSI colors for terminal output
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorBold  = "\033[1m"
)

// colorChange renders a percent change green when positive, red when negative
func colorChange(pct float64) string {
	switch {
	case pct > 0:
		return fmt.Sprintf("%s+%.2f%%%s", colorGreen, pct, colorReset)
	case pct < 0:
		return fmt.Sprintf("%s%.2f%%%s", colorRed, pct, colorReset)
	default:
		return fmt.Sprintf("%.2f%%", pct)
	}
}

// formatMoney abbreviates large dollar amounts
func formatMoney(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("$%.2fM", v/1e6)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

// formatPrice keeps more precision for sub-dollar assets
func formatPrice(v float64) string {
	if v < 1 {
		return fmt.Sprintf("$%.6f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func printSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

func printDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}
