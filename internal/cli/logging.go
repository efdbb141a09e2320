package cli

import (
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/ilgiz-almv/trading-indicators-dashboard/internal/config"
)

// ConfigSummaryLines returns human readable lines describing the loaded
// dashboard config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}
	lines := []string{
		fmt.Sprintf("Input: %s", cfg.InputPath()),
		fmt.Sprintf("Output: %s", cfg.OutputPath()),
		fmt.Sprintf("Trades: %s", presence(cfg.TradesPath())),
		fmt.Sprintf("Quantiles: %g / %g", cfg.LowerQuantile, cfg.UpperQuantile),
		fmt.Sprintf("Panels: %d", len(cfg.Panels)),
	}
	for _, p := range cfg.Panels {
		label := p.Column
		if p.Kind == "price" {
			label = "close"
			if p.Futures {
				label = "close_d"
			}
		}
		lines = append(lines, fmt.Sprintf("panel %s: %s", p.Kind, label))
	}
	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	for _, line := range ConfigSummaryLines(cfg) {
		logx.Infof("config • %s", line)
	}
}

func presence(path string) string {
	if path == "" {
		return "not configured"
	}
	return path
}
