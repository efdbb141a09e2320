package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/ilgiz-almv/trading-indicators-dashboard/internal/cli"
	"github.com/ilgiz-almv/trading-indicators-dashboard/internal/config"
	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/confkit"
	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/render"
	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/timeseries"
	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/trade"
)

var configFile = flag.String("f", "etc/plot.yaml", "the config file")

func main() {
	flag.Parse()
	if err := run(resolveConfigPath(*configFile)); err != nil {
		logx.Errorf("plot: %v", err)
		os.Exit(1)
	}
}

// resolveConfigPath falls back to the repository root when a relative
// config path does not exist in the working directory, so the default
// etc/plot.yaml works from anywhere inside the repo.
func resolveConfigPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if p, err := confkit.ProjectPath(path); err == nil {
		if _, statErr := os.Stat(p); statErr == nil {
			return p
		}
	}
	return path
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cli.LogConfigSummary(cfg)

	tbl, err := timeseries.LoadCSV(cfg.InputPath())
	if err != nil {
		return err
	}
	logx.Infof("loaded %d rows, %d columns from %s", tbl.Len(), len(tbl.Columns()), cfg.InputPath())

	from, to, err := cfg.Window()
	if err != nil {
		return err
	}
	if !from.IsZero() || !to.IsZero() {
		if from.IsZero() {
			from = tbl.Start()
		}
		if to.IsZero() {
			to = tbl.End()
		}
		if tbl, err = tbl.Slice(from, to); err != nil {
			return err
		}
		logx.Infof("visible window %s .. %s (%d rows)", tbl.Start(), tbl.End(), tbl.Len())
	}

	spec := cfg.FigureSpec()
	if path := cfg.TradesPath(); path != "" {
		events, err := trade.Load(path)
		if err != nil {
			return err
		}
		spec.Trades = events
		logx.Infof("annotating %d trade events", len(events))
	}

	renderer := render.New(cfg.RenderConfig())
	if err := renderer.RenderFile(tbl, spec, cfg.OutputPath()); err != nil {
		return err
	}
	logx.Infof("figure written to %s", cfg.OutputPath())
	return nil
}
