package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/zeromicro/go-zero/core/conf"

	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/confkit"
	"github.com/ilgiz-almv/trading-indicators-dashboard/pkg/render"
)

// PanelConf describes one stacked panel of the output figure.
type PanelConf struct {
	// Kind is one of price | line | bars.
	Kind    string   `json:",default=line,options=price|line|bars"`
	Column  string   `json:",optional"`
	Futures bool     `json:",optional"`
	Band    bool     `json:",optional"`
	SepLine *float64 `json:",optional"`
	Shade   bool     `json:",optional"`
	YMin    *float64 `json:",optional"`
	YMax    *float64 `json:",optional"`
}

// Config is the dashboard application configuration. Paths are resolved
// relative to the config file's directory.
type Config struct {
	// Input is the CSV (optionally .zst compressed) time series table.
	Input  string
	Output string `json:",default=figure.png"`
	// Trades optionally points at a YAML trade event list for annotation.
	Trades string `json:",optional"`
	// From/To narrow the visible slice, RFC3339.
	From string `json:",optional"`
	To   string `json:",optional"`

	LowerQuantile    float64 `json:",default=0.03"`
	UpperQuantile    float64 `json:",default=0.97"`
	PanelWidth       int     `json:",default=1024"`
	PanelHeight      int     `json:",default=260"`
	QuarterMarks     bool    `json:",optional"`
	QuarterShiftDays int     `json:",default=18"`

	Panels []PanelConf

	baseDir string
}

// MustLoad reads configuration from path and panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads and validates configuration from a YAML file.
func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}
	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}
	cfg.baseDir = confkit.BaseDir(absPath)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("config: input path is required")
	}
	if len(c.Panels) == 0 {
		return fmt.Errorf("config: at least one panel is required")
	}
	if c.LowerQuantile <= 0 || c.UpperQuantile >= 1 || c.LowerQuantile >= c.UpperQuantile {
		return fmt.Errorf("config: quantiles must satisfy 0 < lower < upper < 1, got %g/%g",
			c.LowerQuantile, c.UpperQuantile)
	}
	for i, p := range c.Panels {
		if p.Kind != "price" && p.Column == "" {
			return fmt.Errorf("config: panel %d: column is required for kind %q", i, p.Kind)
		}
	}
	if _, _, err := c.Window(); err != nil {
		return err
	}
	return nil
}

// InputPath returns the input table path resolved against the config dir.
func (c *Config) InputPath() string { return confkit.ResolvePath(c.baseDir, c.Input) }

// OutputPath returns the figure output path resolved against the config dir.
func (c *Config) OutputPath() string { return confkit.ResolvePath(c.baseDir, c.Output) }

// TradesPath returns the trades file path, or "" when not configured.
func (c *Config) TradesPath() string {
	if c.Trades == "" {
		return ""
	}
	return confkit.ResolvePath(c.baseDir, c.Trades)
}

// Window parses the optional From/To bounds. Zero times mean unbounded.
func (c *Config) Window() (from, to time.Time, err error) {
	if c.From != "" {
		from, err = time.Parse(time.RFC3339, c.From)
		if err != nil {
			return from, to, fmt.Errorf("config: parse from %q: %w", c.From, err)
		}
	}
	if c.To != "" {
		to, err = time.Parse(time.RFC3339, c.To)
		if err != nil {
			return from, to, fmt.Errorf("config: parse to %q: %w", c.To, err)
		}
	}
	if c.From != "" && c.To != "" && !to.After(from) {
		return from, to, fmt.Errorf("config: to %q is not after from %q", c.To, c.From)
	}
	return from, to, nil
}

// RenderConfig maps the application config onto renderer settings.
func (c *Config) RenderConfig() render.Config {
	return render.Config{
		LowerQuantile:    c.LowerQuantile,
		UpperQuantile:    c.UpperQuantile,
		PanelWidth:       c.PanelWidth,
		PanelHeight:      c.PanelHeight,
		QuarterMarks:     c.QuarterMarks,
		QuarterShiftDays: c.QuarterShiftDays,
	}
}

// FigureSpec maps the configured panels onto a renderer figure spec. Trade
// events are attached separately by the caller.
func (c *Config) FigureSpec() render.FigureSpec {
	spec := render.FigureSpec{Panels: make([]render.PanelSpec, 0, len(c.Panels))}
	for _, p := range c.Panels {
		spec.Panels = append(spec.Panels, render.PanelSpec{
			Kind:      render.PanelKind(p.Kind),
			Column:    p.Column,
			Futures:   p.Futures,
			Band:      p.Band,
			SepLine:   p.SepLine,
			ShadeSign: p.Shade,
			YMin:      p.YMin,
			YMax:      p.YMax,
		})
	}
	return spec
}
