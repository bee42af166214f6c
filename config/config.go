package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dylan/spotlight/geometry"
	"github.com/dylan/spotlight/tour"
)

// EnvDatabaseURL overrides the store DSN when set.
const EnvDatabaseURL = "SPOTLIGHT_DATABASE_URL"

type Config struct {
	Theme   ThemeConfig   `toml:"theme"`
	App     AppInfo       `toml:"app"`
	Metrics MetricsConfig `toml:"metrics"`
	Store   StoreConfig   `toml:"store"`
	Logging LoggingConfig `toml:"logging"`
	Tours   ToursConfig   `toml:"tours"`
}

type AppInfo struct {
	Name string `toml:"name,omitempty"`
}

type ThemeConfig struct {
	BG          string `toml:"bg,omitempty"`
	FG          string `toml:"fg,omitempty"`
	Accent      string `toml:"accent,omitempty"`
	Accent2     string `toml:"accent2,omitempty"`
	Muted       string `toml:"muted,omitempty"`
	Dim         string `toml:"dim,omitempty"`
	StatusBarBG string `toml:"status_bar_bg,omitempty"`
	StatusBarFG string `toml:"status_bar_fg,omitempty"`
	Error       string `toml:"error,omitempty"`
	CursorBG    string `toml:"cursor_bg,omitempty"`

	// Overlay
	BackdropFG    string `toml:"backdrop_fg,omitempty"`
	Ring          string `toml:"ring,omitempty"`
	CalloutBG     string `toml:"callout_bg,omitempty"`
	CalloutFG     string `toml:"callout_fg,omitempty"`
	CalloutBorder string `toml:"callout_border,omitempty"`
	ActionHintFG  string `toml:"action_hint_fg,omitempty"`

	FeedbackSuccessFG string `toml:"feedback_success_fg,omitempty"`
	FeedbackSuccessBG string `toml:"feedback_success_bg,omitempty"`
	FeedbackWarningFG string `toml:"feedback_warning_fg,omitempty"`
	FeedbackWarningBG string `toml:"feedback_warning_bg,omitempty"`
	FeedbackErrorFG   string `toml:"feedback_error_fg,omitempty"`
	FeedbackErrorBG   string `toml:"feedback_error_bg,omitempty"`
}

// MetricsConfig overrides the cell metrics preset. Pointers distinguish
// "unset" from an explicit zero.
type MetricsConfig struct {
	Preset         string   `toml:"preset,omitempty"` // "cell" (default) or "pixel"
	Padding        *int     `toml:"padding,omitempty"`
	TallRatio      *float64 `toml:"tall_ratio,omitempty"`
	HeaderHeight   *int     `toml:"header_height,omitempty"`
	BottomSafeZone *int     `toml:"bottom_safe_zone,omitempty"`
	CalloutGap     *int     `toml:"callout_gap,omitempty"`
	EdgeMargin     *int     `toml:"edge_margin,omitempty"`
	SettleDelay    string   `toml:"settle_delay,omitempty"` // e.g. "250ms"
}

type StoreConfig struct {
	Driver string `toml:"driver,omitempty"` // memory, file, sqlite, postgres
	DSN    string `toml:"dsn,omitempty"`
	Path   string `toml:"path,omitempty"` // file and sqlite drivers
}

type LoggingConfig struct {
	Level string `toml:"level,omitempty"`
	File  string `toml:"file,omitempty"`
}

type ToursConfig struct {
	Catalog        string   `toml:"catalog,omitempty"`
	Watch          bool     `toml:"watch,omitempty"`
	Disabled       []string `toml:"disabled,omitempty"`
	AutoStart      *bool    `toml:"auto_start,omitempty"`
	FirstVisitOnly *bool    `toml:"first_visit_only,omitempty"`
}

// DefaultConfigDir returns ~/.config/spotlight.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "spotlight")
}

// DefaultConfigPath returns ~/.config/spotlight/config.toml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.toml")
}

func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	absConfigDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return cfg, fmt.Errorf("resolving config directory: %w", err)
	}

	cfg.Store.Path = resolvePath(cfg.Store.Path, absConfigDir)
	cfg.Logging.File = resolvePath(cfg.Logging.File, absConfigDir)
	cfg.Tours.Catalog = resolvePath(cfg.Tours.Catalog, absConfigDir)

	if cfg.Metrics.SettleDelay != "" {
		if _, err := time.ParseDuration(cfg.Metrics.SettleDelay); err != nil {
			return cfg, fmt.Errorf("metrics.settle_delay %q: %w", cfg.Metrics.SettleDelay, err)
		}
	}
	switch cfg.Metrics.Preset {
	case "", "cell", "pixel":
	default:
		return cfg, fmt.Errorf("metrics.preset %q: want cell or pixel", cfg.Metrics.Preset)
	}

	return cfg, nil
}

// resolvePath expands ~ and anchors relative paths at the config directory.
func resolvePath(p, base string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return p
}

// AppName returns the configured name, or "Spotlight" as fallback.
func (c Config) AppName() string {
	if c.App.Name != "" {
		return c.App.Name
	}
	return "Spotlight"
}

// DefaultTheme returns the Vesper color palette.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{
		BG:          "#101010",
		FG:          "#ffffff",
		Accent:      "#ffc799",
		Accent2:     "#99ffe4",
		Muted:       "#505050",
		Dim:         "#a0a0a0",
		StatusBarBG: "#1a1a1a",
		StatusBarFG: "#a0a0a0",
		Error:       "#ff8080",
		CursorBG:    "#2a2a2a",

		BackdropFG:    "#3a3a3a",
		Ring:          "#ffc799",
		CalloutBG:     "#1a1a1a",
		CalloutFG:     "#ffffff",
		CalloutBorder: "#ffc799",
		ActionHintFG:  "#99ffe4",

		FeedbackSuccessFG: "#99ffe4",
		FeedbackSuccessBG: "#1a3a2a",
		FeedbackWarningFG: "#ffc799",
		FeedbackWarningBG: "#2a2215",
		FeedbackErrorFG:   "#ff8080",
		FeedbackErrorBG:   "#3a1a1a",
	}
}

// ResolvedTheme merges config theme with defaults for any unset fields.
func (c Config) ResolvedTheme() ThemeConfig {
	d := DefaultTheme()
	return ThemeConfig{
		BG:          pick(c.Theme.BG, d.BG),
		FG:          pick(c.Theme.FG, d.FG),
		Accent:      pick(c.Theme.Accent, d.Accent),
		Accent2:     pick(c.Theme.Accent2, d.Accent2),
		Muted:       pick(c.Theme.Muted, d.Muted),
		Dim:         pick(c.Theme.Dim, d.Dim),
		StatusBarBG: pick(c.Theme.StatusBarBG, d.StatusBarBG),
		StatusBarFG: pick(c.Theme.StatusBarFG, d.StatusBarFG),
		Error:       pick(c.Theme.Error, d.Error),
		CursorBG:    pick(c.Theme.CursorBG, d.CursorBG),

		BackdropFG:    pick(c.Theme.BackdropFG, d.BackdropFG),
		Ring:          pick(c.Theme.Ring, d.Ring),
		CalloutBG:     pick(c.Theme.CalloutBG, d.CalloutBG),
		CalloutFG:     pick(c.Theme.CalloutFG, d.CalloutFG),
		CalloutBorder: pick(c.Theme.CalloutBorder, d.CalloutBorder),
		ActionHintFG:  pick(c.Theme.ActionHintFG, d.ActionHintFG),

		FeedbackSuccessFG: pick(c.Theme.FeedbackSuccessFG, d.FeedbackSuccessFG),
		FeedbackSuccessBG: pick(c.Theme.FeedbackSuccessBG, d.FeedbackSuccessBG),
		FeedbackWarningFG: pick(c.Theme.FeedbackWarningFG, d.FeedbackWarningFG),
		FeedbackWarningBG: pick(c.Theme.FeedbackWarningBG, d.FeedbackWarningBG),
		FeedbackErrorFG:   pick(c.Theme.FeedbackErrorFG, d.FeedbackErrorFG),
		FeedbackErrorBG:   pick(c.Theme.FeedbackErrorBG, d.FeedbackErrorBG),
	}
}

// ResolvedMetrics applies overrides on top of the chosen preset.
func (c Config) ResolvedMetrics() geometry.Metrics {
	m := geometry.CellMetrics()
	if c.Metrics.Preset == "pixel" {
		m = geometry.PixelMetrics()
	}
	mc := c.Metrics
	if mc.Padding != nil {
		m.SpotlightPadding = *mc.Padding
	}
	if mc.TallRatio != nil && *mc.TallRatio > 0 && *mc.TallRatio <= 1 {
		m.TallRatio = *mc.TallRatio
	}
	if mc.HeaderHeight != nil && *mc.HeaderHeight > 0 {
		m.HeaderHeight = *mc.HeaderHeight
	}
	if mc.BottomSafeZone != nil {
		m.BottomSafeZone = *mc.BottomSafeZone
	}
	if mc.CalloutGap != nil {
		m.CalloutGap = *mc.CalloutGap
	}
	if mc.EdgeMargin != nil {
		m.EdgeMargin = *mc.EdgeMargin
	}
	if d, err := time.ParseDuration(mc.SettleDelay); err == nil && d >= 0 {
		m.SettleDelay = d
	}
	return m
}

// ResolvedStore returns the driver and DSN to open. The environment
// variable wins over the file, and on its own selects postgres.
func (c Config) ResolvedStore() (driver, dsn string) {
	driver = c.Store.Driver
	dsn = c.Store.DSN
	if env := os.Getenv(EnvDatabaseURL); env != "" {
		dsn = env
		if driver == "" {
			driver = "postgres"
		}
	}
	if driver == "" {
		driver = "file"
	}
	if dsn != "" {
		return driver, dsn
	}
	switch driver {
	case "file":
		dsn = pick(c.Store.Path, filepath.Join(DefaultConfigDir(), "tours.toml"))
	case "sqlite":
		dsn = pick(c.Store.Path, filepath.Join(DefaultConfigDir(), "tours.db"))
	}
	return driver, dsn
}

// ResolvedLogFile returns the log file, defaulting next to the config.
func (c Config) ResolvedLogFile() string {
	return pick(c.Logging.File, filepath.Join(DefaultConfigDir(), "spotlight.log"))
}

// ResolvedAutoStart returns tours.auto_start or true as default.
func (c Config) ResolvedAutoStart() bool {
	if c.Tours.AutoStart != nil {
		return *c.Tours.AutoStart
	}
	return true
}

// ResolvedFirstVisitOnly returns tours.first_visit_only or true as default.
func (c Config) ResolvedFirstVisitOnly() bool {
	if c.Tours.FirstVisitOnly != nil {
		return *c.Tours.FirstVisitOnly
	}
	return true
}

// DisabledFeatures returns tours.disabled as features.
func (c Config) DisabledFeatures() []tour.Feature {
	out := make([]tour.Feature, 0, len(c.Tours.Disabled))
	for _, name := range c.Tours.Disabled {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, tour.Feature(name))
		}
	}
	return out
}

// IsDisabled reports whether f is listed in tours.disabled.
func (c Config) IsDisabled(f tour.Feature) bool {
	for _, d := range c.DisabledFeatures() {
		if d == f {
			return true
		}
	}
	return false
}

func pick(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// Save writes the config back to a TOML file, converting paths under the
// config directory to relative ones.
func Save(path string, cfg Config) error {
	configDir := filepath.Dir(path)
	absConfigDir, err := filepath.Abs(configDir)
	if err != nil {
		return fmt.Errorf("resolving config directory: %w", err)
	}

	cfg.Store.Path = relativePath(cfg.Store.Path, absConfigDir)
	cfg.Logging.File = relativePath(cfg.Logging.File, absConfigDir)
	cfg.Tours.Catalog = relativePath(cfg.Tours.Catalog, absConfigDir)

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func relativePath(p, base string) string {
	if p == "" || !filepath.IsAbs(p) {
		return p
	}
	rel, err := filepath.Rel(base, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}
