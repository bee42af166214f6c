package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dylan/spotlight/geometry"
	"github.com/dylan/spotlight/tour"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadResolvesPaths(t *testing.T) {
	path := writeConfig(t, `
[store]
driver = "sqlite"
path = "state/tours.db"

[logging]
file = "/var/log/spotlight.log"

[tours]
catalog = "tours.yaml"
disabled = ["journal", " "]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, "state", "tours.db"), cfg.Store.Path)
	assert.Equal(t, "/var/log/spotlight.log", cfg.Logging.File)
	assert.Equal(t, filepath.Join(dir, "tours.yaml"), cfg.Tours.Catalog)
	assert.Equal(t, []tour.Feature{"journal"}, cfg.DisabledFeatures())
	assert.True(t, cfg.IsDisabled("journal"))
	assert.False(t, cfg.IsDisabled("planner"))
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "[metrics]\nsettle_delay = \"soon\"\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[metrics]\npreset = \"retina\"\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "not toml ["))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolvedMetrics(t *testing.T) {
	assert.Equal(t, geometry.CellMetrics(), Config{}.ResolvedMetrics())
	assert.Equal(t, geometry.PixelMetrics(), Config{Metrics: MetricsConfig{Preset: "pixel"}}.ResolvedMetrics())

	cfg, err := Load(writeConfig(t, `
[metrics]
padding = 0
header_height = 4
bottom_safe_zone = 3
settle_delay = "100ms"
tall_ratio = 2.0
`))
	require.NoError(t, err)
	want := geometry.CellMetrics()
	want.SpotlightPadding = 0
	want.HeaderHeight = 4
	want.BottomSafeZone = 3
	want.SettleDelay = 100 * time.Millisecond
	if diff := cmp.Diff(want, cfg.ResolvedMetrics()); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvedThemeFillsDefaults(t *testing.T) {
	cfg := Config{Theme: ThemeConfig{Ring: "#ff0000"}}
	th := cfg.ResolvedTheme()
	assert.Equal(t, "#ff0000", th.Ring)
	assert.Equal(t, DefaultTheme().CalloutBG, th.CalloutBG)
	assert.Equal(t, DefaultTheme().Accent, th.Accent)
}

func TestResolvedStore(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "")

	driver, dsn := Config{}.ResolvedStore()
	assert.Equal(t, "file", driver)
	assert.Equal(t, filepath.Join(DefaultConfigDir(), "tours.toml"), dsn)

	driver, dsn = Config{Store: StoreConfig{Driver: "sqlite", Path: "/tmp/x.db"}}.ResolvedStore()
	assert.Equal(t, "sqlite", driver)
	assert.Equal(t, "/tmp/x.db", dsn)

	t.Setenv(EnvDatabaseURL, "postgres://u@h/db")
	driver, dsn = Config{}.ResolvedStore()
	assert.Equal(t, "postgres", driver)
	assert.Equal(t, "postgres://u@h/db", dsn)

	driver, dsn = Config{Store: StoreConfig{Driver: "postgres", DSN: "postgres://file"}}.ResolvedStore()
	assert.Equal(t, "postgres", driver)
	assert.Equal(t, "postgres://u@h/db", dsn, "environment wins")
}

func TestTourPolicyDefaults(t *testing.T) {
	assert.True(t, Config{}.ResolvedAutoStart())
	assert.True(t, Config{}.ResolvedFirstVisitOnly())
	off := false
	cfg := Config{Tours: ToursConfig{AutoStart: &off, FirstVisitOnly: &off}}
	assert.False(t, cfg.ResolvedAutoStart())
	assert.False(t, cfg.ResolvedFirstVisitOnly())
	assert.Equal(t, "Spotlight", Config{}.AppName())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	pad := 2
	cfg := Config{
		App:     AppInfo{Name: "Wellness"},
		Metrics: MetricsConfig{Padding: &pad},
		Store:   StoreConfig{Driver: "sqlite", Path: filepath.Join(dir, "nested", "tours.db")},
		Tours:   ToursConfig{Disabled: []string{"home"}},
	}
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `path = "tours.db"`)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Wellness", got.AppName())
	assert.Equal(t, cfg.Store.Path, got.Store.Path)
	assert.Equal(t, 2, got.ResolvedMetrics().SpotlightPadding)
	assert.True(t, got.IsDisabled("home"))
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte(EnvDatabaseURL+"=postgres://from-env\n"), 0o644))
	t.Setenv(EnvDatabaseURL, "")
	require.NoError(t, os.Unsetenv(EnvDatabaseURL))

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), env))
	assert.Equal(t, "postgres://from-env", os.Getenv(EnvDatabaseURL))
}

func TestNewLoggerWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "spotlight.log")
	cfg := Config{Logging: LoggingConfig{Level: "warn", File: file}}
	log, err := cfg.NewLogger(false)
	require.NoError(t, err)
	log.Info("dropped")
	log.Warn("kept")
	_ = log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "dropped")

	_, err = Config{Logging: LoggingConfig{Level: "loud", File: file}}.NewLogger(false)
	assert.Error(t, err)
}
