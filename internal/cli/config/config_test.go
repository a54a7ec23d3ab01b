package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("budget", 0, "")
	flags.String("output", "", "")
	flags.BoolP("verbose", "v", false, "")
	flags.String("history-file", "", "")
	flags.String("scenarios-dir", "", "")
	return flags
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultBudget, cfg.Budget)
	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultHistoryFile, cfg.HistoryFile)
	assert.Equal(t, DefaultScenariosDir, cfg.ScenariosDir)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cyclic.yaml")
	require.NoError(t, os.WriteFile(path, []byte("budget: 2500\noutput: json\n"), 0o644))
	t.Chdir(dir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, 2500.0, cfg.Budget)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfigFindsFileUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "cyclic.yml"), []byte("budget: 42\n"), 0o644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, 42.0, cfg.Budget)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cyclic.yaml"), []byte("budget: 100\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("CYCLIC_BUDGET", "300")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, 300.0, cfg.Budget)
}

func TestLoadConfigFlagsOverrideEverything(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cyclic.yaml"), []byte("budget: 100\noutput: json\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("CYCLIC_BUDGET", "300")

	flags := newFlagSet()
	require.NoError(t, flags.Parse([]string{"--budget", "999", "--output", "markdown"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, 999.0, cfg.Budget)
	assert.Equal(t, "markdown", cfg.OutputFormat)
}

func TestLoadConfigUnchangedFlagsIgnored(t *testing.T) {
	t.Chdir(t.TempDir())

	flags := newFlagSet()
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, DefaultBudget, cfg.Budget)
}

func TestLoadConfigExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_file: /tmp/hist\n"), 0o644))
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/hist", cfg.HistoryFile)
}

func TestValidateRejectsBadBudget(t *testing.T) {
	cfg := &Config{Budget: 0, OutputFormat: "auto"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget must be positive")
}

func TestValidateRejectsBadOutput(t *testing.T) {
	cfg := &Config{Budget: 10, OutputFormat: "xml"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}
