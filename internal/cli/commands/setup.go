// Package commands implements the cyclic CLI subcommands.
package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/cyclic-lang/cyclic/internal/cli/config"
	"github.com/cyclic-lang/cyclic/internal/cli/output"
	"github.com/cyclic-lang/cyclic/pkg/interp"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's config and
// writers.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// NewInterpreter creates an interpreter wired with the configured budget
// and logger.
func (c *CommandContext) NewInterpreter() *interp.Interpreter {
	return interp.New(
		interp.WithBudget(c.Cfg.Budget),
		interp.WithLogger(c.Logger),
	)
}

// getConfig returns the current configuration. It uses
// config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	budget := config.DefaultBudget
	if v := os.Getenv("CYCLIC_BUDGET"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			budget = parsed
		}
	}

	return &config.Config{
		Budget:       budget,
		OutputFormat: getEnvOrDefault("CYCLIC_OUTPUT", config.DefaultOutput),
		Verbose:      os.Getenv("CYCLIC_VERBOSE") == "true",
		HistoryFile:  getEnvOrDefault("CYCLIC_HISTORY_FILE", config.DefaultHistoryFile),
		ScenariosDir: getEnvOrDefault("CYCLIC_SCENARIOS_DIR", config.DefaultScenariosDir),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
