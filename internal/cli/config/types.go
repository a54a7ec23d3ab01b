// Package config provides configuration management for the cyclic CLI.
//
// Configuration is layered with koanf. Precedence, highest to lowest:
// command-line flags, CYCLIC_* environment variables, a cyclic.yaml config
// file, built-in defaults.
package config

// Config holds all CLI configuration options.
type Config struct {
	Budget       float64 `koanf:"budget"`
	OutputFormat string  `koanf:"output"`
	Verbose      bool    `koanf:"verbose"`
	HistoryFile  string  `koanf:"history_file"`
	ScenariosDir string  `koanf:"scenarios_dir"`
}

// Default configuration values.
const (
	DefaultBudget       = 1000.0
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultHistoryFile  = ".cyclic_history"
	DefaultScenariosDir = "scenarios"
)
