// Package config loads the toolchain's TOML configuration file, following
// the same structured, sectioned approach and platform config-path
// conventions the teacher project uses for its own settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the toolchain's tunables, grouped by the subsystem they
// apply to.
type Config struct {
	Machine struct {
		MaxRounds     uint64 `toml:"max_rounds"`
		HaltOnDivZero bool   `toml:"halt_on_div_zero"`
	} `toml:"machine"`

	Assembler struct {
		SourceFile     string `toml:"source_file"`
		OutputFile     string `toml:"output_file"`
		LogFile        string `toml:"log_file"`
		AllowLowercase bool   `toml:"allow_lowercase_mnemonics"`
	} `toml:"assembler"`

	Display struct {
		NumberFormat string `toml:"number_format"` // hex, dec
		TraceRounds  bool   `toml:"trace_rounds"`
	} `toml:"display"`
}

// DefaultConfig returns the toolchain's out-of-the-box settings.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Machine.MaxRounds = 1_000_000
	cfg.Machine.HaltOnDivZero = true

	cfg.Assembler.SourceFile = "assemble.txt"
	cfg.Assembler.OutputFile = "output.txt"
	cfg.Assembler.LogFile = "log.txt"
	cfg.Assembler.AllowLowercase = false

	cfg.Display.NumberFormat = "hex"
	cfg.Display.TraceRounds = false

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "babysim")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "babysim")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load reads configuration from the default config path, falling back to
// DefaultConfig when no file exists there.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads configuration from path, falling back to DefaultConfig
// when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveTo writes configuration to path, creating parent directories as
// needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
