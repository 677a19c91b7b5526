// Package cliconfig loads chomp's configuration with a four-level
// precedence: built-in defaults, a global user config, a project
// config, then CLI flag overrides (SPEC_FULL.md, "Configuration").
package cliconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds every tunable chomp exposes: strategy order and sizing,
// the default LCG seeds, and file discovery settings.
type Config struct {
	Strategies      []string `json:"strategies,omitempty"`
	RandomAttempts  int      `json:"random_attempts,omitempty"`  //nolint:tagliatelle // snake_case for config file
	WindowSize      int      `json:"window_size,omitempty"`      //nolint:tagliatelle // snake_case for config file
	RandomLinesSeed uint64   `json:"random_lines_seed,omitempty"`  //nolint:tagliatelle // snake_case for config file
	RandomRangesSeed uint64  `json:"random_ranges_seed,omitempty"` //nolint:tagliatelle // snake_case for config file
	Extensions      []string `json:"extensions,omitempty"`
	IgnoreGlobs     []string `json:"ignore_globs,omitempty"` //nolint:tagliatelle // snake_case for config file
}

// ConfigFileName is the default project config file name, read from
// the target directory if present.
const ConfigFileName = ".chomp.json"

// DefaultStrategies is the order strategies run in each round, absent
// any override.
var DefaultStrategies = []string{"bisection", "random_lines", "random_ranges", "sliding_window"}

// Default returns chomp's built-in defaults.
func Default() Config {
	return Config{
		Strategies:       append([]string(nil), DefaultStrategies...),
		RandomAttempts:   20,
		WindowSize:       10,
		RandomLinesSeed:  12345,
		RandomRangesSeed: 54321,
		Extensions:       nil, // nil means internal/reduce.defaultExtensions
		IgnoreGlobs:      nil,
	}
}

// Sources records which config files were actually loaded. The CLI
// does not print it.
type Sources struct {
	Global  string
	Project string
}

// LoadInput is everything Load needs beyond the filesystem itself.
type LoadInput struct {
	// WorkDir is the target directory; the project config is looked
	// up relative to it unless ConfigPath is absolute.
	WorkDir string

	// ConfigPath, if non-empty, overrides the default project config
	// location (--config) and must exist.
	ConfigPath string

	// Env supplies XDG_CONFIG_HOME lookups without touching the real
	// process environment, for testability.
	Env map[string]string
}

// Load resolves Config with precedence defaults < global < project <
// nothing else — CLI flag overrides are applied by the caller after
// Load returns, since pflag already knows which flags were explicitly
// set.
func Load(in LoadInput) (Config, Sources, error) {
	cfg := Default()

	var sources Sources

	globalCfg, globalPath, err := loadGlobalConfig(in.Env)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(in.WorkDir, in.ConfigPath)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	if err := validate(cfg); err != nil {
		return Config{}, Sources{}, err
	}

	return cfg, sources, nil
}

func getGlobalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "chomp", "config.json")
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chomp", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "chomp", "config.json")
	}

	return ""
}

func loadGlobalConfig(env map[string]string) (Config, string, error) {
	path := getGlobalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var path string

	mustExist := configPath != ""

	if mustExist {
		path = configPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}

		if _, err := os.Stat(path); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s", errConfigFileNotFound, configPath)
		}
	} else {
		path = filepath.Join(workDir, ConfigFileName)
	}

	cfg, loaded, err := loadConfigFile(path, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s", errConfigFileRead, path)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: invalid JSONC: %w", errConfigInvalid, path, err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("%w %s: invalid JSON: %w", errConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func merge(base, overlay Config) Config {
	if len(overlay.Strategies) > 0 {
		base.Strategies = overlay.Strategies
	}

	if overlay.RandomAttempts > 0 {
		base.RandomAttempts = overlay.RandomAttempts
	}

	if overlay.WindowSize > 0 {
		base.WindowSize = overlay.WindowSize
	}

	if overlay.RandomLinesSeed > 0 {
		base.RandomLinesSeed = overlay.RandomLinesSeed
	}

	if overlay.RandomRangesSeed > 0 {
		base.RandomRangesSeed = overlay.RandomRangesSeed
	}

	if len(overlay.Extensions) > 0 {
		base.Extensions = overlay.Extensions
	}

	if len(overlay.IgnoreGlobs) > 0 {
		base.IgnoreGlobs = overlay.IgnoreGlobs
	}

	return base
}

func validate(cfg Config) error {
	for _, name := range cfg.Strategies {
		switch strings.ToLower(name) {
		case "bisection", "random_lines", "random_ranges", "sliding_window", "up_to_n_lines":
		default:
			return fmt.Errorf("%w: %s", errUnknownStrategyName, name)
		}
	}

	if cfg.RandomAttempts < 0 {
		return errNegativeRandomAttempts
	}

	if cfg.WindowSize < 0 {
		return errNegativeWindowSize
	}

	return nil
}

// Format returns cfg as indented JSON, for a --print-config-style
// diagnostic.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting config: %w", err)
	}

	return string(data), nil
}
