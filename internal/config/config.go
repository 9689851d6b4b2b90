// Package config loads avreduce's configuration from defaults, a global
// user config, a project config, and CLI overrides, in that precedence
// order (lowest to highest).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	ScratchDir  string   `json:"scratch_dir"` //nolint:tagliatelle // snake_case for config file
	ScannerCmd  string   `json:"scanner_cmd,omitempty"`
	ScannerArgs []string `json:"scanner_args,omitempty"`
	ScannerURL  string   `json:"scanner_url,omitempty"`
	Speed       string   `json:"speed,omitempty"`
	Isolate     bool     `json:"isolate,omitempty"`
	RemoveNoise bool     `json:"remove_noise,omitempty"` //nolint:tagliatelle
	IgnoreText  bool     `json:"ignore_text,omitempty"` //nolint:tagliatelle
	Verify      bool     `json:"verify,omitempty"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ScratchDir: ".avreduce-scratch",
		Speed:      "normal",
	}
}

// FileName is the default project config file name.
const FileName = ".avreduce.json"

// getGlobalConfigPath returns the path to the global config file, using
// $XDG_CONFIG_HOME/avreduce/config.json if set, otherwise
// ~/.config/avreduce/config.json. Returns empty string if the home
// directory cannot be determined.
func getGlobalConfigPath(env []string) string {
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "XDG_CONFIG_HOME="); ok {
			return filepath.Join(after, "avreduce", "config.json")
		}
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "avreduce", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "avreduce", "config.json")
	}

	return ""
}

// Load loads configuration with the following precedence (highest wins):
//  1. Defaults
//  2. Global user config
//  3. Project config file at workDir/.avreduce.json, or an explicit
//     configPath
//  4. CLI overrides
func Load(workDir, configPath string, cliOverrides Config, hasScratchDirOverride bool, env []string) (Config, Sources, error) {
	cfg := Default()

	var sources Sources

	globalCfg, globalPath, err := loadGlobalConfig(env)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Global = globalPath
	cfg = merge(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, configPath)
	if err != nil {
		return Config{}, Sources{}, err
	}

	sources.Project = projectPath
	cfg = merge(cfg, projectCfg)

	if hasScratchDirOverride {
		cfg.ScratchDir = cliOverrides.ScratchDir
	}

	if err := validate(cfg); err != nil {
		return Config{}, Sources{}, err
	}

	return cfg, sources, nil
}

func loadGlobalConfig(env []string) (Config, string, error) {
	path := getGlobalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, explicitEmpty, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["scratch_dir"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrScratchDirEmpty)
	}

	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		if _, statErr := os.Stat(cfgFile); statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, FileName)
		mustExist = false
	}

	cfg, explicitEmpty, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	if explicitEmpty["scratch_dir"] {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, cfgFile, ErrScratchDirEmpty)
	}

	return cfg, cfgFile, nil
}

func loadConfigFile(path string, mustExist bool) (Config, map[string]bool, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, nil, false, nil
		}

		if mustExist {
			return Config{}, nil, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, nil, false, nil
	}

	cfg, explicitEmpty, err := parseConfig(data)
	if err != nil {
		return Config{}, nil, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, explicitEmpty, true, nil
}

func parseConfig(data []byte) (Config, map[string]bool, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	explicitEmpty := make(map[string]bool)

	if val, exists := raw["scratch_dir"]; exists {
		if str, ok := val.(string); ok && str == "" {
			explicitEmpty["scratch_dir"] = true
		}
	}

	return cfg, explicitEmpty, nil
}

func merge(base, overlay Config) Config {
	if overlay.ScratchDir != "" {
		base.ScratchDir = overlay.ScratchDir
	}

	if overlay.ScannerCmd != "" {
		base.ScannerCmd = overlay.ScannerCmd
	}

	if len(overlay.ScannerArgs) > 0 {
		base.ScannerArgs = overlay.ScannerArgs
	}

	if overlay.ScannerURL != "" {
		base.ScannerURL = overlay.ScannerURL
	}

	if overlay.Speed != "" {
		base.Speed = overlay.Speed
	}

	base.Isolate = base.Isolate || overlay.Isolate
	base.RemoveNoise = base.RemoveNoise || overlay.RemoveNoise
	base.IgnoreText = base.IgnoreText || overlay.IgnoreText
	base.Verify = base.Verify || overlay.Verify

	return base
}

func validate(cfg Config) error {
	if cfg.ScratchDir == "" {
		return ErrScratchDirEmpty
	}

	if cfg.ScannerCmd == "" && cfg.ScannerURL == "" {
		return ErrNoScannerConfigured
	}

	return nil
}

// Format returns cfg as formatted JSON.
func Format(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
