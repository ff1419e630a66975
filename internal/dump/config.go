package dump

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all driver configuration.
type Config struct {
	// Tool is the dump binary to invoke.
	Tool string `json:"tool,omitempty"`

	// Field is the default document field for the range filter.
	Field string `json:"field,omitempty"`

	// Connection defaults. Each contributes a pass-through record only when
	// the same flag is absent from the command line.
	Host       string `json:"host,omitempty"`
	Port       string `json:"port,omitempty"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password,omitempty"`
	DB         string `json:"db,omitempty"`
	Collection string `json:"collection,omitempty"`
	Out        string `json:"out,omitempty"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Tool:  "mongodump",
		Field: "date",
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".rangedump.json"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/rangedump/config.json if set, otherwise
// ~/.config/rangedump/config.json. Empty string if neither resolves.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "rangedump", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "rangedump", "config.json")
	}

	return ""
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config
// 3. Project config file (.rangedump.json in workDir, if it exists)
// 4. Explicit config file via configPath (must exist when given).
//
// Files are JSONC: comments and trailing commas are tolerated.
func LoadConfig(workDir, configPath string, env map[string]string) (Config, error) {
	cfg := DefaultConfig()

	globalPath := getGlobalConfigPath(env)
	if globalPath != "" {
		globalCfg, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg = mergeConfig(cfg, globalCfg)
			cfg.Sources.Global = globalPath
		}
	}

	projectPath := filepath.Join(workDir, ConfigFileName)
	mustExist := false

	if configPath != "" {
		projectPath = configPath
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}

		mustExist = true
	}

	projectCfg, loaded, err := loadConfigFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg = mergeConfig(cfg, projectCfg)
		cfg.Sources.Project = projectPath
	}

	return cfg, nil
}

// loadConfigFile reads one JSONC config file. Returns the parsed config and
// whether the file was loaded.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		if os.IsNotExist(readErr) && !mustExist {
			return Config{}, false, nil
		}

		if os.IsNotExist(readErr) {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}

		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigFileRead, path, readErr)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: invalid JSONC: %w", ErrConfigInvalid, path, err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, unmarshalErr)
	}

	return cfg, true, nil
}

// mergeConfig overlays non-empty fields of overlay onto base.
func mergeConfig(base, overlay Config) Config {
	merged := base

	if overlay.Tool != "" {
		merged.Tool = overlay.Tool
	}

	if overlay.Field != "" {
		merged.Field = overlay.Field
	}

	if overlay.Host != "" {
		merged.Host = overlay.Host
	}

	if overlay.Port != "" {
		merged.Port = overlay.Port
	}

	if overlay.Username != "" {
		merged.Username = overlay.Username
	}

	if overlay.Password != "" {
		merged.Password = overlay.Password
	}

	if overlay.DB != "" {
		merged.DB = overlay.DB
	}

	if overlay.Collection != "" {
		merged.Collection = overlay.Collection
	}

	if overlay.Out != "" {
		merged.Out = overlay.Out
	}

	return merged
}

// connectionValue returns the config default for one connection flag name.
func (c Config) connectionValue(name string) string {
	switch name {
	case "host":
		return c.Host
	case "port":
		return c.Port
	case "username":
		return c.Username
	case "password":
		return c.Password
	case "db":
		return c.DB
	case "collection":
		return c.Collection
	case "out":
		return c.Out
	default:
		return ""
	}
}

// ApplyConnectionDefaults prepends config-supplied connection records for
// flags absent from the command line. Config records come first in canonical
// order, so the command line's own encounter order is preserved.
func (c Config) ApplyConnectionDefaults(cli Passthru) Passthru {
	var defaults Passthru

	for _, name := range ConnectionFlags {
		flag := "--" + name

		value := c.connectionValue(name)
		if value == "" || cli.Has(flag) {
			continue
		}

		defaults = append(defaults, Token{Flag: flag, Value: value, HasValue: true})
	}

	if len(defaults) == 0 {
		return cli
	}

	return append(defaults, cli...)
}

// FormatConfig returns the resolved configuration as indented JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("cannot format config: %w", err)
	}

	return string(data), nil
}
