package internal

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the default configuration file, resolved under the XDG
// config home. A .yaml or .yml sibling is accepted with the same schema.
const ConfigFileName = "promptline/promptline.toml"

// legacyConfigKeys are accepted silently but superseded by `format`; their
// presence raises a one-time notice for the user.
var legacyConfigKeys = []string{"prompt_order", "add_newline"}

// CustomConfig is the configuration of one user-defined prompt module
type CustomConfig struct {
	// Structural match criteria; the module matches when any entry of any
	// set is present in the working directory.
	Files       []string
	Extensions  []string
	Directories []string

	When    string // gating command; exit 0 counts as a match
	Shell   string // overrides the shell for When and Command
	Command string // produces the module's displayed text (required)

	Symbol      string
	Style       string
	Prefix      string
	Suffix      string
	Description string
	Disabled    bool
}

// Config is the parsed promptline configuration. It is read-only after
// construction; a Context shares it across all module resolutions.
type Config struct {
	Format      string
	ScanTimeout time.Duration

	modules    map[string]map[string]any
	custom     map[string]*CustomConfig
	legacyKeys []string
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Format:      DefaultFormat,
		ScanTimeout: DefaultScanTimeout,
		modules:     map[string]map[string]any{},
		custom:      map[string]*CustomConfig{},
	}
}

// FindConfigFile resolves the configuration file path: the explicit path if
// given, else the PROMPTLINE_CONFIG environment variable, else the XDG
// config home. Returns "" when no candidate exists on disk.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	base := filepath.Join(xdg.ConfigHome, ConfigFileName)
	for _, candidate := range []string{
		base,
		strings.TrimSuffix(base, ".toml") + ".yaml",
		strings.TrimSuffix(base, ".toml") + ".yml",
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// LoadConfig reads and parses the configuration file at path. The returned
// Config is always usable: a missing or malformed file yields the defaults
// together with the error for the caller to log, because the prompt must
// render regardless.
func LoadConfig(path string, logger *zap.Logger) (*Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), err
	}
	kind := ConfigTOML
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		kind = ConfigYAML
	}
	cfg, err := ParseConfig(data, kind)
	if err != nil {
		return DefaultConfig(), err
	}
	logger.Debug("configuration loaded", zap.String("path", path))
	return cfg, nil
}

// ConfigKind selects the on-disk configuration syntax
type ConfigKind int

const (
	ConfigTOML ConfigKind = iota
	ConfigYAML
)

// ParseConfig parses raw configuration bytes in the given syntax
func ParseConfig(data []byte, kind ConfigKind) (*Config, error) {
	raw := map[string]any{}
	var err error
	switch kind {
	case ConfigYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, err
	}
	return newConfig(raw), nil
}

// newConfig lifts the raw decoded tree into a typed Config
func newConfig(raw map[string]any) *Config {
	cfg := DefaultConfig()

	if format := cfgString(raw, "format", ""); format != "" {
		cfg.Format = format
	}
	if ms := cfgInt(raw, "scan_timeout", -1); ms >= 0 {
		cfg.ScanTimeout = time.Duration(ms) * time.Millisecond
	}
	for _, key := range legacyConfigKeys {
		if _, ok := raw[key]; ok {
			cfg.legacyKeys = append(cfg.legacyKeys, key)
		}
	}

	for key, value := range raw {
		table, ok := toTable(value)
		if !ok {
			continue
		}
		if key == VarCustomWildcard {
			for name, customValue := range table {
				customTable, ok := toTable(customValue)
				if !ok {
					continue
				}
				cfg.custom[name] = newCustomConfig(customTable)
			}
			continue
		}
		cfg.modules[key] = table
	}

	return cfg
}

// newCustomConfig decodes one [custom.<name>] table
func newCustomConfig(table map[string]any) *CustomConfig {
	return &CustomConfig{
		Files:       cfgStringSlice(table, "files"),
		Extensions:  cfgStringSlice(table, "extensions"),
		Directories: cfgStringSlice(table, "directories"),
		When:        cfgString(table, "when", ""),
		Shell:       cfgString(table, "shell", ""),
		Command:     cfgString(table, "command", ""),
		Symbol:      cfgString(table, "symbol", ""),
		Style:       cfgString(table, "style", ""),
		Prefix:      cfgString(table, "prefix", ""),
		Suffix:      cfgString(table, "suffix", ""),
		Description: cfgString(table, "description", ""),
		Disabled:    cfgBool(table, "disabled", false),
	}
}

// ModuleTable returns the raw configuration table of a builtin module, nil
// when the module is not configured.
func (c *Config) ModuleTable(name string) map[string]any {
	return c.modules[name]
}

// IsModuleDisabled reports whether a builtin module is switched off, either
// explicitly in its table or by its default.
func (c *Config) IsModuleDisabled(name string) bool {
	return cfgBool(c.modules[name], "disabled", moduleDisabledByDefault(name))
}

// CustomModule returns the configuration of a named custom module, nil when
// it is not configured.
func (c *Config) CustomModule(name string) *CustomConfig {
	return c.custom[name]
}

// IsCustomDisabled reports whether a configured custom module is disabled.
// The second return is false when no module of that name exists.
func (c *Config) IsCustomDisabled(name string) (disabled, found bool) {
	custom, ok := c.custom[name]
	if !ok {
		return false, false
	}
	return custom.Disabled, true
}

// CustomNames returns the configured custom module names. The order is
// alphabetical so that wildcard expansion is deterministic across renders.
func (c *Config) CustomNames() []string {
	names := make([]string, 0, len(c.custom))
	for name := range c.custom {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LegacyKeys returns the superseded root keys found in the configuration
func (c *Config) LegacyKeys() []string { return c.legacyKeys }

// Raw value coercion helpers. TOML decodes numbers as int64/float64, YAML
// as int; the helpers accept all of them.

func cfgString(table map[string]any, key, def string) string {
	if value, ok := table[key].(string); ok {
		return value
	}
	return def
}

func cfgBool(table map[string]any, key string, def bool) bool {
	if value, ok := table[key].(bool); ok {
		return value
	}
	return def
}

func cfgInt(table map[string]any, key string, def int64) int64 {
	switch value := table[key].(type) {
	case int64:
		return value
	case int:
		return int64(value)
	case float64:
		return int64(value)
	default:
		return def
	}
}

func cfgStringSlice(table map[string]any, key string) []string {
	switch value := table[key].(type) {
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{value}
	default:
		return nil
	}
}

// toTable narrows a decoded value to a string-keyed table. YAML may decode
// nested maps with any-typed keys.
func toTable(value any) (map[string]any, bool) {
	switch table := value.(type) {
	case map[string]any:
		return table, true
	case map[any]any:
		out := make(map[string]any, len(table))
		for key, item := range table {
			if s, ok := key.(string); ok {
				out[s] = item
			}
		}
		return out, true
	default:
		return nil, false
	}
}
