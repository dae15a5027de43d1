package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

/*
Config System Design:
Configuration is layered, highest priority first:

1. Command line flags (RuntimeOverrides)
2. Environment variables, FINGERSTRING_<SECTION>_<KEY> (a .env file is loaded first)
3. Local project config (.fingerstring/*.fingerstring.{yaml,json})
4. Global user config ($XDG_CONFIG_HOME/fingerstring/*.fingerstring.{yaml,json})
5. Default values (embedded defaults.fingerstring.yaml)

Files within a directory are merged alphabetically; maps merge deeply and
scalars override. The origin of every key is tracked so `fingerstring config
--include-sources` can show it.
*/

//go:embed defaults.fingerstring.yaml
var defaultsYAML []byte

const (
	appName   = "fingerstring"
	envPrefix = "FINGERSTRING"
)

// Config holds the merged configuration and internal viper instance
type Config struct {
	v       *viper.Viper
	schema  *ConfigSchema
	sources map[string][]configSource
	unknown []string
	mu      sync.RWMutex
}

type configSource struct {
	value  interface{}
	source string
}

type options struct {
	overrides *RuntimeOverrides
	globalDir string
	localDir  string
	envFile   bool
}

type Option func(*options)

func WithOverrides(overrides *RuntimeOverrides) Option {
	return func(o *options) { o.overrides = overrides }
}

// WithDirs replaces the global and local config directories.
func WithDirs(globalDir, localDir string) Option {
	return func(o *options) {
		o.globalDir = globalDir
		o.localDir = localDir
	}
}

// WithoutEnvFile skips loading .env files.
func WithoutEnvFile() Option {
	return func(o *options) { o.envFile = false }
}

// New loads, merges and validates the configuration.
func New(opts ...Option) (*Config, error) {
	o := options{localDir: "." + appName, envFile: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.globalDir == "" {
		dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
		if err != nil {
			return nil, err
		}
		o.globalDir = dir
	}
	if o.envFile {
		loadEnv()
	}

	c := &Config{
		v:       viper.New(),
		sources: make(map[string][]configSource),
	}

	if err := c.loadDefaults(); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()

	if err := c.loadConfigs(o.globalDir, o.localDir); err != nil {
		return nil, err
	}
	c.trackEnvSources()
	o.overrides.apply(c.v, c.sources)

	schema, err := c.unmarshal()
	if err != nil {
		return nil, err
	}
	if err := validate(schema); err != nil {
		return nil, err
	}
	if schema.Database.Path == "" {
		dataDir, err := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
		if err != nil {
			return nil, err
		}
		schema.Database.Path = filepath.Join(dataDir, appName+".sqlite")
	}
	c.schema = schema

	return c, nil
}

// xdgDir returns $env/fingerstring, or ~/fallback/fingerstring.
func xdgDir(env, fallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to find home directory: %w", err)
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(base, appName), nil
}

// loadDefaults loads the default configuration from the embedded defaults file
func (c *Config) loadDefaults() error {
	c.v.SetConfigType("yaml")
	if err := c.v.ReadConfig(bytes.NewReader(defaultsYAML)); err != nil {
		return fmt.Errorf("could not read defaults: %w", err)
	}
	return nil
}

// findConfigFiles returns all *.fingerstring.{yaml,json} files in a directory
func findConfigFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, "."+appName+".yaml") ||
			strings.HasSuffix(name, "."+appName+".json") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (c *Config) loadConfigs(dirs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	known := GetKnownKeys()
	for _, dir := range dirs {
		files, err := findConfigFiles(dir)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("error reading config directory %s: %w", dir, err)
		}

		for _, f := range files {
			v := viper.New()
			v.SetConfigFile(f)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config file %s: %w", f, err)
			}

			settings := v.AllSettings()
			for key, value := range flatten("", settings) {
				if !IsKnownKey(known, key) {
					c.unknown = append(c.unknown, fmt.Sprintf("%s (%s)", key, f))
				}
				c.sources[key] = append(c.sources[key], configSource{value: value, source: f})
			}

			if err := c.v.MergeConfigMap(settings); err != nil {
				return fmt.Errorf("error merging config from %s: %w", f, err)
			}
		}
	}
	return nil
}

func (c *Config) trackEnvSources() {
	for _, key := range c.v.AllKeys() {
		envVar := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if val, ok := os.LookupEnv(envVar); ok {
			c.sources[key] = append(c.sources[key], configSource{
				value:  val,
				source: fmt.Sprintf("%s environment variable", envVar),
			})
		}
	}
}

// flatten turns nested settings into dotted, lower case keys.
func flatten(prefix string, settings map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for key, value := range settings {
		full := strings.ToLower(key)
		if prefix != "" {
			full = prefix + "." + full
		}
		if nested, ok := value.(map[string]interface{}); ok {
			for k, v := range flatten(full, nested) {
				out[k] = v
			}
			continue
		}
		out[full] = value
	}
	return out
}

func (c *Config) unmarshal() (*ConfigSchema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var schema ConfigSchema
	if err := c.v.Unmarshal(&schema); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &schema, nil
}

func validate(schema *ConfigSchema) error {
	if err := validator.New().Struct(schema); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}

// Schema returns the validated, typed configuration.
func (c *Config) Schema() *ConfigSchema {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.schema
}

// UnknownKeys lists keys found in config files that no setting uses.
func (c *Config) UnknownKeys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.unknown...)
}

// Source reports where the effective value of key came from.
func (c *Config) Source(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sources := c.sources[strings.ToLower(key)]
	if len(sources) == 0 {
		return "default"
	}
	return sources[len(sources)-1].source
}

func (c *Config) GetString(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetString(key)
}

func (c *Config) GetInt(key string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.GetInt(key)
}
