// Package config loads docgraph settings from a TOML file, a .env file and
// DOCGRAPH_* environment variables.
//
// Values are applied in increasing priority: built-in defaults, the config
// file, then the environment. Command-line flags are applied on top by the
// CLI.
//
// A minimal file:
//
//	[render]
//	format = "svg"
//
//	[output]
//	dir = "api/graphs"
//
//	[[graph]]
//	kind = "class-tree"
//	targets = ["epydoc.apidoc.APIDoc"]
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/docgraph/pkg/cache"
	"github.com/matzehuels/docgraph/pkg/errors"
	"github.com/matzehuels/docgraph/pkg/graphs"
)

// AppName names the config and cache directories.
const AppName = "docgraph"

// FileName is the config file looked up in the working directory.
const FileName = "docgraph.toml"

// Render engines.
const (
	EngineAuto     = "auto"
	EngineExec     = "exec"
	EngineEmbedded = "embedded"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete docgraph configuration.
type Config struct {
	Render RenderConfig  `toml:"render"`
	Cache  CacheConfig   `toml:"cache"`
	Output OutputConfig  `toml:"output"`
	Graphs []GraphConfig `toml:"graph"`

	// Path is the file the configuration was read from, "" when none was found.
	Path string `toml:"-"`
}

// RenderConfig selects how DOT sources become images.
type RenderConfig struct {
	// Command is the Graphviz dot executable.
	Command string `toml:"command"`
	// Format is the image format written next to each HTML fragment.
	Format string `toml:"format"`
	// Engine is "exec" (dot binary), "embedded" (in-process) or "auto"
	// (dot binary, falling back to embedded).
	Engine string `toml:"engine"`
}

// CacheConfig configures the render cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
	// Namespace prefixes every cache key so several projects can share a
	// redis instance.
	Namespace string `toml:"namespace"`
}

// OutputConfig controls where generated files go.
type OutputConfig struct {
	Dir    string `toml:"dir"`
	Center bool   `toml:"center"`
}

// GraphConfig is one [[graph]] directive.
type GraphConfig struct {
	Kind       string   `toml:"kind"`
	Targets    []string `toml:"targets"`
	Current    string   `toml:"current"`
	Dir        string   `toml:"dir"`
	Style      string   `toml:"style"`
	AddCallers bool     `toml:"add_callers"`
	AddCallees bool     `toml:"add_callees"`
	Caption    string   `toml:"caption"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Command: "dot",
			Format:  "png",
			Engine:  EngineAuto,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     cache.DefaultTTL,
		},
		Output: OutputConfig{
			Dir:    "graphs",
			Center: true,
		},
	}
}

// Decode parses TOML data over the defaults. Unknown keys are rejected.
func Decode(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Load reads .env from the working directory, locates the config file (see
// [Find]), decodes it and applies environment overrides. A missing config
// file is not an error: the defaults are used.
func Load(explicit string) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read config %s", path)
		}
		if cfg, err = Decode(data); err != nil {
			return nil, err
		}
		cfg.Path = path
	}

	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads variables from a .env file without overriding variables
// that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", path)
	}
	return nil
}

// Find returns the config file to use: explicit if set, else
// $DOCGRAPH_CONFIG, ./docgraph.toml, then $XDG_CONFIG_HOME/docgraph/config.toml.
// Explicitly named files must exist; it returns "" when no default
// location holds a file.
func Find(explicit string) (string, error) {
	for _, p := range []string{explicit, os.Getenv("DOCGRAPH_CONFIG")} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return "", errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", p)
		}
		return p, nil
	}

	candidates := []string{FileName}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "config.toml"))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", nil
}

// envOverrides maps environment variables to the fields they replace.
var envOverrides = []struct {
	name string
	dst  func(*Config) *string
}{
	{"DOCGRAPH_DOT_COMMAND", func(c *Config) *string { return &c.Render.Command }},
	{"DOCGRAPH_FORMAT", func(c *Config) *string { return &c.Render.Format }},
	{"DOCGRAPH_ENGINE", func(c *Config) *string { return &c.Render.Engine }},
	{"DOCGRAPH_CACHE_BACKEND", func(c *Config) *string { return &c.Cache.Backend }},
	{"DOCGRAPH_CACHE_DIR", func(c *Config) *string { return &c.Cache.Dir }},
	{"DOCGRAPH_REDIS_ADDR", func(c *Config) *string { return &c.Cache.RedisAddr }},
	{"DOCGRAPH_OUTPUT_DIR", func(c *Config) *string { return &c.Output.Dir }},
}

// ApplyEnv overrides fields from non-empty DOCGRAPH_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for _, o := range envOverrides {
		if v, ok := lookup(o.name); ok && v != "" {
			*o.dst(c) = v
		}
	}
}

// Validate checks enumerated values and every graph directive.
func (c *Config) Validate() error {
	if err := errors.ValidateFormat(c.Render.Format); err != nil {
		return err
	}
	if !slices.Contains([]string{EngineAuto, EngineExec, EngineEmbedded}, c.Render.Engine) {
		return errors.New(errors.ErrCodeInvalidInput, "render.engine: unknown engine %q", c.Render.Engine)
	}
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend: unknown backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl cannot be negative")
	}

	for i, g := range c.Graphs {
		if _, err := graphs.ParseKind(g.Kind); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "graph %d", i+1)
		}
		if len(g.Targets) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "graph %d: no targets", i+1)
		}
		if err := errors.ValidateDirection(strings.ToUpper(g.Dir)); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "graph %d", i+1)
		}
		switch strings.ToLower(g.Style) {
		case "", graphs.StyleUML, graphs.StyleTree:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "graph %d: unknown style %q", i+1, g.Style)
		}
	}
	return nil
}

// CacheDir returns the render cache directory: cache.dir when set, else
// $XDG_CACHE_HOME/docgraph, else ~/.cache/docgraph.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// DefaultCacheDir returns the XDG cache directory for docgraph.
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}
