package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/server"
)

// configFile is the file name inside the config directory.
const configFile = "config.toml"

// Config is the CLI file configuration. Flags override every value.
//
//	[render]
//	recipe  = "column"
//	theme   = "dark"
//	formats = ["svg", "png"]
//
//	[cache]
//	dir = "/var/cache/stackchart"
//
//	[server]
//	addr      = ":9090"
//	redis_url = "redis://localhost:6379/0"
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds defaults for render, inspect and explore.
type RenderConfig struct {
	Recipe  string   `toml:"recipe"`
	Theme   string   `toml:"theme"`
	Width   float64  `toml:"width"`
	Height  float64  `toml:"height"`
	Scale   float64  `toml:"scale"`
	Animate bool     `toml:"animate"`
	Formats []string `toml:"formats"`
	Output  string   `toml:"output"`
}

// CacheConfig selects the local artifact cache.
type CacheConfig struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// ServerConfig mirrors the STACKCHART_* variables of the serve command.
// Environment variables win over the file, flags win over both.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
	StoreDir      string `toml:"store_dir"`
	RedisURL      string `toml:"redis_url"`
	CacheDir      string `toml:"cache_dir"`
	DataDir       string `toml:"data_dir"`
}

// loadConfig reads the TOML config at path, or at the default location
// when path is empty. A missing default file yields the zero Config; a
// missing explicit one is an error. Unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// applyRender copies file values into opts for every flag the user did
// not set on the command line.
func (r RenderConfig) applyRender(flags *pflag.FlagSet, opts *pipeline.Options, formats, output *string) {
	unset := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && !f.Changed
	}
	if r.Recipe != "" && unset("recipe") {
		opts.Recipe = r.Recipe
	}
	if r.Theme != "" && unset("theme") {
		opts.Theme = r.Theme
	}
	if r.Width > 0 && unset("width") {
		opts.Width = r.Width
	}
	if r.Height > 0 && unset("height") {
		opts.Height = r.Height
	}
	if r.Scale > 0 && unset("scale") {
		opts.Scale = r.Scale
	}
	if r.Animate && unset("animate") {
		opts.Animate = true
	}
	if len(r.Formats) > 0 && formats != nil && unset("format") {
		*formats = strings.Join(r.Formats, ",")
	}
	if r.Output != "" && output != nil && unset("output") {
		*output = r.Output
	}
}

// applyServer fills empty fields of cfg from the file.
func (s ServerConfig) applyServer(cfg *server.Config) {
	set := func(dst *string, v string) {
		if v != "" && *dst == "" {
			*dst = v
		}
	}
	if s.Addr != "" && os.Getenv("STACKCHART_ADDR") == "" {
		cfg.Addr = s.Addr
	}
	if s.MongoDatabase != "" && os.Getenv("STACKCHART_MONGO_DATABASE") == "" {
		cfg.MongoDatabase = s.MongoDatabase
	}
	set(&cfg.MongoURI, s.MongoURI)
	set(&cfg.StoreDir, s.StoreDir)
	set(&cfg.RedisURL, s.RedisURL)
	set(&cfg.CacheDir, s.CacheDir)
	set(&cfg.DataDir, s.DataDir)
}
