// Package config loads lineage.toml, the settings file shared by the CLI and
// the HTTP server.
//
// A missing key keeps its value from [Default], so a config file only needs
// the settings it changes:
//
//	[frame]
//	width = 1024
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/lineage"
	"github.com/matzehuels/lineage/pkg/pipeline"
)

// FileName is the name of the config file inside the config directory.
const FileName = "lineage.toml"

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Source kinds.
const (
	SourceSeed  = "seed"
	SourceFile  = "file"
	SourceMongo = "mongo"
)

// Config is the decoded contents of lineage.toml.
type Config struct {
	Frame  Frame  `toml:"frame"`
	Layout Layout `toml:"layout"`
	Cache  Cache  `toml:"cache"`
	Source Source `toml:"source"`
	Server Server `toml:"server"`
}

// Frame is the drawing area.
type Frame struct {
	Width   float64         `toml:"width"`
	Height  float64         `toml:"height"`
	Margins lineage.Margins `toml:"margins"`
}

// Layout holds layout and render settings.
type Layout struct {
	Type string `toml:"type"`
	// MinSeparation of zero selects the engine default, negative disables it.
	MinSeparation float64 `toml:"min_separation"`
	NodeRadius    float64 `toml:"node_radius"`
	Style         string  `toml:"style"`
	Detailed      bool    `toml:"detailed"`
}

// Cache selects the cache backend.
type Cache struct {
	Backend     string   `toml:"backend"`
	Dir         string   `toml:"dir"` // empty = XDG cache dir
	RedisAddr   string   `toml:"redis_addr"`
	RedisPrefix string   `toml:"redis_prefix"`
	TTL         Duration `toml:"ttl"` // 0 = per-entry defaults
}

// Source selects where member records come from.
type Source struct {
	Kind       string `toml:"kind"`
	Path       string `toml:"path"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server holds HTTP API settings.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("10m", "24h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Frame: Frame{
			Width:   pipeline.DefaultWidth,
			Height:  pipeline.DefaultHeight,
			Margins: lineage.UniformMargins(pipeline.DefaultMargin),
		},
		Layout: Layout{
			Type:       pipeline.DefaultVizType,
			NodeRadius: lineage.DefaultNodeRadius,
			Style:      pipeline.DefaultStyle,
		},
		Cache: Cache{
			Backend:     CacheFile,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "lineage:",
		},
		Source: Source{
			Kind:       SourceSeed,
			Database:   "lineage",
			Collection: "members",
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Load reads the file at path over [Default] and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/lineage/lineage.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "lineage", FileName), nil
}

// Validate checks the settings that cannot be left to the pipeline.
// Frame sizes are checked by the layout itself.
func (c Config) Validate() error {
	if err := pipeline.ValidateVizType(c.Layout.Type); err != nil {
		return err
	}
	if err := pipeline.ValidateStyle(c.Layout.Style); err != nil {
		return err
	}
	if c.Layout.NodeRadius < 0 {
		return invalid("layout.node_radius must not be negative, got %v", c.Layout.NodeRadius)
	}

	switch c.Cache.Backend {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return invalid("cache.redis_addr is required for the redis backend")
		}
	default:
		return invalid("cache.backend: %q (must be one of: none, file, redis)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return invalid("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}

	switch c.Source.Kind {
	case SourceSeed:
	case SourceFile:
		if c.Source.Path == "" {
			return invalid("source.path is required for the file source")
		}
	case SourceMongo:
		if c.Source.MongoURI == "" || c.Source.Database == "" || c.Source.Collection == "" {
			return invalid("source.mongo_uri, source.database and source.collection are required for the mongo source")
		}
	default:
		return invalid("source.kind: %q (must be one of: seed, file, mongo)", c.Source.Kind)
	}
	return nil
}

// PipelineOptions converts the settings into pipeline options. The frame is
// taken as written, so a zero width is reported by the layout as a
// degenerate area instead of being replaced by the default.
func (c Config) PipelineOptions() pipeline.Options {
	margins := c.Frame.Margins
	opts := pipeline.Options{
		VizType:       c.Layout.Type,
		Width:         c.Frame.Width,
		Height:        c.Frame.Height,
		Margins:       &margins,
		MinSeparation: c.Layout.MinSeparation,
		Detailed:      c.Layout.Detailed,
		Style:         c.Layout.Style,
		NodeRadius:    c.Layout.NodeRadius,
	}
	opts.SetLayoutDefaults()
	return opts
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
