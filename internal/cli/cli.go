package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lineage/pkg/cache"
	"github.com/matzehuels/lineage/pkg/config"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/family"
	"github.com/matzehuels/lineage/pkg/pipeline"
	"github.com/matzehuels/lineage/pkg/source"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "lineage"

	// defaultBase is the output base name when members come from the
	// configured source instead of a file.
	defaultBase = "lineage"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty selects the XDG default.
	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the config file. A missing file at the default
// location is not an error; a missing file named with --config is.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		p, err := config.DefaultPath()
		if err != nil {
			return nil
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, errors.ErrCodeFileNotFound) {
			return nil
		}
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.cfg.Cache.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}

	var (
		ch  cache.Cache
		err error
	)
	switch c.cfg.Cache.Backend {
	case config.CacheRedis:
		ch, err = cache.NewRedisCache(ctx, c.cfg.Cache.RedisAddr, c.cfg.Cache.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
	default:
		dir, dirErr := c.cacheDirectory()
		if dirErr != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", dirErr)
			return cache.NewNullCache(), nil
		}
		ch, err = cache.NewFileCache(dir)
		if err != nil {
			return nil, fmt.Errorf("open file cache: %w", err)
		}
	}
	return cache.WithTTL(ch, c.cfg.Cache.TTL.Duration), nil
}

// =============================================================================
// Member Loading
// =============================================================================

// openSource returns the roster file named in args, or the configured
// source when args is empty.
func (c *CLI) openSource(ctx context.Context, args []string) (source.Source, error) {
	if len(args) > 0 {
		return source.NewFile(args[0])
	}
	return source.Open(ctx, c.cfg.Source)
}

// loadMembers reads the members and returns them with the output base
// path derived from the input.
func (c *CLI) loadMembers(ctx context.Context, args []string) ([]family.Member, string, error) {
	src, err := c.openSource(ctx, args)
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	members, err := src.Members(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load members from %s: %w", src.Name(), err)
	}
	c.Logger.Debug("loaded members", "source", src.Name(), "location", src.Location(), "count", len(members))

	base := defaultBase
	if len(args) > 0 {
		base = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	}
	return members, base, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDirectory returns the configured cache directory or the XDG default.
func (c *CLI) cacheDirectory() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/lineage/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// =============================================================================
// Exit Codes
// =============================================================================

// ExitCode maps an error to the process exit status: 2 for a roster that
// does not form a tree or a frame that is too small, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, errors.ErrCodeInvalidHierarchy) || errors.Is(err, errors.ErrCodeDegenerateArea) {
		return 2
	}
	return 1
}
