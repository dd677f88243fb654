// Package source loads the member directory that feeds the layout engine.
//
// Three implementations exist: [Seed] returns the shipped family, [File]
// reads a JSON or TOML roster from disk and [Mongo] reads the member
// collection of a MongoDB database. [Open] picks one from the config.
//
// Sources return records in directory order. That order decides sibling
// order in the layout, so implementations must keep it stable.
package source

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/lineage/pkg/config"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/family"
)

// Source provides member records.
type Source interface {
	// Name identifies the source kind ("seed", "file", "mongo").
	Name() string
	// Location identifies the directory within the kind (a path, a
	// database/collection pair). It is empty for the seed.
	Location() string
	Members(ctx context.Context) ([]family.Member, error)
	Close() error
}

// Open returns the source selected by cfg.
func Open(ctx context.Context, cfg config.Source) (Source, error) {
	switch cfg.Kind {
	case "", config.SourceSeed:
		return NewSeed(), nil
	case config.SourceFile:
		return NewFile(cfg.Path)
	case config.SourceMongo:
		return NewMongo(ctx, cfg.MongoURI, cfg.Database, cfg.Collection)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown source kind: %q", cfg.Kind)
}

// Seed serves the shipped family roster.
type Seed struct {
	singleRoot bool
}

// NewSeed returns the six-member seed family. It has two parentless
// members, so building a hierarchy from it reports MultipleRoots.
func NewSeed() *Seed { return &Seed{} }

// NewSingleRootSeed returns the seed family rooted at the patriarch.
func NewSingleRootSeed() *Seed { return &Seed{singleRoot: true} }

func (s *Seed) Name() string { return config.SourceSeed }

func (s *Seed) Location() string {
	if s.singleRoot {
		return "single-root"
	}
	return ""
}

func (s *Seed) Members(ctx context.Context) ([]family.Member, error) {
	if s.singleRoot {
		return family.SeedSingleRoot(), nil
	}
	return family.Seed(), nil
}

func (s *Seed) Close() error { return nil }

// IsTOML reports whether path names a TOML roster.
func IsTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

var _ Source = (*Seed)(nil)
