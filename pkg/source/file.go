package source

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lineage/pkg/config"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/family"
	"github.com/matzehuels/lineage/pkg/graph"
)

// File reads a roster file on every call, so edits show up without a
// restart. Files ending in .toml are decoded as TOML with a [[members]]
// array of tables; anything else is read as a JSON roster.
type File struct {
	path string
}

// NewFile returns a source for the roster at path. The file must exist.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "roster path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "roster %s not found", path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	return &File{path: path}, nil
}

func (f *File) Name() string     { return config.SourceFile }
func (f *File) Location() string { return f.path }

func (f *File) Members(ctx context.Context) ([]family.Member, error) {
	if IsTOML(f.path) {
		return ReadTOML(f.path)
	}
	members, err := graph.ReadRosterFile(f.path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "roster %s", f.path)
	}
	return members, nil
}

func (f *File) Close() error { return nil }

// ReadTOML reads a TOML roster:
//
//	[[members]]
//	id = "1"
//	name = "Arthur Keelapavoor"
//	relation = "Patriarch"
func ReadTOML(path string) ([]family.Member, error) {
	var r graph.Roster
	md, err := toml.DecodeFile(path, &r)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "roster %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "roster %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "roster %s: unknown key %q", path, undecoded[0].String())
	}
	return r.Members, nil
}

// WriteTOML writes members as a TOML roster.
func WriteTOML(members []family.Member, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(graph.Roster{Members: members}); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

var _ Source = (*File)(nil)
