package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/lineage/pkg/family"
)

// =============================================================================
// Roster - Member Directory Serialization
// =============================================================================

// Roster is the canonical serialization format for the member directory.
// Member order is significant: it decides sibling order in the layout.
type Roster struct {
	Members []family.Member `json:"members" toml:"members" bson:"members"`
}

// MarshalRoster converts members to pretty-printed JSON bytes.
func MarshalRoster(members []family.Member) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeRosterTo(members, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteRoster writes members as JSON to an io.Writer.
// Use MarshalRoster for in-memory serialization or WriteRosterFile for files.
func WriteRoster(members []family.Member, w io.Writer) error {
	return writeRosterTo(members, w)
}

// WriteRosterFile writes members to a JSON file.
// The file is created with 0644 permissions.
func WriteRosterFile(members []family.Member, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeRosterTo(members, f)
}

// UnmarshalRoster decodes a roster. Both the object form
// ({"members": [...]}) and a bare array of members are accepted.
func UnmarshalRoster(data []byte) ([]family.Member, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var members []family.Member
		if err := json.Unmarshal(trimmed, &members); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		return members, nil
	}
	var r Roster
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return r.Members, nil
}

// ReadRoster decodes a JSON roster from an io.Reader.
func ReadRoster(r io.Reader) ([]family.Member, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return UnmarshalRoster(data)
}

// ReadRosterFile reads a JSON roster file.
func ReadRosterFile(path string) ([]family.Member, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalRoster(data)
}

func writeRosterTo(members []family.Member, w io.Writer) error {
	if members == nil {
		members = []family.Member{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Roster{Members: members}); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
