package lineage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmpty is returned by [Build] when the roster has no members.
	ErrEmpty = errors.New("roster is empty")

	// ErrInvalidID is returned by [Build] when a member has an empty ID.
	ErrInvalidID = errors.New("member ID must not be empty")

	// ErrDuplicateID is returned by [Build] when two members share an ID.
	ErrDuplicateID = errors.New("duplicate member ID")

	// ErrNoRoot is returned by [Build] when every member has a parent.
	ErrNoRoot = errors.New("no root member")

	// ErrMultipleRoots is returned by [Build] when more than one member has
	// no parent. Rosters are never silently re-rooted.
	ErrMultipleRoots = errors.New("multiple root members")

	// ErrDanglingParent is returned by [Build] when a parent ID does not
	// match any member.
	ErrDanglingParent = errors.New("parent does not exist")

	// ErrCycle is returned by [Build] when parent links form a loop that
	// never reaches the root.
	ErrCycle = errors.New("parent links form a cycle")

	// ErrDegenerateArea is returned by [Layout] when the margins leave no
	// drawable width or height.
	ErrDegenerateArea = errors.New("drawing area is degenerate")
)

// Kind names a failure category. The string values are stable and are used
// in API responses.
type Kind string

const (
	KindEmpty          Kind = "empty"
	KindInvalidID      Kind = "invalid_id"
	KindDuplicateID    Kind = "duplicate_id"
	KindNoRoot         Kind = "no_root"
	KindMultipleRoots  Kind = "multiple_roots"
	KindDanglingParent Kind = "dangling_parent"
	KindCycle          Kind = "cycle"
	KindDegenerateArea Kind = "degenerate_area"
)

var sentinels = map[Kind]error{
	KindEmpty:          ErrEmpty,
	KindInvalidID:      ErrInvalidID,
	KindDuplicateID:    ErrDuplicateID,
	KindNoRoot:         ErrNoRoot,
	KindMultipleRoots:  ErrMultipleRoots,
	KindDanglingParent: ErrDanglingParent,
	KindCycle:          ErrCycle,
	KindDegenerateArea: ErrDegenerateArea,
}

// HierarchyError reports a roster that cannot be turned into a tree.
//
// Which fields are set depends on Kind:
//
//	KindInvalidID      Index
//	KindDuplicateID    IDs = [id]
//	KindMultipleRoots  IDs = root ids in input order
//	KindDanglingParent ChildID, ParentID
//	KindCycle          IDs = members on the loop
type HierarchyError struct {
	Kind     Kind
	IDs      []string
	ChildID  string
	ParentID string
	Index    int
}

func (e *HierarchyError) Error() string {
	base := sentinels[e.Kind].Error()
	switch e.Kind {
	case KindInvalidID:
		return fmt.Sprintf("%s (record %d)", base, e.Index)
	case KindDuplicateID:
		return fmt.Sprintf("%s: %s", base, strings.Join(e.IDs, ", "))
	case KindMultipleRoots, KindCycle:
		return fmt.Sprintf("%s: %s", base, strings.Join(e.IDs, ", "))
	case KindDanglingParent:
		return fmt.Sprintf("%s: member %s references %s", base, e.ChildID, e.ParentID)
	default:
		return base
	}
}

// Is makes errors.Is(err, ErrNoRoot) and friends work.
func (e *HierarchyError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// LayoutError reports a frame that leaves nothing to draw on.
type LayoutError struct {
	Kind Kind
	// InnerWidth and InnerHeight are the dimensions left after subtracting
	// the margins.
	InnerWidth, InnerHeight float64
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("%s: %gx%g after margins", sentinels[e.Kind], e.InnerWidth, e.InnerHeight)
}

// Is makes errors.Is(err, ErrDegenerateArea) work.
func (e *LayoutError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// KindOf returns the failure kind carried by err, or "" if err did not come
// from this package.
func KindOf(err error) Kind {
	var he *HierarchyError
	if errors.As(err, &he) {
		return he.Kind
	}
	var le *LayoutError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}

// IDsOf returns the member IDs named by err, if any.
func IDsOf(err error) []string {
	var he *HierarchyError
	if !errors.As(err, &he) {
		return nil
	}
	if he.Kind == KindDanglingParent {
		return []string{he.ChildID, he.ParentID}
	}
	return append([]string(nil), he.IDs...)
}

// Describe returns a sentence for the user explaining why no tree can be
// drawn. It is meant to be shown in place of the drawing.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var he *HierarchyError
	if errors.As(err, &he) {
		switch he.Kind {
		case KindEmpty:
			return "No family members to show yet."
		case KindInvalidID:
			return fmt.Sprintf("Family member #%d has no identifier.", he.Index+1)
		case KindDuplicateID:
			return fmt.Sprintf("More than one family member uses the identifier %q.", he.IDs[0])
		case KindNoRoot:
			return "No root family member found: every member lists a parent."
		case KindMultipleRoots:
			return fmt.Sprintf("The tree needs a single root, but %d members have no parent (%s).",
				len(he.IDs), strings.Join(he.IDs, ", "))
		case KindDanglingParent:
			return fmt.Sprintf("Family member %s lists parent %s, who is not in the directory.", he.ChildID, he.ParentID)
		case KindCycle:
			return fmt.Sprintf("Parent links loop back on themselves (%s). Check parent/child links.",
				strings.Join(he.IDs, " -> "))
		}
	}
	var le *LayoutError
	if errors.As(err, &le) {
		return fmt.Sprintf("The drawing area is too small to show the tree (%gx%g after margins).",
			le.InnerWidth, le.InnerHeight)
	}
	return "Could not render tree structure. Check parent/child links."
}
