package lineage

// Member is one input record of the roster. Only the fields below are read;
// richer records (see package family) are converted before layout.
type Member struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Relation string `json:"relation,omitempty"`
	// ParentID references another member's ID. Empty means the member has
	// no parent and is a root candidate.
	ParentID string `json:"parent_id,omitempty"`
}

// IsRoot reports whether the member has no parent reference.
func (m Member) IsRoot() bool { return m.ParentID == "" }

// Label returns the display name, falling back to the ID.
func (m Member) Label() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// TreeNode is a member linked into the validated hierarchy.
//
// Children are ordered as their records appeared in the input. A TreeNode is
// never mutated by [Layout]; coordinates live in the [Result].
type TreeNode struct {
	Member   Member
	Children []*TreeNode
	Depth    int
}

// IsLeaf reports whether the node has no children.
func (n *TreeNode) IsLeaf() bool { return len(n.Children) == 0 }

// Count returns the number of nodes in the subtree rooted at n.
func (n *TreeNode) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// MaxDepth returns the depth of the deepest node in the subtree rooted at n.
func (n *TreeNode) MaxDepth() int {
	deepest := n.Depth
	for _, c := range n.Children {
		if d := c.MaxDepth(); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Walk visits the subtree breadth-first: parents before children, siblings
// in input order. Returning false from fn stops the walk.
func (n *TreeNode) Walk(fn func(*TreeNode) bool) {
	queue := []*TreeNode{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !fn(cur) {
			return
		}
		queue = append(queue, cur.Children...)
	}
}

// Find returns the node with the given member ID, or nil.
func (n *TreeNode) Find(id string) *TreeNode {
	var found *TreeNode
	n.Walk(func(t *TreeNode) bool {
		if t.Member.ID == id {
			found = t
			return false
		}
		return true
	})
	return found
}
