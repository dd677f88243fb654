package lineage

// Build validates members and links them into a tree rooted at the single
// parentless member.
//
// Checks run in a fixed order and the first violation is returned:
// empty roster, empty or duplicate IDs, no root, multiple roots, dangling
// parent references, cycles. See [HierarchyError] for the details carried
// by each kind.
//
// Children keep the relative order of their records in members. The input
// slice is not modified and the returned tree shares no memory with it.
func Build(members []Member) (*TreeNode, error) {
	if len(members) == 0 {
		return nil, &HierarchyError{Kind: KindEmpty}
	}

	index := make(map[string]int, len(members))
	for i, m := range members {
		if m.ID == "" {
			return nil, &HierarchyError{Kind: KindInvalidID, Index: i}
		}
		if _, dup := index[m.ID]; dup {
			return nil, &HierarchyError{Kind: KindDuplicateID, IDs: []string{m.ID}}
		}
		index[m.ID] = i
	}

	var roots []string
	for _, m := range members {
		if m.IsRoot() {
			roots = append(roots, m.ID)
		}
	}
	switch len(roots) {
	case 0:
		return nil, &HierarchyError{Kind: KindNoRoot}
	case 1:
	default:
		return nil, &HierarchyError{Kind: KindMultipleRoots, IDs: roots}
	}

	for _, m := range members {
		if m.IsRoot() {
			continue
		}
		if _, ok := index[m.ParentID]; !ok {
			return nil, &HierarchyError{Kind: KindDanglingParent, ChildID: m.ID, ParentID: m.ParentID}
		}
	}

	if cycle := findCycle(members, index); cycle != nil {
		return nil, &HierarchyError{Kind: KindCycle, IDs: cycle}
	}

	return link(members, roots[0]), nil
}

// findCycle walks parent links from every member, at most len(members)
// steps each. It returns the loop found from the first member (in input
// order) that cannot reach the root, or nil. Members already proven to
// reach the root short-circuit later walks.
func findCycle(members []Member, index map[string]int) []string {
	reaches := make(map[string]bool, len(members))
	limit := len(members)

	for _, m := range members {
		var path []string
		cur := m
		ok := false
		for step := 0; step <= limit; step++ {
			if cur.IsRoot() || reaches[cur.ID] {
				ok = true
				break
			}
			path = append(path, cur.ID)
			cur = members[index[cur.ParentID]]
		}
		if ok {
			for _, id := range path {
				reaches[id] = true
			}
			continue
		}
		return extractLoop(path, index)
	}
	return nil
}

// extractLoop returns the repeating tail of path, rotated so that the member
// that appears first in the input leads.
func extractLoop(path []string, index map[string]int) []string {
	seen := make(map[string]int, len(path))
	start, end := 0, len(path)
	for i, id := range path {
		if j, ok := seen[id]; ok {
			start, end = j, i
			break
		}
		seen[id] = i
	}
	loop := path[start:end]

	first := 0
	for i, id := range loop {
		if index[id] < index[loop[first]] {
			first = i
		}
	}
	out := make([]string, 0, len(loop))
	out = append(out, loop[first:]...)
	out = append(out, loop[:first]...)
	return out
}

// link groups members by parent and assigns depths top-down. Callers must
// have validated the roster.
func link(members []Member, rootID string) *TreeNode {
	nodes := make(map[string]*TreeNode, len(members))
	for _, m := range members {
		nodes[m.ID] = &TreeNode{Member: m}
	}
	for _, m := range members {
		if m.IsRoot() {
			continue
		}
		parent := nodes[m.ParentID]
		parent.Children = append(parent.Children, nodes[m.ID])
	}

	root := nodes[rootID]
	root.Walk(func(n *TreeNode) bool {
		for _, c := range n.Children {
			c.Depth = n.Depth + 1
		}
		return true
	})
	return root
}
