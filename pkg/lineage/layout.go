package lineage

import "math"

const (
	// DefaultNodeRadius is the radius of the circle renderers draw for a
	// member. Layout only uses it to derive the default separation.
	DefaultNodeRadius = 30.0

	// DefaultMinSeparation is the minimum horizontal distance between the
	// centres of two nodes in the same tier: two glyphs side by side.
	DefaultMinSeparation = 2 * DefaultNodeRadius
)

// Margins is the space kept free on each side of the frame.
type Margins struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// UniformMargins returns margins of m on every side.
func UniformMargins(m float64) Margins {
	return Margins{Top: m, Right: m, Bottom: m, Left: m}
}

// Frame is the drawing area handed over by the hosting container.
type Frame struct {
	Width   float64 `json:"width" toml:"width"`
	Height  float64 `json:"height" toml:"height"`
	Margins Margins `json:"margins" toml:"margins"`
}

// Inner returns the width and height left after subtracting the margins.
func (f Frame) Inner() (w, h float64) {
	return f.Width - f.Margins.Left - f.Margins.Right, f.Height - f.Margins.Top - f.Margins.Bottom
}

func (f Frame) validate() error {
	w, h := f.Inner()
	m := f.Margins
	bad := !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) ||
		m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0
	if bad {
		return &LayoutError{Kind: KindDegenerateArea, InnerWidth: w, InnerHeight: h}
	}
	return nil
}

// Option configures [Layout] and [Compute].
type Option func(*config)

type config struct {
	minSeparation float64
}

// WithMinSeparation sets the minimum centre distance between neighbours in
// a tier. Zero or negative values disable the separation pass.
func WithMinSeparation(px float64) Option {
	return func(c *config) {
		if px < 0 {
			px = 0
		}
		c.minSeparation = px
	}
}

// PositionedNode is a member with its assigned coordinates.
type PositionedNode struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Relation string  `json:"relation,omitempty"`
	ParentID string  `json:"parent_id,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Depth    int     `json:"depth"`
	// Order is the position of the node within its tier, counted from the left.
	Order int `json:"order"`
}

// Connector is the segment linking a parent to one of its children.
type Connector struct {
	FromID string  `json:"from"`
	ToID   string  `json:"to"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
}

// Result is the output of one layout computation. Nodes and Connectors are
// in breadth-first order with siblings in input order. A Result owns its
// slices; nothing else references them.
type Result struct {
	Frame      Frame            `json:"frame"`
	MaxDepth   int              `json:"max_depth"`
	Nodes      []PositionedNode `json:"nodes"`
	Connectors []Connector      `json:"connectors"`
}

// Node returns the positioned node with the given ID.
func (r Result) Node(id string) (PositionedNode, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PositionedNode{}, false
}

// Tiers groups the nodes by depth, each tier ordered left to right.
func (r Result) Tiers() [][]PositionedNode {
	tiers := make([][]PositionedNode, r.MaxDepth+1)
	for _, n := range r.Nodes {
		tiers[n.Depth] = append(tiers[n.Depth], n)
	}
	return tiers
}

// Compute builds the hierarchy from members and lays it out in frame.
func Compute(members []Member, frame Frame, opts ...Option) (Result, error) {
	root, err := Build(members)
	if err != nil {
		return Result{}, err
	}
	return Layout(root, frame, opts...)
}

// Layout assigns coordinates to every node of the tree rooted at root.
//
// The available area is the frame minus its margins; if that leaves no
// width or height, a *[LayoutError] is returned. Depth maps linearly to y,
// from the top margin for the root to the bottom margin for the deepest
// tier. Leaves are spread evenly across the width and parents are centred
// over their children. Neighbours in a tier are then pushed at least the
// minimum separation apart, staying inside the available area. Parents are
// not re-centred after that pass, so a parent whose tier or children moved
// may sit off the mean of its children.
//
// Layout does not modify root and returns identical results for identical
// input.
func Layout(root *TreeNode, frame Frame, opts ...Option) (Result, error) {
	if root == nil {
		return Result{}, &HierarchyError{Kind: KindEmpty}
	}
	if err := frame.validate(); err != nil {
		return Result{}, err
	}

	cfg := config{minSeparation: DefaultMinSeparation}
	for _, opt := range opts {
		opt(&cfg)
	}

	innerW, innerH := frame.Inner()
	minX := frame.Margins.Left
	maxX := minX + innerW

	// Depths are recomputed relative to root so that a subtree of a larger
	// hierarchy lays out the same way as a standalone tree.
	order, depth := breadthFirst(root)

	x := make(map[*TreeNode]float64, len(order))
	leafCount := countLeaves(root)
	slot := innerW / float64(leafCount)
	nextLeaf := 0
	var place func(n *TreeNode) float64
	place = func(n *TreeNode) float64 {
		if n.IsLeaf() {
			x[n] = minX + (float64(nextLeaf)+0.5)*slot
			nextLeaf++
			return x[n]
		}
		sum := 0.0
		for _, c := range n.Children {
			sum += place(c)
		}
		x[n] = sum / float64(len(n.Children))
		return x[n]
	}
	place(root)

	maxDepth := 0
	for _, d := range depth {
		if d > maxDepth {
			maxDepth = d
		}
	}
	tiers := make([][]*TreeNode, maxDepth+1)
	for _, n := range order {
		tiers[depth[n]] = append(tiers[depth[n]], n)
	}
	tierOrder := make(map[*TreeNode]int, len(order))
	for _, tier := range tiers {
		xs := make([]float64, len(tier))
		for i, n := range tier {
			xs[i] = x[n]
		}
		separate(xs, minX, maxX, cfg.minSeparation)
		for i, n := range tier {
			x[n] = xs[i]
			tierOrder[n] = i
		}
	}

	yOf := func(d int) float64 {
		if maxDepth == 0 {
			return frame.Margins.Top
		}
		return frame.Margins.Top + float64(d)*innerH/float64(maxDepth)
	}

	res := Result{
		Frame:      frame,
		MaxDepth:   maxDepth,
		Nodes:      make([]PositionedNode, 0, len(order)),
		Connectors: make([]Connector, 0, len(order)-1),
	}
	for _, n := range order {
		res.Nodes = append(res.Nodes, PositionedNode{
			ID:       n.Member.ID,
			Name:     n.Member.Name,
			Relation: n.Member.Relation,
			ParentID: n.Member.ParentID,
			X:        x[n],
			Y:        yOf(depth[n]),
			Depth:    depth[n],
			Order:    tierOrder[n],
		})
	}
	for _, n := range order {
		for _, c := range n.Children {
			res.Connectors = append(res.Connectors, Connector{
				FromID: n.Member.ID,
				ToID:   c.Member.ID,
				X1:     x[n],
				Y1:     yOf(depth[n]),
				X2:     x[c],
				Y2:     yOf(depth[c]),
			})
		}
	}
	// The root of a subtree keeps its original parent reference in Member,
	// but it has no parent inside this result.
	res.Nodes[0].ParentID = ""
	return res, nil
}

func breadthFirst(root *TreeNode) ([]*TreeNode, map[*TreeNode]int) {
	var order []*TreeNode
	depth := map[*TreeNode]int{root: 0}
	root.Walk(func(n *TreeNode) bool {
		order = append(order, n)
		for _, c := range n.Children {
			depth[c] = depth[n] + 1
		}
		return true
	})
	return order, depth
}

func countLeaves(n *TreeNode) int {
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += countLeaves(c)
	}
	return total
}

// separate pushes neighbouring coordinates at least sep apart while keeping
// them in [minX, maxX] and in their original order. When the tier cannot
// fit at sep, the spacing shrinks to what the width allows.
func separate(xs []float64, minX, maxX, sep float64) {
	n := len(xs)
	if n < 2 || sep <= 0 {
		return
	}
	if fit := (maxX - minX) / float64(n-1); sep > fit {
		sep = fit
	}
	for i := 1; i < n; i++ {
		if xs[i] < xs[i-1]+sep {
			xs[i] = xs[i-1] + sep
		}
	}
	if xs[n-1] > maxX {
		xs[n-1] = maxX
		for i := n - 2; i >= 0; i-- {
			if xs[i] > xs[i+1]-sep {
				xs[i] = xs[i+1] - sep
			}
		}
	}
	for i := range xs {
		xs[i] = math.Min(math.Max(xs[i], minX), maxX)
	}
}
