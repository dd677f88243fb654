package lineage

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var scenario = []Member{
	{ID: "1", Name: "Arthur", Relation: "Patriarch"},
	{ID: "2", Name: "John", Relation: "Son", ParentID: "1"},
	{ID: "3", Name: "Sarah", Relation: "Daughter", ParentID: "1"},
	{ID: "4", Name: "Jack", Relation: "Grandson", ParentID: "2"},
}

var frame800 = Frame{Width: 800, Height: 600, Margins: UniformMargins(50)}

func TestLayoutScenario(t *testing.T) {
	res, err := Compute(scenario, frame800)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	want := []PositionedNode{
		{ID: "1", Name: "Arthur", Relation: "Patriarch", X: 400, Y: 50, Depth: 0, Order: 0},
		{ID: "2", Name: "John", Relation: "Son", ParentID: "1", X: 225, Y: 300, Depth: 1, Order: 0},
		{ID: "3", Name: "Sarah", Relation: "Daughter", ParentID: "1", X: 575, Y: 300, Depth: 1, Order: 1},
		{ID: "4", Name: "Jack", Relation: "Grandson", ParentID: "2", X: 225, Y: 550, Depth: 2, Order: 0},
	}
	if diff := cmp.Diff(want, res.Nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}

	if len(res.Connectors) != 3 {
		t.Fatalf("connectors = %d, want 3", len(res.Connectors))
	}
	wantEdges := [][2]string{{"1", "2"}, {"1", "3"}, {"2", "4"}}
	for i, c := range res.Connectors {
		if got := [2]string{c.FromID, c.ToID}; got != wantEdges[i] {
			t.Errorf("connector %d = %v, want %v", i, got, wantEdges[i])
		}
	}
	c := res.Connectors[2]
	if c.X1 != 225 || c.Y1 != 300 || c.X2 != 225 || c.Y2 != 550 {
		t.Errorf("connector 2->4 = %+v", c)
	}

	root, _ := res.Node("1")
	n2, _ := res.Node("2")
	n3, _ := res.Node("3")
	if root.X != (n2.X+n3.X)/2 {
		t.Errorf("root x = %v, want mean of children %v", root.X, (n2.X+n3.X)/2)
	}
	if res.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", res.MaxDepth)
	}
}

func TestLayoutSingleNode(t *testing.T) {
	res, err := Compute([]Member{{ID: "solo"}}, frame800)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(res.Nodes) != 1 || len(res.Connectors) != 0 {
		t.Fatalf("got %d nodes, %d connectors", len(res.Nodes), len(res.Connectors))
	}
	n := res.Nodes[0]
	if n.X != 400 || n.Y != 50 {
		t.Errorf("solo at (%v, %v), want (400, 50)", n.X, n.Y)
	}
}

func TestLayoutDegenerateArea(t *testing.T) {
	root, err := Build(scenario)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	frames := map[string]Frame{
		"ZeroWidth":      {Width: 100, Height: 600, Margins: UniformMargins(50)},
		"NegativeHeight": {Width: 800, Height: 80, Margins: UniformMargins(50)},
		"NoFrame":        {},
		"NegativeMargin": {Width: 800, Height: 600, Margins: Margins{Left: -10}},
		"NaN":            {Width: math.NaN(), Height: 600},
		"Infinite":       {Width: math.Inf(1), Height: 600},
	}
	for name, f := range frames {
		t.Run(name, func(t *testing.T) {
			res, err := Layout(root, f)
			if !errors.Is(err, ErrDegenerateArea) {
				t.Fatalf("err = %v, want ErrDegenerateArea", err)
			}
			if res.Nodes != nil || res.Connectors != nil {
				t.Error("partial result returned alongside error")
			}
			var le *LayoutError
			if !errors.As(err, &le) || le.Kind != KindDegenerateArea {
				t.Errorf("errors.As LayoutError failed: %v", err)
			}
		})
	}
}

func TestLayoutNilRoot(t *testing.T) {
	if _, err := Layout(nil, frame800); !errors.Is(err, ErrEmpty) {
		t.Errorf("err = %v, want ErrEmpty", err)
	}
}

func TestLayoutStaysInFrame(t *testing.T) {
	frames := []Frame{
		frame800,
		{Width: 200, Height: 150, Margins: UniformMargins(10)},
		{Width: 1200, Height: 400, Margins: Margins{Top: 5, Right: 100, Bottom: 30, Left: 0}},
	}
	rosters := [][]Member{
		scenario,
		chain(1, 2),
		chain(25, 2),
		chain(120, 5),
		chain(60, 1),
	}

	for _, f := range frames {
		for _, members := range rosters {
			res, err := Compute(members, f)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			innerW, innerH := f.Inner()
			for _, n := range res.Nodes {
				if n.X < 0 || n.X > f.Width || n.Y < 0 || n.Y > f.Height {
					t.Errorf("%s at (%v, %v) outside %vx%v", n.ID, n.X, n.Y, f.Width, f.Height)
				}
				if n.X < f.Margins.Left || n.X > f.Margins.Left+innerW ||
					n.Y < f.Margins.Top || n.Y > f.Margins.Top+innerH {
					t.Errorf("%s at (%v, %v) outside the available area", n.ID, n.X, n.Y)
				}
			}
			for _, c := range res.Connectors {
				for _, p := range [][2]float64{{c.X1, c.Y1}, {c.X2, c.Y2}} {
					if p[0] < 0 || p[0] > f.Width || p[1] < 0 || p[1] > f.Height {
						t.Errorf("connector %s->%s endpoint %v outside frame", c.FromID, c.ToID, p)
					}
				}
			}
		}
	}
}

func TestLayoutIdempotent(t *testing.T) {
	root, err := Build(chain(80, 3))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	first, err := Layout(root, frame800)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	second, err := Layout(root, frame800)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second layout differs (-first +second):\n%s", diff)
	}
	if root.Depth != 0 || root.Count() != 80 {
		t.Error("Layout modified the tree")
	}
}

func TestLayoutSiblingOrder(t *testing.T) {
	members := []Member{
		{ID: "root"},
		{ID: "z", ParentID: "root"},
		{ID: "a", ParentID: "root"},
		{ID: "m", ParentID: "root"},
	}
	res, err := Compute(members, frame800)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	var ids []string
	var xs []float64
	for _, n := range res.Nodes[1:] {
		ids = append(ids, n.ID)
		xs = append(xs, n.X)
	}
	if want := []string{"z", "a", "m"}; !slices.Equal(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
	if !slices.IsSorted(xs) {
		t.Errorf("siblings not left to right: %v", xs)
	}
}

func TestLayoutSeparation(t *testing.T) {
	members := chain(13, 12) // root with twelve leaves
	tests := []struct {
		name    string
		frame   Frame
		opts    []Option
		wantMin float64
	}{
		{"Roomy", frame800, nil, DefaultMinSeparation},
		{"Tight", Frame{Width: 320, Height: 300, Margins: UniformMargins(10)}, nil, 300.0 / 11},
		{"CustomSeparation", Frame{Width: 2000, Height: 300}, []Option{WithMinSeparation(200)}, 2000.0 / 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compute(members, tt.frame, tt.opts...)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			leaves := res.Tiers()[1]
			for i := 1; i < len(leaves); i++ {
				gap := leaves[i].X - leaves[i-1].X
				if gap < tt.wantMin-1e-9 {
					t.Errorf("gap %d = %v, want >= %v", i, gap, tt.wantMin)
				}
			}
		})
	}
}

func TestLayoutTierOrderNoOverlap(t *testing.T) {
	// Several internal nodes in one tier with uneven subtrees.
	members := []Member{
		{ID: "r"},
		{ID: "a", ParentID: "r"},
		{ID: "b", ParentID: "r"},
		{ID: "c", ParentID: "r"},
		{ID: "a1", ParentID: "a"},
		{ID: "a2", ParentID: "a"},
		{ID: "a3", ParentID: "a"},
		{ID: "c1", ParentID: "c"},
	}
	res, err := Compute(members, Frame{Width: 300, Height: 300})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for depth, tier := range res.Tiers() {
		for i := 1; i < len(tier); i++ {
			if tier[i].X <= tier[i-1].X {
				t.Errorf("tier %d: %s (%v) not right of %s (%v)",
					depth, tier[i].ID, tier[i].X, tier[i-1].ID, tier[i-1].X)
			}
			if tier[i].Order != i {
				t.Errorf("tier %d: %s has order %d, want %d", depth, tier[i].ID, tier[i].Order, i)
			}
		}
	}
}

func TestLayoutSubtree(t *testing.T) {
	root, err := Build(scenario)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	res, err := Layout(root.Find("2"), frame800)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if res.MaxDepth != 1 || len(res.Nodes) != 2 {
		t.Fatalf("subtree result: depth %d, %d nodes", res.MaxDepth, len(res.Nodes))
	}
	if res.Nodes[0].ParentID != "" || res.Nodes[0].Y != 50 {
		t.Errorf("subtree root = %+v, want parentless at top margin", res.Nodes[0])
	}
}

func TestSeparationDoesNotRecentreParents(t *testing.T) {
	members := []Member{
		{ID: "r"},
		{ID: "a", ParentID: "r"},
		{ID: "b", ParentID: "r"},
		{ID: "a1", ParentID: "a"},
		{ID: "a2", ParentID: "a"},
		{ID: "a3", ParentID: "a"},
	}
	res, err := Compute(members, Frame{Width: 400, Height: 400}, WithMinSeparation(120))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	xs := map[string]float64{}
	for _, n := range res.Nodes {
		xs[n.ID] = n.X
	}
	want := map[string]float64{"r": 250, "a": 150, "b": 350, "a1": 50, "a2": 170, "a3": 290}
	if diff := cmp.Diff(want, xs); diff != "" {
		t.Errorf("x mismatch (-want +got):\n%s", diff)
	}
	if mean := (xs["a1"] + xs["a2"] + xs["a3"]) / 3; xs["a"] == mean {
		t.Errorf("a = %v sits on its children's mean after separation", xs["a"])
	}
}
