package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/lineage/pkg/cache"
	"github.com/matzehuels/lineage/pkg/errors"
	"github.com/matzehuels/lineage/pkg/family"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/lineage"
)

// memCache is an in-memory cache.Cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Fatalf("NewRunner left nil fields: %+v", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestExecuteTree(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)
	res, err := r.Execute(context.Background(), family.SeedSingleRoot(), Options{
		Formats: []string{"svg", "json"},
		Style:   "warm",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.MemberCount != 5 || res.Stats.MaxDepth != 2 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.RosterHash == "" {
		t.Error("RosterHash should be set")
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	svg := string(res.Artifacts["svg"])
	if !strings.Contains(svg, "Arthur Keelapavoor") || !strings.Contains(svg, "5 members, 3 generations") {
		t.Error("SVG missing member label or summary")
	}
	l, err := graph.UnmarshalLayout(res.Artifacts["json"])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if l.Style != "warm" || len(l.Nodes) != 5 {
		t.Errorf("json artifact style = %q, nodes = %d", l.Style, len(l.Nodes))
	}
}

func TestExecuteCaches(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{"svg"}}

	first, err := r.Execute(ctx, family.SeedSingleRoot(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := r.Execute(ctx, family.SeedSingleRoot(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", second.CacheInfo)
	}
	if diff := cmp.Diff(first.Layout, second.Layout); diff != "" {
		t.Errorf("cached layout differs (-first +second):\n%s", diff)
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached SVG differs")
	}

	// A different frame is a different layout.
	third, err := r.Execute(ctx, family.SeedSingleRoot(), Options{Width: 1000, Formats: []string{"svg"}})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("different width should miss the layout cache")
	}
}

func TestEngineErrorsAreNotCached(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)

	_, err := r.Execute(context.Background(), family.Seed(), Options{})
	if !errors.Is(err, errors.ErrCodeInvalidHierarchy) {
		t.Fatalf("err = %v, want INVALID_HIERARCHY", err)
	}
	if lineage.KindOf(err) != lineage.KindMultipleRoots {
		t.Errorf("kind = %q, want multiple_roots", lineage.KindOf(err))
	}
	if got := errors.UserMessage(err); !strings.Contains(got, "2 members have no parent (1, 2)") {
		t.Errorf("user message = %q", got)
	}
	if c.sets != 0 {
		t.Errorf("%d cache writes after a failed layout", c.sets)
	}
}

func TestDegenerateArea(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	zero := lineage.UniformMargins(300)
	_, err := r.GenerateLayout(context.Background(), family.SeedSingleRoot(), Options{Width: 600, Height: 600, Margins: &zero})
	if !errors.Is(err, errors.ErrCodeDegenerateArea) {
		t.Fatalf("err = %v, want DEGENERATE_AREA", err)
	}
}

func TestExecuteNodelink(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), family.SeedSingleRoot(), Options{
		VizType:  "nodelink",
		Formats:  []string{"dot", "json"},
		Detailed: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	dot := string(res.Artifacts["dot"])
	if !strings.Contains(dot, `"1" -> "3"`) || !strings.Contains(dot, `Arthur Keelapavoor\nPatriarch`) {
		t.Errorf("DOT artifact:\n%s", dot)
	}
	if !res.Layout.IsNodelink() || res.Layout.DOT != dot {
		t.Error("layout should carry the rendered DOT")
	}
}

func TestRenderNodelinkRestyles(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	l, err := r.GenerateLayout(ctx, family.SeedSingleRoot(), Options{VizType: "nodelink", Style: "simple"})
	if err != nil {
		t.Fatal(err)
	}
	out, err := r.Render(ctx, l, Options{Formats: []string{"dot"}, Style: "warm"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out["dot"]), "#fdf8f6") {
		t.Error("render with a new style should regenerate the DOT colours")
	}
}

func TestRenderNodelinkDetailed(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(newMemCache(), nil, nil)
	l, err := r.GenerateLayout(ctx, family.SeedSingleRoot(), Options{VizType: "nodelink", Style: "simple"})
	if err != nil {
		t.Fatal(err)
	}
	const label = `Arthur Keelapavoor\nPatriarch`

	tests := []struct {
		name     string
		detailed bool
		wantHit  bool
	}{
		{"names only", false, false},
		{"with relations", true, false},
		{"with relations again", true, true},
	}
	for _, tt := range tests {
		out, hit, err := r.RenderWithCacheInfo(ctx, l, Options{Formats: []string{"dot", "json"}, Style: "simple", Detailed: tt.detailed})
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if hit != tt.wantHit {
			t.Errorf("%s: cache hit = %v, want %v", tt.name, hit, tt.wantHit)
		}
		if got := strings.Contains(string(out["dot"]), label); got != tt.detailed {
			t.Errorf("%s: DOT has relation labels = %v, want %v", tt.name, got, tt.detailed)
		}
		stored, err := graph.UnmarshalLayout(out["json"])
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if stored.Detailed != tt.detailed || stored.DOT != string(out["dot"]) {
			t.Errorf("%s: json layout detailed = %v, DOT matches = %v", tt.name, stored.Detailed, stored.DOT == string(out["dot"]))
		}
	}
}

func TestRenderRejectsFormatForLayoutType(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	l, err := r.GenerateLayout(ctx, family.SeedSingleRoot(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	// The layout's viz type wins over the options.
	_, err = r.Render(ctx, l, Options{VizType: "nodelink", Formats: []string{"png"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	if err := Validate(ctx, family.SeedSingleRoot()); err != nil {
		t.Errorf("seed: %v", err)
	}
	bad := family.SeedSingleRoot()
	bad[2].Email = "not-an-email"
	if err := Validate(ctx, bad); !errors.Is(err, errors.ErrCodeInvalidMember) {
		t.Errorf("bad email: err = %v", err)
	}
	if err := Validate(ctx, nil); lineage.KindOf(err) != lineage.KindEmpty {
		t.Errorf("empty roster: kind = %q", lineage.KindOf(err))
	}
}

func TestRosterHashIsOrderSensitive(t *testing.T) {
	seed := family.SeedSingleRoot()
	swapped := family.SeedSingleRoot()
	swapped[1], swapped[2] = swapped[2], swapped[1]
	if RosterHash(seed) == RosterHash(swapped) {
		t.Error("member order decides sibling order and must change the hash")
	}
	if RosterHash(seed) != RosterHash(family.SeedSingleRoot()) {
		t.Error("RosterHash should be deterministic")
	}
}

func TestErrorCard(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), family.Seed(), Options{Style: "warm"})
	card, ok := ErrorCard(err, Options{Style: "warm"})
	if !ok {
		t.Fatal("no card for an engine error")
	}
	if !strings.Contains(string(card), "<svg") || !strings.Contains(string(card), "single root") {
		t.Errorf("card does not explain the failure:\n%s", card)
	}

	zero := Options{}
	zero.SetLayoutDefaults()
	zero.Width = 0
	_, err = NewRunner(nil, nil, nil).Execute(context.Background(), family.SeedSingleRoot(), zero)
	if !errors.Is(err, errors.ErrCodeDegenerateArea) {
		t.Fatalf("zero width: err = %v, want DEGENERATE_AREA", err)
	}
	card, ok = ErrorCard(err, zero)
	if !ok || !strings.Contains(string(card), `viewBox="0 0 800.0 600.0"`) {
		t.Errorf("zero-width card should fall back to the default canvas:\n%s", card)
	}

	if _, ok := ErrorCard(errors.New(errors.ErrCodeNetwork, "mongo down"), Options{}); ok {
		t.Error("card drawn for a non-engine error")
	}
}
