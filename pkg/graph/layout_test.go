package graph

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/lineage/pkg/lineage"
)

func scenarioResult(t *testing.T) lineage.Result {
	t.Helper()
	members := []lineage.Member{
		{ID: "1", Name: "Arthur", Relation: "Patriarch"},
		{ID: "2", Name: "John", Relation: "Son", ParentID: "1"},
		{ID: "3", Name: "Sarah", Relation: "Daughter", ParentID: "1"},
		{ID: "4", Name: "Jack", Relation: "Grandson", ParentID: "2"},
	}
	res, err := lineage.Compute(members, lineage.Frame{Width: 800, Height: 600, Margins: lineage.UniformMargins(50)})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return res
}

func TestFromResult(t *testing.T) {
	l := FromResult(scenarioResult(t), StyleWarm)

	if !l.IsTree() || l.IsNodelink() {
		t.Fatalf("viz type = %q, want %q", l.VizType, VizTypeTree)
	}
	if l.Width != 800 || l.Height != 600 || l.Margins.Top != 50 {
		t.Errorf("frame = %vx%v %+v", l.Width, l.Height, l.Margins)
	}
	if l.Style != StyleWarm || l.MaxDepth != 2 {
		t.Errorf("style = %q, max depth = %d", l.Style, l.MaxDepth)
	}

	wantTiers := map[int][]string{0: {"1"}, 1: {"2", "3"}, 2: {"4"}}
	if diff := cmp.Diff(wantTiers, l.Tiers); diff != "" {
		t.Errorf("tiers mismatch (-want +got):\n%s", diff)
	}

	root, ok := l.Root()
	if !ok || root.ID != "1" || root.DisplayLabel() != "Arthur" {
		t.Errorf("root = %+v", root)
	}
	if len(l.Edges) != 3 || l.Edges[0].From != "1" || l.Edges[0].To != "2" {
		t.Errorf("edges = %+v", l.Edges)
	}
}

func TestToResultRoundTrip(t *testing.T) {
	res := scenarioResult(t)
	if diff := cmp.Diff(res, ToResult(FromResult(res, StyleSimple))); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalLayout(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantViz string
		wantErr string
	}{
		{
			name:    "DefaultsToTree",
			input:   `{"width": 800, "height": 600, "nodes": [{"id": "1", "x": 400, "y": 50}]}`,
			wantViz: VizTypeTree,
		},
		{
			name:    "Nodelink",
			input:   `{"viz_type": "nodelink", "dot": "digraph G {}"}`,
			wantViz: VizTypeNodelink,
		},
		{
			name:    "TreeWithoutNodes",
			input:   `{"viz_type": "tree"}`,
			wantErr: "must contain nodes",
		},
		{
			name:    "NodelinkWithoutDOT",
			input:   `{"viz_type": "nodelink"}`,
			wantErr: "must contain DOT",
		},
		{
			name:    "UnknownVizType",
			input:   `{"viz_type": "sunburst", "nodes": [{"id": "1"}]}`,
			wantErr: "unknown viz type",
		},
		{
			name:    "InvalidJSON",
			input:   `{`,
			wantErr: "unmarshal layout",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := UnmarshalLayout([]byte(tt.input))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalLayout: %v", err)
			}
			if l.VizType != tt.wantViz {
				t.Errorf("viz type = %q, want %q", l.VizType, tt.wantViz)
			}
		})
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	want := FromResult(scenarioResult(t), StyleSimple)
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteLayoutFile(want, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestReadLayoutFileMissing(t *testing.T) {
	_, err := ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
