package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/lineage/pkg/family"
	"github.com/matzehuels/lineage/pkg/graph"
	"github.com/matzehuels/lineage/pkg/pipeline"
)

func newTestBrowser(t *testing.T) TreeBrowserModel {
	t.Helper()
	members := family.SeedSingleRoot()
	l, err := pipeline.NewRunner(nil, nil, nil).GenerateLayout(context.Background(), members, pipeline.Options{VizType: graph.VizTypeTree})
	if err != nil {
		t.Fatalf("GenerateLayout: %v", err)
	}
	m := NewTreeBrowserModel(l, members)
	m.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return m
}

func press(m TreeBrowserModel, keys ...tea.KeyMsg) TreeBrowserModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(TreeBrowserModel)
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

func TestTreeBrowserNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want string
	}{
		{"starts at root", nil, "1"},
		{"down to first child", []tea.KeyMsg{keyDown}, "3"},
		{"right to sibling", []tea.KeyMsg{keyDown, keyRight}, "4"},
		{"right stops at tier end", []tea.KeyMsg{keyDown, keyRight, keyRight}, "4"},
		{"left stops at tier start", []tea.KeyMsg{keyDown, keyLeft}, "3"},
		{"down from second child", []tea.KeyMsg{keyDown, keyRight, keyDown}, "6"},
		{"up returns to parent", []tea.KeyMsg{keyDown, keyRight, keyDown, keyUp}, "4"},
		{"up at root stays", []tea.KeyMsg{keyUp}, "1"},
		{"down at leaf stays", []tea.KeyMsg{keyDown, keyDown, keyDown}, "5"},
		{"vim keys", []tea.KeyMsg{
			{Type: tea.KeyRunes, Runes: []rune("j")},
			{Type: tea.KeyRunes, Runes: []rune("l")},
		}, "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(newTestBrowser(t), tt.keys...)
			if got := m.Selected(); got != tt.want {
				t.Errorf("Selected() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeBrowserTiers(t *testing.T) {
	m := newTestBrowser(t)
	if len(m.Tiers) != 3 {
		t.Fatalf("got %d tiers, want 3", len(m.Tiers))
	}
	if got := strings.Join(m.Tiers[2], ","); got != "5,6" {
		t.Errorf("tier 2 = %s, want 5,6", got)
	}
}

func TestTreeBrowserQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		if _, cmd := newTestBrowser(t).Update(key); cmd == nil {
			t.Errorf("%s should quit", key)
		}
	}
}

func TestTreeBrowserView(t *testing.T) {
	m := press(newTestBrowser(t), keyDown, keyDown)
	view := m.View()
	for _, want := range []string{
		"Family Tree",
		"Jack Keelapavoor",
		"Grandson",
		"San Francisco, CA",
		"28", // age on 2024-01-01
		"Arthur Keelapavoor › John Keelapavoor › Jack Keelapavoor",
		"generation 3/3",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestTreeBrowserEmptyLayout(t *testing.T) {
	m := NewTreeBrowserModel(graph.Layout{}, nil)
	if got := m.Selected(); got != "" {
		t.Errorf("Selected() = %q on empty layout", got)
	}
	if !strings.Contains(m.View(), "No family members") {
		t.Error("empty view should say there is nobody to show")
	}
}
