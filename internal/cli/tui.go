package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lineage/pkg/family"
	"github.com/matzehuels/lineage/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TreeBrowserModel - Interactive generation browser
// =============================================================================

// TreeBrowserModel is the bubbletea model for walking a laid-out tree one
// generation at a time.
type TreeBrowserModel struct {
	Tiers  [][]string // member IDs per depth, left to right
	Depth  int
	Index  int
	Width  int
	nodes  map[string]graph.Node
	kids   map[string][]string
	people map[string]family.Member
	now    time.Time
}

// NewTreeBrowserModel creates a browser positioned on the root.
func NewTreeBrowserModel(l graph.Layout, members []family.Member) TreeBrowserModel {
	m := TreeBrowserModel{
		Tiers:  make([][]string, l.MaxDepth+1),
		Width:  80,
		nodes:  make(map[string]graph.Node, len(l.Nodes)),
		kids:   make(map[string][]string),
		people: make(map[string]family.Member, len(members)),
		now:    time.Now(),
	}
	for d := range m.Tiers {
		m.Tiers[d] = l.Tiers[d]
	}
	for _, n := range l.Nodes {
		m.nodes[n.ID] = n
		if n.ParentID != "" {
			m.kids[n.ParentID] = append(m.kids[n.ParentID], n.ID)
		}
	}
	for _, p := range members {
		m.people[p.ID] = p
	}
	return m
}

// Selected returns the ID of the member under the cursor.
func (m TreeBrowserModel) Selected() string {
	if m.Depth >= len(m.Tiers) || m.Index >= len(m.Tiers[m.Depth]) {
		return ""
	}
	return m.Tiers[m.Depth][m.Index]
}

func (m TreeBrowserModel) Init() tea.Cmd {
	return nil
}

func (m TreeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.Index > 0 {
				m.Index--
			}
		case "right", "l":
			if m.Index < len(m.Tiers[m.Depth])-1 {
				m.Index++
			}
		case "up", "k":
			if parent := m.nodes[m.Selected()].ParentID; parent != "" {
				m.moveTo(m.Depth-1, parent)
			}
		case "down", "j":
			if kids := m.kids[m.Selected()]; len(kids) > 0 {
				m.moveTo(m.Depth+1, kids[0])
			}
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
	}
	return m, nil
}

func (m *TreeBrowserModel) moveTo(depth int, id string) {
	for i, t := range m.Tiers[depth] {
		if t == id {
			m.Depth, m.Index = depth, i
			return
		}
	}
}

func (m TreeBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Family Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ siblings  ↑ parent  ↓ first child  q quit"))
	b.WriteString("\n\n")

	if len(m.Tiers) == 0 || len(m.Tiers[0]) == 0 {
		b.WriteString(listDimStyle.Render("No family members to show yet."))
		return b.String()
	}

	b.WriteString(m.breadcrumb())
	b.WriteString("\n\n")
	b.WriteString(m.tierLine())
	b.WriteString("\n\n")
	b.WriteString(m.detailTable())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [generation %d/%d · %d/%d]",
		m.Depth+1, len(m.Tiers), m.Index+1, len(m.Tiers[m.Depth]))))

	return b.String()
}

// breadcrumb shows the ancestors of the selected member, root first.
func (m TreeBrowserModel) breadcrumb() string {
	var path []string
	for id := m.Selected(); id != ""; id = m.nodes[id].ParentID {
		n := m.nodes[id]
		path = append([]string{n.DisplayLabel()}, path...)
	}
	return StyleTree.Render("⌂ ") + listDimStyle.Render(strings.Join(path, " › "))
}

// tierLine lists the selected member's generation.
func (m TreeBrowserModel) tierLine() string {
	parts := make([]string, len(m.Tiers[m.Depth]))
	for i, id := range m.Tiers[m.Depth] {
		n := m.nodes[id]
		if i == m.Index {
			parts[i] = listSelectedStyle.Render("▸ " + n.DisplayLabel())
			continue
		}
		parts[i] = listNormalStyle.Render("  " + n.DisplayLabel())
	}
	return lipgloss.NewStyle().Width(m.Width).Render(strings.Join(parts, "  "))
}

func (m TreeBrowserModel) detailTable() string {
	id := m.Selected()
	p, ok := m.people[id]
	if !ok {
		n := m.nodes[id]
		p = family.Member{ID: id, Name: n.Label, Relation: n.Relation, ParentID: n.ParentID}
	}

	age := "—"
	if years, ok := p.Age(m.now); ok {
		age = strconv.Itoa(years)
	}
	rows := [][]string{
		{"ID", p.ID},
		{"Name", orDash(p.Name)},
		{"Relation", orDash(p.Relation)},
		{"Born", orDash(p.BirthDate)},
		{"Age", age},
		{"Location", orDash(p.Location)},
		{"Phone", orDash(p.Phone)},
		{"Email", orDash(p.Email)},
		{"Children", strconv.Itoa(len(m.kids[id]))},
	}
	if p.Bio != "" {
		rows = append(rows, []string{"Bio", p.Bio})
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
