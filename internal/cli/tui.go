package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/hierview/pkg/anim"
	"github.com/matzehuels/hierview/pkg/nav"
	"github.com/matzehuels/hierview/pkg/pipeline"
	"github.com/matzehuels/hierview/pkg/tree"
	"github.com/matzehuels/hierview/pkg/view"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
)

// frameInterval is the animation tick of the explorer.
const frameInterval = time.Second / 30

const barWidth = 24

// =============================================================================
// ExploreModel - Interactive view state editing
// =============================================================================

type frameMsg time.Time

// ExploreModel is the bubbletea model that drives a view controller from the
// keyboard.
type ExploreModel struct {
	Controller *pipeline.View
	Height     int

	status    string
	err       error
	animating bool
}

// NewExploreModel creates a model around an opened view.
func NewExploreModel(v *pipeline.View) ExploreModel {
	return ExploreModel{Controller: v, Height: 15}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case frameMsg:
		p := m.Controller.Player()
		if p == nil || p.Update(float32(frameInterval.Seconds())) {
			m.animating = false
			return m, nil
		}
		return m, tick()
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m ExploreModel) handleKey(key string) (tea.Model, tea.Cmd) {
	if k, ok := nav.ParseKey(key); ok {
		m.Controller.Key(k)
		m.err = nil
		return m, nil
	}

	focus := m.Controller.Focus()
	var (
		p      view.Pass
		err    error
		action string
	)
	switch key {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		if focus == nil || focus.IsLeaf() {
			return m, nil
		}
		action = "drill " + focus.ID
		p, err = m.Controller.Drill(focus.ID)
	case "backspace", "u":
		action = "drill up"
		p, err = m.Controller.DrillUp()
	case "i":
		if focus == nil {
			return m, nil
		}
		action = "isolate " + focus.ID
		p, err = m.Controller.Isolate(focus.ID)
	case "r":
		action = "restore"
		p, err = m.Controller.Restore()
	case " ", "e":
		if focus == nil {
			return m, nil
		}
		action = "toggle " + focus.ID
		p, err = m.Controller.ExpandCollapse(focus.ID)
	default:
		return m, nil
	}

	m.err = err
	if err != nil {
		return m, nil
	}
	m.status = fmt.Sprintf("%s: %d deleted, %d updated, %d inserted", action,
		p.Transition.Count(anim.Delete), p.Transition.Count(anim.Update), p.Transition.Count(anim.Insert))
	m.animating = true
	return m, tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleHighlight.Render("Explore " + m.Controller.VizType))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(m.help()))
	b.WriteString("\n\n")

	focus := m.Controller.Focus()
	if focus == nil {
		b.WriteString(listDimStyle.Render("  (nothing is laid out)"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(breadcrumb(focus))
	b.WriteString("\n\n")

	siblings := []*tree.Node{focus}
	if focus.Parent != nil {
		siblings = slices.DeleteFunc(slices.Clone(focus.Parent.Children), func(n *tree.Node) bool { return !n.HasLayout })
	}
	total := 0.0
	for _, n := range siblings {
		total += n.PositiveSize()
	}

	cur := slices.Index(siblings, focus)
	offset := max(cur-m.Height+1, 0)
	end := min(offset+m.Height, len(siblings))
	for i := offset; i < end; i++ {
		b.WriteString(m.row(siblings[i], siblings[i] == focus, total))
		b.WriteString("\n")
	}
	if len(siblings) > m.Height {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", cur+1, len(siblings))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(details(focus))
	b.WriteString("\n")
	if stack := m.Controller.Isolated(); len(stack) > 0 {
		b.WriteString("  " + StyleDim.Render("isolated") + " " + StyleValue.Render(strings.Join(stack, " › ")) + "\n")
	}
	if m.err != nil {
		b.WriteString(StyleWarning.Render("  " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(StyleDim.Render("  " + m.status + m.phase()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ExploreModel) row(n *tree.Node, current bool, total float64) string {
	cursor := "  "
	if current {
		cursor = "▸ "
	}
	marker := " "
	switch {
	case n.Expandable && !n.Disclosed:
		marker = "+"
	case len(n.Children) > 0:
		marker = "›"
	}

	filled := 0
	if total > 0 {
		filled = int(n.PositiveSize() / total * barWidth)
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	if n.Color != "" {
		bar = lipgloss.NewStyle().Foreground(lipgloss.Color(n.Color)).Render(bar)
	}

	line := fmt.Sprintf("%s%s %-28s %10s  ", cursor, marker, truncate(n.DisplayLabel(), 28), formatSize(n.Size))
	if current {
		return listSelectedStyle.Render(line) + bar
	}
	return listNormalStyle.Render(line) + bar
}

func (m ExploreModel) help() string {
	keys := "←/→ siblings  ↑/↓ depth  ⏎ drill  u up  "
	if m.Controller.Treemap != nil {
		keys += "i isolate  r restore  "
	} else {
		keys += "space expand/collapse  "
	}
	return keys + "q quit"
}

// phase names the animation phase in flight.
func (m ExploreModel) phase() string {
	if !m.animating {
		return ""
	}
	p := m.Controller.Player()
	if p == nil {
		return ""
	}
	pr, ok := p.Phase()
	if !ok {
		return ""
	}
	names := map[anim.Priority]string{
		anim.PriorityDelete: "deleting",
		anim.PriorityUpdate: "updating",
		anim.PriorityInsert: "inserting",
	}
	return " · " + names[pr]
}

// =============================================================================
// Helpers
// =============================================================================

func breadcrumb(n *tree.Node) string {
	chain := append([]*tree.Node{n}, tree.Ancestors(n)...)
	slices.Reverse(chain)
	parts := make([]string, len(chain))
	for i, c := range chain {
		parts[i] = c.DisplayLabel()
	}
	return "  " + StyleHighlight.Render(strings.Join(parts, " / "))
}

func details(n *tree.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render("id      "), StyleValue.Render(n.ID))
	fmt.Fprintf(&b, "  %s %s\n", StyleDim.Render("size    "), StyleNumber.Render(formatSize(n.Size)))
	fmt.Fprintf(&b, "  %s %s", StyleDim.Render("depth   "), StyleNumber.Render(fmt.Sprint(n.Depth)))
	if len(n.Categories) > 0 {
		fmt.Fprintf(&b, "\n  %s %s", StyleDim.Render("category"), StyleValue.Render(strings.Join(n.Categories, ", ")))
	}
	return b.String()
}

func formatSize(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fG", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%g", v)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
