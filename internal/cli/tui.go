package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/owlnet/pkg/network"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NetworkModel - Interactive network browser
// =============================================================================

// NetworkModel is the bubbletea model for browsing the nodes of a network.
// Enter toggles the conditional probability table of the selected node.
type NetworkModel struct {
	Network  *network.Network
	Cursor   int
	Height   int
	Offset   int
	ShowCPT  bool
	children map[string][]string
}

// NewNetworkModel creates a new network browser model.
func NewNetworkModel(net *network.Network) NetworkModel {
	children := make(map[string][]string)
	for _, n := range net.Nodes {
		for _, p := range n.Parents {
			children[p] = append(children[p], n.ID)
		}
	}
	return NetworkModel{
		Network:  net,
		Height:   15,
		children: children,
	}
}

func (m NetworkModel) Init() tea.Cmd {
	return nil
}

func (m NetworkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-len(m.Network.Nodes))
		case "end", "G":
			m.move(len(m.Network.Nodes))
		case "enter", " ":
			m.ShowCPT = !m.ShowCPT
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the node list, and scrolls.
func (m *NetworkModel) move(delta int) {
	last := len(m.Network.Nodes) - 1
	m.Cursor = max(0, min(last, m.Cursor+delta))
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m NetworkModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Network.Info.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ CPT  q quit"))
	b.WriteString("\n\n")

	if len(m.Network.Nodes) == 0 {
		b.WriteString(listDimStyle.Render("  no nodes"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Network.Nodes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Network.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		parents := strings.Join(n.Parents, ", ")
		if parents == "" {
			parents = "—"
		}
		rows = append(rows, []string{cursor, n.ID, parents, fmt.Sprint(len(m.children[n.ID])), cptSize(n.CPT)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Parents", "Children", "CPT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Network.Nodes) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 3 || col == 4 {
				base = base.Foreground(colorDim)
			} else if m.Network.Nodes[idx].CPT.IsPrior() {
				base = base.Inherit(styleRoot)
			}
			if idx == m.Cursor {
				return base.Bold(true).Foreground(colorGreen)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Network.Nodes))))

	if m.ShowCPT {
		b.WriteString("\n\n")
		b.WriteString(cptTable(m.Network.Nodes[m.Cursor]))
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func cptSize(cpt network.CPT) string {
	if cpt.IsPrior() {
		return "prior"
	}
	return fmt.Sprintf("%d rows", len(cpt.Rows))
}

// cptTable renders the conditional probability table of n: one column per
// parent, then one per state of n.
func cptTable(n network.Node) string {
	headers := append(append([]string{}, n.Parents...), n.States...)
	var rows [][]string
	if n.CPT.IsPrior() {
		row := make([]string, 0, len(n.States))
		for _, s := range n.States {
			row = append(row, formatProb(n.CPT.Prior[s]))
		}
		rows = append(rows, row)
	}
	for _, r := range n.CPT.Rows {
		row := make([]string, 0, len(headers))
		for _, p := range n.Parents {
			row = append(row, r.Condition[p])
		}
		for _, s := range n.States {
			row = append(row, formatProb(r.Distribution[s]))
		}
		rows = append(rows, row)
	}

	stateCol := len(n.Parents)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == -1 {
				return style.Inherit(styleHeader)
			}
			if col >= stateCol {
				return style.Foreground(colorCyan)
			}
			return style
		})
	return StyleTitle.Render("P("+n.ID+" | parents)") + "\n" + t.Render()
}

func formatProb(p float64) string {
	return fmt.Sprintf("%.2f", p)
}
