package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/editor"
	"github.com/matzehuels/arbor/pkg/tree"
	"github.com/matzehuels/arbor/pkg/treefile"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// editCommand creates the "edit" command for the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a tree document interactively",
		Long: `Open a tree document in the terminal editor. Every edit recomputes
the layout immediately; the document is written back on quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}
			t, err := doc.ToTree()
			if err != nil {
				return err
			}

			ed := editor.FromTree(t, doc.Engine())
			model := newEditModel(ed, file)

			final, err := tea.NewProgram(model).Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			m := final.(editModel)
			if m.discard {
				printInfo("Discarded changes to %s", file)
				return nil
			}

			if err := treefile.WriteFile(ed.Snapshot(), ed.Engine(), file); err != nil {
				return err
			}
			printSuccess("Saved %s", file)
			printStats(ed.Len(), ed.Snapshot().MaxDepth(), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", defaultTreeFile, "tree document to edit")
	return cmd
}

// =============================================================================
// EditModel - Interactive tree editing
// =============================================================================

// row is one rendered line of the tree outline.
type row struct {
	id    tree.NodeID
	depth int
}

// editModel is the bubbletea model for the interactive editor. The
// cursor moves over a pre-order flattening of the tree; edits go
// through the shared editor so layout stays current.
type editModel struct {
	ed      *editor.Editor
	file    string
	rows    []row
	cursor  int
	status  string
	discard bool
}

func newEditModel(ed *editor.Editor, file string) editModel {
	m := editModel{ed: ed, file: file}
	m.reload()
	return m
}

// reload reflattens the tree after a mutation, clamping the cursor.
func (m *editModel) reload() {
	snap := m.ed.Snapshot()
	m.rows = m.rows[:0]
	var walk func(id tree.NodeID, depth int)
	walk = func(id tree.NodeID, depth int) {
		n, ok := snap.Node(id)
		if !ok {
			return
		}
		m.rows = append(m.rows, row{id: id, depth: depth})
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(snap.Root(), 0)

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.discard = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "a":
		parent := m.rows[m.cursor].id
		id, err := m.ed.AddNode(parent)
		if err != nil {
			m.status = fmt.Sprintf("add failed: %v", err)
			break
		}
		m.status = fmt.Sprintf("added %d under %d", id, parent)
		m.reload()
	case "d":
		id := m.rows[m.cursor].id
		if removed := m.ed.RemoveNode(id); removed == 0 {
			m.status = "cannot remove the root"
		} else {
			m.status = fmt.Sprintf("removed %d node(s)", removed)
		}
		m.reload()
	case "s":
		id := m.rows[m.cursor].id
		m.ed.Select(id)
		m.status = fmt.Sprintf("selected %d", id)
	case "r":
		m.ed.Reset()
		m.cursor = 0
		m.status = "reset"
		m.reload()
	}
	return m, nil
}

func (m editModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Arbor " + m.file))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  a add  d delete  s select  r reset  q save  esc discard"))
	b.WriteString("\n\n")

	snap := m.ed.Snapshot()
	selected := snap.Selected()
	for i, r := range m.rows {
		n, ok := snap.Node(r.id)
		if !ok {
			continue
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		label := fmt.Sprintf("%d", n.ID)
		switch n.Kind {
		case tree.KindStart:
			label += " (start)"
		case tree.KindGoal:
			label += " (goal)"
		}
		if n.ID == selected {
			label += " *"
		}

		line := cursor + strings.Repeat("  ", r.depth) + label
		switch {
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case n.ID == selected:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d nodes", snap.Len())))
	if m.status != "" {
		b.WriteString(listDimStyle.Render("  ·  " + m.status))
	}
	b.WriteString("\n")

	return b.String()
}
