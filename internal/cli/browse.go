package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/viewstack/pkg/view"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand opens an interactive tree browser.
func (c *CLI) browseCommand() *cobra.Command {
	var exprs []string

	cmd := &cobra.Command{
		Use:   "browse FILE",
		Short: "Navigate a view tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, format, err := readDocument(args[0])
			if err != nil {
				return err
			}

			runner, store, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := runner.Select(ctx, doc, format, exprs)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewBrowseModel(res.Node), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringArrayVarP(&exprs, "query", "q", nil, "constraint name=value, name=a,b or name=lo:hi (repeatable)")
	cmd.ValidArgsFunction = documentArgs
	return cmd
}

// =============================================================================
// BrowseModel - Interactive tree navigation
// =============================================================================

// frame is one level of the browser: the node being listed and the cursor
// over its children.
type frame struct {
	node   view.Node
	label  string
	cursor int
	offset int
}

// BrowseModel is the bubbletea model for walking a view tree. Enter opens
// the child under the cursor, backspace returns to the parent.
type BrowseModel struct {
	stack  []frame
	Height int
}

// NewBrowseModel creates a browser positioned at root.
func NewBrowseModel(root view.Node) BrowseModel {
	return BrowseModel{
		stack:  []frame{{node: root, label: root.Identity().String()}},
		Height: 15,
	}
}

// Current returns the node whose children are listed.
func (m BrowseModel) Current() view.Node { return m.top().node }

// Path returns the labels from the root to the current node.
func (m BrowseModel) Path() []string {
	out := make([]string, len(m.stack))
	for i, f := range m.stack {
		out[i] = f.label
	}
	return out
}

func (m BrowseModel) top() frame { return m.stack[len(m.stack)-1] }

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.stack = slices.Clone(m.stack)
		edges := children(m.Current())
		f := &m.stack[len(m.stack)-1]
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if f.cursor > 0 {
				f.cursor--
				if f.cursor < f.offset {
					f.offset = f.cursor
				}
			}
		case "down", "j":
			if f.cursor < len(edges)-1 {
				f.cursor++
				if f.cursor >= f.offset+m.Height {
					f.offset = f.cursor - m.Height + 1
				}
			}
		case "enter", "right", "l":
			if f.cursor < len(edges) {
				e := edges[f.cursor]
				m.stack = append(m.stack, frame{node: e.node, label: e.label})
			}
		case "backspace", "left", "h":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(strings.Join(m.Path(), " / ")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  ⌫ back  q quit"))
	b.WriteString("\n\n")
	b.WriteString(describe(m.Current()))
	b.WriteString("\n\n")

	if e, ok := m.Current().(*view.Element); ok {
		b.WriteString(listNormalStyle.Render(payload(e.Data())))
		b.WriteString("\n")
		return b.String()
	}

	f := m.top()
	edges := children(f.node)
	end := min(f.offset+m.Height, len(edges))

	rows := [][]string{}
	for i := f.offset; i < end; i++ {
		cursor := "  "
		if i == f.cursor {
			cursor = "▸ "
		}
		e := edges[i]
		rows = append(rows, []string{cursor, e.label, e.node.Kind().String(), summary(e.node)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Key", "Kind", "Contents").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if f.offset+row == f.cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(f.cursor+1, len(edges)), len(edges))))

	return b.String()
}

// summary describes a child for the browser table.
func summary(n view.Node) string {
	switch n := n.(type) {
	case *view.Map:
		return fmt.Sprintf("[%s] %d entries", strings.Join(n.DimensionLabels(), ", "), n.Len())
	case *view.Composite:
		return fmt.Sprintf("%s, %d branches", n.Tag(), n.Len())
	case *view.Element:
		return payload(n.Data())
	}
	return ""
}

// payload prints element data on one line, truncated.
func payload(v any) string {
	const maxLen = 60
	s := strings.ReplaceAll(fmt.Sprint(v), "\n", " ")
	if len(s) > maxLen {
		s = s[:maxLen-3] + "..."
	}
	return s
}
