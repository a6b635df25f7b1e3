package cli

import (
	"context"
	"fmt"
	"maps"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/pipeline"
	"github.com/matzehuels/vischart/pkg/scene"
	"github.com/matzehuels/vischart/pkg/spec"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectOpts holds the flags of the inspect command.
type inspectOpts struct {
	plain   bool
	noCache bool
}

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts inspectOpts

	cmd := &cobra.Command{
		Use:   "inspect <spec>",
		Short: "Browse the compiled scene graph",
		Long: `Compile a chart spec and browse its scene graph in the terminal.

Marks can be expanded to list their items. When stdout is not a terminal,
or with --plain, a static summary is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print a static summary")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, opts inspectOpts) error {
	chart, err := spec.ParseFile(input)
	if err != nil {
		return err
	}

	runner, closeRunner, err := c.newRunner(ctx, input, opts.noCache)
	if err != nil {
		return err
	}
	defer closeRunner()

	res, err := runner.Execute(ctx, chart, pipeline.Options{Formats: []string{pipeline.FormatJSON}})
	if err != nil {
		return err
	}

	if opts.plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		printSceneSummary(input, res)
		return nil
	}

	model := NewSceneModel(input, res.Scene)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// printSceneSummary prints scene statistics followed by the indented tree.
func printSceneSummary(input string, res *pipeline.Result) {
	st := scene.Summarize(res.Scene)

	fmt.Println(StyleTitle.Render(input))
	printKeyValue("Size", fmt.Sprintf("%s x %s", fmtNum(res.Scene.Width), fmtNum(res.Scene.Height)))
	printKeyValue("Groups", strconv.Itoa(st.Groups))
	printKeyValue("Marks", strconv.Itoa(st.Marks))
	printKeyValue("Items", strconv.Itoa(st.Items))
	for _, t := range st.Types() {
		printKeyValue("  "+string(t), strconv.Itoa(st.ByType[t]))
	}
	printKeyValue("Hash", res.SceneHash[:12])
	fmt.Println()

	for _, n := range sceneNodes(res.Scene) {
		fmt.Println(strings.Repeat("  ", n.depth) + n.label)
	}
}

// =============================================================================
// SceneModel - Interactive scene browser
// =============================================================================

// sceneNode is a group or mark in drawing order.
type sceneNode struct {
	depth int
	label string
	mark  *scene.Mark
}

// sceneRow is a visible line: a node, or an item of an expanded mark.
type sceneRow struct {
	node  int
	item  int // -1 for the node itself
	depth int
	text  string
}

// SceneModel is the bubbletea model for browsing a scene graph.
type SceneModel struct {
	Title    string
	Nodes    []sceneNode
	Expanded map[int]bool
	Cursor   int
	Height   int
	Offset   int
}

// NewSceneModel creates a browser for sc.
func NewSceneModel(title string, sc *scene.Scene) SceneModel {
	return SceneModel{
		Title:    title,
		Nodes:    sceneNodes(sc),
		Expanded: map[int]bool{},
		Height:   15,
	}
}

// rows flattens the nodes and the items of expanded marks.
func (m SceneModel) rows() []sceneRow {
	var out []sceneRow
	for i, n := range m.Nodes {
		out = append(out, sceneRow{node: i, item: -1, depth: n.depth, text: n.label})
		if n.mark == nil || !m.Expanded[i] {
			continue
		}
		for j, it := range n.mark.Items {
			out = append(out, sceneRow{node: i, item: j, depth: n.depth + 1, text: itemSummary(it)})
		}
	}
	return out
}

func (m SceneModel) Init() tea.Cmd {
	return nil
}

func (m SceneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(rows)-1 {
				m.Cursor++
			}
		case "enter", " ", "right", "l", "left", "h":
			if len(rows) == 0 {
				return m, nil
			}
			r := rows[m.Cursor]
			if m.Nodes[r.node].mark == nil {
				return m, nil
			}
			expand := !m.Expanded[r.node]
			switch msg.String() {
			case "right", "l":
				expand = true
			case "left", "h":
				expand = false
			}
			m.Expanded = toggled(m.Expanded, r.node, expand)
			if !expand {
				// Move the cursor off a collapsed item onto its mark.
				for i, row := range m.rows() {
					if row.node == r.node && row.item == -1 {
						m.Cursor = i
						break
					}
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	m.scroll()
	return m, nil
}

// toggled returns a copy of set with key set to on.
func toggled(set map[int]bool, key int, on bool) map[int]bool {
	out := make(map[int]bool, len(set)+1)
	for k, v := range set {
		out[k] = v
	}
	if on {
		out[key] = true
	} else {
		delete(out, key)
	}
	return out
}

// scroll keeps the cursor inside the visible window.
func (m *SceneModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m SceneModel) View() string {
	var b strings.Builder
	rows := m.rows()

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(rows))
	for i := m.Offset; i < end; i++ {
		r := rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		marker := "  "
		if r.item == -1 && m.Nodes[r.node].mark != nil {
			marker = "+ "
			if m.Expanded[r.node] {
				marker = "- "
			}
		}
		line := cursor + strings.Repeat("  ", r.depth) + marker + r.text

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case r.item >= 0:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(rows)), len(rows))))
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// sceneNodes lists the groups and marks of sc depth-first.
func sceneNodes(sc *scene.Scene) []sceneNode {
	nodes := []sceneNode{{label: groupLabel(&sc.Root)}}
	scene.Walk(&sc.Root, func(n scene.Node, depth int) bool {
		switch n := n.(type) {
		case *scene.Group:
			nodes = append(nodes, sceneNode{depth: depth + 1, label: groupLabel(n)})
		case *scene.Mark:
			nodes = append(nodes, sceneNode{depth: depth + 1, label: markLabel(n), mark: n})
		}
		return true
	})
	return nodes
}

func groupLabel(g *scene.Group) string {
	label := "group"
	if t := g.Transform.SVG(); t != "" {
		label += " " + t
	}
	if g.Clip != nil {
		label += fmt.Sprintf(" clip %sx%s", fmtNum(g.Clip.Width), fmtNum(g.Clip.Height))
	}
	return label
}

func markLabel(m *scene.Mark) string {
	n := len(m.Items)
	if n == 1 {
		return fmt.Sprintf("%s (1 item)", m.Type)
	}
	return fmt.Sprintf("%s (%d items)", m.Type, n)
}

// itemSummary describes an item by its geometry and bound datum.
func itemSummary(it scene.Item) string {
	var s string
	switch g := it.Geometry.(type) {
	case scene.Rect:
		s = fmt.Sprintf("rect %s,%s %sx%s", fmtNum(g.X), fmtNum(g.Y), fmtNum(g.Width), fmtNum(g.Height))
	case scene.Text:
		s = fmt.Sprintf("text %q at %s,%s", g.Text, fmtNum(g.X), fmtNum(g.Y))
	case scene.Rule:
		s = fmt.Sprintf("rule %s,%s → %s,%s", fmtNum(g.X1), fmtNum(g.Y1), fmtNum(g.X2), fmtNum(g.Y2))
	case scene.Line:
		s = fmt.Sprintf("line %d points", len(g.Points))
	case scene.Area:
		s = fmt.Sprintf("area %d points", len(g.Points))
	case scene.Circle:
		s = fmt.Sprintf("circle %s,%s r=%s", fmtNum(g.CX), fmtNum(g.CY), fmtNum(g.R))
	case scene.Symbol:
		s = fmt.Sprintf("symbol %s at %s,%s", g.Shape, fmtNum(g.X), fmtNum(g.Y))
	case nil:
		s = "empty"
	default:
		s = g.Kind()
	}
	if len(it.Datum) > 0 {
		s += "  " + fmtDatum(it.Datum)
	}
	return s
}

// fmtDatum formats a row as "k=v" pairs sorted by key.
func fmtDatum(r data.Row) string {
	parts := make([]string, 0, len(r))
	for _, k := range slices.Sorted(maps.Keys(r)) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, data.Key(r[k])))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// fmtNum formats v with at most two decimals.
func fmtNum(v float64) string { return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64) }
