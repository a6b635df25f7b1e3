package scenetree

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/scene"
)

// maxDatumLines caps the rows listed per mark in detailed mode.
const maxDatumLines = 3

// Options configures the diagram.
type Options struct {
	// Detailed lists the data rows of the first items of each mark.
	Detailed bool
}

type dotWriter struct {
	buf   bytes.Buffer
	opts  Options
	nodes int
}

// ToDOT converts the scene tree to Graphviz DOT source. Node ids are
// assigned in drawing order, so the same scene always yields the same DOT.
func ToDOT(sc *scene.Scene, opts Options) string {
	w := &dotWriter{opts: opts}
	w.buf.WriteString("digraph scene {\n")
	w.buf.WriteString("  rankdir=TB;\n")
	w.buf.WriteString("  bgcolor=\"transparent\";\n")
	w.buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"sans-serif\", fontsize=14];\n")
	w.buf.WriteString("  ranksep=0.4;\n")
	w.buf.WriteString("  nodesep=0.25;\n")
	w.buf.WriteString("\n")

	root := w.node(fmt.Sprintf("scene %sx%s", num(sc.Width), num(sc.Height)), "shape=box", "style=\"filled\"", "fillcolor=lightgrey")
	w.group(root, &sc.Root)

	w.buf.WriteString("}\n")
	return w.buf.String()
}

func (w *dotWriter) group(parent string, g *scene.Group) {
	label := "group"
	if t := g.Transform.SVG(); t != "" {
		label += "\n" + t
	}
	if g.Clip != nil {
		label += fmt.Sprintf("\nclip %sx%s", num(g.Clip.Width), num(g.Clip.Height))
	}
	id := w.node(label)
	w.edge(parent, id)

	for _, child := range g.Children {
		switch n := child.(type) {
		case *scene.Group:
			w.group(id, n)
		case *scene.Mark:
			w.mark(id, n)
		}
	}
}

func (w *dotWriter) mark(parent string, m *scene.Mark) {
	label := fmt.Sprintf("%s (%d)", m.Type, len(m.Items))
	if w.opts.Detailed {
		for i, it := range m.Items {
			if i == maxDatumLines {
				label += "\n..."
				break
			}
			if len(it.Datum) > 0 {
				label += "\n" + fmtDatum(it.Datum)
			}
		}
	}

	attrs := []string{"shape=ellipse", "style=\"filled\""}
	if len(m.Items) > 0 && m.Items[0].Fill != nil && m.Items[0].Fill.A == 255 {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", m.Items[0].Fill.CSS()))
	}
	id := w.node(label, attrs...)
	w.edge(parent, id)
}

func (w *dotWriter) node(label string, attrs ...string) string {
	id := fmt.Sprintf("n%d", w.nodes)
	w.nodes++
	all := append([]string{fmt.Sprintf("label=%q", label)}, attrs...)
	fmt.Fprintf(&w.buf, "  %s [%s];\n", id, strings.Join(all, ", "))
	return id
}

func (w *dotWriter) edge(from, to string) {
	fmt.Fprintf(&w.buf, "  %s -> %s;\n", from, to)
}

func fmtDatum(r data.Row) string {
	parts := make([]string, 0, len(r))
	for _, k := range slices.Sorted(maps.Keys(r)) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, data.Key(r[k])))
	}
	return strings.Join(parts, " ")
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// in pixels from the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
