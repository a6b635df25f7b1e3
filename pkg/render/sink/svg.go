package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/vischart/pkg/scene"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title       string
	classPrefix string
	clips       int
}

// WithTitle adds a <title> element, shown as a tooltip by most viewers.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithClassPrefix replaces the "mark-" prefix of mark group classes.
func WithClassPrefix(p string) SVGOption { return func(r *svgRenderer) { r.classPrefix = p } }

// RenderSVG draws the scene as a standalone SVG document.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{classPrefix: "mark-"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(sc.Width), num(sc.Height), num(sc.Width), num(sc.Height))

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(r.title))
	}
	if sc.Background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", sc.Background.CSS())
	}

	r.renderGroup(&buf, &sc.Root, 1)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderGroup(buf *bytes.Buffer, g *scene.Group, indent int) {
	pad := strings.Repeat("  ", indent)
	wrapped := !g.Transform.IsIdentity() || g.Clip != nil

	if g.Clip != nil {
		r.clips++
		c := g.Clip
		fmt.Fprintf(buf, `%s<clipPath id="clip-%d"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath>`+"\n",
			pad, r.clips, c.X, c.Y, c.Width, c.Height)
	}
	if wrapped {
		buf.WriteString(pad + "<g")
		if !g.Transform.IsIdentity() {
			fmt.Fprintf(buf, ` transform="%s"`, g.Transform.SVG())
		}
		if g.Clip != nil {
			fmt.Fprintf(buf, ` clip-path="url(#clip-%d)"`, r.clips)
		}
		buf.WriteString(">\n")
	}

	for _, child := range g.Children {
		switch n := child.(type) {
		case *scene.Group:
			r.renderGroup(buf, n, indent+1)
		case *scene.Mark:
			r.renderMark(buf, n, indent+1)
		}
	}

	if wrapped {
		buf.WriteString(pad + "</g>\n")
	}
}

func (r *svgRenderer) renderMark(buf *bytes.Buffer, m *scene.Mark, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(buf, "%s<g class=\"%s%s\">\n", pad, r.classPrefix, m.Type)
	for _, it := range m.Items {
		renderItem(buf, it, pad+"  ")
	}
	fmt.Fprintf(buf, "%s</g>\n", pad)
}

func renderItem(buf *bytes.Buffer, it scene.Item, pad string) {
	switch g := it.Geometry.(type) {
	case scene.Rect:
		fmt.Fprintf(buf, `%s<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"`, pad, g.X, g.Y, g.Width, g.Height)
		if g.CornerRadius > 0 {
			fmt.Fprintf(buf, ` rx="%.2f"`, g.CornerRadius)
		}
		writeStyle(buf, it)
		buf.WriteString("/>\n")

	case scene.Circle:
		fmt.Fprintf(buf, `%s<circle cx="%.2f" cy="%.2f" r="%.2f"`, pad, g.CX, g.CY, g.R)
		writeStyle(buf, it)
		buf.WriteString("/>\n")

	case scene.Symbol:
		if g.Shape == scene.ShapeCircle {
			fmt.Fprintf(buf, `%s<circle cx="%.2f" cy="%.2f" r="%.2f"`, pad, g.X, g.Y, math.Sqrt(g.Size/math.Pi))
		} else {
			fmt.Fprintf(buf, `%s<path d="%s" transform="translate(%.2f,%.2f)"`, pad, g.Shape.Path(g.Size), g.X, g.Y)
		}
		writeStyle(buf, it)
		buf.WriteString("/>\n")

	case scene.Line:
		if len(g.Points) == 0 {
			return
		}
		fmt.Fprintf(buf, `%s<path d="%s" fill="none"`, pad, polyline(g.Points))
		writeStroke(buf, it.Stroke)
		writeOpacity(buf, it.Opacity)
		buf.WriteString("/>\n")

	case scene.Area:
		if len(g.Points) == 0 {
			return
		}
		d := polyline(g.Points)
		for i := len(g.Baseline) - 1; i >= 0; i-- {
			d += fmt.Sprintf("L%.2f,%.2f", g.Baseline[i].X, g.Baseline[i].Y)
		}
		fmt.Fprintf(buf, `%s<path d="%sZ"`, pad, d)
		writeStyle(buf, it)
		buf.WriteString("/>\n")

	case scene.Rule:
		fmt.Fprintf(buf, `%s<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"`, pad, g.X1, g.Y1, g.X2, g.Y2)
		if it.Stroke != nil {
			writeStroke(buf, it.Stroke)
		} else if it.Fill != nil {
			fmt.Fprintf(buf, ` stroke="%s"`, it.Fill.CSS())
		}
		writeOpacity(buf, it.Opacity)
		buf.WriteString("/>\n")

	case scene.Text:
		renderText(buf, it, g, pad)

	case scene.Arc:
		fmt.Fprintf(buf, `%s<path d="%s"`, pad, arcPath(g))
		writeStyle(buf, it)
		buf.WriteString("/>\n")

	case scene.Path:
		fmt.Fprintf(buf, `%s<path d="%s"`, pad, escapeXML(g.D))
		writeStyle(buf, it)
		buf.WriteString("/>\n")
	}
}

func renderText(buf *bytes.Buffer, it scene.Item, t scene.Text, pad string) {
	fmt.Fprintf(buf, `%s<text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="%s"`,
		pad, t.X, t.Y, anchor(t.Anchor), dominantBaseline(t.Baseline))
	fmt.Fprintf(buf, ` font-family="%s" font-size="%.1f"`, escapeXML(t.Font.Family), t.Font.Size)
	if t.Font.Weight != "" && t.Font.Weight != scene.FontWeightNormal {
		fmt.Fprintf(buf, ` font-weight="%s"`, t.Font.Weight)
	}
	if t.Font.Style != "" && t.Font.Style != scene.FontStyleNormal {
		fmt.Fprintf(buf, ` font-style="%s"`, t.Font.Style)
	}
	if t.Angle != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%.1f %.2f %.2f)"`, t.Angle, t.X, t.Y)
	}
	if it.Fill != nil {
		fmt.Fprintf(buf, ` fill="%s"`, it.Fill.CSS())
	}
	writeOpacity(buf, it.Opacity)
	fmt.Fprintf(buf, ">%s</text>\n", escapeXML(t.Text))
}

func anchor(a scene.TextAnchor) string {
	switch a {
	case scene.AnchorMiddle, scene.AnchorEnd:
		return string(a)
	}
	return "start"
}

func dominantBaseline(b scene.TextBaseline) string {
	switch b {
	case scene.BaselineTop:
		return "hanging"
	case scene.BaselineMiddle:
		return "middle"
	case scene.BaselineBottom:
		return "ideographic"
	}
	return "alphabetic"
}

func writeStyle(buf *bytes.Buffer, it scene.Item) {
	if it.Fill != nil {
		fmt.Fprintf(buf, ` fill="%s"`, it.Fill.CSS())
	} else {
		buf.WriteString(` fill="none"`)
	}
	writeStroke(buf, it.Stroke)
	writeOpacity(buf, it.Opacity)
}

func writeStroke(buf *bytes.Buffer, s *scene.Stroke) {
	if s == nil {
		return
	}
	fmt.Fprintf(buf, ` stroke="%s" stroke-width="%.2f"`, s.Color.CSS(), s.Width)
	if len(s.Dash) > 0 {
		parts := make([]string, len(s.Dash))
		for i, d := range s.Dash {
			parts[i] = fmt.Sprintf("%.2f", d)
		}
		fmt.Fprintf(buf, ` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
}

func writeOpacity(buf *bytes.Buffer, o float64) {
	if o < 1 {
		fmt.Fprintf(buf, ` opacity="%.2f"`, o)
	}
}

func polyline(pts []scene.Point) string {
	var b strings.Builder
	for i, p := range pts {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%.2f,%.2f", cmd, p.X, p.Y)
	}
	return b.String()
}

// arcPath draws an annular sector, or a pie slice when the inner radius is 0.
func arcPath(a scene.Arc) string {
	outerStartX := a.CX + a.OuterRadius*math.Cos(a.StartAngle)
	outerStartY := a.CY + a.OuterRadius*math.Sin(a.StartAngle)
	outerEndX := a.CX + a.OuterRadius*math.Cos(a.EndAngle)
	outerEndY := a.CY + a.OuterRadius*math.Sin(a.EndAngle)

	large := 0
	if math.Abs(a.EndAngle-a.StartAngle) > math.Pi {
		large = 1
	}

	if a.InnerRadius <= 0 {
		return fmt.Sprintf("M%.2f,%.2fA%.2f,%.2f 0 %d 1 %.2f,%.2fL%.2f,%.2fZ",
			outerStartX, outerStartY, a.OuterRadius, a.OuterRadius, large, outerEndX, outerEndY, a.CX, a.CY)
	}

	innerStartX := a.CX + a.InnerRadius*math.Cos(a.StartAngle)
	innerStartY := a.CY + a.InnerRadius*math.Sin(a.StartAngle)
	innerEndX := a.CX + a.InnerRadius*math.Cos(a.EndAngle)
	innerEndY := a.CY + a.InnerRadius*math.Sin(a.EndAngle)
	return fmt.Sprintf("M%.2f,%.2fA%.2f,%.2f 0 %d 1 %.2f,%.2fL%.2f,%.2fA%.2f,%.2f 0 %d 0 %.2f,%.2fZ",
		outerStartX, outerStartY, a.OuterRadius, a.OuterRadius, large, outerEndX, outerEndY,
		innerEndX, innerEndY, a.InnerRadius, a.InnerRadius, large, innerStartX, innerStartY)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string { return xmlEscaper.Replace(s) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
