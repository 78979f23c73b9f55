package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/dockgrid/pkg/fonts"
)

// ascent is the baseline offset below the top of a line, as a share of the
// font height.
const ascent = 0.8

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	font       *fonts.Measurer
	embed      bool
	containers bool
}

// WithFont sets the face named in text elements. Labels should have been
// fitted with the same face.
func WithFont(m *fonts.Measurer) SVGOption { return func(r *svgRenderer) { r.font = m } }

// WithEmbeddedFont embeds the face's data so the SVG renders the same
// everywhere.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embed = true } }

// WithoutContainers omits container outlines.
func WithoutContainers() SVGOption { return func(r *svgRenderer) { r.containers = false } }

// RenderSVG draws a snapshot: dashed container outlines, item boxes in draw
// order and fitted labels.
func RenderSVG(s Snapshot, opts ...SVGOption) []byte {
	r := svgRenderer{containers: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	r.renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect class="surface" width="%.1f" height="%.1f"/>`+"\n", s.Width, s.Height)

	if r.containers {
		for _, c := range s.Containers {
			fmt.Fprintf(&buf, `  <rect class="container" id="container-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
				escapeXML(c.Name), c.X, c.Y, c.W, c.H)
		}
	}
	for _, it := range s.Items {
		class := "item"
		if it.Floating {
			class += " floating"
		}
		if it.Selected {
			class += " selected"
		}
		fmt.Fprintf(&buf, `  <rect class="%s" id="item-%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f"/>`+"\n",
			class, escapeXML(it.ID), it.X, it.Y, it.W, it.H, min(it.W, it.H)*0.06)
		renderLabel(&buf, it)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderDefs(buf *bytes.Buffer) {
	family, weight := "sans-serif", "normal"
	if r.font != nil {
		family = fmt.Sprintf("'%s', sans-serif", r.font.Family)
		weight = r.font.Weight
	}

	buf.WriteString("  <style>\n")
	if r.font != nil && r.embed {
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; font-weight: %s; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			r.font.Family, weight, r.font.TTFBase64())
	}
	buf.WriteString("    .surface { fill: #f7f7f2; }\n")
	buf.WriteString("    .container { fill: none; stroke: #9a9a90; stroke-width: 1; stroke-dasharray: 6 4; }\n")
	buf.WriteString("    .item { fill: #ffffff; stroke: #333333; stroke-width: 1.5; }\n")
	buf.WriteString("    .item.floating { stroke: #c0392b; stroke-width: 2; }\n")
	buf.WriteString("    .item.selected { fill: #fff6d6; }\n")
	fmt.Fprintf(buf, "    .label { font-family: %s; font-weight: %s; fill: #222222; text-anchor: middle; }\n", family, weight)
	buf.WriteString("  </style>\n")
}

// renderLabel writes the fitted lines centered in the item box.
func renderLabel(buf *bytes.Buffer, it ItemBox) {
	t := it.Text
	if t == nil || len(t.Lines) == 0 {
		return
	}
	fh := float64(t.FontHeight)
	pitch := 0.0
	if n := len(t.Lines); n > 1 {
		pitch = (t.Height - fh) / float64(n-1)
	}
	cx := it.X + it.W*0.5
	top := it.Y + (it.H-t.Height)*0.5

	fmt.Fprintf(buf, `  <text class="label" data-item="%s" font-size="%d">`, escapeXML(it.ID), t.FontHeight)
	for i, line := range t.Lines {
		fmt.Fprintf(buf, `<tspan x="%.2f" y="%.2f">%s</tspan>`, cx, top+float64(i)*pitch+fh*ascent, escapeXML(line))
	}
	buf.WriteString("</text>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
