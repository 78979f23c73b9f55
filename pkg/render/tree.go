package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dockgrid/pkg/errors"
)

// ToDOT describes the membership of a snapshot as a Graphviz digraph. The
// surface points at every container and every floating item, containers
// point at their members in order and items point at the items nested in
// them. Render the result with [RenderTreeSVG].
func ToDOT(s Snapshot) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, shape=plaintext, style=\"\"];\n",
		"surface", fmt.Sprintf("surface\n%.0f×%.0f", s.Width, s.Height))
	for _, c := range s.Containers {
		label := c.Name + "\n" + c.Type
		if len(c.Flags) > 0 {
			label += "\n" + strings.Join(c.Flags, ", ")
		}
		fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, fillcolor=lightgrey];\n", containerNode(c.Name), label)
	}
	for _, it := range s.Items {
		attrs := []string{fmt.Sprintf("label=%q", it.Label)}
		if it.Floating {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"")
		}
		if it.Selected {
			attrs = append(attrs, "penwidth=3")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", itemNode(it.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range s.Containers {
		fmt.Fprintf(&buf, "  %q -> %q;\n", "surface", containerNode(c.Name))
		for _, id := range c.Members {
			fmt.Fprintf(&buf, "  %q -> %q;\n", containerNode(c.Name), itemNode(id))
		}
	}
	for _, it := range s.Items {
		switch {
		case it.Parent != "":
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted];\n", itemNode(it.Parent), itemNode(it.ID))
		case it.Floating:
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", "surface", itemNode(it.ID))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func containerNode(name string) string { return "c:" + name }
func itemNode(id string) string        { return "i:" + id }

// RenderTreeSVG lays out a DOT graph with Graphviz and returns the SVG.
func RenderTreeSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized svg tag with one whose
// viewBox starts at the origin and whose size matches it.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
