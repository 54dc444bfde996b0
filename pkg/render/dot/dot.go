package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/owlnet/pkg/errors"
	"github.com/matzehuels/owlnet/pkg/network"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Formats lists every format [Render] and the pipeline accept.
var Formats = []string{FormatDOT, FormatSVG, FormatPNG}

// ValidFormat reports whether f is a known output format.
func ValidFormat(f string) bool { return slices.Contains(Formats, f) }

// Options configures DOT generation.
type Options struct {
	// RankDir is the Graphviz rank direction: TB (default), LR, BT or RL.
	RankDir string

	// Detailed adds the states and CPT size to every label.
	Detailed bool
}

var rankDirs = []string{"TB", "LR", "BT", "RL"}

// Validate checks the rank direction.
func (o Options) Validate() error {
	if o.RankDir != "" && !slices.Contains(rankDirs, o.RankDir) {
		return errors.New(errors.ErrCodeInvalidInput, "rankdir must be one of %s, got %q", strings.Join(rankDirs, ", "), o.RankDir)
	}
	return nil
}

// ToDOT converts a network to DOT source. Nodes appear in network order and
// edges in parent order, so equal networks give byte-identical output.
func ToDOT(n *network.Network, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", n.Info.Name)
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, node := range n.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", label(node, opts.Detailed))}
		if len(node.Parents) == 0 {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", node.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, node := range n.Nodes {
		for _, p := range node.Parents {
			fmt.Fprintf(&buf, "  %q -> %q;\n", p, node.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(n network.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}
	rows := len(n.CPT.Rows)
	if rows == 0 {
		return fmt.Sprintf("%s\n%s\nprior", n.ID, strings.Join(n.States, " / "))
	}
	return fmt.Sprintf("%s\n%s\n%d rows", n.ID, strings.Join(n.States, " / "), rows)
}

// Render lays out DOT source and encodes it as format. FormatDOT returns the
// source unchanged.
func Render(ctx context.Context, src string, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatDOT:
		return []byte(src), nil
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want %s)", format, strings.Join(Formats, ", "))
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG is Render(ctx, ToDOT(n, opts), FormatSVG).
func RenderSVG(ctx context.Context, n *network.Network, opts Options) ([]byte, error) {
	return Render(ctx, ToDOT(n, opts), FormatSVG)
}

// RenderPNG is Render(ctx, ToDOT(n, opts), FormatPNG).
func RenderPNG(ctx context.Context, n *network.Network, opts Options) ([]byte, error) {
	return Render(ctx, ToDOT(n, opts), FormatPNG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the pt-based size Graphviz writes with a plain
// viewBox and pixel size, so browsers scale the diagram.
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
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
