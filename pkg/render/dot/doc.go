// Package dot draws a converted network as a Graphviz diagram.
//
// [ToDOT] emits DOT source with one box per node and one arrow per parent
// link, pointing from parent to child the way influence flows in the network.
// [Render] lays the source out in-process with
// [github.com/goccy/go-graphviz] and returns SVG or PNG bytes:
//
//	src := dot.ToDOT(net, dot.Options{})
//	svg, err := dot.Render(ctx, src, dot.FormatSVG)
//
// Root nodes (no parents, so a prior instead of a table) get a shaded fill.
// With [Options.Detailed] every label also lists the states and the number of
// CPT rows.
package dot
