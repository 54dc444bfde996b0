package convert

import (
	"maps"
	"slices"

	"github.com/matzehuels/owlnet/pkg/errors"
	"github.com/matzehuels/owlnet/pkg/owl"
)

// View names an intermediate structure of a conversion.
type View string

const (
	// ViewLabels is the abbreviated IRI to label table ([Labels]).
	ViewLabels View = "labels"
	// ViewLinkingTree is the normalized linking tree after remove-list
	// deletion ([]Entry).
	ViewLinkingTree View = "linking-tree"
	// ViewNegations maps each child to the parents it may not have
	// (map[string][]string).
	ViewNegations View = "negations"
	// ViewDisjoints lists the disjoint groups ([][]string).
	ViewDisjoints View = "disjoints"
	// ViewNodes is the node list after disjoint resolution, before CPT
	// generation and without the cycle gate ([]NodeView).
	ViewNodes View = "nodes"
)

var views = []View{ViewLabels, ViewLinkingTree, ViewNegations, ViewDisjoints, ViewNodes}

// Views returns every view name Inspect accepts.
func Views() []View { return slices.Clone(views) }

// ParseView checks that name is a known view.
func ParseView(name string) (View, error) {
	v := View(name)
	if !slices.Contains(views, v) {
		return "", errors.New(errors.ErrCodeUnknownQuery, "unknown view %q", name)
	}
	return v, nil
}

// Inspect runs the stages of a conversion needed for view and returns the
// resulting structure. It never fails on an empty or cyclic result, which
// makes it useful for finding out why a conversion was rejected.
func Inspect(doc *owl.Element, opts Options, view View) (any, error) {
	if _, err := ParseView(string(view)); err != nil {
		return nil, err
	}
	c, err := newConversion(doc, opts)
	if err != nil {
		return nil, err
	}

	if view == ViewLabels {
		return maps.Clone(c.labels), nil
	}

	c.buildTree()
	if view == ViewNegations {
		out := make(map[string][]string, len(c.negations))
		for k, v := range c.negations {
			out[k] = slices.Clone(v)
		}
		return out, nil
	}

	c.normalize()
	c.removeUnnecessary()
	if view == ViewLinkingTree {
		return c.tree.Entries(), nil
	}

	c.readDisjoints()
	if view == ViewDisjoints {
		if c.disjoints == nil {
			return [][]string{}, nil
		}
		return c.disjoints, nil
	}

	c.extractNodes()
	c.applyDisjoints()
	nodes := make([]NodeView, len(c.nodes))
	for i, n := range c.nodes {
		nodes[i] = NodeView{ID: n.ID, Parents: slices.Clone(n.Parents)}
	}
	return nodes, nil
}

// NodeView is a node of the [ViewNodes] view.
type NodeView struct {
	ID      string   `json:"id"`
	Parents []string `json:"parents"`
}
