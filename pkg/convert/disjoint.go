package convert

import (
	"slices"
)

// readDisjoints collects the DisjointClasses groups in document order.
func (c *conversion) readDisjoints() {
	for _, d := range c.onto.Children("DisjointClasses") {
		var group []string
		for _, cls := range d.Children("Class") {
			id, ok := c.labels.Resolve(cls)
			if !ok {
				c.log.Info("skipping disjoint class without an identifier")
				continue
			}
			if !slices.Contains(group, id) {
				group = append(group, id)
			}
		}
		if len(group) > 0 {
			c.disjoints = append(c.disjoints, group)
		}
	}
}

// applyDisjoints removes edges so that no node descends from two members of
// the same disjoint group.
//
// The first pass drops EquivalentClasses edges of nodes that reach more than
// one member of a group; a parent counts among its own ancestors there, so a
// node whose direct parents are two members is resolved too. The second pass drops the edge from a group member to
// a node whose ancestors already hold other members of that group.
func (c *conversion) applyDisjoints() {
	if len(c.disjoints) == 0 {
		return
	}
	anc := c.ancestorSets()

	for _, group := range c.disjoints {
		changed := false
		for _, n := range c.nodes {
			if len(intersect(group, anc[n.ID])) <= 1 {
				continue
			}
			for _, p := range slices.Clone(n.Parents) {
				reach := append([]string{p}, anc[p]...)
				if len(intersect(group, reach)) == 0 {
					continue
				}
				rel, _ := c.tree.Relation(n.ID, p)
				if rel.Has(EquivalentClasses) {
					n.RemoveParent(p)
					changed = true
					c.log.Debug("disjoint link removed", "parent", p, "child", n.ID, "relation", rel)
				}
			}
		}
		if changed {
			anc = c.ancestorSets()
		}
	}

	for _, group := range c.disjoints {
		for _, n := range c.nodes {
			for _, child := range c.tree.DirectChildren(n.ID) {
				if !slices.Contains(group, child) {
					continue
				}
				cn := c.node(child)
				if cn == nil || !cn.HasParent(n.ID) {
					continue
				}
				diff := symmetricDifference([]string{child}, intersect(group, anc[n.ID]))
				if len(diff) > 1 {
					cn.RemoveParent(n.ID)
					anc = c.ancestorSets()
					c.log.Debug("disjoint link removed", "parent", n.ID, "child", child)
				}
			}
		}
	}
}

// intersect returns the members of a that are also in b, in the order of a.
func intersect(a, b []string) []string {
	var out []string
	for _, x := range a {
		if slices.Contains(b, x) {
			out = append(out, x)
		}
	}
	return out
}

// symmetricDifference returns a\b followed by b\a.
func symmetricDifference(a, b []string) []string {
	var out []string
	for _, x := range a {
		if !slices.Contains(b, x) {
			out = append(out, x)
		}
	}
	for _, x := range b {
		if !slices.Contains(a, x) {
			out = append(out, x)
		}
	}
	return out
}
