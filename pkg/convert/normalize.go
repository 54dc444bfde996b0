package convert

import "slices"

// normalize splices ignored classes out of the tree, applies negations and
// drops every edge that still points at an ignored class.
func (c *conversion) normalize() {
	for _, id := range c.tree.Children() {
		if !c.tree.Has(id) {
			continue
		}
		if c.ignore.Match(id) {
			c.splice(id)
		}
		if negated, ok := c.negations[id]; ok && c.tree.Has(id) {
			for _, p := range c.tree.Parents(id) {
				if slices.Contains(negated, p) {
					c.tree.RemoveEdge(id, p)
					c.log.Debug("negated link removed", "parent", p, "child", id)
				}
			}
		}
	}

	for _, id := range c.tree.Children() {
		for _, p := range c.tree.Parents(id) {
			if c.ignore.Match(p) {
				c.tree.RemoveEdge(id, p)
			}
		}
		if len(c.tree.Parents(id)) == 0 {
			c.tree.Remove(id)
		}
	}
}

// splice turns A > id > C into A > C: every direct child of id loses its edge
// to id and inherits the parent edges of id it does not have yet. The entry of
// id is deleted afterwards.
func (c *conversion) splice(id string) {
	parents := c.tree.Parents(id)
	for _, child := range c.tree.DirectChildren(id) {
		c.tree.RemoveEdge(child, id)
		for _, p := range parents {
			if p == child || c.tree.HasEdge(child, p) {
				continue
			}
			rel, _ := c.tree.Relation(id, p)
			c.tree.set(child, p, rel)
		}
		c.log.Debug("ignored class spliced", "id", id, "child", child)
	}
	c.tree.Remove(id)
}
