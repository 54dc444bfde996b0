package convert

import (
	"github.com/matzehuels/owlnet/pkg/network"
)

// declared returns the ids of every Declaration/Class in document order.
// Declarations without an identifier are skipped.
func (c *conversion) declared() []string {
	var ids []string
	for _, d := range c.onto.Children("Declaration") {
		cls := d.First("Class")
		if cls == nil {
			continue
		}
		id, ok := c.labels.Resolve(cls)
		if !ok {
			c.log.Info("skipping declaration without an identifier")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// candidates lists every id the conversion knows about: tree children, then
// their parents, then declared classes. Each id appears once.
func (c *conversion) candidates() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	children := c.tree.Children()
	for _, id := range children {
		add(id)
	}
	for _, id := range children {
		for _, p := range c.tree.Parents(id) {
			add(p)
		}
	}
	for _, id := range c.declared() {
		add(id)
	}
	return out
}

// removeUnnecessary deletes every remove-listed class and all of its
// descendants from the tree and marks them so they never become nodes.
func (c *conversion) removeUnnecessary() {
	if c.remove.Len() == 0 {
		return
	}
	for _, id := range c.candidates() {
		if !c.remove.Match(id) {
			continue
		}
		for _, d := range c.tree.Descendants(id) {
			c.unnecessary[d] = true
			c.tree.Remove(d)
		}
		c.unnecessary[id] = true
		c.tree.Remove(id)
		c.log.Debug("class removed with its descendants", "id", id)
	}
}

// extractNodes builds the node list: declared classes first, then tree
// children, each followed by its parents. Parent lists come from the tree.
func (c *conversion) extractNodes() {
	add := func(id string) {
		if c.unnecessary[id] {
			return
		}
		if _, ok := c.index[id]; ok {
			return
		}
		parents := c.tree.Parents(id)
		if parents == nil {
			parents = []string{}
		}
		c.index[id] = len(c.nodes)
		c.nodes = append(c.nodes, &network.Node{ID: id, Parents: parents})
	}

	for _, id := range c.declared() {
		if c.ignore.Match(id) {
			c.log.Info("ignoring declared class", "id", id)
			continue
		}
		add(id)
	}
	for _, child := range c.tree.Children() {
		add(child)
		for _, p := range c.tree.Parents(child) {
			add(p)
		}
	}
}
