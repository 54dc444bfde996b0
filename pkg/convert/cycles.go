package convert

import (
	"strings"

	"github.com/matzehuels/owlnet/pkg/errors"
)

// ancestors returns every id reachable from id through node parents,
// depth-first in parent order. id itself is included only when it lies on a
// cycle.
func (c *conversion) ancestors(id string) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(id string)
	walk = func(id string) {
		n := c.node(id)
		if n == nil {
			return
		}
		for _, p := range n.Parents {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
			walk(p)
		}
	}
	walk(id)
	return out
}

func (c *conversion) ancestorSets() map[string][]string {
	sets := make(map[string][]string, len(c.nodes))
	for _, n := range c.nodes {
		sets[n.ID] = c.ancestors(n.ID)
	}
	return sets
}

// checkCycles fails on the first node, in node order, that is its own
// ancestor.
func (c *conversion) checkCycles() error {
	for _, n := range c.nodes {
		anc := c.ancestors(n.ID)
		for i, a := range anc {
			if a != n.ID {
				continue
			}
			c.log.Debug("circular link", "id", n.ID, "ancestors", strings.Join(anc[:i+1], ", "))
			return errors.New(errors.ErrCodeCircularStructure,
				"circular link found at %q: the editor cannot load cyclic networks", n.ID)
		}
	}
	return nil
}
