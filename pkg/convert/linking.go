package convert

import (
	"github.com/matzehuels/owlnet/pkg/owl"
)

// buildTree walks every top-level relation assertion, construct by construct
// in priority order, and fills the linking tree and the negation table.
func (c *conversion) buildTree() {
	for _, kind := range constructs {
		for _, assertion := range c.onto.Children(string(kind)) {
			child, ok := c.labels.Resolve(assertion.First("Class"))
			if !ok {
				c.log.Info("skipping assertion without a resolvable class", "construct", kind)
				continue
			}
			c.link(Relation{kind}, assertion, child)
		}
	}
}

// link visits the children of e. Classes become parents of child (or
// negations under ObjectComplementOf); nested constructs are walked with the
// construct appended to the relation chain.
func (c *conversion) link(rel Relation, e *owl.Element, child string) {
	for _, name := range e.ChildNames() {
		switch {
		case name == "Class":
			for _, cls := range e.Children(name) {
				c.linkClass(rel, cls, child)
			}
		case isConstruct(name):
			for _, nested := range e.Children(name) {
				c.link(rel.with(Construct(name)), nested, child)
			}
		}
	}
}

func (c *conversion) linkClass(rel Relation, cls *owl.Element, child string) {
	parent, ok := c.labels.Resolve(cls)
	if !ok {
		c.log.Info("skipping class without an identifier", "child", child, "relation", rel)
		return
	}
	if parent == child {
		return
	}

	if rel.Has(ObjectComplementOf) {
		c.negations[child] = append(c.negations[child], parent)
		c.log.Debug("negation", "child", child, "parent", parent)
		return
	}

	if res := c.tree.Add(rel, parent, child); res != Added {
		c.log.Debug("skipping link", "reason", res, "parent", parent, "child", child, "relation", rel)
	}
}
