package convert

import (
	"slices"
	"strings"
)

// Construct is an OWL/XML element that can assert a relation between classes.
type Construct string

// Relation constructs, in priority order.
const (
	SubClassOf           Construct = "SubClassOf"
	EquivalentClasses    Construct = "EquivalentClasses"
	ObjectIntersectionOf Construct = "ObjectIntersectionOf"
	ObjectUnionOf        Construct = "ObjectUnionOf"
	ObjectSomeValuesFrom Construct = "ObjectSomeValuesFrom"
	ObjectHasValue       Construct = "ObjectHasValue"
	ObjectComplementOf   Construct = "ObjectComplementOf"
)

// constructs lists every relation construct by priority. Earlier constructs
// are processed first, so their edges win reverse-edge conflicts.
var constructs = []Construct{
	SubClassOf,
	EquivalentClasses,
	ObjectIntersectionOf,
	ObjectUnionOf,
	ObjectSomeValuesFrom,
	ObjectHasValue,
	ObjectComplementOf,
}

// Constructs returns the relation constructs in priority order.
func Constructs() []Construct { return slices.Clone(constructs) }

func isConstruct(name string) bool {
	return slices.Contains(constructs, Construct(name))
}

// Relation is the chain of constructs walked from a top-level assertion down
// to the class that became a parent. For
//
//	<SubClassOf><Class IRI="#A"/><ObjectSomeValuesFrom>...<Class IRI="#B"/>
//
// the edge A -> B carries [SubClassOf ObjectSomeValuesFrom].
type Relation []Construct

// Kind returns the top-level construct of the chain.
func (r Relation) Kind() Construct {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Has reports whether c appears anywhere in the chain.
func (r Relation) Has(c Construct) bool { return slices.Contains(r, c) }

// String joins the chain with " > ".
func (r Relation) String() string {
	parts := make([]string, len(r))
	for i, c := range r {
		parts[i] = string(c)
	}
	return strings.Join(parts, " > ")
}

func (r Relation) with(c Construct) Relation {
	out := make(Relation, len(r), len(r)+1)
	copy(out, r)
	return append(out, c)
}

// AddResult tells why [Tree.Add] did or did not store an edge.
type AddResult int

const (
	Added AddResult = iota
	RejectedSelfLoop
	RejectedReverse
	RejectedDuplicate
)

func (r AddResult) String() string {
	switch r {
	case Added:
		return "added"
	case RejectedSelfLoop:
		return "self loop"
	case RejectedReverse:
		return "circular link"
	case RejectedDuplicate:
		return "duplicated link"
	}
	return "unknown"
}

// Tree is the linking tree: for every child id, its parents and the relation
// each edge came from.
//
// Children and the parents of each child are kept in insertion order. Removing
// an entry and adding it again moves it to the end, so iteration order only
// depends on the sequence of mutations. A Tree never holds a self-loop.
type Tree struct {
	order   []string
	entries map[string]*parentList
}

type parentList struct {
	order []string
	rel   map[string]Relation
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{entries: make(map[string]*parentList)}
}

// Add stores child -> parent unless it would be a self-loop, the reverse edge
// parent -> child already exists, or the edge is already present.
func (t *Tree) Add(rel Relation, parent, child string) AddResult {
	if child == parent {
		return RejectedSelfLoop
	}
	if t.HasEdge(parent, child) {
		return RejectedReverse
	}
	if t.HasEdge(child, parent) {
		return RejectedDuplicate
	}
	t.set(child, parent, rel)
	return Added
}

// set stores an edge without conflict checks. Self-loops are still refused.
func (t *Tree) set(child, parent string, rel Relation) {
	if child == parent {
		return
	}
	e, ok := t.entries[child]
	if !ok {
		e = &parentList{rel: make(map[string]Relation)}
		t.entries[child] = e
		t.order = append(t.order, child)
	}
	if _, ok := e.rel[parent]; !ok {
		e.order = append(e.order, parent)
	}
	e.rel[parent] = rel
}

// Has reports whether child has an entry.
func (t *Tree) Has(child string) bool {
	_, ok := t.entries[child]
	return ok
}

// HasEdge reports whether child -> parent exists.
func (t *Tree) HasEdge(child, parent string) bool {
	e, ok := t.entries[child]
	if !ok {
		return false
	}
	_, ok = e.rel[parent]
	return ok
}

// Relation returns the relation of child -> parent.
func (t *Tree) Relation(child, parent string) (Relation, bool) {
	e, ok := t.entries[child]
	if !ok {
		return nil, false
	}
	r, ok := e.rel[parent]
	return r, ok
}

// Children returns a snapshot of the child ids in tree order.
func (t *Tree) Children() []string { return slices.Clone(t.order) }

// Parents returns a snapshot of the parents of child in insertion order.
func (t *Tree) Parents(child string) []string {
	e, ok := t.entries[child]
	if !ok {
		return nil
	}
	return slices.Clone(e.order)
}

// Len returns the number of child entries.
func (t *Tree) Len() int { return len(t.order) }

// EdgeCount returns the number of edges.
func (t *Tree) EdgeCount() int {
	n := 0
	for _, e := range t.entries {
		n += len(e.order)
	}
	return n
}

// RemoveEdge deletes child -> parent. The child entry stays, even when it has
// no parents left.
func (t *Tree) RemoveEdge(child, parent string) {
	e, ok := t.entries[child]
	if !ok {
		return
	}
	if _, ok := e.rel[parent]; !ok {
		return
	}
	delete(e.rel, parent)
	e.order = slices.DeleteFunc(e.order, func(p string) bool { return p == parent })
}

// Remove deletes the entry of child with all of its parent edges. Edges from
// other children to this id are untouched.
func (t *Tree) Remove(child string) {
	if _, ok := t.entries[child]; !ok {
		return
	}
	delete(t.entries, child)
	t.order = slices.DeleteFunc(t.order, func(c string) bool { return c == child })
}

// DirectChildren returns, in tree order, the ids that have id as a parent.
func (t *Tree) DirectChildren(id string) []string {
	var out []string
	for _, c := range t.order {
		if _, ok := t.entries[c].rel[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Descendants returns every id that reaches id through parent edges,
// depth-first in tree order.
func (t *Tree) Descendants(id string) []string {
	var out []string
	seen := make(map[string]bool)
	var walk func(id string)
	walk = func(id string) {
		for _, c := range t.order {
			if _, ok := t.entries[c].rel[id]; ok && !seen[c] {
				seen[c] = true
				out = append(out, c)
				walk(c)
			}
		}
	}
	walk(id)
	return out
}

// Entry is one child of a tree snapshot.
type Entry struct {
	Child   string `json:"child"`
	Parents []Edge `json:"parents"`
}

// Edge is one parent link of an [Entry].
type Edge struct {
	Parent   string   `json:"parent"`
	Relation Relation `json:"relation"`
}

// Entries returns an ordered, detached copy of the tree.
func (t *Tree) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, c := range t.order {
		e := t.entries[c]
		entry := Entry{Child: c, Parents: make([]Edge, 0, len(e.order))}
		for _, p := range e.order {
			entry.Parents = append(entry.Parents, Edge{Parent: p, Relation: slices.Clone(e.rel[p])})
		}
		out = append(out, entry)
	}
	return out
}
