// Package convert turns an OWL/XML ontology into a Bayesian network.
//
// # Overview
//
// Classes become binary nodes. Class relations (SubClassOf, EquivalentClasses
// and the class expressions nested in them) become parent links, so a
// subclass depends on its superclasses. [Convert] runs the whole pipeline and
// returns a [network.Network] ready for the editor:
//
//	doc, _ := owl.DecodeFile("nausea.owl")
//	net, err := convert.Convert(doc, convert.Options{Terms: terms.Default()})
//
// # Linking Tree
//
// Every relation assertion contributes edges to the linking tree, a map from
// child id to its parents. Assertions are read construct by construct in
// priority order:
//
//	SubClassOf > EquivalentClasses > ObjectIntersectionOf > ObjectUnionOf >
//	ObjectSomeValuesFrom > ObjectHasValue > ObjectComplementOf
//
// The first class of an assertion is the child; every other class at any
// nesting depth is a parent. When two assertions disagree on direction, the
// edge seen first wins, which is how SubClassOf beats EquivalentClasses.
// Classes found under ObjectComplementOf are negations: the child may not have
// them as parents.
//
// # Normalization
//
// Ignored classes (see [terms.Terms]) are spliced out so A > B > C with B
// ignored becomes A > C. Negated edges are dropped. Remove-listed classes are
// deleted together with all of their descendants.
//
// # Disjoint Classes
//
// DisjointClasses groups are resolved in two passes over the node list. The
// first drops EquivalentClasses edges that make a node reach two members of a
// group; the second drops edges from a member to a node whose ancestors
// already contain other members.
//
// # Cycle Gate
//
// The editor cannot load cyclic networks. [Convert] never breaks cycles; it
// fails with [errors.ErrCodeCircularStructure] instead.
//
// # Inspection
//
// [Inspect] exposes the intermediate structures (labels, linking tree,
// negations, disjoint groups, nodes) for debugging ontologies that convert
// badly.
package convert
