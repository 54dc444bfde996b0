// Package pkg provides the libraries behind owlnet, the OWL ontology to
// Bayesian network converter.
//
// # Overview
//
// owlnet reads an OWL/XML ontology and turns its class hierarchy into a
// Bayesian network the editor can load: one binary node per class, parent
// links derived from subclass, equivalence, and restriction axioms, and a
// uniform conditional probability table per node. The pkg directory is
// organized as follows:
//
//  1. [owl] - OWL/XML decoding into an element tree
//  2. [terms] - ignore/remove lists and state names (TOML)
//  3. [convert] - the conversion engine (linking tree, disjoints, cycle gate)
//  4. [network] - the network model, CPT generation, layout, and JSON
//  5. [render/dot] - Graphviz drawing (DOT, SVG, PNG)
//  6. [pipeline] - orchestration with caching (decode → convert → render)
//  7. [cache] - file, Redis, and MongoDB cache backends
//  8. [observability] - hooks for conversion, cache, and HTTP events
//  9. [errors] - coded errors shared by every layer
//
// # Architecture
//
//	OWL/XML document
//	       ↓
//	  [owl] package (element tree)
//	       ↓
//	  [convert] package (nodes + parents, using [terms])
//	       ↓
//	  [network] package (CPTs, positions, editor JSON)
//	       ↓
//	  [render/dot] package (SVG/PNG/DOT output)
//
// # Quick Start
//
//	doc, err := owl.DecodeFile("nausea.owl")
//	if err != nil {
//	    return err
//	}
//	net, err := convert.Convert(doc, convert.Options{Terms: terms.Default()})
//	if err != nil {
//	    return err
//	}
//	return network.ExportJSON(net, "nausea.json")
//
// Use [pipeline.Runner] to get caching and observability hooks on top.
package pkg
