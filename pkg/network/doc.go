// Package network defines the Bayesian network produced by a conversion.
//
// A [Network] is the sole artifact handed to the editor: an ordered list of
// binary nodes with their parents and conditional probability tables, a grid
// position per node, and the editor's network settings. The JSON encoding
// ([WriteJSON], [ReadJSON]) matches the editor's file format:
//
//	{
//	  "version": 2,
//	  "network": {"name": "Nausea", "width": 1200, "height": 145, ...},
//	  "nodes": [
//	    {"id": "Symptom", "states": ["Yes", "No"], "parents": [], "cpt": {"Yes": 0.5, "No": 0.5}},
//	    {"id": "Nausea", "states": ["Yes", "No"], "parents": ["Symptom"],
//	     "cpt": [{"when": {"Symptom": "Yes"}, "then": {"Yes": 0.5, "No": 0.5}}, ...]}
//	  ],
//	  "positions": {"Nausea": {"x": 290, "y": 50}, "Symptom": {"x": 60, "y": 50}}
//	}
//
// # CPTs
//
// [GenerateCPT] enumerates every combination of parent states. Rows run from
// "all parents in the first state" down to "all parents in the second
// state", with the first parent as the least significant bit. Every row gets
// the uniform distribution; CPT values are never learned.
//
// # Layout
//
// [Layout] places nodes on a five-column grid in node order. The position of
// a node depends only on its index, so a stable node order gives a stable
// layout.
package network
