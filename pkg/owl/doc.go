// Package owl decodes OWL/XML ontology documents into a generic element tree.
//
// The tree mirrors the shape the converter works with: every element exposes
// its attributes by name, its text content, and its child elements grouped by
// element name. Groups keep the order in which a name first appears, and each
// group keeps document order, so walking a tree is deterministic:
//
//	doc, err := owl.DecodeFile("nausea.owl")
//	if err != nil {
//	    return err
//	}
//	onto := doc.First("Ontology")
//	for _, decl := range onto.Children("Declaration") {
//	    fmt.Println(decl.First("Class").Attr("IRI"))
//	}
//
// [Decode] returns a nameless document element whose single child is the XML
// root, so callers can tell an ontology ("Ontology" child present) from any
// other XML document.
//
// Namespace prefixes are dropped from element and attribute names, with the
// exception of the reserved xml prefix which is kept (xml:lang). Namespace
// declarations (xmlns) are not exposed as attributes.
package owl
