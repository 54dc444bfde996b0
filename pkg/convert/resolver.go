package convert

import (
	"strings"

	"github.com/matzehuels/owlnet/pkg/owl"
)

// labelProperty is the annotation property whose literal becomes a class label.
const labelProperty = "rdfs:label"

// Labels maps abbreviated IRIs (":Vomiting") to their rdfs:label literal.
type Labels map[string]string

// ReadLabels collects the label annotations of an Ontology element. When an
// abbreviated IRI has several labels, the last one in document order wins.
func ReadLabels(onto *owl.Element) Labels {
	labels := make(Labels)
	for _, a := range onto.Children("AnnotationAssertion") {
		if a.First("AnnotationProperty").Attr("abbreviatedIRI") != labelProperty {
			continue
		}
		abbr := a.First("AbbreviatedIRI")
		lit := a.First("Literal")
		if abbr == nil || abbr.Text == "" || lit == nil {
			continue
		}
		labels[abbr.Text] = lit.Text
	}
	return labels
}

// Resolve returns the normalized identifier of an element. A full IRI is used
// as is; an abbreviated IRI is replaced by its label when one exists. The
// second result is false when the element carries neither attribute, or when
// nothing is left after normalization.
func (l Labels) Resolve(e *owl.Element) (string, bool) {
	var id string
	switch {
	case e.Attr("IRI") != "":
		id = e.Attr("IRI")
	case e.Attr("abbreviatedIRI") != "":
		abbr := e.Attr("abbreviatedIRI")
		id = abbr
		if label, ok := l[abbr]; ok && label != "" {
			id = label
		}
	default:
		return "", false
	}

	id = NormalizeID(id)
	return id, id != ""
}

// NormalizeID strips leading and trailing '#' runs and turns underscores into
// spaces: "#Dor_de_cabeca" becomes "Dor de cabeca".
func NormalizeID(s string) string {
	s = strings.Trim(s, "#")
	return strings.ReplaceAll(s, "_", " ")
}
