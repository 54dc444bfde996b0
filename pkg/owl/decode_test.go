package owl

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/owlnet/pkg/errors"
)

const sampleOntology = `<?xml version="1.0"?>
<Ontology xmlns="http://www.w3.org/2002/07/owl#"
     xml:base="http://example.org/onto/Nausea"
     ontologyIRI="http://example.org/onto/Nausea">
    <Prefix name="" IRI="http://example.org/onto/Nausea#"/>
    <Prefix name="rdfs" IRI="http://www.w3.org/2000/01/rdf-schema#"/>
    <Declaration>
        <Class IRI="#Nausea"/>
    </Declaration>
    <SubClassOf>
        <Class IRI="#Nausea"/>
        <Class IRI="#Symptom"/>
    </SubClassOf>
    <Declaration>
        <Class abbreviatedIRI=":Vomiting"/>
    </Declaration>
    <AnnotationAssertion>
        <AnnotationProperty abbreviatedIRI="rdfs:label"/>
        <AbbreviatedIRI>:Vomiting</AbbreviatedIRI>
        <Literal xml:lang="pt" datatypeIRI="http://www.w3.org/1999/02/22-rdf-syntax-ns#PlainLiteral">Vômito</Literal>
    </AnnotationAssertion>
</Ontology>`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleOntology))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if doc.Name != "" {
		t.Errorf("document name = %q, want empty", doc.Name)
	}
	onto := doc.First("Ontology")
	if onto == nil {
		t.Fatal("missing Ontology root")
	}
	if got := onto.Attr("xml:base"); got != "http://example.org/onto/Nausea" {
		t.Errorf("xml:base = %q", got)
	}
	if onto.HasAttr("xmlns") {
		t.Error("namespace declarations should not be attributes")
	}

	want := []string{"Prefix", "Declaration", "SubClassOf", "AnnotationAssertion"}
	if got := onto.ChildNames(); !slices.Equal(got, want) {
		t.Errorf("ChildNames() = %v, want %v", got, want)
	}

	decls := onto.Children("Declaration")
	if len(decls) != 2 {
		t.Fatalf("declarations = %d, want 2", len(decls))
	}
	if got := decls[1].First("Class").Attr("abbreviatedIRI"); got != ":Vomiting" {
		t.Errorf("second declaration = %q, want :Vomiting", got)
	}

	prefix := onto.First("Prefix")
	if !prefix.HasAttr("name") || prefix.Attr("name") != "" {
		t.Errorf("default prefix name should be present and empty")
	}

	ann := onto.First("AnnotationAssertion")
	if got := ann.First("AbbreviatedIRI").Text; got != ":Vomiting" {
		t.Errorf("AbbreviatedIRI text = %q", got)
	}
	lit := ann.First("Literal")
	if lit.Text != "Vômito" {
		t.Errorf("Literal text = %q, want Vômito", lit.Text)
	}
	if lit.Attr("xml:lang") != "pt" {
		t.Errorf("xml:lang = %q, want pt", lit.Attr("xml:lang"))
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unclosed", "<Ontology><Declaration>"},
		{"mismatched", "<Ontology></Declaration>"},
		{"not xml", "{\"Ontology\": {}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeMalformedInput) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeMalformedInput)
			}
		})
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nausea.owl")
	if err := os.WriteFile(path, []byte(sampleOntology), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if doc.First("Ontology") == nil {
		t.Error("missing Ontology root")
	}

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.owl"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestElementBuilders(t *testing.T) {
	e := NewElement("SubClassOf").Add(
		NewElement("Class", "IRI", "#A"),
		NewElement("ObjectSomeValuesFrom").Add(
			NewElement("ObjectProperty", "IRI", "#has"),
			NewElement("Class", "IRI", "#B"),
		),
		NewElement("Class", "IRI", "#C"),
		nil,
	)

	if e.Len() != 3 {
		t.Errorf("Len() = %d, want 3", e.Len())
	}
	if got := e.ChildNames(); !slices.Equal(got, []string{"Class", "ObjectSomeValuesFrom"}) {
		t.Errorf("ChildNames() = %v", got)
	}
	if got := e.Children("Class")[1].Attr("IRI"); got != "#C" {
		t.Errorf("second Class = %q, want #C", got)
	}

	var nilElem *Element
	if nilElem.First("Class") != nil || nilElem.Attr("IRI") != "" || nilElem.HasAttr("IRI") {
		t.Error("nil element accessors should return zero values")
	}
}
