package convert

import (
	"slices"
	"testing"
)

func TestTree_Add(t *testing.T) {
	sub := Relation{SubClassOf}
	eq := Relation{EquivalentClasses}

	tests := []struct {
		name   string
		parent string
		child  string
		rel    Relation
		want   AddResult
	}{
		{"first edge", "A", "B", sub, Added},
		{"self loop", "A", "A", sub, RejectedSelfLoop},
		{"reverse", "B", "A", eq, RejectedReverse},
		{"duplicate", "A", "B", eq, RejectedDuplicate},
		{"second parent", "C", "B", eq, Added},
	}

	tree := NewTree()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tree.Add(tt.rel, tt.parent, tt.child); got != tt.want {
				t.Errorf("Add(%s, %s) = %v, want %v", tt.parent, tt.child, got, tt.want)
			}
		})
	}

	if got := tree.Parents("B"); !slices.Equal(got, []string{"A", "C"}) {
		t.Errorf("Parents(B) = %v", got)
	}
	if rel, _ := tree.Relation("B", "A"); rel.Kind() != SubClassOf {
		t.Errorf("duplicate add changed the relation to %v", rel)
	}
	if tree.Has("A") {
		t.Error("A has no parents and should have no entry")
	}
}

func TestTree_RemoveEdge(t *testing.T) {
	tree := NewTree()
	tree.Add(Relation{SubClassOf}, "A", "B")
	tree.Add(Relation{SubClassOf}, "C", "B")

	tree.RemoveEdge("B", "A")
	tree.RemoveEdge("B", "missing")

	if got := tree.Parents("B"); !slices.Equal(got, []string{"C"}) {
		t.Errorf("Parents(B) = %v, want [C]", got)
	}
	if tree.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", tree.EdgeCount())
	}

	tree.RemoveEdge("B", "C")
	if !tree.Has("B") {
		t.Error("RemoveEdge should keep the entry")
	}
}

func TestTree_RemoveThenAddMovesToEnd(t *testing.T) {
	tree := NewTree()
	tree.Add(Relation{SubClassOf}, "P", "A")
	tree.Add(Relation{SubClassOf}, "P", "B")

	tree.Remove("A")
	tree.Add(Relation{SubClassOf}, "P", "A")

	if got := tree.Children(); !slices.Equal(got, []string{"B", "A"}) {
		t.Errorf("Children() = %v, want [B A]", got)
	}
}

func TestTree_Descendants(t *testing.T) {
	tree := NewTree()
	tree.Add(Relation{SubClassOf}, "R", "X")
	tree.Add(Relation{SubClassOf}, "X", "Y")
	tree.Add(Relation{SubClassOf}, "R", "Z")
	tree.Add(Relation{SubClassOf}, "Y", "W")
	tree.Add(Relation{SubClassOf}, "Q", "V")

	if got := tree.Descendants("R"); !slices.Equal(got, []string{"X", "Y", "W", "Z"}) {
		t.Errorf("Descendants(R) = %v", got)
	}
	if got := tree.DirectChildren("R"); !slices.Equal(got, []string{"X", "Z"}) {
		t.Errorf("DirectChildren(R) = %v", got)
	}
	if got := tree.Descendants("V"); len(got) != 0 {
		t.Errorf("Descendants(V) = %v, want none", got)
	}
}

func TestTree_DescendantsTerminatesOnCycle(t *testing.T) {
	tree := NewTree()
	tree.Add(Relation{SubClassOf}, "A", "B")
	tree.Add(Relation{SubClassOf}, "B", "C")
	tree.Add(Relation{SubClassOf}, "C", "A")

	if got := tree.Descendants("A"); len(got) != 3 {
		t.Errorf("Descendants(A) = %v, want 3 ids", got)
	}
}

func TestTree_Entries(t *testing.T) {
	tree := NewTree()
	tree.Add(Relation{SubClassOf, ObjectSomeValuesFrom}, "A", "B")

	entries := tree.Entries()
	if len(entries) != 1 || entries[0].Child != "B" {
		t.Fatalf("Entries() = %+v", entries)
	}
	edge := entries[0].Parents[0]
	if edge.Parent != "A" || edge.Relation.String() != "SubClassOf > ObjectSomeValuesFrom" {
		t.Errorf("edge = %+v", edge)
	}

	edge.Relation[0] = ObjectUnionOf
	if rel, _ := tree.Relation("B", "A"); rel.Kind() != SubClassOf {
		t.Error("Entries() must return a detached copy")
	}
}

func TestRelation(t *testing.T) {
	base := Relation{EquivalentClasses}
	nested := base.with(ObjectIntersectionOf)

	if len(base) != 1 {
		t.Errorf("with() modified the receiver: %v", base)
	}
	if !nested.Has(EquivalentClasses) || !nested.Has(ObjectIntersectionOf) {
		t.Errorf("nested = %v", nested)
	}
	if nested.Has(ObjectComplementOf) {
		t.Error("unexpected ObjectComplementOf")
	}
	if (Relation{}).Kind() != "" {
		t.Error("empty relation should have no kind")
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#Dor_de_cabeca", "Dor de cabeca"},
		{"http://example.org/onto#Nausea##", "http://example.org/onto#Nausea"},
		{"##", ""},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := NormalizeID(tt.in); got != tt.want {
			t.Errorf("NormalizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
