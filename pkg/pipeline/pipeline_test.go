package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/owlnet/pkg/cache"
	"github.com/matzehuels/owlnet/pkg/convert"
	"github.com/matzehuels/owlnet/pkg/errors"
	"github.com/matzehuels/owlnet/pkg/terms"
)

const flu = `<?xml version="1.0"?>
<Ontology xmlns="http://www.w3.org/2002/07/owl#">
    <Prefix name="" IRI="http://example.org/onto/Flu#"/>
    <SubClassOf>
        <Class IRI="#Fever"/>
        <Class IRI="#Symptom"/>
    </SubClassOf>
    <SubClassOf>
        <Class IRI="#Fever"/>
        <Class IRI="#Influenza"/>
    </SubClassOf>
</Ontology>`

func quietLogger() *log.Logger {
	return log.NewWithOptions(&strings.Builder{}, log.Options{})
}

func fileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return NewRunner(c, nil, quietLogger())
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"empty ontology", Options{}, errors.ErrCodeInvalidInput},
		{"too large", Options{Ontology: make([]byte, MaxOntologySize+1)}, errors.ErrCodeInvalidInput},
		{"bad states", Options{Ontology: []byte(flu), Terms: terms.Terms{States: []string{"Yes"}}}, errors.ErrCodeInvalidConfig},
		{"valid", Options{Ontology: []byte(flu)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v", err)
				}
				if tt.opts.Source != "ontology" {
					t.Errorf("Source = %q, want default", tt.opts.Source)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderOptions(t *testing.T) {
	opts := RenderOptions{}
	opts.SetDefaults()
	if opts.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", opts.Format, DefaultFormat)
	}
	if err := (&RenderOptions{Format: "dot", RankDir: "XY"}).Validate(); err == nil {
		t.Error("expected an error for rankdir XY")
	}
}

func TestRunner_Convert(t *testing.T) {
	r := fileRunner(t)
	ctx := context.Background()
	opts := Options{Source: "flu.owl", Ontology: []byte(flu), Terms: terms.Default()}

	first, err := r.Convert(ctx, opts)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if first.CacheInfo.NetworkHit {
		t.Error("first call should miss the cache")
	}
	if first.Network.Info.Name != "Flu" {
		t.Errorf("name = %q, want Flu", first.Network.Info.Name)
	}
	if first.Stats.NodeCount != 3 || first.Stats.EdgeCount != 2 {
		t.Errorf("stats = %+v", first.Stats)
	}

	second, err := r.Convert(ctx, opts)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !second.CacheInfo.NetworkHit {
		t.Error("second call should hit the cache")
	}
	if second.Hash != first.Hash {
		t.Errorf("hash changed across the cache: %s != %s", second.Hash, first.Hash)
	}

	opts.Refresh = true
	third, err := r.Convert(ctx, opts)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if third.CacheInfo.NetworkHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunner_ConvertKeysOnTerms(t *testing.T) {
	r := fileRunner(t)
	ctx := context.Background()

	if _, err := r.Convert(ctx, Options{Ontology: []byte(flu)}); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	res, err := r.Convert(ctx, Options{Ontology: []byte(flu), Terms: terms.Terms{States: []string{"Sim", "Não"}}})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.CacheInfo.NetworkHit {
		t.Error("different states must not share a cache entry")
	}
	if got := res.Network.Nodes[0].States; !slices.Equal(got, []string{"Sim", "Não"}) {
		t.Errorf("states = %v", got)
	}
}

func TestRunner_ConvertErrors(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	tests := []struct {
		name     string
		ontology string
		code     errors.Code
	}{
		{"not xml", "<<<", errors.ErrCodeMalformedInput},
		{"not an ontology", "<RDF/>", errors.ErrCodeMalformedInput},
		{"no classes", `<Ontology><Prefix name="" IRI="http://x/Empty#"/></Ontology>`, errors.ErrCodeEmptyResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Convert(context.Background(), Options{Ontology: []byte(tt.ontology)})
			if !errors.Is(err, tt.code) {
				t.Errorf("Convert() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRunner_RenderDOT(t *testing.T) {
	r := fileRunner(t)
	ctx := context.Background()

	res, err := r.Convert(ctx, Options{Ontology: []byte(flu)})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	out, hit, err := r.Render(ctx, res, RenderOptions{Format: "dot"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if hit {
		t.Error("first render should miss the cache")
	}
	if !strings.Contains(string(out), `"Symptom" -> "Fever"`) {
		t.Errorf("DOT output missing edge:\n%s", out)
	}

	again, hit, err := r.Render(ctx, res, RenderOptions{Format: "dot"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !hit || string(again) != string(out) {
		t.Error("second render should come from the cache")
	}
}

func TestRunner_RenderRejects(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	if _, _, err := r.Render(context.Background(), nil, RenderOptions{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Render(nil) = %v", err)
	}
	res := &Result{}
	if _, _, err := r.Render(context.Background(), res, RenderOptions{Format: "gif"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(gif) = %v", err)
	}
}

func TestRunner_Inspect(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "convert", "testdata", "nausea.owl"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	r := NewRunner(nil, nil, quietLogger())

	got, err := r.Inspect(context.Background(), Options{Ontology: data, Terms: terms.Default()}, convert.ViewDisjoints)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if groups := got.([][]string); len(groups) != 1 {
		t.Errorf("disjoints = %v", groups)
	}

	_, err = r.Inspect(context.Background(), Options{Ontology: data}, convert.View("bogus"))
	if !errors.Is(err, errors.ErrCodeUnknownQuery) {
		t.Errorf("Inspect(bogus) = %v", err)
	}
}
