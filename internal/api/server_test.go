package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/owlnet/pkg/errors"
	"github.com/matzehuels/owlnet/pkg/network"
	"github.com/matzehuels/owlnet/pkg/pipeline"
	"github.com/matzehuels/owlnet/pkg/terms"
)

const flu = `<?xml version="1.0"?>
<Ontology xmlns="http://www.w3.org/2002/07/owl#">
    <Prefix name="" IRI="http://example.org/onto/Flu#"/>
    <SubClassOf>
        <Class IRI="#Fever"/>
        <Class IRI="#Symptom"/>
    </SubClassOf>
    <DisjointClasses>
        <Class IRI="#Fever"/>
        <Class IRI="#Symptom"/>
    </DisjointClasses>
</Ontology>`

const cyclic = `<Ontology>
    <Prefix name="" IRI="http://example.org/onto/Loop#"/>
    <SubClassOf><Class IRI="#A"/><Class IRI="#B"/></SubClassOf>
    <SubClassOf><Class IRI="#B"/><Class IRI="#C"/></SubClassOf>
    <SubClassOf><Class IRI="#C"/><Class IRI="#A"/></SubClassOf>
</Ontology>`

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	logger := log.NewWithOptions(&strings.Builder{}, log.Options{})
	return NewServer(pipeline.NewRunner(nil, nil, logger), logger, cfg)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, Config{}), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body = %s", got)
	}
}

func TestConvert_JSON(t *testing.T) {
	s := newTestServer(t, Config{Terms: terms.Default()})
	rec := do(t, s, http.MethodPost, "/api/convert?source=flu.owl", flu)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp ConvertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, err := uuid.Parse(resp.ID); err != nil {
		t.Errorf("id %q is not a UUID: %v", resp.ID, err)
	}
	if rec.Header().Get("X-Conversion-ID") != resp.ID {
		t.Error("X-Conversion-ID header does not match the body")
	}
	if resp.Source != "flu.owl" || resp.Stats.Nodes != 2 || resp.Stats.Edges != 1 {
		t.Errorf("response = %+v", resp)
	}

	net, err := network.Unmarshal(resp.Network)
	if err != nil {
		t.Fatalf("decode network: %v", err)
	}
	if net.Info.Name != "Flu" {
		t.Errorf("name = %q", net.Info.Name)
	}
}

func TestConvert_States(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := do(t, s, http.MethodPost, "/api/convert?states=Sim,N%C3%A3o", flu)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"Sim"`) {
		t.Errorf("states not applied: %s", rec.Body)
	}

	rec = do(t, s, http.MethodPost, "/api/convert?states=Sim", flu)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("one state: status = %d, want 400", rec.Code)
	}
}

func TestConvert_DOT(t *testing.T) {
	rec := do(t, newTestServer(t, Config{}), http.MethodPost, "/api/convert?format=dot", flu)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), `digraph "Flu"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestConvert_Errors(t *testing.T) {
	s := newTestServer(t, Config{MaxBodyBytes: 4096})

	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"malformed", "/api/convert", "<Ontology>", http.StatusBadRequest, "MALFORMED_INPUT"},
		{"not an ontology", "/api/convert", "<RDF/>", http.StatusBadRequest, "MALFORMED_INPUT"},
		{"no default prefix", "/api/convert", `<Ontology><Declaration><Class IRI="#A"/></Declaration></Ontology>`, http.StatusBadRequest, "MISSING_DEFAULT_NAME"},
		{"empty", "/api/convert", `<Ontology><Prefix name="" IRI="http://x/E#"/></Ontology>`, http.StatusUnprocessableEntity, "EMPTY_RESULT"},
		{"cycle", "/api/convert", cyclic, http.StatusUnprocessableEntity, "CIRCULAR_STRUCTURE"},
		{"bad format", "/api/convert?format=gif", flu, http.StatusBadRequest, "INVALID_FORMAT"},
		{"empty body", "/api/convert", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"too large", "/api/convert", strings.Repeat(" ", 5000), http.StatusRequestEntityTooLarge, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body["code"] != tt.code {
				t.Errorf("code = %q, want %q", body["code"], tt.code)
			}
			if body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestInspect(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := do(t, s, http.MethodPost, "/api/inspect/disjoints", flu)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp struct {
		View   string     `json:"view"`
		Result [][]string `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.View != "disjoints" || len(resp.Result) != 1 || len(resp.Result[0]) != 2 {
		t.Errorf("response = %+v", resp)
	}

	// Inspection works on networks the converter would reject.
	rec = do(t, s, http.MethodPost, "/api/inspect/nodes", cyclic)
	if rec.Code != http.StatusOK {
		t.Errorf("nodes view of a cycle: status = %d", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/api/inspect/positions", flu)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown view: status = %d, want 404", rec.Code)
	}
}

func TestViews(t *testing.T) {
	rec := do(t, newTestServer(t, Config{}), http.MethodGet, "/api/views", "")
	if !strings.Contains(rec.Body.String(), "linking-tree") {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"MALFORMED_INPUT", 400},
		{"MISSING_DEFAULT_NAME", 400},
		{"EMPTY_RESULT", 422},
		{"CIRCULAR_STRUCTURE", 422},
		{"TOO_MANY_PARENTS", 422},
		{"UNKNOWN_QUERY", 404},
		{"INTERNAL_ERROR", 500},
		{"", 500},
	}
	for _, tt := range tests {
		if got := statusFor(errors.Code(tt.code)); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
