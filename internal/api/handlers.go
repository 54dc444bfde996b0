package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/owlnet/pkg/convert"
	"github.com/matzehuels/owlnet/pkg/errors"
	"github.com/matzehuels/owlnet/pkg/pipeline"
	"github.com/matzehuels/owlnet/pkg/render/dot"
)

// FormatJSON asks /api/convert for the network itself rather than a drawing.
const FormatJSON = "json"

// ConvertResponse is the JSON body of a successful conversion.
type ConvertResponse struct {
	ID      string          `json:"id"`
	Source  string          `json:"source"`
	Hash    string          `json:"hash"`
	Cached  bool            `json:"cached"`
	Stats   StatsResponse   `json:"stats"`
	Network json.RawMessage `json:"network"`
}

// StatsResponse reports sizes and timings of a conversion.
type StatsResponse struct {
	Nodes      int   `json:"nodes"`
	Edges      int   `json:"edges"`
	DurationMS int64 `json:"duration_ms"`
}

// InspectResponse is the JSON body of a derived view.
type InspectResponse struct {
	View   string `json:"view"`
	Result any    `json:"result"`
}

var contentTypes = map[string]string{
	dot.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	dot.FormatSVG: "image/svg+xml",
	dot.FormatPNG: "image/png",
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.readOptions(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON {
		if err := pipeline.ValidateFormat(format); err != nil {
			writeError(w, err)
			return
		}
	}

	start := time.Now()
	res, err := s.runner.Convert(r.Context(), opts)
	if err != nil {
		s.log.Debug("conversion failed", "source", opts.Source, "error", err)
		writeError(w, err)
		return
	}
	id := uuid.NewString()
	w.Header().Set("X-Conversion-ID", id)

	if format == FormatJSON {
		writeJSON(w, http.StatusOK, ConvertResponse{
			ID:     id,
			Source: opts.Source,
			Hash:   res.Hash,
			Cached: res.CacheInfo.NetworkHit,
			Stats: StatsResponse{
				Nodes:      res.Stats.NodeCount,
				Edges:      res.Stats.EdgeCount,
				DurationMS: time.Since(start).Milliseconds(),
			},
			Network: res.JSON,
		})
		return
	}

	detailed, _ := strconv.ParseBool(q.Get("detailed"))
	out, _, err := s.runner.Render(r.Context(), res, pipeline.RenderOptions{
		Format:   format,
		RankDir:  q.Get("rankdir"),
		Detailed: detailed,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(out)
}

func (s *Server) handleViews(w http.ResponseWriter, r *http.Request) {
	views := convert.Views()
	names := make([]string, len(views))
	for i, v := range views {
		names[i] = string(v)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"views": names})
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	view, err := convert.ParseView(chi.URLParam(r, "view"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, ok := s.readOptions(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Inspect(r.Context(), opts, view)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, InspectResponse{View: string(view), Result: result})
}

// readOptions reads the ontology body and the query parameters shared by all
// conversion endpoints. On failure it writes the response and returns false.
func (s *Server) readOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("ontology exceeds max size (%d bytes)", s.cfg.MaxBodyBytes), "", http.StatusRequestEntityTooLarge)
			return pipeline.Options{}, false
		}
		jsonError(w, "failed to read body", "", http.StatusBadRequest)
		return pipeline.Options{}, false
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Source:   q.Get("source"),
		Ontology: data,
		Terms:    s.cfg.Terms,
		Logger:   s.log,
	}
	opts.Refresh, _ = strconv.ParseBool(q.Get("refresh"))
	if states := q.Get("states"); states != "" {
		opts.Terms.States = strings.Split(states, ",")
	}
	return opts, true
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeMalformedInput, errors.ErrCodeMissingDefaultName,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeEmptyResult, errors.ErrCodeCircularStructure, errors.ErrCodeTooManyParents:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnknownQuery:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	jsonError(w, msg, code, status)
}

func jsonError(w http.ResponseWriter, msg string, code errors.Code, status int) {
	body := map[string]string{"error": msg}
	if code != "" {
		body["code"] = string(code)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
