package api

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	"github.com/matzehuels/hierview/pkg/buildinfo"
	errs "github.com/matzehuels/hierview/pkg/errors"
	"github.com/matzehuels/hierview/pkg/graph"
	"github.com/matzehuels/hierview/pkg/pipeline"
	"github.com/matzehuels/hierview/pkg/session"
)

// contentTypes maps artifact formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:     "image/svg+xml",
	pipeline.FormatOutline: "image/svg+xml",
	pipeline.FormatPNG:     "image/png",
	pipeline.FormatPDF:     "application/pdf",
	pipeline.FormatJSON:    "application/json",
	pipeline.FormatDOT:     "text/vnd.graphviz",
}

// binaryFormats are base64-encoded in JSON responses.
var binaryFormats = map[string]bool{
	pipeline.FormatPNG: true,
	pipeline.FormatPDF: true,
}

// LayoutResponse is the body of POST /v1/layout.
type LayoutResponse struct {
	Layout       graph.Layout       `json:"layout"`
	Artifacts    map[string]string  `json:"artifacts"`
	DocumentHash string             `json:"document_hash"`
	Session      string             `json:"session,omitempty"`
	Cache        pipeline.CacheInfo `json:"cache"`
}

// HitTestRequest is the body of POST /v1/hittest.
type HitTestRequest struct {
	pipeline.Options
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HitTestResponse carries the hit node, or null.
type HitTestResponse struct {
	Node *graph.Node `json:"node"`
}

// TransitionRequest is the body of POST /v1/transition.
type TransitionRequest struct {
	From pipeline.Options `json:"from"`
	To   pipeline.Options `json:"to"`
}

// TransitionResponse lists the animation of every replayed change.
type TransitionResponse struct {
	Steps []pipeline.Step `json:"steps"`
}

// SessionRequest is the body of session create and replace requests.
type SessionRequest struct {
	VizType  string   `json:"viz_type"`
	RootID   string   `json:"root_id,omitempty"`
	Isolated []string `json:"isolated,omitempty"`
	Expanded []string `json:"expanded,omitempty"`
	Focus    string   `json:"focus,omitempty"`
	Source   string   `json:"source,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// =============================================================================
// Pipeline Handlers
// =============================================================================

// layout runs the pipeline. With ?format=<f> the single artifact is written
// raw with its content type instead of the JSON envelope.
func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if !s.decode(w, r, &opts) || !s.inlineOnly(w, r, &opts) {
		return
	}
	raw := r.URL.Query().Get("format")
	if raw != "" {
		opts.Formats = []string{raw}
	}

	res, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if raw != "" {
		w.Header().Set("Content-Type", contentTypes[raw])
		w.WriteHeader(http.StatusOK)
		w.Write(res.Artifacts[raw])
		return
	}

	resp := LayoutResponse{
		Layout:       res.Layout,
		Artifacts:    make(map[string]string, len(res.Artifacts)),
		DocumentHash: res.DocumentHash,
		Cache:        res.CacheInfo,
	}
	if res.Session != nil {
		resp.Session = res.Session.ID
	}
	for format, data := range res.Artifacts {
		if binaryFormats[format] {
			resp.Artifacts[format] = base64.StdEncoding.EncodeToString(data)
		} else {
			resp.Artifacts[format] = string(data)
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) hitTest(w http.ResponseWriter, r *http.Request) {
	var req HitTestRequest
	if !s.decode(w, r, &req) || !s.inlineOnly(w, r, &req.Options) {
		return
	}
	n, err := s.Runner.HitTest(r.Context(), req.Options, req.X, req.Y)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, HitTestResponse{Node: n})
}

func (s *Server) transition(w http.ResponseWriter, r *http.Request) {
	var req TransitionRequest
	if !s.decode(w, r, &req) || !s.inlineOnly(w, r, &req.From) || !s.inlineOnly(w, r, &req.To) {
		return
	}
	steps, err := s.Runner.Transition(r.Context(), req.From, req.To)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, TransitionResponse{Steps: steps})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

// =============================================================================
// Session Handlers
// =============================================================================

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req SessionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.VizType == "" {
		req.VizType = pipeline.DefaultVizType
	}
	if err := pipeline.ValidateVizType(req.VizType); err != nil {
		s.writeError(w, r, err)
		return
	}

	st := session.New(req.VizType, s.SessionTTL)
	req.apply(st)
	if err := s.Sessions.Set(r.Context(), st); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, st)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	st, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

// putSession replaces the view fields of a session and extends its expiry.
func (s *Server) putSession(w http.ResponseWriter, r *http.Request) {
	st, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var req SessionRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.VizType != "" {
		if err := pipeline.ValidateVizType(req.VizType); err != nil {
			s.writeError(w, r, err)
			return
		}
		st.VizType = req.VizType
	}
	req.apply(st)
	st.Touch(s.SessionTTL)
	if err := s.Sessions.Set(r.Context(), st); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := session.ValidateID(id); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "session %q", id))
		return
	}
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.ViewState, bool) {
	id := chi.URLParam(r, "id")
	if err := session.ValidateID(id); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "session %q", id))
		return nil, false
	}
	st, err := s.Sessions.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	if st == nil {
		s.writeError(w, r, errs.New(errs.ErrCodeNotFound, "session %s not found", id))
		return nil, false
	}
	return st, true
}

func (req SessionRequest) apply(st *session.ViewState) {
	st.RootID = req.RootID
	st.Isolated = req.Isolated
	st.Expanded = req.Expanded
	st.Focus = req.Focus
	st.Source = req.Source
}

// =============================================================================
// Helpers
// =============================================================================

// decode reads a JSON body into v, answering 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error:   string(errs.ErrCodeInvalidInput),
				Message: "request body too large",
			})
			return false
		}
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

// inlineOnly rejects options that name a server-side path.
func (s *Server) inlineOnly(w http.ResponseWriter, r *http.Request, opts *pipeline.Options) bool {
	if opts.Path != "" {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "path is not accepted over HTTP; send the document inline"))
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.Logger.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: string(code), Message: errs.UserMessage(err)})
}
