package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/timetable/pkg/buildinfo"
	"github.com/matzehuels/timetable/pkg/errors"
	"github.com/matzehuels/timetable/pkg/parser"
	"github.com/matzehuels/timetable/pkg/pipeline"
)

// DefaultDocumentName names a document sent as a raw body without ?name=.
const DefaultDocumentName = "timetable.txt"

// Query parameters that are not display settings.
var reservedParams = map[string]bool{
	"format":         true,
	"engine":         true,
	"lint":           true,
	"removed_marker": true,
	"name":           true,
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	// Line is set for parse errors.
	Line int `json:"line,omitempty"`
}

type lintResponse struct {
	Documents int                `json:"documents"`
	Warnings  []pipeline.Warning `json:"warnings"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	docs, err := s.readDocuments(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), docs, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	filename := pipeline.OutputName(pipeline.DefaultOutputTemplate(res.Format), names)

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentTypes[res.Format])
	h.Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": filename}))
	h.Set("X-Timetable-Pages", strconv.Itoa(res.Stats.Pages))
	h.Set("X-Timetable-Warnings", strconv.Itoa(len(res.Warnings)))
	h.Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}

func (s *Server) handleLint(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Lint = true
	docs, err := s.readDocuments(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	_, warnings, err := s.runner.Parse(r.Context(), docs, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if warnings == nil {
		warnings = []pipeline.Warning{}
	}
	writeJSON(w, http.StatusOK, lintResponse{Documents: len(docs), Warnings: warnings})
}

// optionsFromQuery reads render options and setting overrides. Lint is on
// unless ?lint=false.
func optionsFromQuery(q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Format:        q.Get("format"),
		PDFEngine:     q.Get("engine"),
		RemovedMarker: q.Get("removed_marker"),
		Lint:          true,
	}
	if v := q.Get("lint"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "lint: %q is not a boolean", v)
		}
		opts.Lint = b
	}
	for key, vals := range q {
		if reservedParams[key] || len(vals) == 0 {
			continue
		}
		if err := parser.ApplySetting(&opts.Settings, key, vals[len(vals)-1]); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidSettings, err, "query")
		}
	}
	return opts, nil
}

// readDocuments returns the uploaded documents in order.
func (s *Server) readDocuments(w http.ResponseWriter, r *http.Request) ([]pipeline.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, bodyError(err)
		}
		if len(data) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "empty request body")
		}
		name := r.URL.Query().Get("name")
		if name == "" {
			name = DefaultDocumentName
		}
		return []pipeline.Document{{Name: name, Data: data}}, nil
	}

	if err := r.ParseMultipartForm(s.maxBody); err != nil {
		return nil, bodyError(err)
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, `no "file" fields in form`)
	}
	docs := make([]pipeline.Document, 0, len(files))
	for i, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, bodyError(err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, bodyError(err)
		}
		name := pipeline.DocumentName(fh.Filename)
		if name == "" {
			name = fmt.Sprintf("timetable-%d.txt", i+1)
		}
		docs = append(docs, pipeline.Document{Name: name, Data: data})
	}
	return docs, nil
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.New(errors.ErrCodeInvalidInput, "request body larger than %d bytes", tooLarge.Limit)
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "read request")
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	resp := errorResponse{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if resp.Code == "" {
		resp.Code = errors.ErrCodeInternal
	}
	var perr *parser.ParseError
	if stderrors.As(err, &perr) {
		resp.Line = perr.Line
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "id", RequestID(r.Context()))
		resp.Message = "internal error"
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
