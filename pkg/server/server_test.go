package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/timetable/pkg/buildinfo"
	"github.com/matzehuels/timetable/pkg/cache"
	"github.com/matzehuels/timetable/pkg/errors"
	"github.com/matzehuels/timetable/pkg/pipeline"
)

const monday = `---
title: Class 1A
---
Monday
------
8:00 - 9:00 Math - Smith (101)
`

const lintDoc = `-----
title: X
---
Friday
------
13:00 - 14:00 Art
`

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(pipeline.NewRunner(c, nil, nil), opts...)
}

func do(s *Server, method, target string, body []byte, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, files map[string]string, order []string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range order {
		fw, err := mw.CreateFormFile("file", name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(files[name]))
	}
	mw.Close()
	return buf.Bytes(), mw.FormDataContentType()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	rec := do(newTestServer(t), http.MethodGet, "/healthz", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
	if got := rec.Header().Get("Server"); got != buildinfo.UserAgent() {
		t.Errorf("Server = %q, want %q", got, buildinfo.UserAgent())
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodGet, "/healthz", nil, "")
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("generated id %q is not a uuid", rec.Header().Get(RequestIDHeader))
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != id {
		t.Errorf("id = %q, want the incoming %q", got, id)
	}

	req.Header.Set(RequestIDHeader, "<script>")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got == "<script>" {
		t.Error("malformed ids should be replaced")
	}
}

func TestRenderRawBody(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, http.MethodPost, "/render?format=svg&name=week.txt&show_room=no", []byte(monday), "text/plain")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "week.txt.svg") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body := rec.Body.String()
	if !strings.Contains(body, ">Math<") {
		t.Error("lesson should be drawn")
	}
	if strings.Contains(body, ">101<") {
		t.Error("show_room=no should hide the room")
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("X-Cache = %q", rec.Header().Get("X-Cache"))
	}

	rec = do(s, http.MethodPost, "/render?format=svg&name=week.txt&show_room=no", []byte(monday), "text/plain")
	if rec.Header().Get("X-Cache") != "hit" {
		t.Errorf("repeat X-Cache = %q", rec.Header().Get("X-Cache"))
	}
}

func TestRenderMultipart(t *testing.T) {
	body, ct := multipartBody(t, map[string]string{"a.txt": monday, "b.txt": lintDoc}, []string{"a.txt", "b.txt"})
	rec := do(newTestServer(t), http.MethodPost, "/render?format=json", body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Timetable-Pages"); got != "2" {
		t.Errorf("pages = %s", got)
	}
	if got := rec.Header().Get("X-Timetable-Warnings"); got != "1" {
		t.Errorf("warnings = %s", got)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "a.txt_b.txt.json") {
		t.Errorf("Content-Disposition = %q", cd)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantCode   errors.Code
		wantLine   int
	}{
		{"parse error", "/render", "Monday\n------\n8:00 - 9:00 Math (101) (Z)\n", http.StatusUnprocessableEntity, errors.ErrCodeParse, 3},
		{"bad format", "/render?format=gif", monday, http.StatusBadRequest, errors.ErrCodeInvalidFormat, 0},
		{"unknown setting", "/render?colour=red", monday, http.StatusBadRequest, errors.ErrCodeInvalidSettings, 0},
		{"bad setting value", "/render?wrap_hour=noon", monday, http.StatusBadRequest, errors.ErrCodeInvalidSettings, 0},
		{"bad lint", "/render?lint=maybe", monday, http.StatusBadRequest, errors.ErrCodeInvalidInput, 0},
		{"empty body", "/render", "", http.StatusBadRequest, errors.ErrCodeInvalidInput, 0},
	}
	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, tt.target, []byte(tt.body), "text/plain")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			resp := decodeError(t, rec)
			if resp.Code != tt.wantCode || resp.Line != tt.wantLine {
				t.Errorf("response = %+v, want code %s line %d", resp, tt.wantCode, tt.wantLine)
			}
			if resp.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

func TestRenderTooLarge(t *testing.T) {
	s := newTestServer(t, WithMaxBody(16))
	rec := do(s, http.MethodPost, "/render", []byte(monday), "text/plain")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(decodeError(t, rec).Message, "larger than 16 bytes") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestLint(t *testing.T) {
	body, ct := multipartBody(t, map[string]string{"ok.txt": monday, "lint.txt": lintDoc}, []string{"ok.txt", "lint.txt"})
	rec := do(newTestServer(t), http.MethodPost, "/lint?lint=false", body, ct)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Documents int `json:"documents"`
		Warnings  []struct {
			Document string `json:"document"`
			Line     int    `json:"line"`
			Message  string `json:"message"`
		} `json:"warnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Documents != 2 || len(resp.Warnings) != 1 {
		t.Fatalf("response = %+v", resp)
	}
	if w := resp.Warnings[0]; w.Document != "lint.txt" || w.Line != 1 || w.Message == "" {
		t.Errorf("warning = %+v", w)
	}
}

func TestLintClean(t *testing.T) {
	rec := do(newTestServer(t), http.MethodPost, "/lint", []byte(monday), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"warnings":[]`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := do(newTestServer(t), http.MethodGet, "/render", nil, "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", rec.Code)
	}
}
