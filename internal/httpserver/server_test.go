package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tinytelemetry/mbtilens/internal/catalog"
	"github.com/tinytelemetry/mbtilens/internal/model"
	"github.com/tinytelemetry/mbtilens/internal/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, opts view.Options) (*Server, http.Handler) {
	t.Helper()
	srv := NewServer("", catalog.NewHolder(catalog.Default()), opts, zaptest.NewLogger(t))
	h, err := srv.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}
	return srv, h
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
}

type viewBody struct {
	HTML       string `json:"html"`
	Background string `json:"background"`
	Route      string `json:"route"`
	Fragment   string `json:"fragment"`
}

func TestShell(t *testing.T) {
	_, h := newTestServer(t, view.Options{})

	w := do(t, h, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("shell status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	body := w.Body.String()
	for _, want := range []string{`<div id="root"></div>`, "hashchange", "/api/submit"} {
		if !strings.Contains(body, want) {
			t.Errorf("shell missing %q", want)
		}
	}
}

func TestView_Home(t *testing.T) {
	_, h := newTestServer(t, view.Options{})

	for _, fragment := range []string{"", "%23%2F", "%23%2Fbogus-path"} {
		w := do(t, h, http.MethodGet, "/view?fragment="+fragment, "")
		if w.Code != http.StatusOK {
			t.Fatalf("view status = %d", w.Code)
		}
		var got viewBody
		decode(t, w, &got)
		if got.Route != "home" {
			t.Errorf("fragment %q: route = %q, want home", fragment, got.Route)
		}
		if !strings.Contains(got.HTML, `id="mbtiInput"`) {
			t.Errorf("fragment %q: home input missing in %s", fragment, got.HTML)
		}
		if got.Background != model.HomeBackground {
			t.Errorf("fragment %q: background = %q", fragment, got.Background)
		}
	}
}

func TestView_Result(t *testing.T) {
	_, h := newTestServer(t, view.Options{ApplyColor: true})

	infp, _ := catalog.Default().Lookup("INFP")
	fallback, _ := catalog.Default().Lookup(model.DefaultCode)

	tests := []struct {
		query   string
		heading string
		record  model.Record
	}{
		{"%23%2Fresult%3Fmbti%3Dinfp", "<h1>INFP</h1>", infp},
		{"%2Fresult%3Fmbti%3Dzzzz", "<h1>ZZZZ</h1>", fallback},
		{"%23%2Fresult", "<h1>DEFAULT</h1>", fallback},
	}
	for _, tt := range tests {
		w := do(t, h, http.MethodGet, "/view?fragment="+tt.query, "")
		var got viewBody
		decode(t, w, &got)
		if got.Route != "result" {
			t.Errorf("%s: route = %q, want result", tt.query, got.Route)
		}
		if !strings.Contains(got.HTML, tt.heading) {
			t.Errorf("%s: html %s missing %s", tt.query, got.HTML, tt.heading)
		}
		if !strings.Contains(got.HTML, tt.record.Description) {
			t.Errorf("%s: html missing description", tt.query)
		}
		if got.Background != tt.record.Color {
			t.Errorf("%s: background = %q, want %q", tt.query, got.Background, tt.record.Color)
		}
	}
}

func TestView_CelebrateMode(t *testing.T) {
	_, h := newTestServer(t, view.Options{Mode: model.DisplayCelebrate})

	w := do(t, h, http.MethodGet, "/view?fragment=%2Fresult%3Fmbti%3Dintp", "")
	var got viewBody
	decode(t, w, &got)
	if !strings.Contains(got.HTML, model.DefaultStrings().CelebrateTitle) {
		t.Errorf("html %s missing congratulatory heading", got.HTML)
	}
}

func TestSubmit(t *testing.T) {
	_, h := newTestServer(t, view.Options{})

	w := do(t, h, http.MethodPost, "/api/submit", `{"value": "  enfp "}`)
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", w.Code, w.Body.String())
	}
	var ok struct {
		Fragment string `json:"fragment"`
	}
	decode(t, w, &ok)
	if ok.Fragment != "/result?mbti=enfp" {
		t.Errorf("fragment = %q, want /result?mbti=enfp", ok.Fragment)
	}
}

func TestSubmit_Empty(t *testing.T) {
	_, h := newTestServer(t, view.Options{})

	for _, body := range []string{`{"value": ""}`, `{"value": "   "}`, `{}`} {
		w := do(t, h, http.MethodPost, "/api/submit", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, w.Code)
		}
		var got struct {
			Error string `json:"error"`
		}
		decode(t, w, &got)
		if got.Error != model.DefaultStrings().EmptyInputError {
			t.Errorf("%s: error = %q", body, got.Error)
		}
	}
}

func TestSubmit_InvalidJSON(t *testing.T) {
	_, h := newTestServer(t, view.Options{})

	w := do(t, h, http.MethodPost, "/api/submit", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestTypes(t *testing.T) {
	_, h := newTestServer(t, view.Options{})

	w := do(t, h, http.MethodGet, "/api/types", "")
	var got struct {
		Types []string `json:"types"`
		Count int      `json:"count"`
	}
	decode(t, w, &got)
	if got.Count != 16 || len(got.Types) != 16 {
		t.Errorf("types = %d/%d, want 16", got.Count, len(got.Types))
	}
	if got.Types[0] != "ENFJ" {
		t.Errorf("first type = %q, want ENFJ (sorted)", got.Types[0])
	}
}

func TestTypeLookup(t *testing.T) {
	_, h := newTestServer(t, view.Options{})

	var known model.Resolution
	decode(t, do(t, h, http.MethodGet, "/api/types/istp", ""), &known)
	if known.Code != "ISTP" || !known.Known {
		t.Errorf("istp = %+v, want known ISTP", known)
	}

	var unknown model.Resolution
	decode(t, do(t, h, http.MethodGet, "/api/types/qqqq", ""), &unknown)
	fallback, _ := catalog.Default().Lookup(model.DefaultCode)
	if unknown.Known || unknown.Record != fallback {
		t.Errorf("qqqq = %+v, want DEFAULT record", unknown)
	}
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t, view.Options{})

	w := do(t, h, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
	var body map[string]interface{}
	decode(t, w, &body)
	if body["status"] != "ok" {
		t.Errorf("health status = %v, want ok", body["status"])
	}
}

func TestHealth_WrongMethod(t *testing.T) {
	_, h := newTestServer(t, view.Options{})

	w := do(t, h, http.MethodPost, "/api/health", "")
	if w.Code != http.StatusMethodNotAllowed && w.Code != http.StatusNotFound {
		t.Errorf("health POST status = %d, want 405 or 404", w.Code)
	}
}
