package server

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/folio/pkg/catalog"
	"github.com/matzehuels/folio/pkg/desktop"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/observability"
)

const replayJSON = `{
  "container": {"left": 0, "top": 0, "width": 400, "height": 300},
  "events": [
    {"kind": "press", "x": 60, "y": 60},
    {"kind": "move", "x": 200, "y": 200, "at": 16},
    {"kind": "release", "x": 390, "y": 290, "at": 32}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := New(Config{Desktop: desktop.DefaultConfig(), Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	var body map[string]string
	decode(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestApps(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/apps")
	if err != nil {
		t.Fatal(err)
	}
	var apps []catalog.App
	decode(t, resp, &apps)
	if len(apps) != 3 || apps[0].Title != "ShopFlow" {
		t.Errorf("apps = %+v", apps)
	}
}

func TestApp(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/api/apps/weather", http.StatusOK, "WeatherPro"},
		{"/api/apps/nope", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if !strings.Contains(string(body), tt.want) {
				t.Errorf("body %s missing %q", body, tt.want)
			}
		})
	}
}

func TestReplayMatchesLibrary(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/replay", "application/json", strings.NewReader(replayJSON))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got desktop.Result
	decode(t, resp, &got)

	script, err := desktop.ReadScript(strings.NewReader(replayJSON), desktop.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	want, err := desktop.Replay(catalog.Default(), desktop.DefaultConfig(), script, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Placements, want.Placements) {
		t.Errorf("placements = %+v, want %+v", got.Placements, want.Placements)
	}
	if len(got.Steps) != len(want.Steps) || got.Steps[2].Outcome != desktop.Committed {
		t.Errorf("steps = %+v", got.Steps)
	}
}

func TestReplayTOML(t *testing.T) {
	ts := newTestServer(t)
	script := "container = { width = 400, height = 300 }\n[[event]]\nkind = \"launch\"\nid = \"weather\"\n"
	resp, err := http.Post(ts.URL+"/api/replay", "application/toml", strings.NewReader(script))
	if err != nil {
		t.Fatal(err)
	}
	var got desktop.Result
	decode(t, resp, &got)
	if !reflect.DeepEqual(got.Launches, []string{"weather"}) {
		t.Errorf("launches = %v", got.Launches)
	}
}

func TestReplayErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		url  string
		body string
		code string
	}{
		{"malformed", "/api/replay", "{", "INVALID_SCRIPT"},
		{"bad kind", "/api/replay", `{"events":[{"kind":"hover"}]}`, "INVALID_SCRIPT"},
		{"bad format", "/api/replay?format=yaml", "", "INVALID_FORMAT"},
		{"nan pointer", "/api/replay?format=toml", "[[event]]\nkind = \"press\"\nx = nan\ny = 60\n", "INVALID_SCRIPT"},
		{"inf container", "/api/replay?format=toml", "container = { width = inf, height = 300 }\n", "INVALID_SCRIPT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+tt.url, "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var body errorBody
			decode(t, resp, &body)
			if string(body.Code) != tt.code {
				t.Errorf("code = %s, want %s", body.Code, tt.code)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/nothing")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu    sync.Mutex
	paths []string
}

func (h *recordingHTTPHooks) OnRequest(method, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = append(h.paths, method+" "+path)
}

func TestRequestHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if len(hooks.paths) != 1 || hooks.paths[0] != "GET /healthz" {
		t.Errorf("hooks saw %v", hooks.paths)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() with zero desktop config succeeded")
	}
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	s, err := New(Config{Desktop: desktop.DefaultConfig(), Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.writeJSON(rec, http.StatusOK, map[string]float64{"x": math.NaN()})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v (body %q)", err, rec.Body.String())
	}
	if body.Code != errors.ErrCodeInternal {
		t.Errorf("code = %s, want %s", body.Code, errors.ErrCodeInternal)
	}
}
