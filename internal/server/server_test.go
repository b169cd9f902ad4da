package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mazeroute/mazeroute/pkg/pipeline"
)

const corridorGrid = "#####\n#S.E#\n#####"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := New(runner, logger, ":0")
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postSolve(t *testing.T, ts *httptest.Server, body string) (int, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/solve", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/solve: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, data
}

func decodeError(t *testing.T, data []byte) errorBody {
	t.Helper()
	var er errorResponse
	if err := json.Unmarshal(data, &er); err != nil {
		t.Fatalf("decode error body %q: %v", data, err)
	}
	return er.Error
}

func TestSolve_OK(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"grid": corridorGrid})
	status, data := postSolve(t, ts, string(body))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, data)
	}

	var res solveResponse
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.RunID == "" {
		t.Error("run_id should be set")
	}
	if res.Width != 5 || res.Height != 3 {
		t.Errorf("dimensions = %dx%d, want 5x3", res.Width, res.Height)
	}
	if res.NoRoute {
		t.Error("no_route should be false")
	}
	if res.Cost != 2 {
		t.Errorf("cost = %d, want 2", res.Cost)
	}
	if res.TileCount != 3 {
		t.Errorf("tile_count = %d, want 3", res.TileCount)
	}
	if res.Tiles != nil {
		t.Errorf("tiles = %v, want omitted without include_tiles", res.Tiles)
	}
}

func TestSolve_IncludeTiles(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"grid": corridorGrid, "include_tiles": true})
	status, data := postSolve(t, ts, string(body))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", status, data)
	}

	var res solveResponse
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Tiles) != 3 {
		t.Errorf("len(tiles) = %d, want 3", len(res.Tiles))
	}
}

func TestSolve_NoRoute(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"grid": "#####\n#S#E#\n#####"})
	status, data := postSolve(t, ts, string(body))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (no route is an answer): %s", status, data)
	}

	var res solveResponse
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.NoRoute {
		t.Error("no_route should be true")
	}
	if res.Cost != 0 || res.TileCount != 0 {
		t.Errorf("cost = %d, tile_count = %d, want zeros", res.Cost, res.TileCount)
	}
}

func TestSolve_MalformedJSON(t *testing.T) {
	ts := newTestServer(t)

	status, data := postSolve(t, ts, "{not json")
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", status, data)
	}
	if e := decodeError(t, data); e.Code != "INVALID_INPUT" {
		t.Errorf("error.code = %q, want INVALID_INPUT", e.Code)
	}
}

func TestSolve_BadGrid(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"grid": "#S?E#"})
	status, data := postSolve(t, ts, string(body))
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", status, data)
	}
	e := decodeError(t, data)
	if e.Code != "INVALID_GRID" {
		t.Errorf("error.code = %q, want INVALID_GRID", e.Code)
	}
	if e.Message == "" {
		t.Error("error.message should describe the problem")
	}
}

func TestSolve_EmptyGridField(t *testing.T) {
	ts := newTestServer(t)

	status, data := postSolve(t, ts, `{"grid": ""}`)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", status, data)
	}
	if e := decodeError(t, data); e.Code != "INVALID_GRID" {
		t.Errorf("error.code = %q, want INVALID_GRID", e.Code)
	}
}

func TestSolve_BadFacing(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(map[string]any{"grid": corridorGrid, "facing": "up"})
	status, data := postSolve(t, ts, string(body))
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", status, data)
	}
	if e := decodeError(t, data); e.Code != "INVALID_HEADING" {
		t.Errorf("error.code = %q, want INVALID_HEADING", e.Code)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestVersion(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/version")
	if err != nil {
		t.Fatalf("GET /version: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["version"] == "" {
		t.Error("version field should be set")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("X-Request-ID", "test-id-42")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "test-id-42" {
		t.Errorf("X-Request-ID = %q, want caller's id echoed", got)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("X-Request-ID should be generated when absent")
	}
}
