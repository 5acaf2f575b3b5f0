package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"snake-cast/internal/game"
)

// mockEngine implements EngineInterface for handler tests without the
// tick loop running.
type mockEngine struct {
	mu         sync.Mutex
	snapshot   *game.GameState
	directions []game.Direction
	resets     int
}

func newMockEngine() *mockEngine {
	return &mockEngine{
		snapshot: &game.GameState{
			Sequence: 7,
			Tick:     7,
			Rows:     4,
			Cols:     4,
			Grid:     make([]game.CellTag, 16),
			Snake:    []game.Position{{Row: 2, Col: 2}},
			Score:    30,
		},
	}
}

func (m *mockEngine) Snapshot() *game.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

func (m *mockEngine) SetDirection(d game.Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.directions = append(m.directions, d)
}

func (m *mockEngine) RequestReset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
}

func (m *mockEngine) GetEventLogStats() map[string]interface{} {
	return map[string]interface{}{"dropped": uint64(0)}
}

func newTestRouter(engine EngineInterface) http.Handler {
	return NewRouter(RouterConfig{
		Engine: engine,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
		},
		DisableLogging: true,
	})
}

func TestHealthEndpoint(t *testing.T) {
	ts := httptest.NewServer(newTestRouter(newMockEngine()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGetState(t *testing.T) {
	engine := newMockEngine()
	ts := httptest.NewServer(newTestRouter(engine))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("GET /api/state: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var state game.GameState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Sequence != 7 || state.Score != 30 {
		t.Errorf("state = seq %d score %d, want seq 7 score 30", state.Sequence, state.Score)
	}
	if len(state.Grid) != 16 {
		t.Errorf("grid length = %d, want 16 numeric cells", len(state.Grid))
	}
}

func TestSetDirection(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDir    game.Direction
	}{
		{"valid up", `{"direction":"up"}`, http.StatusOK, game.DirUp},
		{"valid right", `{"direction":"right"}`, http.StatusOK, game.DirRight},
		{"unknown word", `{"direction":"sideways"}`, http.StatusBadRequest, game.DirNone},
		{"none rejected", `{"direction":"none"}`, http.StatusBadRequest, game.DirNone},
		{"garbage body", `{{{`, http.StatusBadRequest, game.DirNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newMockEngine()
			ts := httptest.NewServer(newTestRouter(engine))
			defer ts.Close()

			resp, err := http.Post(ts.URL+"/api/direction", "application/json", bytes.NewBufferString(tt.body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				if len(engine.directions) != 1 || engine.directions[0] != tt.wantDir {
					t.Errorf("engine received %v, want [%v]", engine.directions, tt.wantDir)
				}
			} else if len(engine.directions) != 0 {
				t.Errorf("rejected input reached the engine: %v", engine.directions)
			}
		})
	}
}

func TestReset(t *testing.T) {
	engine := newMockEngine()
	ts := httptest.NewServer(newTestRouter(engine))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/api/reset", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/reset: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("status = %d, want 202", resp.StatusCode)
	}
	if engine.resets != 1 {
		t.Errorf("resets = %d, want 1", engine.resets)
	}
}

func TestFrameWithoutRenderer(t *testing.T) {
	ts := httptest.NewServer(newTestRouter(newMockEngine()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/frame.png")
	if err != nil {
		t.Fatalf("GET /api/frame.png: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when no renderer is wired", resp.StatusCode)
	}
}

type stubRenderer struct{}

func (stubRenderer) Render(*game.GameState) image.Image {
	return image.NewRGBA(image.Rect(0, 0, 8, 8))
}

func TestFrameWithRenderer(t *testing.T) {
	router := NewRouter(RouterConfig{
		Engine:         newMockEngine(),
		Renderer:       stubRenderer{},
		DisableLogging: true,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
		},
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/frame.png")
	if err != nil {
		t.Fatalf("GET /api/frame.png: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
}

func TestRateLimitRejects(t *testing.T) {
	router := NewRouter(RouterConfig{
		Engine:         newMockEngine(),
		DisableLogging: true,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             2,
		},
	})
	ts := httptest.NewServer(router)
	defer ts.Close()

	var limited bool
	for i := 0; i < 10; i++ {
		resp, err := http.Get(ts.URL + "/api/state")
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("burst of requests was never rate limited")
	}
}

func TestRateLimitIsPerIP(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1})
	defer rl.Stop()

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request from first IP should pass")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("second request from same IP should be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("first request from a different IP should pass")
	}
}

func TestWSConnectionLimiterPerIP(t *testing.T) {
	wrl := NewWebSocketRateLimiter(2)

	if !wrl.Allow("10.0.0.1") || !wrl.Allow("10.0.0.1") {
		t.Fatal("connections under the limit should be allowed")
	}
	if wrl.Allow("10.0.0.1") {
		t.Error("third connection from the same IP should be rejected")
	}

	wrl.Release("10.0.0.1")
	if !wrl.Allow("10.0.0.1") {
		t.Error("slot should be reusable after release")
	}
	if got := wrl.GetConnectionCount("10.0.0.1"); got != 2 {
		t.Errorf("connection count = %d, want 2", got)
	}
}

func TestStatsEndpoint(t *testing.T) {
	ts := httptest.NewServer(newTestRouter(newMockEngine()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/stats")
	if err != nil {
		t.Fatalf("GET /api/stats: %v", err)
	}
	defer resp.Body.Close()

	var stats map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}

	for _, key := range []string{"tick", "score", "snakeLen", "gameOver", "eventLog"} {
		if _, ok := stats[key]; !ok {
			t.Errorf("stats missing %q: %v", key, stats)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := httptest.NewServer(newTestRouter(newMockEngine()))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/direction")
	if err != nil {
		t.Fatalf("GET /api/direction: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

// hijackRecorder simulates the hijackable writer a real server provides.
type hijackRecorder struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, nil
}

func TestMetricsMiddlewarePreservesHijacker(t *testing.T) {
	rec := &hijackRecorder{ResponseRecorder: httptest.NewRecorder()}

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Fatal("writer lost http.Hijacker inside the middleware; websocket upgrades would fail")
		}
		if _, _, err := hj.Hijack(); err != nil {
			t.Fatalf("Hijack: %v", err)
		}
	}))
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/ws", nil))

	if !rec.hijacked {
		t.Error("hijack did not reach the underlying writer")
	}
}

func BenchmarkGetState(b *testing.B) {
	router := newTestRouter(newMockEngine())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest("GET", "/api/state", nil)
		req.RemoteAddr = fmt.Sprintf("10.0.%d.%d:1234", i%250, i%250)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
