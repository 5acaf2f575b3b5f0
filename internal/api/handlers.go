package api

import (
	"encoding/json"
	"image/png"
	"net/http"
	"sync"

	"snake-cast/internal/game"
)

// routerHandlers holds the handler functions for the router.
type routerHandlers struct {
	engine   EngineInterface
	renderer FrameRenderer

	// The renderer reuses one drawing context; PNG requests serialize on it
	renderMu sync.Mutex
}

func (h *routerHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{"status": "ok"})
}

// handleGetState returns the latest snapshot as JSON. A single lock-free
// snapshot read; no engine state is touched.
func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.engine.Snapshot())
}

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	snap := h.engine.Snapshot()
	writeJSON(w, map[string]interface{}{
		"tick":     snap.Tick,
		"score":    snap.Score,
		"snakeLen": snap.SnakeLen(),
		"gameOver": snap.GameOver,
		"eventLog": h.engine.GetEventLogStats(),
	})
}

type directionRequest struct {
	Direction string `json:"direction"`
}

// handleSetDirection feeds the input mailbox. Validity beyond parsing is
// adjudicated by the simulation at consumption time.
func (h *routerHandlers) handleSetDirection(w http.ResponseWriter, r *http.Request) {
	var req directionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	dir, ok := game.ParseDirection(req.Direction)
	if !ok {
		writeError(w, http.StatusBadRequest, "direction must be up, down, left or right")
		return
	}

	h.engine.SetDirection(dir)
	writeJSON(w, map[string]interface{}{"ok": true, "direction": dir.String()})
}

func (h *routerHandlers) handleReset(w http.ResponseWriter, r *http.Request) {
	h.engine.RequestReset()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
}

func (h *routerHandlers) handleFrame(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		writeError(w, http.StatusServiceUnavailable, "frame rendering not configured")
		return
	}

	snap := h.engine.Snapshot()

	h.renderMu.Lock()
	defer h.renderMu.Unlock()

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := png.Encode(w, h.renderer.Render(snap)); err != nil {
		// Headers are already out; nothing left to do but log via middleware
		return
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"error": msg})
}
