package streaming

import "snake-cast/internal/game"

// SnapshotSource is an interface for getting game snapshots.
// It decouples renderers from the engine so they can be fed by anything
// that publishes immutable snapshots.
type SnapshotSource interface {
	Snapshot() *game.GameState
}

// EngineSource wraps a game.Engine as a SnapshotSource.
type EngineSource struct {
	engine *game.Engine
}

// NewEngineSource creates a SnapshotSource from an engine.
func NewEngineSource(engine *game.Engine) *EngineSource {
	return &EngineSource{engine: engine}
}

// Snapshot returns the latest snapshot from the engine.
func (s *EngineSource) Snapshot() *game.GameState {
	return s.engine.Snapshot()
}
