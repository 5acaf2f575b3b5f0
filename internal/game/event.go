package game

import (
	"encoding/json"
	"time"
)

// EventType enum for event classification
type EventType uint8

const (
	EventTypeUnknown EventType = iota
	EventTypeTick
	EventTypeRoundStart
	EventTypeDirectionApplied
	EventTypeFoodEaten
	EventTypeGameOver
)

// EventVersion for backwards compatibility in replay
const EventVersion uint8 = 1

// Event is the core event structure for the event log
type Event struct {
	Version   uint8     `json:"version"`   // Schema version
	Type      EventType `json:"type"`      // Event type
	Timestamp int64     `json:"timestamp"` // Unix nano
	Sequence  uint64    `json:"sequence"`  // Monotonic sequence
	TickNum   uint64    `json:"tickNum"`   // Game tick this occurred in
	Payload   []byte    `json:"payload"`   // JSON-encoded payload
}

// String returns human-readable event type
func (t EventType) String() string {
	switch t {
	case EventTypeTick:
		return "tick"
	case EventTypeRoundStart:
		return "round_start"
	case EventTypeDirectionApplied:
		return "direction_applied"
	case EventTypeFoodEaten:
		return "food_eaten"
	case EventTypeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Terminal reasons recorded in GameOverPayload.
const (
	ReasonOutOfBounds   = "out_of_bounds"
	ReasonWall          = "wall"
	ReasonSelfCollision = "self_collision"
	ReasonBoardFull     = "board_full"
)

// Typed payloads for different event types

// TickPayload records the per-tick facts needed to follow a round offline.
type TickPayload struct {
	Score    int `json:"score"`
	SnakeLen int `json:"snakeLen"`
}

// RoundStartPayload captures the configuration a round began with.
type RoundStartPayload struct {
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	StartLength int    `json:"startLength"`
	Direction   string `json:"direction"`
	RNGSeed     int64  `json:"rngSeed"`
}

// DirectionPayload records an accepted heading change.
type DirectionPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FoodPayload records a food pickup.
type FoodPayload struct {
	Row      int `json:"row"`
	Col      int `json:"col"`
	Score    int `json:"score"`
	SnakeLen int `json:"snakeLen"`
}

// GameOverPayload records why and when a round ended.
type GameOverPayload struct {
	Reason string `json:"reason"`
	Score  int    `json:"score"`
	Ticks  uint64 `json:"ticks"`
}

// EncodePayload marshals a payload to JSON bytes
func EncodePayload(payload interface{}) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	return data
}

// NewEvent creates a new event with the current timestamp
func NewEvent(eventType EventType, tickNum uint64, payload interface{}) Event {
	return Event{
		Version:   EventVersion,
		Type:      eventType,
		Timestamp: time.Now().UnixNano(),
		TickNum:   tickNum,
		Payload:   EncodePayload(payload),
	}
}
