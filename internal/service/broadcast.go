package service

// Event types pushed to a game's WebSocket subscribers.
const (
	EventShipPlaced   = "ship_placed"
	EventShotResolved = "shot_resolved"
	EventGameEnded    = "game_ended"
)

// Broadcaster sends real-time events to connected clients.
// Implemented by the WebSocket hub.
type Broadcaster interface {
	BroadcastGameEvent(gameID string, eventType string, data any)
}

// NoopBroadcaster drops every event. Used in tests and headless runs.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastGameEvent(string, string, any) {}
