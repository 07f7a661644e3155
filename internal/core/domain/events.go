package domain

// EventType defines the type of real-time event.
type EventType string

const (
	EventSnapshotUpdated EventType = "SNAPSHOT_UPDATED"
	EventRefreshFailed   EventType = "REFRESH_FAILED"
	EventPong            EventType = "PONG"
)

// Event is the payload sent over WebSocket.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// RefreshFailure is the payload of a REFRESH_FAILED event.
type RefreshFailure struct {
	Message  string `json:"message"`
	FailedAt string `json:"failedAt"`
}
