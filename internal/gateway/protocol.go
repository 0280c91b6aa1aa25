package gateway

import "github.com/inboxlane/inboxlane/internal/entity"

// Push frame types
const (
	FrameNewMessages = "new_messages"
)

// Query parameter keys
const (
	QueryToken = "token"
)

// PushFrame is the JSON frame sent to connected dashboards
type PushFrame struct {
	Type      string                  `json:"type"`
	Messages  []*entity.RealtimeEntry `json:"messages"`
	Timestamp int64                   `json:"timestamp"`
}
