package entity

// RealtimeEntry is a just-observed message relayed through the realtime
// buffer ahead of the next full sync. It is independent of the messages
// table and carries both the original sent time and the server arrival time.
type RealtimeEntry struct {
	Urn        string `json:"urn"`
	ThreadId   string `json:"threadId"`
	Content    string `json:"content"`
	IsFromMe   bool   `json:"isFromMe"`
	SentAt     int64  `json:"timestamp"`
	ReceivedAt int64  `json:"receivedAt"`
}
