package sdk

// Response is the standard API envelope
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// Attachment represents a message attachment
type Attachment struct {
	Kind     string `json:"kind"`
	Url      string `json:"url"`
	Name     string `json:"name,omitempty"`
	ByteSize int64  `json:"byteSize,omitempty"`
}

// SyncConversation is one conversation record in a snapshot push
type SyncConversation struct {
	ThreadId           string `json:"threadId"`
	LinkedinId         string `json:"linkedinId,omitempty"`
	Name               string `json:"name,omitempty"`
	AvatarUrl          string `json:"avatarUrl,omitempty"`
	Headline           string `json:"headline,omitempty"`
	IsStarred          *bool  `json:"isStarred,omitempty"`
	IsActive           bool   `json:"isActive,omitempty"`
	LastMessagePreview string `json:"lastMessagePreview,omitempty"`
	LastMessageTime    int64  `json:"lastMessageTime,omitempty"`
	LastMessageFromMe  bool   `json:"lastMessageFromMe,omitempty"`
}

// SyncMessage is one message record in a snapshot push
type SyncMessage struct {
	Urn            string       `json:"urn"`
	ConversationId string       `json:"conversationId"`
	Content        string       `json:"content"`
	IsFromMe       bool         `json:"isFromMe"`
	Timestamp      int64        `json:"timestamp"`
	Attachments    []Attachment `json:"attachments,omitempty"`
}

// SnapshotRequest is a full sync push
type SnapshotRequest struct {
	Conversations []*SyncConversation `json:"conversations"`
	Messages      []*SyncMessage      `json:"messages"`
}

// SyncCounts reports stored/rejected record counts
type SyncCounts struct {
	Synced int `json:"synced"`
	Errors int `json:"errors"`
}

// IngestResult is the outcome of a snapshot push
type IngestResult struct {
	Ok            bool       `json:"ok"`
	Conversations SyncCounts `json:"conversations"`
	Messages      SyncCounts `json:"messages"`
}

// PatchResult is the outcome of a PATCH /sync operation
type PatchResult struct {
	Ok      bool `json:"ok"`
	Exists  bool `json:"exists,omitempty"`
	Skipped bool `json:"skipped,omitempty"`
}

// TagInfo represents a tag
type TagInfo struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ReminderInfo represents a reminder
type ReminderInfo struct {
	Id        string `json:"id"`
	RemindAt  int64  `json:"remindAt"`
	Note      string `json:"note,omitempty"`
	Handled   bool   `json:"handled"`
	Triggered bool   `json:"triggered"`
}

// ReminderListItem pairs a reminder with its conversation
type ReminderListItem struct {
	ReminderInfo
	ThreadId         string `json:"threadId"`
	ConversationName string `json:"conversationName"`
}

// ConversationInfo represents a conversation with CRM metadata
type ConversationInfo struct {
	Id                 int64         `json:"id"`
	ThreadId           string        `json:"threadId"`
	LinkedinId         string        `json:"linkedinId,omitempty"`
	Name               string        `json:"name"`
	AvatarUrl          string        `json:"avatarUrl,omitempty"`
	Headline           string        `json:"headline,omitempty"`
	IsStarred          bool          `json:"isStarred"`
	IsRead             bool          `json:"isRead"`
	UnreadCount        int           `json:"unreadCount"`
	LastMessagePreview string        `json:"lastMessagePreview"`
	LastMessageTime    int64         `json:"lastMessageTime"`
	LastMessageFromMe  bool          `json:"lastMessageFromMe"`
	Note               string        `json:"note,omitempty"`
	Tags               []*TagInfo    `json:"tags,omitempty"`
	Reminder           *ReminderInfo `json:"reminder,omitempty"`
}

// MessageInfo represents a stored message
type MessageInfo struct {
	Id          int64        `json:"id"`
	Urn         string       `json:"urn"`
	ThreadId    string       `json:"threadId"`
	Content     string       `json:"content"`
	IsFromMe    bool         `json:"isFromMe"`
	SentAt      int64        `json:"timestamp"`
	Attachments []Attachment `json:"attachments,omitempty"`
	// Pending marks a local optimistic message not yet confirmed by sync.
	Pending bool `json:"pending,omitempty"`
}

// SnapshotData is the full dashboard dataset; nil until the first sync
type SnapshotData struct {
	Conversations []*ConversationInfo `json:"conversations"`
	Messages      []*MessageInfo      `json:"messages"`
}

// SnapshotResponse wraps the dataset read
type SnapshotResponse struct {
	Ok   bool          `json:"ok"`
	Data *SnapshotData `json:"data"`
}

// RealtimeEntry is a just-observed message from the realtime buffer
type RealtimeEntry struct {
	Urn        string `json:"urn"`
	ThreadId   string `json:"threadId"`
	Content    string `json:"content"`
	IsFromMe   bool   `json:"isFromMe"`
	SentAt     int64  `json:"timestamp"`
	ReceivedAt int64  `json:"receivedAt"`
}

// RealtimePushRequest is a batch of just-observed messages
type RealtimePushRequest struct {
	Type     string           `json:"type"`
	Messages []*RealtimeEvent `json:"messages"`
}

// RealtimeEvent is one outgoing realtime observation
type RealtimeEvent struct {
	Urn            string `json:"urn"`
	ConversationId string `json:"conversationId"`
	Content        string `json:"content"`
	IsFromMe       bool   `json:"isFromMe"`
	Timestamp      int64  `json:"timestamp"`
}

// RealtimePushResult is the outcome of a realtime push
type RealtimePushResult struct {
	Ok    bool `json:"ok"`
	Added int  `json:"added"`
	Total int  `json:"total"`
}

// RealtimeReadResult is the outcome of a realtime poll
type RealtimeReadResult struct {
	Ok         bool             `json:"ok"`
	Messages   []*RealtimeEntry `json:"messages"`
	Count      int              `json:"count"`
	LastUpdate int64            `json:"lastUpdate"`
}

// PushFrame is a frame received over the websocket channel
type PushFrame struct {
	Type      string           `json:"type"`
	Messages  []*RealtimeEntry `json:"messages"`
	Timestamp int64            `json:"timestamp"`
}

// RegisterRequest creates the local account
type RegisterRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// AccountInfo represents public account info
type AccountInfo struct {
	Id        string `json:"id"`
	Nickname  string `json:"nickname"`
	CreatedAt int64  `json:"created_at"`
}

// LoginRequest authenticates the dashboard
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token        string       `json:"token"`
	Account      *AccountInfo `json:"account"`
	ExtensionKey string       `json:"extensionKey"`
}

// OkResult is the generic mutation outcome
type OkResult struct {
	Ok bool `json:"ok"`
}
