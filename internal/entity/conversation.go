package entity

// Conversation represents a synced LinkedIn conversation plus its CRM metadata
type Conversation struct {
	Id                 int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ThreadId           string `json:"thread_id" gorm:"column:thread_id;uniqueIndex"`
	LinkedinId         string `json:"linkedin_id" gorm:"column:linkedin_id"`
	Name               string `json:"name" gorm:"column:name"`
	AvatarUrl          string `json:"avatar_url" gorm:"column:avatar_url"`
	Headline           string `json:"headline" gorm:"column:headline"`
	IsStarred          bool   `json:"is_starred" gorm:"column:is_starred"`
	IsRead             bool   `json:"is_read" gorm:"column:is_read"`
	UnreadCount        int    `json:"unread_count" gorm:"column:unread_count"`
	LastMessagePreview string `json:"last_message_preview" gorm:"column:last_message_preview"`
	LastMessageTime    int64  `json:"last_message_time" gorm:"column:last_message_time"`
	LastMessageFromMe  bool   `json:"last_message_from_me" gorm:"column:last_message_from_me"`
	Note               string `json:"note" gorm:"column:note"`
	CreatedAt          int64  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt          int64  `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for Conversation
func (Conversation) TableName() string {
	return "conversations"
}

// SummaryUpdate carries a conditional refresh of a conversation's
// last-message fields. The reconciler only applies it when the triggering
// message is strictly newer than the stored last-message time.
type SummaryUpdate struct {
	Preview           string
	LastMessageTime   int64
	LastMessageFromMe bool
	IsRead            bool
	// IncrUnread bumps the unread counter by one (incoming message not from
	// me); ZeroUnread resets it (last message from me, or marked read).
	IncrUnread bool
	ZeroUnread bool
}

// ConversationInfo represents conversation info for API responses
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
