package entity

import (
	"encoding/json"
	"strings"

	"github.com/inboxlane/inboxlane/pkg/constant"
)

// Attachment represents a single message attachment
type Attachment struct {
	Kind     string `json:"kind"` // image, file, audio, video
	Url      string `json:"url"`
	Name     string `json:"name,omitempty"`
	ByteSize int64  `json:"byteSize,omitempty"`
}

// Message represents a synced LinkedIn message
type Message struct {
	Id             int64   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Urn            string  `json:"urn" gorm:"column:urn;uniqueIndex"`
	ThreadId       string  `json:"thread_id" gorm:"column:thread_id;index"`
	ConversationId *int64  `json:"conversation_id" gorm:"column:conversation_id"`
	Content        string  `json:"content" gorm:"column:content"`
	IsFromMe       bool    `json:"is_from_me" gorm:"column:is_from_me"`
	SentAt         int64   `json:"sent_at" gorm:"column:sent_at"`
	Attachments    *string `json:"attachments" gorm:"column:attachments;type:json"`
	CreatedAt      int64   `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      int64   `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for Message
func (Message) TableName() string {
	return "messages"
}

// IsTemporaryUrn reports whether urn is a client-local optimistic placeholder
func IsTemporaryUrn(urn string) bool {
	return strings.HasPrefix(urn, constant.TempUrnPrefix)
}

// GetAttachments returns the decoded attachment list
func (m *Message) GetAttachments() []Attachment {
	if m.Attachments == nil || *m.Attachments == "" {
		return nil
	}
	var atts []Attachment
	if err := json.Unmarshal([]byte(*m.Attachments), &atts); err != nil {
		return nil
	}
	return atts
}

// SetAttachments encodes and stores the attachment list
func (m *Message) SetAttachments(atts []Attachment) {
	if len(atts) == 0 {
		m.Attachments = nil
		return
	}
	data, err := json.Marshal(atts)
	if err != nil {
		return
	}
	s := string(data)
	m.Attachments = &s
}

// PreviewText derives the preview text for this message: content if
// non-empty, otherwise a label for the first attachment, otherwise "".
func (m *Message) PreviewText() string {
	if strings.TrimSpace(m.Content) != "" {
		return TruncateText(m.Content, constant.PreviewMaxLen)
	}
	atts := m.GetAttachments()
	if len(atts) == 0 {
		return ""
	}
	switch atts[0].Kind {
	case constant.AttachmentKindImage:
		return constant.PreviewLabelImage
	case constant.AttachmentKindAudio:
		return constant.PreviewLabelAudio
	case constant.AttachmentKindVideo:
		return constant.PreviewLabelVideo
	default:
		return constant.PreviewLabelFile
	}
}

// MessageInfo represents message info for API responses
type MessageInfo struct {
	Id          int64        `json:"id"`
	Urn         string       `json:"urn"`
	ThreadId    string       `json:"threadId"`
	Content     string       `json:"content"`
	IsFromMe    bool         `json:"isFromMe"`
	SentAt      int64        `json:"timestamp"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// ToMessageInfo converts Message to MessageInfo
func (m *Message) ToMessageInfo() *MessageInfo {
	return &MessageInfo{
		Id:          m.Id,
		Urn:         m.Urn,
		ThreadId:    m.ThreadId,
		Content:     m.Content,
		IsFromMe:    m.IsFromMe,
		SentAt:      m.SentAt,
		Attachments: m.GetAttachments(),
	}
}
