package service

import (
	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/inboxlane/inboxlane/pkg/constant"
)

// conversationFromSync builds the row to upsert for an incoming conversation
// snapshot. Missing fields fall back to the stored row first, then to
// explicit defaults, so a sparse snapshot never wipes known identity.
func conversationFromSync(in *SyncConversation, threadId string, existing *entity.Conversation) *entity.Conversation {
	conv := &entity.Conversation{ThreadId: threadId}

	if existing != nil {
		*conv = *existing
	}

	if in.LinkedinId != "" {
		conv.LinkedinId = in.LinkedinId
	}
	if in.Name != "" {
		conv.Name = in.Name
	}
	if conv.Name == "" {
		conv.Name = constant.DefaultContactName
	}
	if in.AvatarUrl != "" {
		conv.AvatarUrl = in.AvatarUrl
	}
	if in.Headline != "" {
		conv.Headline = in.Headline
	}
	if in.IsStarred != nil {
		conv.IsStarred = *in.IsStarred
	}

	if existing == nil {
		conv.LastMessagePreview = entity.TruncateText(in.LastMessagePreview, constant.PreviewMaxLen)
		conv.LastMessageTime = in.LastMessageTime
		conv.LastMessageFromMe = in.LastMessageFromMe
		conv.IsRead = initialReadState(in)
		if !conv.IsRead {
			conv.UnreadCount = 1
		}
	}

	return conv
}

// initialReadState decides the read flag for a conversation seen for the
// first time: the currently open conversation counts as read, as does one
// whose latest message is my own or that has no message history yet.
func initialReadState(in *SyncConversation) bool {
	if in.IsActive {
		return true
	}
	if in.LastMessageFromMe {
		return true
	}
	return in.LastMessageTime == 0
}
