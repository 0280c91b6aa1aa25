package service

import (
	"context"
	"sort"

	"github.com/inboxlane/inboxlane/common"
	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/inboxlane/inboxlane/pkg/constant"
	"github.com/inboxlane/inboxlane/pkg/errcode"
	"github.com/mbeoliero/kit/log"
)

// SyncConversation is one conversation record pushed by the extension
type SyncConversation struct {
	ThreadId           string `json:"threadId"`
	LinkedinId         string `json:"linkedinId"`
	Name               string `json:"name"`
	AvatarUrl          string `json:"avatarUrl"`
	Headline           string `json:"headline"`
	IsStarred          *bool  `json:"isStarred"`
	IsActive           bool   `json:"isActive"`
	LastMessagePreview string `json:"lastMessagePreview"`
	LastMessageTime    int64  `json:"lastMessageTime"`
	LastMessageFromMe  bool   `json:"lastMessageFromMe"`
}

// SyncMessage is one message record pushed by the extension
type SyncMessage struct {
	Urn            string              `json:"urn"`
	ConversationId string              `json:"conversationId"`
	Content        string              `json:"content"`
	IsFromMe       bool                `json:"isFromMe"`
	Timestamp      int64               `json:"timestamp"`
	Attachments    []entity.Attachment `json:"attachments"`
}

// SnapshotRequest is a full sync push from the extension
type SnapshotRequest struct {
	Conversations []*SyncConversation `json:"conversations"`
	Messages      []*SyncMessage      `json:"messages"`
}

// SyncCounts reports how many records of one kind were stored or rejected
type SyncCounts struct {
	Synced int `json:"synced"`
	Errors int `json:"errors"`
}

// SnapshotResult is the outcome of a snapshot ingestion
type SnapshotResult struct {
	Conversations SyncCounts `json:"conversations"`
	Messages      SyncCounts `json:"messages"`
}

// AddMessageResult is the outcome of a single message ingestion
type AddMessageResult struct {
	Exists  bool `json:"exists,omitempty"`
	Skipped bool `json:"skipped,omitempty"`
}

// SnapshotData is the full dataset served to the dashboard
type SnapshotData struct {
	Conversations []*entity.ConversationInfo `json:"conversations"`
	Messages      []*entity.MessageInfo      `json:"messages"`
}

// SyncService reconciles extension snapshots with stored state
type SyncService struct {
	convStore ConversationStore
	msgStore  MessageStore
	tags      TagLister
	reminders ReminderLister
}

// NewSyncService creates a new SyncService
func NewSyncService(convStore ConversationStore, msgStore MessageStore, tags TagLister, reminders ReminderLister) *SyncService {
	return &SyncService{
		convStore: convStore,
		msgStore:  msgStore,
		tags:      tags,
		reminders: reminders,
	}
}

// IngestSnapshot stores a full extension push, conversations first so that
// messages can attach to their rows. Records are reconciled one by one; a
// failed record is counted and skipped, never aborting the batch.
func (s *SyncService) IngestSnapshot(ctx context.Context, req *SnapshotRequest) (*SnapshotResult, error) {
	result := &SnapshotResult{}

	// Conversations seen in this batch, keyed by canonical thread id. The
	// message pass reuses them to keep the strictly-newer summary check
	// working across consecutive messages of one thread.
	seen := make(map[string]*entity.Conversation)

	for _, in := range req.Conversations {
		threadId := common.ResolveThreadId(in.ThreadId)
		if threadId == "" {
			result.Conversations.Errors++
			continue
		}

		existing, err := s.convStore.GetByThreadId(ctx, threadId)
		if err != nil {
			log.CtxError(ctx, "sync: load conversation %s failed: %v", threadId, err)
			result.Conversations.Errors++
			continue
		}

		conv := conversationFromSync(in, threadId, existing)
		if err := s.convStore.Upsert(ctx, conv); err != nil {
			log.CtxError(ctx, "sync: upsert conversation %s failed: %v", threadId, err)
			result.Conversations.Errors++
			continue
		}

		if existing != nil && in.LastMessageTime > existing.LastMessageTime {
			upd := &entity.SummaryUpdate{
				Preview:           entity.TruncateText(in.LastMessagePreview, constant.PreviewMaxLen),
				LastMessageTime:   in.LastMessageTime,
				LastMessageFromMe: in.LastMessageFromMe,
				IsRead:            in.LastMessageFromMe || in.IsActive,
				IncrUnread:        !in.LastMessageFromMe && !in.IsActive,
				ZeroUnread:        in.LastMessageFromMe,
			}
			if err := s.convStore.UpdateSummary(ctx, conv.Id, upd); err != nil {
				log.CtxError(ctx, "sync: refresh summary for %s failed: %v", threadId, err)
			} else {
				conv.LastMessageTime = in.LastMessageTime
			}
		}

		seen[threadId] = conv
		result.Conversations.Synced++
	}

	for _, in := range req.Messages {
		ok, err := s.ingestMessage(ctx, in, seen)
		if err != nil {
			log.CtxError(ctx, "sync: upsert message %s failed: %v", in.Urn, err)
			result.Messages.Errors++
			continue
		}
		if ok {
			result.Messages.Synced++
		}
	}

	log.CtxInfo(ctx, "sync: snapshot stored, conversations=%d/%d messages=%d/%d",
		result.Conversations.Synced, len(req.Conversations),
		result.Messages.Synced, len(req.Messages))
	return result, nil
}

// ingestMessage stores one message and refreshes its conversation summary
// when the message is strictly newer than the stored last-message time.
// Returns false without error for records that are skipped by design.
func (s *SyncService) ingestMessage(ctx context.Context, in *SyncMessage, seen map[string]*entity.Conversation) (bool, error) {
	if in.Urn == "" {
		return false, errcode.ErrInvalidParam
	}
	if entity.IsTemporaryUrn(in.Urn) {
		log.CtxDebug(ctx, "sync: skip temporary urn %s", in.Urn)
		return false, nil
	}

	threadId := common.ResolveThreadId(in.ConversationId)
	if threadId == "" {
		return false, errcode.ErrInvalidParam
	}

	conv, ok := seen[threadId]
	if !ok {
		var err error
		conv, err = s.convStore.GetByThreadId(ctx, threadId)
		if err != nil {
			return false, err
		}
		if conv != nil {
			seen[threadId] = conv
		}
	}

	msg := &entity.Message{
		Urn:      in.Urn,
		ThreadId: threadId,
		Content:  in.Content,
		IsFromMe: in.IsFromMe,
		SentAt:   in.Timestamp,
	}
	msg.SetAttachments(in.Attachments)
	if conv != nil {
		msg.ConversationId = &conv.Id
	}

	if err := s.msgStore.Upsert(ctx, msg); err != nil {
		return false, err
	}

	if conv != nil && msg.SentAt > conv.LastMessageTime {
		upd := &entity.SummaryUpdate{
			Preview:           msg.PreviewText(),
			LastMessageTime:   msg.SentAt,
			LastMessageFromMe: msg.IsFromMe,
			IsRead:            msg.IsFromMe,
			IncrUnread:        !msg.IsFromMe,
			ZeroUnread:        msg.IsFromMe,
		}
		if err := s.convStore.UpdateSummary(ctx, conv.Id, upd); err != nil {
			log.CtxError(ctx, "sync: refresh summary for %s failed: %v", threadId, err)
		} else {
			conv.LastMessageTime = msg.SentAt
		}
	}

	return true, nil
}

// AddMessage stores a single realtime-observed message through the same
// reconciliation path as a snapshot. Idempotent on urn.
func (s *SyncService) AddMessage(ctx context.Context, in *SyncMessage) (*AddMessageResult, error) {
	if in.Urn == "" {
		return nil, errcode.ErrInvalidParam
	}
	if entity.IsTemporaryUrn(in.Urn) {
		return &AddMessageResult{Skipped: true}, nil
	}

	existing, err := s.msgStore.GetByUrn(ctx, in.Urn)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}
	if existing != nil {
		return &AddMessageResult{Exists: true}, nil
	}

	seen := make(map[string]*entity.Conversation)
	if _, err := s.ingestMessage(ctx, in, seen); err != nil {
		if e, ok := err.(*errcode.Error); ok {
			return nil, e
		}
		return nil, errcode.ErrInternalServer.Wrap(err)
	}
	return &AddMessageResult{}, nil
}

// MarkReadByThread clears the unread state of the conversation behind a raw
// thread reference
func (s *SyncService) MarkReadByThread(ctx context.Context, rawThreadRef string) error {
	threadId := common.ResolveThreadId(rawThreadRef)
	if threadId == "" {
		return errcode.ErrInvalidParam
	}

	conv, err := s.convStore.GetByThreadId(ctx, threadId)
	if err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	if conv == nil {
		return errcode.ErrConvNotFound
	}

	if err := s.convStore.MarkRead(ctx, conv.Id); err != nil {
		return errcode.ErrInternalServer.Wrap(err)
	}
	return nil
}

// Snapshot assembles the dashboard dataset: all conversations newest first
// with CRM metadata attached, and all messages oldest first. Returns nil
// when nothing has been synced yet.
func (s *SyncService) Snapshot(ctx context.Context) (*SnapshotData, error) {
	convs, err := s.convStore.List(ctx)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}
	msgs, err := s.msgStore.ListAll(ctx)
	if err != nil {
		return nil, errcode.ErrInternalServer.Wrap(err)
	}
	if len(convs) == 0 && len(msgs) == 0 {
		return nil, nil
	}

	tagsByConv, err := s.tags.ListByConversations(ctx)
	if err != nil {
		log.CtxError(ctx, "sync: load tags failed: %v", err)
		tagsByConv = nil
	}
	remindersByConv, err := s.reminders.ListByConversations(ctx)
	if err != nil {
		log.CtxError(ctx, "sync: load reminders failed: %v", err)
		remindersByConv = nil
	}

	// Newest message per thread drives the derived preview and ordering;
	// the stored summary is the fallback for threads without message rows.
	newestByThread := make(map[string]*entity.Message)
	for _, m := range msgs {
		cur := newestByThread[m.ThreadId]
		if cur == nil || m.SentAt >= cur.SentAt {
			newestByThread[m.ThreadId] = m
		}
	}

	now := entity.NowUnixMilli()
	infos := make([]*entity.ConversationInfo, 0, len(convs))
	for _, conv := range convs {
		info := &entity.ConversationInfo{
			Id:                 conv.Id,
			ThreadId:           conv.ThreadId,
			LinkedinId:         conv.LinkedinId,
			Name:               conv.Name,
			AvatarUrl:          conv.AvatarUrl,
			Headline:           conv.Headline,
			IsStarred:          conv.IsStarred,
			IsRead:             conv.IsRead,
			UnreadCount:        conv.UnreadCount,
			LastMessagePreview: conv.LastMessagePreview,
			LastMessageTime:    conv.LastMessageTime,
			LastMessageFromMe:  conv.LastMessageFromMe,
			Note:               conv.Note,
		}
		if newest := newestByThread[conv.ThreadId]; newest != nil {
			if preview := newest.PreviewText(); preview != "" {
				info.LastMessagePreview = preview
			}
			if newest.SentAt > info.LastMessageTime {
				info.LastMessageTime = newest.SentAt
				info.LastMessageFromMe = newest.IsFromMe
			}
		}
		if tags := tagsByConv[conv.Id]; len(tags) > 0 {
			info.Tags = make([]*entity.TagInfo, 0, len(tags))
			for _, t := range tags {
				info.Tags = append(info.Tags, t.ToTagInfo())
			}
		}
		if rem := remindersByConv[conv.Id]; rem != nil {
			info.Reminder = rem.ToReminderInfo(now)
		}
		infos = append(infos, info)
	}

	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].LastMessageTime > infos[j].LastMessageTime
	})

	msgInfos := make([]*entity.MessageInfo, 0, len(msgs))
	for _, m := range msgs {
		msgInfos = append(msgInfos, m.ToMessageInfo())
	}

	return &SnapshotData{Conversations: infos, Messages: msgInfos}, nil
}
