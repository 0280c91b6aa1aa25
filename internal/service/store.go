package service

import (
	"context"

	"github.com/inboxlane/inboxlane/internal/entity"
)

// ConversationStore is the persistence surface the reconciler needs for
// conversations. Implemented by repository.ConversationRepo; tests use an
// in-memory fake.
type ConversationStore interface {
	Upsert(ctx context.Context, conv *entity.Conversation) error
	GetByThreadId(ctx context.Context, threadId string) (*entity.Conversation, error)
	List(ctx context.Context) ([]*entity.Conversation, error)
	UpdateSummary(ctx context.Context, convId int64, upd *entity.SummaryUpdate) error
	MarkRead(ctx context.Context, convId int64) error
}

// MessageStore is the persistence surface the reconciler needs for messages.
type MessageStore interface {
	Upsert(ctx context.Context, msg *entity.Message) error
	GetByUrn(ctx context.Context, urn string) (*entity.Message, error)
	ListAll(ctx context.Context) ([]*entity.Message, error)
}

// TagLister supplies per-conversation tags for the snapshot read side.
type TagLister interface {
	ListByConversations(ctx context.Context) (map[int64][]*entity.Tag, error)
}

// ReminderLister supplies per-conversation reminders for the snapshot read side.
type ReminderLister interface {
	ListByConversations(ctx context.Context) (map[int64]*entity.Reminder, error)
}

// BufferStore is the whole-buffer persistence surface for the realtime relay.
type BufferStore interface {
	Load(ctx context.Context, accountId string) ([]*entity.RealtimeEntry, error)
	Store(ctx context.Context, accountId string, entries []*entity.RealtimeEntry) error
}
