package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/inboxlane/inboxlane/internal/entity"
)

// fakeConvStore mimics ConversationRepo semantics in memory: upsert writes
// identity fields only on conflict, and summary updates are rejected unless
// strictly newer.
type fakeConvStore struct {
	mu     sync.Mutex
	nextId int64
	rows   map[string]*entity.Conversation
}

func newFakeConvStore() *fakeConvStore {
	return &fakeConvStore{rows: make(map[string]*entity.Conversation)}
}

func (f *fakeConvStore) Upsert(ctx context.Context, conv *entity.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.rows[conv.ThreadId]; ok {
		existing.LinkedinId = conv.LinkedinId
		existing.Name = conv.Name
		existing.AvatarUrl = conv.AvatarUrl
		existing.Headline = conv.Headline
		existing.IsStarred = conv.IsStarred
		conv.Id = existing.Id
		return nil
	}

	f.nextId++
	conv.Id = f.nextId
	stored := *conv
	f.rows[conv.ThreadId] = &stored
	return nil
}

func (f *fakeConvStore) GetByThreadId(ctx context.Context, threadId string) (*entity.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	conv, ok := f.rows[threadId]
	if !ok {
		return nil, nil
	}
	copied := *conv
	return &copied, nil
}

func (f *fakeConvStore) List(ctx context.Context) ([]*entity.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	convs := make([]*entity.Conversation, 0, len(f.rows))
	for _, conv := range f.rows {
		copied := *conv
		convs = append(convs, &copied)
	}
	sort.Slice(convs, func(i, j int) bool {
		return convs[i].LastMessageTime > convs[j].LastMessageTime
	})
	return convs, nil
}

func (f *fakeConvStore) UpdateSummary(ctx context.Context, convId int64, upd *entity.SummaryUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, conv := range f.rows {
		if conv.Id != convId || conv.LastMessageTime >= upd.LastMessageTime {
			continue
		}
		conv.LastMessagePreview = upd.Preview
		conv.LastMessageTime = upd.LastMessageTime
		conv.LastMessageFromMe = upd.LastMessageFromMe
		conv.IsRead = upd.IsRead
		if upd.ZeroUnread {
			conv.UnreadCount = 0
		} else if upd.IncrUnread {
			conv.UnreadCount++
		}
	}
	return nil
}

func (f *fakeConvStore) MarkRead(ctx context.Context, convId int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, conv := range f.rows {
		if conv.Id == convId {
			conv.IsRead = true
			conv.UnreadCount = 0
		}
	}
	return nil
}

type fakeMsgStore struct {
	mu   sync.Mutex
	rows map[string]*entity.Message
}

func newFakeMsgStore() *fakeMsgStore {
	return &fakeMsgStore{rows: make(map[string]*entity.Message)}
}

func (f *fakeMsgStore) Upsert(ctx context.Context, msg *entity.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.rows[msg.Urn]; ok {
		msg.Id = existing.Id
	} else {
		msg.Id = int64(len(f.rows) + 1)
	}
	stored := *msg
	f.rows[msg.Urn] = &stored
	return nil
}

func (f *fakeMsgStore) GetByUrn(ctx context.Context, urn string) (*entity.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	msg, ok := f.rows[urn]
	if !ok {
		return nil, nil
	}
	copied := *msg
	return &copied, nil
}

func (f *fakeMsgStore) ListAll(ctx context.Context) ([]*entity.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	msgs := make([]*entity.Message, 0, len(f.rows))
	for _, msg := range f.rows {
		copied := *msg
		msgs = append(msgs, &copied)
	}
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].SentAt < msgs[j].SentAt
	})
	return msgs, nil
}

type fakeTagLister struct {
	byConv map[int64][]*entity.Tag
}

func (f *fakeTagLister) ListByConversations(ctx context.Context) (map[int64][]*entity.Tag, error) {
	return f.byConv, nil
}

type fakeReminderLister struct {
	byConv map[int64]*entity.Reminder
}

func (f *fakeReminderLister) ListByConversations(ctx context.Context) (map[int64]*entity.Reminder, error) {
	return f.byConv, nil
}

type fakeBufferStore struct {
	mu        sync.Mutex
	entries   map[string][]*entity.RealtimeEntry
	failLoad  bool
	failStore bool
}

func newFakeBufferStore() *fakeBufferStore {
	return &fakeBufferStore{entries: make(map[string][]*entity.RealtimeEntry)}
}

func (f *fakeBufferStore) Load(ctx context.Context, accountId string) ([]*entity.RealtimeEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failLoad {
		return nil, errors.New("redis gone")
	}
	return append([]*entity.RealtimeEntry(nil), f.entries[accountId]...), nil
}

func (f *fakeBufferStore) Store(ctx context.Context, accountId string, entries []*entity.RealtimeEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failStore {
		return errors.New("redis gone")
	}
	f.entries[accountId] = append([]*entity.RealtimeEntry(nil), entries...)
	return nil
}
