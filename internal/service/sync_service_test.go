package service

import (
	"context"
	"testing"

	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSyncService() (*SyncService, *fakeConvStore, *fakeMsgStore) {
	convs := newFakeConvStore()
	msgs := newFakeMsgStore()
	svc := NewSyncService(convs, msgs, &fakeTagLister{}, &fakeReminderLister{})
	return svc, convs, msgs
}

func boolPtr(b bool) *bool { return &b }

func TestIngestSnapshotStoresConversationAndMessage(t *testing.T) {
	svc, convs, _ := newTestSyncService()
	ctx := context.Background()

	result, err := svc.IngestSnapshot(ctx, &SnapshotRequest{
		Conversations: []*SyncConversation{
			{ThreadId: "2-abc==", Name: "Alice", LinkedinId: "alice-1"},
		},
		Messages: []*SyncMessage{
			{Urn: "urn:li:msg:100", ConversationId: "2-abc==", Content: "Hi", Timestamp: 1000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Conversations.Synced)
	assert.Equal(t, 1, result.Messages.Synced)

	conv, err := convs.GetByThreadId(ctx, "2-abc==")
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Equal(t, "Alice", conv.Name)
	assert.Equal(t, "Hi", conv.LastMessagePreview)
	assert.Equal(t, int64(1000), conv.LastMessageTime)
	assert.False(t, conv.LastMessageFromMe)
	assert.False(t, conv.IsRead)
	assert.Equal(t, 1, conv.UnreadCount)
}

func TestIngestSnapshotReplayIsIdempotent(t *testing.T) {
	svc, convs, msgs := newTestSyncService()
	ctx := context.Background()

	req := &SnapshotRequest{
		Conversations: []*SyncConversation{{ThreadId: "2-abc==", Name: "Alice"}},
		Messages: []*SyncMessage{
			{Urn: "urn:li:msg:100", ConversationId: "2-abc==", Content: "Hi", Timestamp: 1000},
		},
	}

	for i := 0; i < 3; i++ {
		_, err := svc.IngestSnapshot(ctx, req)
		require.NoError(t, err)
	}

	stored, err := msgs.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	conv, err := convs.GetByThreadId(ctx, "2-abc==")
	require.NoError(t, err)
	assert.Equal(t, 1, conv.UnreadCount, "replays must not inflate the unread counter")
	assert.Equal(t, int64(1000), conv.LastMessageTime)
}

func TestIngestSnapshotNeverRegressesSummary(t *testing.T) {
	svc, convs, _ := newTestSyncService()
	ctx := context.Background()

	_, err := svc.IngestSnapshot(ctx, &SnapshotRequest{
		Conversations: []*SyncConversation{{ThreadId: "2-abc==", Name: "Alice"}},
		Messages: []*SyncMessage{
			{Urn: "urn:li:msg:200", ConversationId: "2-abc==", Content: "newer", Timestamp: 2000},
		},
	})
	require.NoError(t, err)

	// A delayed batch carrying an older message arrives afterwards.
	_, err = svc.IngestSnapshot(ctx, &SnapshotRequest{
		Messages: []*SyncMessage{
			{Urn: "urn:li:msg:100", ConversationId: "2-abc==", Content: "older", Timestamp: 1000},
		},
	})
	require.NoError(t, err)

	conv, err := convs.GetByThreadId(ctx, "2-abc==")
	require.NoError(t, err)
	assert.Equal(t, "newer", conv.LastMessagePreview)
	assert.Equal(t, int64(2000), conv.LastMessageTime)
}

func TestIngestSnapshotSkipsTempAndMalformedRecords(t *testing.T) {
	svc, _, msgs := newTestSyncService()
	ctx := context.Background()

	result, err := svc.IngestSnapshot(ctx, &SnapshotRequest{
		Conversations: []*SyncConversation{{ThreadId: ""}},
		Messages: []*SyncMessage{
			{Urn: "tmp_123", ConversationId: "2-abc==", Content: "optimistic", Timestamp: 1000},
			{Urn: "", ConversationId: "2-abc==", Content: "no id", Timestamp: 1000},
			{Urn: "urn:li:msg:100", ConversationId: "", Content: "no thread", Timestamp: 1000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Conversations.Synced)
	assert.Equal(t, 1, result.Conversations.Errors)
	assert.Equal(t, 0, result.Messages.Synced)
	assert.Equal(t, 2, result.Messages.Errors)

	stored, err := msgs.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestIngestSnapshotResolvesWrappedThreadReference(t *testing.T) {
	svc, convs, _ := newTestSyncService()
	ctx := context.Background()

	_, err := svc.IngestSnapshot(ctx, &SnapshotRequest{
		Conversations: []*SyncConversation{{ThreadId: "2-abc==", Name: "Alice"}},
		Messages: []*SyncMessage{
			{
				Urn:            "urn:li:msg:100",
				ConversationId: "urn:li:msg_conversation:(urn:li:fsd_profile:ACoAAA,2-abc==)",
				Content:        "Hi",
				Timestamp:      1000,
			},
		},
	})
	require.NoError(t, err)

	conv, err := convs.GetByThreadId(ctx, "2-abc==")
	require.NoError(t, err)
	assert.Equal(t, "Hi", conv.LastMessagePreview, "wrapped and canonical references must land on one row")
}

func TestIngestSnapshotOwnMessageClearsUnread(t *testing.T) {
	svc, convs, _ := newTestSyncService()
	ctx := context.Background()

	_, err := svc.IngestSnapshot(ctx, &SnapshotRequest{
		Conversations: []*SyncConversation{{ThreadId: "2-abc==", Name: "Alice"}},
		Messages: []*SyncMessage{
			{Urn: "urn:li:msg:100", ConversationId: "2-abc==", Content: "Hi", Timestamp: 1000},
			{Urn: "urn:li:msg:101", ConversationId: "2-abc==", Content: "Hello!", IsFromMe: true, Timestamp: 2000},
		},
	})
	require.NoError(t, err)

	conv, err := convs.GetByThreadId(ctx, "2-abc==")
	require.NoError(t, err)
	assert.True(t, conv.IsRead)
	assert.Equal(t, 0, conv.UnreadCount)
	assert.True(t, conv.LastMessageFromMe)
}

func TestIngestSnapshotSparseUpdateKeepsIdentity(t *testing.T) {
	svc, convs, _ := newTestSyncService()
	ctx := context.Background()

	_, err := svc.IngestSnapshot(ctx, &SnapshotRequest{
		Conversations: []*SyncConversation{
			{ThreadId: "2-abc==", Name: "Alice", Headline: "Engineer", IsStarred: boolPtr(true)},
		},
	})
	require.NoError(t, err)

	// Later push without the optional fields.
	_, err = svc.IngestSnapshot(ctx, &SnapshotRequest{
		Conversations: []*SyncConversation{{ThreadId: "2-abc=="}},
	})
	require.NoError(t, err)

	conv, err := convs.GetByThreadId(ctx, "2-abc==")
	require.NoError(t, err)
	assert.Equal(t, "Alice", conv.Name)
	assert.Equal(t, "Engineer", conv.Headline)
	assert.True(t, conv.IsStarred)
}

func TestAddMessageIsIdempotent(t *testing.T) {
	svc, _, _ := newTestSyncService()
	ctx := context.Background()

	_, err := svc.IngestSnapshot(ctx, &SnapshotRequest{
		Conversations: []*SyncConversation{{ThreadId: "2-abc==", Name: "Alice"}},
	})
	require.NoError(t, err)

	in := &SyncMessage{Urn: "urn:li:msg:100", ConversationId: "2-abc==", Content: "Hi", Timestamp: 1000}

	result, err := svc.AddMessage(ctx, in)
	require.NoError(t, err)
	assert.False(t, result.Exists)
	assert.False(t, result.Skipped)

	result, err = svc.AddMessage(ctx, in)
	require.NoError(t, err)
	assert.True(t, result.Exists)

	result, err = svc.AddMessage(ctx, &SyncMessage{Urn: "tmp_1", ConversationId: "2-abc=="})
	require.NoError(t, err)
	assert.True(t, result.Skipped)
}

func TestMarkReadByThread(t *testing.T) {
	svc, convs, _ := newTestSyncService()
	ctx := context.Background()

	err := svc.MarkReadByThread(ctx, "2-missing==")
	assert.Error(t, err)

	_, err = svc.IngestSnapshot(ctx, &SnapshotRequest{
		Conversations: []*SyncConversation{{ThreadId: "2-abc==", Name: "Alice"}},
		Messages: []*SyncMessage{
			{Urn: "urn:li:msg:100", ConversationId: "2-abc==", Content: "Hi", Timestamp: 1000},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkReadByThread(ctx, "2-abc=="))

	conv, err := convs.GetByThreadId(ctx, "2-abc==")
	require.NoError(t, err)
	assert.True(t, conv.IsRead)
	assert.Equal(t, 0, conv.UnreadCount)
}

func TestSnapshotEmptyDatasetIsNil(t *testing.T) {
	svc, _, _ := newTestSyncService()

	data, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSnapshotDerivesPreviewAndOrder(t *testing.T) {
	svc, _, _ := newTestSyncService()
	ctx := context.Background()

	photo := &SyncMessage{
		Urn:            "urn:li:msg:300",
		ConversationId: "2-bbb==",
		Timestamp:      3000,
		Attachments:    []entity.Attachment{{Kind: "image", Url: "https://cdn/x.png"}},
	}
	_, err := svc.IngestSnapshot(ctx, &SnapshotRequest{
		Conversations: []*SyncConversation{
			{ThreadId: "2-aaa==", Name: "Alice"},
			{ThreadId: "2-bbb==", Name: "Bob"},
		},
		Messages: []*SyncMessage{
			{Urn: "urn:li:msg:100", ConversationId: "2-aaa==", Content: "first", Timestamp: 1000},
			photo,
		},
	})
	require.NoError(t, err)

	data, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, data)
	require.Len(t, data.Conversations, 2)

	assert.Equal(t, "Bob", data.Conversations[0].Name, "newest conversation first")
	assert.Equal(t, "[Photo]", data.Conversations[0].LastMessagePreview)
	assert.Equal(t, "first", data.Conversations[1].LastMessagePreview)

	require.Len(t, data.Messages, 2)
	assert.Equal(t, int64(1000), data.Messages[0].SentAt, "messages oldest first")
}
