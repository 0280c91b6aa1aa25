package sdk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syncedMessage(urn, threadId, content string, fromMe bool, at int64) *MessageInfo {
	return &MessageInfo{Urn: urn, ThreadId: threadId, Content: content, IsFromMe: fromMe, SentAt: at}
}

func TestMergeSnapshotThenRealtimeDedupes(t *testing.T) {
	m := NewMergeState()

	m.ApplySyncSnapshot(&SnapshotData{
		Conversations: []*ConversationInfo{{ThreadId: "2-abc==", Name: "Alice", LastMessageTime: 1000}},
		Messages:      []*MessageInfo{syncedMessage("urn:li:msg:1", "2-abc==", "Hi", false, 1000)},
	})

	// Same message echoed through the realtime stream: same urn, and again
	// with a different urn but the same content.
	added := m.ApplyRealtimeBatch([]*RealtimeEntry{
		{Urn: "urn:li:msg:1", ThreadId: "2-abc==", Content: "Hi", SentAt: 1000},
		{Urn: "urn:li:msg:1b", ThreadId: "2-abc==", Content: "Hi", SentAt: 1000},
	}, 2000)

	assert.Equal(t, 0, added)
	assert.Len(t, m.Messages("2-abc=="), 1)
}

func TestMergeOptimisticSendSupersededBySync(t *testing.T) {
	m := NewMergeState()
	m.ApplySyncSnapshot(&SnapshotData{
		Conversations: []*ConversationInfo{{ThreadId: "2-abc==", Name: "Alice"}},
	})

	placeholder := m.ApplyOptimisticSend("2-abc==", "Hello there", 1000)
	require.True(t, IsTemporaryUrn(placeholder.Urn))
	require.True(t, placeholder.Pending)

	msgs := m.Messages("2-abc==")
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].Pending)

	// The next full sync carries the server's copy of the same message.
	m.ApplySyncSnapshot(&SnapshotData{
		Conversations: []*ConversationInfo{{ThreadId: "2-abc==", Name: "Alice", LastMessageTime: 1500}},
		Messages:      []*MessageInfo{syncedMessage("urn:li:msg:9", "2-abc==", "Hello there", true, 1500)},
	})

	msgs = m.Messages("2-abc==")
	require.Len(t, msgs, 1, "placeholder must be superseded, not duplicated")
	assert.Equal(t, "urn:li:msg:9", msgs[0].Urn)
	assert.False(t, msgs[0].Pending)
}

func TestMergePendingSurvivesUnrelatedSync(t *testing.T) {
	m := NewMergeState()

	placeholder := m.ApplyOptimisticSend("2-abc==", "Still sending", 1000)

	m.ApplySyncSnapshot(&SnapshotData{
		Conversations: []*ConversationInfo{{ThreadId: "2-abc==", Name: "Alice"}},
		Messages:      []*MessageInfo{syncedMessage("urn:li:msg:1", "2-abc==", "Older", false, 500)},
	})

	msgs := m.Messages("2-abc==")
	require.Len(t, msgs, 2)
	assert.Equal(t, placeholder.Urn, msgs[1].Urn, "pending placeholder survives until the server confirms it")
}

func TestMergeSendRollbackRestoresText(t *testing.T) {
	m := NewMergeState()

	placeholder := m.ApplyOptimisticSend("2-abc==", "did not go through", 1000)

	text, rolledBack := m.ApplySendResult(placeholder.Urn, false)
	assert.True(t, rolledBack)
	assert.Equal(t, "did not go through", text)
	assert.Empty(t, m.Messages("2-abc=="))

	// Resolving again is a no-op.
	_, rolledBack = m.ApplySendResult(placeholder.Urn, false)
	assert.False(t, rolledBack)
}

func TestMergeSuppressionWindow(t *testing.T) {
	m := NewMergeState(WithSuppressionWindow(30 * time.Second))

	m.ApplyOptimisticSend("2-abc==", "ping", 1000)

	// Server confirms, then a later snapshot no longer carries the message;
	// only the suppression record remembers the recent send.
	m.ApplySyncSnapshot(&SnapshotData{
		Conversations: []*ConversationInfo{{ThreadId: "2-abc==", Name: "Alice"}},
		Messages:      []*MessageInfo{syncedMessage("urn:li:msg:5", "2-abc==", "ping", true, 1200)},
	})
	m.ApplySyncSnapshot(&SnapshotData{
		Conversations: []*ConversationInfo{{ThreadId: "2-abc==", Name: "Alice"}},
	})

	// An echo inside the window is suppressed.
	added := m.ApplyRealtimeBatch([]*RealtimeEntry{
		{Urn: "urn:li:msg:echo1", ThreadId: "2-abc==", Content: "ping", IsFromMe: true, SentAt: 1300},
	}, 5000)
	assert.Equal(t, 0, added)

	// Past the window the same content is a genuine new message.
	added = m.ApplyRealtimeBatch([]*RealtimeEntry{
		{Urn: "urn:li:msg:echo2", ThreadId: "2-abc==", Content: "ping", IsFromMe: true, SentAt: 40000},
	}, 40000)
	assert.Equal(t, 1, added)
}

func TestMergeRealtimeBumpsUnread(t *testing.T) {
	m := NewMergeState()
	m.ApplySyncSnapshot(&SnapshotData{
		Conversations: []*ConversationInfo{{ThreadId: "2-abc==", Name: "Alice", IsRead: true}},
	})

	m.ApplyRealtimeBatch([]*RealtimeEntry{
		{Urn: "urn:li:msg:1", ThreadId: "2-abc==", Content: "new one", SentAt: 2000},
	}, 2000)

	conv := m.Conversation("2-abc==")
	require.NotNil(t, conv)
	assert.False(t, conv.IsRead)
	assert.Equal(t, 1, conv.UnreadCount)
	assert.Equal(t, "new one", conv.LastMessagePreview)
	assert.Equal(t, int64(2000), conv.LastMessageTime)

	// My own reply clears the unread state.
	m.ApplyOptimisticSend("2-abc==", "on it", 3000)
	conv = m.Conversation("2-abc==")
	assert.True(t, conv.IsRead)
	assert.Equal(t, 0, conv.UnreadCount)
}

func TestMergeMessageOrderingMissingTimestampSortsFirst(t *testing.T) {
	m := NewMergeState()

	m.ApplySyncSnapshot(&SnapshotData{
		Conversations: []*ConversationInfo{{ThreadId: "2-abc==", Name: "Alice"}},
		Messages: []*MessageInfo{
			syncedMessage("urn:li:msg:2", "2-abc==", "second", false, 2000),
			syncedMessage("urn:li:msg:0", "2-abc==", "undated", false, 0),
			syncedMessage("urn:li:msg:1", "2-abc==", "first", false, 1000),
		},
	})

	msgs := m.Messages("2-abc==")
	require.Len(t, msgs, 3)
	assert.Equal(t, "undated", msgs[0].Content)
	assert.Equal(t, "first", msgs[1].Content)
	assert.Equal(t, "second", msgs[2].Content)
}

func TestMergeResolvesWrappedThreadReferences(t *testing.T) {
	m := NewMergeState()
	m.ApplySyncSnapshot(&SnapshotData{
		Conversations: []*ConversationInfo{{ThreadId: "2-abc==", Name: "Alice"}},
	})

	m.ApplyRealtimeBatch([]*RealtimeEntry{
		{Urn: "urn:li:msg:1", ThreadId: "urn:li:msg_conversation:(urn:li:fsd_profile:ACoAAA,2-abc==)", Content: "Hi", SentAt: 1000},
	}, 1000)

	msgs := m.Messages("2-abc==")
	require.Len(t, msgs, 1)

	// Conversations stay a single row; no shadow conversation appears.
	assert.Len(t, m.Conversations(), 1)
}
