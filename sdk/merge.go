package sdk

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inboxlane/inboxlane/common"
)

// MergeState folds the three inbound streams (full sync, realtime batches,
// optimistic sends) into one consistent view. All reducers take explicit
// timestamps so behavior is deterministic.
type MergeState struct {
	mu            sync.Mutex
	conversations map[string]*ConversationInfo
	messages      map[string]*MessageInfo
	// urnByContentKey backs de-duplication across streams: the same message
	// can arrive with different urns (temp id, realtime echo, sync).
	urnByContentKey map[string]string
	// recentSends suppresses realtime echoes of just-sent messages.
	recentSends map[string]int64
	suppression time.Duration
	tempSeq     int64
}

// MergeOption configures a MergeState
type MergeOption func(*MergeState)

// WithSuppressionWindow overrides how long a just-sent content key keeps
// suppressing matching realtime entries
func WithSuppressionWindow(d time.Duration) MergeOption {
	return func(m *MergeState) {
		m.suppression = d
	}
}

// NewMergeState creates an empty merge state
func NewMergeState(opts ...MergeOption) *MergeState {
	m := &MergeState{
		conversations:   make(map[string]*ConversationInfo),
		messages:        make(map[string]*MessageInfo),
		urnByContentKey: make(map[string]string),
		recentSends:     make(map[string]int64),
		suppression:     DefaultSuppressionWindow,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// contentKey builds the de-duplication signature: canonical thread id plus
// the leading content slice, so the same text in different threads never
// collides
func contentKey(threadId, content string) string {
	trimmed := strings.TrimSpace(content)
	runes := []rune(trimmed)
	if len(runes) > ContentKeyLen {
		trimmed = string(runes[:ContentKeyLen])
	}
	return threadId + ":" + trimmed
}

// IsTemporaryUrn reports whether urn is a local optimistic placeholder
func IsTemporaryUrn(urn string) bool {
	return strings.HasPrefix(urn, TempUrnPrefix)
}

// ApplySyncSnapshot replaces state with the authoritative dataset. Local
// optimistic placeholders survive unless a synced message carries the same
// content key, in which case the placeholder is superseded and dropped.
func (m *MergeState) ApplySyncSnapshot(data *SnapshotData) {
	if data == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.conversations = make(map[string]*ConversationInfo, len(data.Conversations))
	for _, conv := range data.Conversations {
		copied := *conv
		m.conversations[conv.ThreadId] = &copied
	}

	pending := make([]*MessageInfo, 0)
	for _, msg := range m.messages {
		if msg.Pending {
			pending = append(pending, msg)
		}
	}

	m.messages = make(map[string]*MessageInfo, len(data.Messages))
	m.urnByContentKey = make(map[string]string, len(data.Messages))
	for _, msg := range data.Messages {
		copied := *msg
		m.messages[msg.Urn] = &copied
		m.urnByContentKey[contentKey(msg.ThreadId, msg.Content)] = msg.Urn
	}

	for _, msg := range pending {
		key := contentKey(msg.ThreadId, msg.Content)
		if _, superseded := m.urnByContentKey[key]; superseded {
			continue
		}
		m.messages[msg.Urn] = msg
		m.urnByContentKey[key] = msg.Urn
	}
}

// ApplyRealtimeBatch merges just-observed messages. Entries whose urn or
// content key is already known are dropped, as are echoes of messages sent
// from here within the suppression window. Returns how many were accepted.
func (m *MergeState) ApplyRealtimeBatch(entries []*RealtimeEntry, now int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneRecentSends(now)

	added := 0
	for _, entry := range entries {
		if entry.Urn == "" {
			continue
		}
		if _, known := m.messages[entry.Urn]; known {
			continue
		}

		threadId := common.ResolveThreadId(entry.ThreadId)
		if threadId == "" {
			continue
		}

		key := contentKey(threadId, entry.Content)
		if _, known := m.urnByContentKey[key]; known {
			continue
		}
		if sentAt, sent := m.recentSends[key]; sent && now-sentAt <= m.suppression.Milliseconds() {
			continue
		}

		msg := &MessageInfo{
			Urn:      entry.Urn,
			ThreadId: threadId,
			Content:  entry.Content,
			IsFromMe: entry.IsFromMe,
			SentAt:   entry.SentAt,
		}
		m.messages[msg.Urn] = msg
		m.urnByContentKey[key] = msg.Urn
		added++

		m.bumpConversation(msg)
	}
	return added
}

// ApplyOptimisticSend records a locally sent message before the server has
// seen it. The returned placeholder carries a temporary urn that a later
// sync supersedes.
func (m *MergeState) ApplyOptimisticSend(threadId, content string, now int64) *MessageInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	threadId = common.ResolveThreadId(threadId)
	m.tempSeq++
	msg := &MessageInfo{
		Urn:      fmt.Sprintf("%s%d_%d", TempUrnPrefix, now, m.tempSeq),
		ThreadId: threadId,
		Content:  content,
		IsFromMe: true,
		SentAt:   now,
		Pending:  true,
	}

	key := contentKey(threadId, content)
	m.messages[msg.Urn] = msg
	m.urnByContentKey[key] = msg.Urn
	m.recentSends[key] = now

	m.bumpConversation(msg)

	copied := *msg
	return &copied
}

// ApplySendResult resolves an optimistic send. On failure the placeholder is
// rolled back and its text returned so the composer can be restored.
func (m *MergeState) ApplySendResult(tempUrn string, ok bool) (restoredText string, rolledBack bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg, found := m.messages[tempUrn]
	if !found || !msg.Pending {
		return "", false
	}

	if ok {
		return "", false
	}

	delete(m.messages, tempUrn)
	key := contentKey(msg.ThreadId, msg.Content)
	if m.urnByContentKey[key] == tempUrn {
		delete(m.urnByContentKey, key)
	}
	delete(m.recentSends, key)
	return msg.Content, true
}

// Messages returns a thread's messages oldest first. A missing timestamp
// sorts as zero.
func (m *MergeState) Messages(threadId string) []*MessageInfo {
	threadId = common.ResolveThreadId(threadId)

	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := make([]*MessageInfo, 0)
	for _, msg := range m.messages {
		if msg.ThreadId != threadId {
			continue
		}
		copied := *msg
		msgs = append(msgs, &copied)
	}
	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].SentAt != msgs[j].SentAt {
			return msgs[i].SentAt < msgs[j].SentAt
		}
		return msgs[i].Urn < msgs[j].Urn
	})
	return msgs
}

// Conversations returns all conversations newest first
func (m *MergeState) Conversations() []*ConversationInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	convs := make([]*ConversationInfo, 0, len(m.conversations))
	for _, conv := range m.conversations {
		copied := *conv
		convs = append(convs, &copied)
	}
	sort.SliceStable(convs, func(i, j int) bool {
		return convs[i].LastMessageTime > convs[j].LastMessageTime
	})
	return convs
}

// Conversation returns one conversation by thread reference, or nil
func (m *MergeState) Conversation(threadId string) *ConversationInfo {
	threadId = common.ResolveThreadId(threadId)

	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.conversations[threadId]
	if !ok {
		return nil
	}
	copied := *conv
	return &copied
}

// bumpConversation refreshes a conversation's summary for a newly merged
// message. Callers hold the lock.
func (m *MergeState) bumpConversation(msg *MessageInfo) {
	conv, ok := m.conversations[msg.ThreadId]
	if !ok {
		conv = &ConversationInfo{
			ThreadId: msg.ThreadId,
			Name:     "Unknown",
			IsRead:   true,
		}
		m.conversations[msg.ThreadId] = conv
	}

	if msg.SentAt < conv.LastMessageTime {
		return
	}

	preview := strings.TrimSpace(msg.Content)
	runes := []rune(preview)
	if len(runes) > ContentKeyLen {
		preview = string(runes[:ContentKeyLen])
	}
	if preview != "" {
		conv.LastMessagePreview = preview
	}
	conv.LastMessageTime = msg.SentAt
	conv.LastMessageFromMe = msg.IsFromMe

	if msg.IsFromMe {
		conv.IsRead = true
		conv.UnreadCount = 0
	} else {
		conv.IsRead = false
		conv.UnreadCount++
	}
}

// pruneRecentSends drops suppression entries past the window. Callers hold
// the lock.
func (m *MergeState) pruneRecentSends(now int64) {
	window := m.suppression.Milliseconds()
	for key, sentAt := range m.recentSends {
		if now-sentAt > window {
			delete(m.recentSends, key)
		}
	}
}
