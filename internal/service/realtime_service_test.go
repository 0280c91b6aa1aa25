package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/inboxlane/inboxlane/internal/config"
	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAccount = "default"

func newTestRealtimeService(maxEntries int) (*RealtimeService, *fakeBufferStore) {
	buffer := newFakeBufferStore()
	cfg := &config.BufferConfig{MaxEntries: maxEntries, DefaultReadLimit: 50}
	return NewRealtimeService(buffer, cfg), buffer
}

func TestRealtimeAppendAndRead(t *testing.T) {
	svc, _ := newTestRealtimeService(100)
	ctx := context.Background()

	added, total, err := svc.Append(ctx, testAccount, []*RealtimeIncoming{
		{Urn: "urn:li:msg:1", ConversationId: "2-abc==", Content: "hey", Timestamp: 1000},
		{Urn: "urn:li:msg:2", ConversationId: "2-abc==", Content: "there", Timestamp: 2000},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, total)

	entries, lastUpdate, err := svc.Read(ctx, testAccount, 0, 0, false)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2-abc==", entries[0].ThreadId)
	assert.NotZero(t, lastUpdate)
}

func TestRealtimeAppendDedupesByUrn(t *testing.T) {
	svc, _ := newTestRealtimeService(100)
	ctx := context.Background()

	batch := []*RealtimeIncoming{
		{Urn: "urn:li:msg:1", ConversationId: "2-abc==", Content: "hey", Timestamp: 1000},
		{Urn: "urn:li:msg:1", ConversationId: "2-abc==", Content: "hey again", Timestamp: 1000},
		{Urn: "", ConversationId: "2-abc=="},
	}
	added, total, err := svc.Append(ctx, testAccount, batch)
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, total)

	// Same urn arriving later is dropped against the buffered copy.
	added, total, err = svc.Append(ctx, testAccount, batch[:1])
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, total)
}

func TestRealtimeBufferIsCapped(t *testing.T) {
	svc, buffer := newTestRealtimeService(5)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_, _, err := svc.Append(ctx, testAccount, []*RealtimeIncoming{
			{Urn: fmt.Sprintf("urn:li:msg:%d", i), ConversationId: "2-abc==", Timestamp: int64(i)},
		})
		require.NoError(t, err)
	}

	stored := buffer.entries[testAccount]
	require.Len(t, stored, 5)
	assert.Equal(t, "urn:li:msg:7", stored[0].Urn, "newest entry stays at the front")
	assert.Equal(t, "urn:li:msg:3", stored[4].Urn, "oldest entries past the cap are dropped")
}

func TestRealtimeReadConsumeRemovesReturned(t *testing.T) {
	svc, _ := newTestRealtimeService(100)
	ctx := context.Background()

	_, _, err := svc.Append(ctx, testAccount, []*RealtimeIncoming{
		{Urn: "urn:li:msg:1", ConversationId: "2-abc==", Timestamp: 1000},
		{Urn: "urn:li:msg:2", ConversationId: "2-abc==", Timestamp: 2000},
	})
	require.NoError(t, err)

	entries, _, err := svc.Read(ctx, testAccount, 0, 0, true)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, _, err = svc.Read(ctx, testAccount, 0, 0, false)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRealtimeReadHonorsLimit(t *testing.T) {
	svc, _ := newTestRealtimeService(100)
	ctx := context.Background()

	batch := make([]*RealtimeIncoming, 0, 10)
	for i := 0; i < 10; i++ {
		batch = append(batch, &RealtimeIncoming{
			Urn:            fmt.Sprintf("urn:li:msg:%d", i),
			ConversationId: "2-abc==",
			Timestamp:      int64(i),
		})
	}
	_, _, err := svc.Append(ctx, testAccount, batch)
	require.NoError(t, err)

	entries, _, err := svc.Read(ctx, testAccount, 0, 3, false)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRealtimeReadDegradesOnBufferFailure(t *testing.T) {
	svc, buffer := newTestRealtimeService(100)
	buffer.failLoad = true

	entries, lastUpdate, err := svc.Read(context.Background(), testAccount, 0, 0, false)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, lastUpdate)
}

type capturePusher struct {
	got []*entity.RealtimeEntry
}

func (p *capturePusher) AsyncPushRealtime(accountId string, entries []*entity.RealtimeEntry) {
	p.got = append(p.got, entries...)
}

func TestRealtimeAppendFansOutToPusher(t *testing.T) {
	svc, _ := newTestRealtimeService(100)
	pusher := &capturePusher{}
	svc.SetPusher(pusher)

	_, _, err := svc.Append(context.Background(), testAccount, []*RealtimeIncoming{
		{Urn: "urn:li:msg:1", ConversationId: "2-abc==", Content: "hey", Timestamp: 1000},
	})
	require.NoError(t, err)
	require.Len(t, pusher.got, 1)
	assert.Equal(t, "urn:li:msg:1", pusher.got[0].Urn)
}
