package service

import (
	"context"

	"github.com/inboxlane/inboxlane/common"
	"github.com/inboxlane/inboxlane/internal/config"
	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/mbeoliero/kit/log"
)

// RealtimeIncoming is one just-observed message pushed by the extension
type RealtimeIncoming struct {
	Urn            string `json:"urn"`
	ConversationId string `json:"conversationId"`
	Content        string `json:"content"`
	IsFromMe       bool   `json:"isFromMe"`
	Timestamp      int64  `json:"timestamp"`
}

// RealtimePusher fans freshly buffered entries out to connected dashboards.
// Wired after construction so the service and the websocket gateway can be
// built independently.
type RealtimePusher interface {
	AsyncPushRealtime(accountId string, entries []*entity.RealtimeEntry)
}

// RealtimeService relays just-observed messages through a capped buffer so
// dashboards see them before the next full sync lands
type RealtimeService struct {
	buffer BufferStore
	cfg    *config.BufferConfig
	pusher RealtimePusher
}

// NewRealtimeService creates a new RealtimeService
func NewRealtimeService(buffer BufferStore, cfg *config.BufferConfig) *RealtimeService {
	return &RealtimeService{buffer: buffer, cfg: cfg}
}

// SetPusher wires the websocket gateway in
func (s *RealtimeService) SetPusher(p RealtimePusher) {
	s.pusher = p
}

// Append stamps, dedupes and prepends incoming entries, then trims the
// buffer to its cap. Duplicate urns, within the batch or against buffered
// entries, are dropped. Returns how many were added and the buffer size.
func (s *RealtimeService) Append(ctx context.Context, accountId string, incoming []*RealtimeIncoming) (added, total int, err error) {
	buffered, err := s.buffer.Load(ctx, accountId)
	if err != nil {
		log.CtxError(ctx, "realtime: load buffer failed, starting empty: %v", err)
		buffered = nil
	}

	known := make(map[string]struct{}, len(buffered))
	for _, e := range buffered {
		known[e.Urn] = struct{}{}
	}

	now := entity.NowUnixMilli()
	fresh := make([]*entity.RealtimeEntry, 0, len(incoming))
	for _, in := range incoming {
		if in.Urn == "" {
			continue
		}
		if _, dup := known[in.Urn]; dup {
			continue
		}
		known[in.Urn] = struct{}{}
		fresh = append(fresh, &entity.RealtimeEntry{
			Urn:        in.Urn,
			ThreadId:   common.ResolveThreadId(in.ConversationId),
			Content:    in.Content,
			IsFromMe:   in.IsFromMe,
			SentAt:     in.Timestamp,
			ReceivedAt: now,
		})
	}

	entries := append(fresh, buffered...)
	if len(entries) > s.cfg.MaxEntries {
		entries = entries[:s.cfg.MaxEntries]
	}

	if err := s.buffer.Store(ctx, accountId, entries); err != nil {
		return 0, len(buffered), err
	}

	if len(fresh) > 0 && s.pusher != nil {
		s.pusher.AsyncPushRealtime(accountId, fresh)
	}

	log.CtxDebug(ctx, "realtime: appended %d of %d entries, buffer=%d", len(fresh), len(incoming), len(entries))
	return len(fresh), len(entries), nil
}

// Read returns buffered entries newer than since, newest first, capped at
// limit. With consume set, returned entries are removed from the buffer.
// Buffer failures degrade to an empty result; the full sync is the source
// of truth.
func (s *RealtimeService) Read(ctx context.Context, accountId string, since int64, limit int, consume bool) (entries []*entity.RealtimeEntry, lastUpdate int64, err error) {
	buffered, loadErr := s.buffer.Load(ctx, accountId)
	if loadErr != nil {
		log.CtxError(ctx, "realtime: load buffer failed, returning empty: %v", loadErr)
		return []*entity.RealtimeEntry{}, 0, nil
	}

	if len(buffered) > 0 {
		lastUpdate = buffered[0].ReceivedAt
	}

	if limit <= 0 {
		limit = s.cfg.DefaultReadLimit
	}

	entries = make([]*entity.RealtimeEntry, 0, limit)
	for _, e := range buffered {
		if e.ReceivedAt <= since {
			continue
		}
		entries = append(entries, e)
		if len(entries) >= limit {
			break
		}
	}

	if consume && len(entries) > 0 {
		taken := make(map[string]struct{}, len(entries))
		for _, e := range entries {
			taken[e.Urn] = struct{}{}
		}
		remain := make([]*entity.RealtimeEntry, 0, len(buffered)-len(entries))
		for _, e := range buffered {
			if _, ok := taken[e.Urn]; !ok {
				remain = append(remain, e)
			}
		}
		if err := s.buffer.Store(ctx, accountId, remain); err != nil {
			log.CtxError(ctx, "realtime: consume store failed: %v", err)
		}
	}

	return entries, lastUpdate, nil
}
