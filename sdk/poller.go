package sdk

import (
	"context"
	"time"
)

// Poller drives a MergeState from the HTTP API: a slow full-sync loop that
// re-anchors state, and a fast realtime loop that fills the gap between
// syncs.
type Poller struct {
	client           *Client
	merge            *MergeState
	syncInterval     time.Duration
	realtimeInterval time.Duration
	lastUpdate       int64
	onUpdate         func()
}

// PollerOption configures a Poller
type PollerOption func(*Poller)

// WithSyncInterval overrides the full-sync period
func WithSyncInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.syncInterval = d
	}
}

// WithRealtimeInterval overrides the realtime poll period
func WithRealtimeInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.realtimeInterval = d
	}
}

// WithOnUpdate sets a callback fired after every state change
func WithOnUpdate(fn func()) PollerOption {
	return func(p *Poller) {
		p.onUpdate = fn
	}
}

// NewPoller creates a poller feeding merge from client
func NewPoller(client *Client, merge *MergeState, opts ...PollerOption) *Poller {
	p := &Poller{
		client:           client,
		merge:            merge,
		syncInterval:     DefaultSyncInterval,
		realtimeInterval: DefaultRealtimeInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is cancelled. An immediate full sync runs first so
// callers start from current state.
func (p *Poller) Run(ctx context.Context) {
	p.syncOnce(ctx)

	syncTicker := time.NewTicker(p.syncInterval)
	realtimeTicker := time.NewTicker(p.realtimeInterval)
	defer syncTicker.Stop()
	defer realtimeTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-syncTicker.C:
			p.syncOnce(ctx)
		case <-realtimeTicker.C:
			p.realtimeOnce(ctx)
		}
	}
}

// syncOnce fetches and applies a full snapshot. Errors are swallowed; the
// next tick retries.
func (p *Poller) syncOnce(ctx context.Context) {
	data, err := p.client.FetchSnapshot(ctx)
	if err != nil || data == nil {
		return
	}
	p.merge.ApplySyncSnapshot(data)
	p.notify()
}

// realtimeOnce polls the realtime buffer for entries newer than the last
// poll
func (p *Poller) realtimeOnce(ctx context.Context) {
	result, err := p.client.PollRealtime(ctx, p.lastUpdate, 0, false)
	if err != nil {
		return
	}
	if result.LastUpdate > p.lastUpdate {
		p.lastUpdate = result.LastUpdate
	}
	if len(result.Messages) == 0 {
		return
	}
	if p.merge.ApplyRealtimeBatch(result.Messages, time.Now().UnixMilli()) > 0 {
		p.notify()
	}
}

func (p *Poller) notify() {
	if p.onUpdate != nil {
		p.onUpdate()
	}
}
