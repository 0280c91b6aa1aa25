package sdk

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// Subscriber keeps a websocket connection to the push channel and feeds
// received batches into a MergeState. Polling still runs underneath; the
// socket only shortens latency.
type Subscriber struct {
	wsURL      string
	token      string
	merge      *MergeState
	onUpdate   func()
	backoff    time.Duration
	maxBackoff time.Duration
}

// NewSubscriber creates a subscriber. baseURL is the http(s) server
// address; it is rewritten to the ws(s) scheme.
func NewSubscriber(baseURL, token string, merge *MergeState, onUpdate func()) (*Subscriber, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = "/ws"
	u.RawQuery = url.Values{"token": {token}}.Encode()

	return &Subscriber{
		wsURL:      u.String(),
		token:      token,
		merge:      merge,
		onUpdate:   onUpdate,
		backoff:    time.Second,
		maxBackoff: 30 * time.Second,
	}, nil
}

// Run connects and reads push frames until ctx is cancelled, reconnecting
// with backoff after failures
func (s *Subscriber) Run(ctx context.Context) {
	backoff := s.backoff
	for {
		if ctx.Err() != nil {
			return
		}

		if err := s.readOnce(ctx); err == nil {
			backoff = s.backoff
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > s.maxBackoff {
			backoff = s.maxBackoff
		}
	}
}

// readOnce dials and consumes frames until the connection drops
func (s *Subscriber) readOnce(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var frame PushFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		if frame.Type != EventNewMessages || len(frame.Messages) == 0 {
			continue
		}

		if s.merge.ApplyRealtimeBatch(frame.Messages, time.Now().UnixMilli()) > 0 && s.onUpdate != nil {
			s.onUpdate()
		}
	}
}
