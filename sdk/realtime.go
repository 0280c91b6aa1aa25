package sdk

import (
	"context"
	"strconv"
)

// EventNewMessages is the realtime push event type
const EventNewMessages = "new_messages"

// PushRealtime relays a batch of just-observed messages
func (c *Client) PushRealtime(ctx context.Context, events []*RealtimeEvent) (*RealtimePushResult, error) {
	var result RealtimePushResult
	req := &RealtimePushRequest{Type: EventNewMessages, Messages: events}
	if err := c.post(ctx, "/realtime", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PollRealtime reads buffered entries newer than since. With consume set,
// returned entries are removed from the server buffer.
func (c *Client) PollRealtime(ctx context.Context, since int64, limit int, consume bool) (*RealtimeReadResult, error) {
	params := map[string]string{}
	if since > 0 {
		params["since"] = strconv.FormatInt(since, 10)
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	if consume {
		params["clear"] = "true"
	}

	var result RealtimeReadResult
	if err := c.get(ctx, "/realtime", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
