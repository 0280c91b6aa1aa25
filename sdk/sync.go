package sdk

import "context"

// Patch types for IncrementalSync
const (
	PatchAddMessage = "add_message"
	PatchMarkRead   = "mark_read"
)

// PushSnapshot uploads a full conversation/message snapshot
func (c *Client) PushSnapshot(ctx context.Context, req *SnapshotRequest) (*IngestResult, error) {
	var result IngestResult
	if err := c.post(ctx, "/sync", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchSnapshot reads the full dashboard dataset. Data is nil until the
// first snapshot has been pushed.
func (c *Client) FetchSnapshot(ctx context.Context) (*SnapshotData, error) {
	var result SnapshotResponse
	if err := c.get(ctx, "/sync", nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

type patchRequest struct {
	Type     string       `json:"type"`
	Message  *SyncMessage `json:"message,omitempty"`
	ThreadId string       `json:"threadId,omitempty"`
}

// AddMessage pushes a single message incrementally. Idempotent on urn.
func (c *Client) AddMessage(ctx context.Context, msg *SyncMessage) (*PatchResult, error) {
	var result PatchResult
	req := &patchRequest{Type: PatchAddMessage, Message: msg}
	if err := c.patch(ctx, "/sync", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkThreadRead clears the unread state of a conversation
func (c *Client) MarkThreadRead(ctx context.Context, threadId string) error {
	req := &patchRequest{Type: PatchMarkRead, ThreadId: threadId}
	return c.patch(ctx, "/sync", req, nil)
}
