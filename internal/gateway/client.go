package gateway

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/mbeoliero/kit/log"
)

// Client represents a connected dashboard
type Client struct {
	conn      ClientConn
	AccountId string
	ConnId    string
	server    *WsServer
	closed    atomic.Bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewClient creates a new client
func NewClient(conn ClientConn, accountId, connId string, server *WsServer) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		conn:      conn,
		AccountId: accountId,
		ConnId:    connId,
		server:    server,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// readLoop drains the connection. The push channel is one-way; inbound
// frames only matter for detecting a dead or closed peer.
func (c *Client) readLoop() {
	defer func() {
		if r := recover(); r != nil {
			log.CtxError(c.ctx, "client read loop panic: conn_id=%s, error=%v", c.ConnId, r)
		}
		c.close()
	}()

	for {
		_, err := c.conn.ReadMessage()
		if err != nil {
			log.CtxDebug(c.ctx, "read message error: conn_id=%s, error=%v", c.ConnId, err)
			return
		}
		if c.closed.Load() {
			return
		}
	}
}

// PushEntries sends freshly buffered realtime entries to the dashboard
func (c *Client) PushEntries(entries []*entity.RealtimeEntry) error {
	if c.closed.Load() {
		return ErrConnClosed
	}

	frame := PushFrame{
		Type:      FrameNewMessages,
		Messages:  entries,
		Timestamp: entity.NowUnixMilli(),
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(data)
}

// Close closes the client connection
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.cancel()
	return c.conn.Close()
}

// close handles cleanup when the connection drops
func (c *Client) close() {
	c.Close()
	c.server.UnregisterClient(c)
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	return c.closed.Load()
}
