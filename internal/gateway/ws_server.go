package gateway

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
	"github.com/hertz-contrib/websocket"
	"github.com/inboxlane/inboxlane/internal/config"
	"github.com/inboxlane/inboxlane/internal/entity"
	"github.com/inboxlane/inboxlane/pkg/constant"
	"github.com/inboxlane/inboxlane/pkg/jwt"
	"github.com/mbeoliero/kit/log"
)

// WsServer pushes realtime entries out to connected dashboards
type WsServer struct {
	cfg            *config.Config
	tokenStore     *jwt.TokenStore
	mu             sync.RWMutex
	clients        map[string]map[string]*Client // accountId -> connId -> client
	registerChan   chan *Client
	unregisterChan chan *Client
	pushChan       chan *PushTask
	onlineConnNum  atomic.Int64
}

// PushTask carries entries to fan out to one account's connections
type PushTask struct {
	AccountId string
	Entries   []*entity.RealtimeEntry
}

// NewWsServer creates a new WebSocket server
func NewWsServer(cfg *config.Config, tokenStore *jwt.TokenStore) *WsServer {
	return &WsServer{
		cfg:            cfg,
		tokenStore:     tokenStore,
		clients:        make(map[string]map[string]*Client),
		registerChan:   make(chan *Client, 64),
		unregisterChan: make(chan *Client, 64),
		pushChan:       make(chan *PushTask, cfg.WebSocket.PushChannelSize),
	}
}

// Run starts the event and push loops
func (s *WsServer) Run(ctx context.Context) {
	go s.eventLoop(ctx)
	go s.pushLoop(ctx)
	log.Info("websocket gateway started")
}

// eventLoop handles client registration and unregistration
func (s *WsServer) eventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case client := <-s.registerChan:
			s.registerClient(ctx, client)
		case client := <-s.unregisterChan:
			s.unregisterClient(ctx, client)
		}
	}
}

// pushLoop fans queued entries out to the account's connections
func (s *WsServer) pushLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-s.pushChan:
			s.processPushTask(ctx, task)
		}
	}
}

func (s *WsServer) processPushTask(ctx context.Context, task *PushTask) {
	s.mu.RLock()
	conns := make([]*Client, 0, len(s.clients[task.AccountId]))
	for _, client := range s.clients[task.AccountId] {
		conns = append(conns, client)
	}
	s.mu.RUnlock()

	for _, client := range conns {
		if err := client.PushEntries(task.Entries); err != nil {
			log.CtxDebug(ctx, "push to client failed: conn_id=%s, error=%v", client.ConnId, err)
		}
	}
}

func (s *WsServer) registerClient(ctx context.Context, client *Client) {
	s.mu.Lock()
	conns, ok := s.clients[client.AccountId]
	if !ok {
		conns = make(map[string]*Client)
		s.clients[client.AccountId] = conns
	}
	conns[client.ConnId] = client
	s.mu.Unlock()

	s.onlineConnNum.Add(1)
	log.CtxInfo(ctx, "client registered: account_id=%s, conn_id=%s, online_conns=%d",
		client.AccountId, client.ConnId, s.onlineConnNum.Load())
}

func (s *WsServer) unregisterClient(ctx context.Context, client *Client) {
	s.mu.Lock()
	if conns, ok := s.clients[client.AccountId]; ok {
		if _, present := conns[client.ConnId]; present {
			delete(conns, client.ConnId)
			s.onlineConnNum.Add(-1)
		}
		if len(conns) == 0 {
			delete(s.clients, client.AccountId)
		}
	}
	s.mu.Unlock()

	log.CtxInfo(ctx, "client unregistered: account_id=%s, conn_id=%s, online_conns=%d",
		client.AccountId, client.ConnId, s.onlineConnNum.Load())
}

// UnregisterClient queues a client for unregistration
func (s *WsServer) UnregisterClient(client *Client) {
	select {
	case s.unregisterChan <- client:
	default:
		log.Warn("unregister channel full: conn_id=%s", client.ConnId)
	}
}

// HandleConnection upgrades a dashboard connection after validating its
// token. Hertz handler for GET /ws.
func (s *WsServer) HandleConnection(ctx context.Context, c *app.RequestContext, upgrader *websocket.HertzUpgrader) {
	if s.onlineConnNum.Load() >= s.cfg.WebSocket.MaxConnNum {
		c.String(503, "connection limit exceeded")
		return
	}

	token := string(c.Query(QueryToken))
	if token == "" {
		c.String(400, "missing token")
		return
	}

	claims, err := jwt.ParseToken(token, s.cfg.Auth.Secret)
	if err != nil || claims.Client != constant.ClientDashboard {
		log.CtxDebug(ctx, "token validation failed: %v", err)
		c.String(401, "unauthorized")
		return
	}
	valid, err := s.tokenStore.ValidateTokenStatus(ctx, claims.AccountId, claims.Client, token)
	if err != nil || !valid {
		c.String(401, "unauthorized")
		return
	}

	accountId := claims.AccountId
	err = upgrader.Upgrade(c, func(conn *websocket.Conn) {
		connId := uuid.New().String()
		wsConn := NewHertzClientConn(conn,
			s.cfg.WebSocket.MaxMessageSize,
			s.cfg.WebSocket.PongWait,
			s.cfg.WebSocket.PingPeriod,
			s.cfg.WebSocket.WriteWait,
			s.cfg.WebSocket.WriteChannelSize)
		client := NewClient(wsConn, accountId, connId, s)

		s.registerChan <- client

		// Blocking; returns when the peer goes away.
		client.readLoop()
	})
	if err != nil {
		log.CtxWarn(ctx, "websocket upgrade failed: %v", err)
	}
}

// AsyncPushRealtime queues entries for fan-out. Implements the realtime
// service's pusher; drops on a full queue, polling catches up.
func (s *WsServer) AsyncPushRealtime(accountId string, entries []*entity.RealtimeEntry) {
	task := &PushTask{AccountId: accountId, Entries: entries}

	select {
	case s.pushChan <- task:
	default:
		log.Warn("push channel full, %d entries dropped", len(entries))
	}
}

// GetOnlineConnCount returns online connection count
func (s *WsServer) GetOnlineConnCount() int64 {
	return s.onlineConnNum.Load()
}
