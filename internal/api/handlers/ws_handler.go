package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hireform/hireform/internal/services"
	"github.com/redis/go-redis/v9"
)

// WSHandler streams newly submitted responses to the owner's results page.
// Submissions publish on a per-form Redis channel; each connected socket
// subscribes and forwards payloads as-is.
type WSHandler struct {
	forms    services.FormService
	redis    *redis.Client
	upgrader websocket.Upgrader
}

func NewWSHandler(forms services.FormService, rdb *redis.Client) *WSHandler {
	return &WSHandler{
		forms: forms,
		redis: rdb,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *WSHandler) ResultsWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	access, err := h.forms.ResolveOwner(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote the response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := h.redis.Subscribe(ctx, services.ResponsesChannel(access.Form.ID))
	defer pubsub.Close()

	// reader: the client sends nothing meaningful; drain until close.
	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		defer cancel() // unblocks the pub/sub receive below
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		for {
			if _, _, rerr := conn.ReadMessage(); rerr != nil {
				return
			}
		}
	}()

	// writer: Redis pub/sub -> WS
	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		default:
			m, err := pubsub.ReceiveMessage(ctx)
			if err != nil {
				return
			}
			if werr := wc.writeText([]byte(m.Payload)); werr != nil {
				return
			}
		}
	}
}
