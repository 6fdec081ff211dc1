package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"homehelpBack/internal/models"
)

const (
	readLimit     = 1 << 20
	readDeadline  = 120 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
)

type directNotification struct {
	userID string
	n      models.Notification
}

type wsClient struct {
	userID string
	conn   *websocket.Conn
}

type wsUnreg struct {
	userID string
	conn   *websocket.Conn
}

// NotificationHub pushes notifications to connected clients over WebSocket.
// One connection per user; a newer connection replaces the old one.
type NotificationHub struct {
	clients    map[string]*websocket.Conn
	direct     chan directNotification
	register   chan wsClient
	unregister chan wsUnreg
	pingEvery  time.Duration
	infoLog    *log.Logger
}

func NewNotificationHub(infoLog *log.Logger) *NotificationHub {
	return &NotificationHub{
		clients:    make(map[string]*websocket.Conn),
		direct:     make(chan directNotification, 64),
		register:   make(chan wsClient),
		unregister: make(chan wsUnreg),
		pingEvery:  pingInterval,
		infoLog:    infoLog,
	}
}

// SendToUser implements services.Streamer. Offline users are skipped inside
// the hub loop.
func (h *NotificationHub) SendToUser(userID string, n models.Notification) {
	select {
	case h.direct <- directNotification{userID: userID, n: n}:
	default:
		h.infoLog.Printf("ws hub busy, dropping stream delivery for user %s", userID)
	}
}

// All access to clients and every write on a registered connection happen
// here. Pings included: a websocket.Conn supports only one concurrent writer.
func (h *NotificationHub) Run() {
	pings := time.NewTicker(h.pingEvery)
	defer pings.Stop()
	for {
		select {
		case client := <-h.register:
			if old, ok := h.clients[client.userID]; ok && old != nil && old != client.conn {
				_ = old.Close()
			}
			h.clients[client.userID] = client.conn
			h.infoLog.Printf("WS register user=%s", client.userID)

		case u := <-h.unregister:
			if cur, ok := h.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(h.clients, u.userID)
				h.infoLog.Printf("WS unregister user=%s", u.userID)
			}

		case dm := <-h.direct:
			conn, ok := h.clients[dm.userID]
			if !ok {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := conn.WriteJSON(dm.n); err != nil {
				h.infoLog.Printf("WS send error to=%s: %v", dm.userID, err)
				_ = conn.Close()
				delete(h.clients, dm.userID)
			}

		case <-pings.C:
			for userID, conn := range h.clients {
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
					h.infoLog.Printf("WS ping error to=%s: %v", userID, err)
					_ = conn.Close()
					delete(h.clients, userID)
				}
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// WebSocketHandler upgrades an authenticated connection and registers it with
// the hub. The connection is receive-only: clients never send frames besides
// pongs.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value("user_id").(string)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn.SetReadLimit(readLimit)
	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	app.wsHub.register <- wsClient{userID: userID, conn: conn}

	go app.drainLoop(conn, userID)
}

// drainLoop consumes incoming frames so control messages are processed and a
// closed connection is noticed promptly.
func (app *application) drainLoop(conn *websocket.Conn, userID string) {
	defer func() {
		app.wsHub.unregister <- wsUnreg{userID: userID, conn: conn}
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
