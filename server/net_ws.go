package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"ropesim/rope"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// ClientConn 负责发送（写）数据到客户端的轻量包装
type ClientConn struct {
	ws *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewClientConn(ws *websocket.Conn) *ClientConn {
	return &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}
}

// Enqueue 将要发送的消息压入队列（非阻塞，满则丢弃）
func (c *ClientConn) Enqueue(b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- b:
	default:
		// 为了实时性，丢弃新消息（防止阻塞 Tick）
	}
}

// Close 关闭发送队列，写协程随之退出并关闭连接
func (c *ClientConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定期发送 ping
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 读取客户端输入，校验并转换为 Input 注入房间
func (c *ClientConn) readPump(room *Room, playerID PlayerID) {
	defer c.ws.Close()
	// 读泵退出时，通知房间在 Tick 线程中移除该玩家
	defer room.RequestLeave(playerID, c)
	c.ws.SetReadLimit(1 << 16)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))

		if err := ValidateInput(payload); err != nil {
			room.metrics.IncSchemaRejected()
			Log.Debugf("rejected input: room=%s player=%s err=%v", room.ID, playerID, err)
			c.Enqueue(encodeError(ErrBadRequest, "malformed input"))
			continue
		}
		var im InputMessage
		if err := json.Unmarshal(payload, &im); err != nil {
			c.Enqueue(encodeError(ErrBadRequest, "malformed input"))
			continue
		}
		in, err := im.ToInput(playerID, room.Tunables().CellSize)
		if err != nil {
			c.Enqueue(encodeError(ErrBadRequest, err.Error()))
			continue
		}
		room.OnInput(in)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 演示环境：允许所有来源（生产环境需严格限制）
		return true
	},
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(encodeError(code, msg))
}

// HandleWS WebSocket 接入：?room=room-1&player=alice&length=10
func (m *RoomManager) HandleWS(w http.ResponseWriter, r *http.Request) {
	cfg := m.Config()
	q := r.URL.Query()
	roomID := q.Get("room")
	if roomID == "" {
		roomID = cfg.DefaultRoom
	}
	playerID := q.Get("player")
	if playerID == "" {
		writeError(w, http.StatusBadRequest, ErrBadRequest, "missing player query")
		return
	}

	length := float64(cfg.Rope.Length)
	if s := q.Get("length"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrInvalidArgument, "length must be a number")
			return
		}
		length = v
	}
	// 先检查上限再分配段
	if cfg.Rope.MaxLength > 0 && length > float64(cfg.Rope.MaxLength) {
		writeError(w, http.StatusBadRequest, ErrInvalidArgument, "length above rope.max_length")
		return
	}
	chain, err := rope.NewFromNumbers(length, 0, 0)
	if err != nil {
		Log.Warnf("rope rejected: room=%s player=%s err=%v", roomID, playerID, err)
		writeError(w, http.StatusBadRequest, ErrInvalidArgument, err.Error())
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		Log.Warnf("upgrade error: %v", err)
		return
	}

	room := m.GetOrCreateRoom(roomID)
	client := NewClientConn(ws)
	room.JoinPlayer(PlayerID(playerID), chain, client)

	go client.writePump()
	go client.readPump(room, PlayerID(playerID))
}
